package record

// ElectionType is the kind of election a manifest describes.
type ElectionType string

// ReportingUnitType is the kind of a geopolitical unit.
type ReportingUnitType string

// VoteVariationType is the counting rule of a contest.
type VoteVariationType string

// The published election types.
const (
	ElectionUnknown               ElectionType = "unknown"
	ElectionGeneral               ElectionType = "general"
	ElectionPartisanPrimaryClosed ElectionType = "partisan_primary_closed"
	ElectionPartisanPrimaryOpen   ElectionType = "partisan_primary_open"
	ElectionPrimary               ElectionType = "primary"
	ElectionRunoff                ElectionType = "runoff"
	ElectionSpecial               ElectionType = "special"
	ElectionOther                 ElectionType = "other"
)

var electionTypes = map[ElectionType]bool{
	ElectionUnknown: true, ElectionGeneral: true,
	ElectionPartisanPrimaryClosed: true, ElectionPartisanPrimaryOpen: true,
	ElectionPrimary: true, ElectionRunoff: true, ElectionSpecial: true,
	ElectionOther: true,
}

// Valid tells whether t is one of the published election types.
func (t ElectionType) Valid() bool {
	return electionTypes[t]
}

var reportingUnitTypes = map[ReportingUnitType]bool{}

func init() {
	for _, t := range []string{
		"unknown", "ballot_batch", "ballot_style_area", "borough", "city",
		"city_council", "combined_precinct", "congressional", "country",
		"county", "county_council", "drop_box", "judicial", "municipality",
		"polling_place", "precinct", "school", "special", "split_precinct",
		"state", "state_house", "state_senate", "township", "utility",
		"village", "vote_center", "ward", "water", "other",
	} {
		reportingUnitTypes[ReportingUnitType(t)] = true
	}
}

// Valid tells whether t is one of the published reporting unit types.
func (t ReportingUnitType) Valid() bool {
	return reportingUnitTypes[t]
}

// The published vote variations.
const (
	VariationUnknown       VoteVariationType = "unknown"
	VariationOneOfM        VoteVariationType = "one_of_m"
	VariationApproval      VoteVariationType = "approval"
	VariationBorda         VoteVariationType = "borda"
	VariationCumulative    VoteVariationType = "cumulative"
	VariationMajority      VoteVariationType = "majority"
	VariationNOfM          VoteVariationType = "n_of_m"
	VariationPlurality     VoteVariationType = "plurality"
	VariationProportional  VoteVariationType = "proportional"
	VariationRange         VoteVariationType = "range"
	VariationRCV           VoteVariationType = "rcv"
	VariationSuperMajority VoteVariationType = "super_majority"
	VariationOther         VoteVariationType = "other"
)

var voteVariations = map[VoteVariationType]bool{
	VariationUnknown: true, VariationOneOfM: true, VariationApproval: true,
	VariationBorda: true, VariationCumulative: true, VariationMajority: true,
	VariationNOfM: true, VariationPlurality: true, VariationProportional: true,
	VariationRange: true, VariationRCV: true, VariationSuperMajority: true,
	VariationOther: true,
}

// Valid tells whether v is one of the published vote variations.
func (v VoteVariationType) Valid() bool {
	return voteVariations[v]
}

// BallotState is the state of a submitted ballot. The zero value is not a
// state.
type BallotState int

const (
	// BallotCast is a ballot counted in the tally.
	BallotCast BallotState = iota + 1
	// BallotSpoiled is a ballot decrypted on its own and not counted.
	BallotSpoiled
	// BallotUnknown is a ballot in neither state.
	BallotUnknown
)

func (s BallotState) String() string {
	switch s {
	case BallotCast:
		return "CAST"
	case BallotSpoiled:
		return "SPOILED"
	case BallotUnknown:
		return "UNKNOWN"
	default:
		return "INVALID"
	}
}
