// Package store gives access to the documents of a published election
// record by their logical names. It knows nothing about what the documents
// contain.
//
// A singleton document is named by its kind, like "manifest". A member of a
// collection is named by the collection and the member file, like
// "guardians/guardian_G1"; see Member.
package store

import (
	"io"
	"io/ioutil"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

// ErrNotFound is returned by Open for a document that does not exist.
var ErrNotFound = xerrors.New("document not found")

// The singleton documents of a record.
const (
	Manifest       = "manifest"
	Constants      = "constants"
	Context        = "context"
	Coefficients   = "coefficients"
	EncryptedTally = "encrypted_tally"
	Tally          = "tally"
)

// The collections of a record.
const (
	Devices          = "encryption_devices"
	Guardians        = "guardians"
	SubmittedBallots = "submitted_ballots"
	SpoiledBallots   = "spoiled_ballots"
	InvalidBallots   = "invalid_ballots"
)

var prefixes = map[string]string{
	Devices:          "device_",
	Guardians:        "guardian_",
	SubmittedBallots: "submitted_ballot_",
	SpoiledBallots:   "spoiled_ballot_",
	InvalidBallots:   "plaintext_ballot_",
}

// Singletons returns the names of all singleton documents.
func Singletons() []string {
	return []string{Manifest, Constants, Context, Coefficients, EncryptedTally, Tally}
}

// Collections returns the names of all collections.
func Collections() []string {
	return []string{Devices, Guardians, SubmittedBallots, SpoiledBallots, InvalidBallots}
}

// Store reads documents.
type Store interface {
	// Open returns the content of a document, or ErrNotFound.
	Open(name string) (io.ReadCloser, error)
	// Members returns the names of the documents of a collection, sorted.
	Members(collection string) ([]string, error)
	// Exists tells whether a document is present.
	Exists(name string) bool
}

// Writer is a Store that documents can be written to. Creating an existing
// document replaces it once the returned writer is closed.
type Writer interface {
	Store
	Create(name string) (io.WriteCloser, error)
}

// Aborter is implemented by the writers of Create that can drop what was
// written instead of storing it. After Abort the document is unchanged.
type Aborter interface {
	Abort() error
}

// Member returns the name of the document of the collection for the given
// id.
func Member(collection, id string) string {
	return collection + "/" + prefixes[collection] + id
}

// MemberID returns the id of a member of a collection, as given to Member.
func MemberID(name string) (collection, id string, ok bool) {
	i := strings.IndexByte(name, '/')
	if i < 0 {
		return "", "", false
	}
	collection = name[:i]
	prefix, known := prefixes[collection]
	if !known || !strings.HasPrefix(name[i+1:], prefix) {
		return "", "", false
	}
	return collection, name[i+1+len(prefix):], true
}

// ReadAll opens a document and returns all of its content.
func ReadAll(s Store, name string) ([]byte, error) {
	r, err := s.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, xerrors.Errorf("reading %s: %w", name, err)
	}
	return buf, nil
}

// WriteAll creates a document with the given content.
func WriteAll(w Writer, name string, buf []byte) error {
	wc, err := w.Create(name)
	if err != nil {
		return err
	}
	if _, err := wc.Write(buf); err != nil {
		if a, ok := wc.(Aborter); ok {
			a.Abort()
		} else {
			wc.Close()
		}
		return xerrors.Errorf("writing %s: %w", name, err)
	}
	return wc.Close()
}

func checkCollection(collection string) error {
	if _, ok := prefixes[collection]; !ok {
		return xerrors.Errorf("unknown collection %q", collection)
	}
	return nil
}

// isMember tells whether name is a member of the collection.
func isMember(collection, name string) bool {
	c, id, ok := MemberID(name)
	return ok && c == collection && id != ""
}

func sorted(names []string) []string {
	sort.Strings(names)
	return names
}
