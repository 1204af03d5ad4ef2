// Package config reads the TOML file that tells egadmin which group a record
// is read with, how strictly it is decoded and where it is stored.
//
//	strict_shares = false
//	workers = 4
//
//	[group]
//	name = "production"
//	large_prime = "ffff..."
//	small_prime = "ffff...43"
//	cofactor = "0100..."
//	generator = "0375..."
//
//	[store]
//	kind = "bolt"
//	path = "record.db"
package config

import (
	"io/ioutil"
	"math/big"
	"strings"

	"github.com/BurntSushi/toml"
	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/codec"
	"go.dedis.ch/egrecord/consumer"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/store"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

// ErrNoGroup is returned by GroupContext when the file has no [group] table.
var ErrNoGroup = xerrors.New("no group in configuration")

// Store kinds.
const (
	KindDir  = "dir"
	KindBolt = "bolt"
)

// Group holds the group parameters as hex strings.
type Group struct {
	Name       string `toml:"name"`
	LargePrime string `toml:"large_prime"`
	SmallPrime string `toml:"small_prime"`
	Cofactor   string `toml:"cofactor"`
	Generator  string `toml:"generator"`
}

// Store tells where a record lives.
type Store struct {
	Kind string `toml:"kind"`
	Path string `toml:"path"`
}

// Config is the content of a configuration file.
type Config struct {
	StrictShares bool   `toml:"strict_shares"`
	Workers      int    `toml:"workers"`
	Group        *Group `toml:"group"`
	Store        Store  `toml:"store"`
}

// Parse reads a configuration. Unknown keys are refused.
func Parse(data string) (*Config, error) {
	c := &Config{}
	md, err := toml.Decode(data, c)
	if err != nil {
		return nil, xerrors.Errorf("parsing configuration: %v", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		var names []string
		for _, k := range keys {
			names = append(names, k.String())
		}
		return nil, xerrors.Errorf("unknown configuration keys: %s", strings.Join(names, ", "))
	}
	if c.Workers < 0 {
		return nil, xerrors.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Store.Kind == "" {
		c.Store.Kind = KindDir
	}
	if c.Store.Kind != KindDir && c.Store.Kind != KindBolt {
		return nil, xerrors.Errorf("unknown store kind %q", c.Store.Kind)
	}
	return c, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, egrecord.ErrorOrNil(err, "reading configuration")
	}
	c, err := Parse(string(buf))
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	log.Lvl2("loaded configuration from", path)
	return c, nil
}

// GroupContext builds the group of the [group] table.
func (c *Config) GroupContext() (*group.Context, error) {
	if c.Group == nil {
		return nil, ErrNoGroup
	}
	var values [4]*big.Int
	for i, f := range []struct{ name, hex string }{
		{"large_prime", c.Group.LargePrime},
		{"small_prime", c.Group.SmallPrime},
		{"cofactor", c.Group.Cofactor},
		{"generator", c.Group.Generator},
	} {
		v, err := codec.BigInt(f.name, codec.String(f.hex))
		if err != nil {
			return nil, xerrors.Errorf("group: %w", err)
		}
		values[i] = v
	}
	g, err := group.NewContext(c.Group.Name, values[0], values[1], values[2], values[3])
	if err != nil {
		return nil, xerrors.Errorf("group: %v", err)
	}
	return g, nil
}

// Codec returns a codec for g with the rules of the configuration.
func (c *Config) Codec(g *group.Context) *codec.Codec {
	var opts []codec.Option
	if c.StrictShares {
		opts = append(opts, codec.StrictShares())
	}
	return codec.New(g, opts...)
}

// ConsumerOptions returns the options of a consumer.
func (c *Config) ConsumerOptions() []consumer.Option {
	if c.Workers == 0 {
		return nil
	}
	return []consumer.Option{consumer.Workers(c.Workers)}
}

// OpenStore opens the store of the configuration.
func (c *Config) OpenStore() (store.Writer, func() error, error) {
	return OpenStore(c.Store.Kind, c.Store.Path)
}

// OpenStore opens a store of the given kind. An empty kind is guessed from
// the path: a ".db" file is a bolt store, anything else a directory. The
// returned function releases the store.
func OpenStore(kind, path string) (store.Writer, func() error, error) {
	if path == "" {
		return nil, nil, xerrors.New("no store path")
	}
	if kind == "" {
		kind = KindDir
		if strings.HasSuffix(path, ".db") {
			kind = KindBolt
		}
	}
	switch kind {
	case KindDir:
		return store.NewDir(path), func() error { return nil }, nil
	case KindBolt:
		b, err := store.OpenBolt(path)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	}
	return nil, nil, xerrors.Errorf("unknown store kind %q", kind)
}
