package main

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"

	"go.dedis.ch/egrecord"
	"go.dedis.ch/egrecord/config"
	"go.dedis.ch/egrecord/consumer"
	"go.dedis.ch/egrecord/group"
	"go.dedis.ch/egrecord/publish"
	"go.dedis.ch/egrecord/store"
	"go.dedis.ch/egrecord/wire"
	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
	cli "gopkg.in/urfave/cli.v1"
)

// loadConfig returns the configuration given with --config, or the
// defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	fn := c.GlobalString("config")
	if fn == "" {
		return config.Parse("")
	}
	return config.Load(fn)
}

// openRecord opens the record given as the first argument, or the store of
// the configuration if there is no argument.
func openRecord(c *cli.Context, cfg *config.Config) (store.Writer, func() error, error) {
	if path := c.Args().First(); path != "" {
		return config.OpenStore(c.String("kind"), path)
	}
	if cfg.Store.Path == "" {
		return nil, nil, errors.New("please give the path of a record")
	}
	return cfg.OpenStore()
}

// groupOf returns the group of the configuration, or the group the record
// was published with.
func groupOf(cfg *config.Config, s store.Store) (*group.Context, error) {
	if cfg.Group != nil {
		return cfg.GroupContext()
	}
	buf, err := store.ReadAll(s, store.Constants)
	if xerrors.Is(err, store.ErrNotFound) {
		return nil, errors.New("no group: give a configuration with a [group] or a record with constants")
	}
	if err != nil {
		return nil, err
	}
	k, err := wire.DecodeConstants(buf)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", store.Constants, err)
	}
	log.Lvl2("using the group of the record:", k.Name)
	return group.FromConstants(k)
}

// newConsumer opens the record of the command line and returns a consumer
// for it.
func newConsumer(c *cli.Context) (*consumer.Consumer, func() error, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	s, closer, err := openRecord(c, cfg)
	if err != nil {
		return nil, nil, err
	}
	g, err := groupOf(cfg, s)
	if err != nil {
		closer()
		return nil, nil, err
	}
	cons := consumer.New(s, cfg.Codec(g), cfg.ConsumerOptions()...)
	if err := cons.IsValid(); err != nil {
		closer()
		return nil, nil, err
	}
	return cons, closer, nil
}

func show(c *cli.Context) error {
	cons, closer, err := newConsumer(c)
	if err != nil {
		return err
	}
	defer closer()

	r, err := cons.ReadRecord(context.Background())
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintf(w, "Stage: %s\n", r.Stage)
	fmt.Fprintf(w, "Election: %s (%s)\n", r.Manifest.ElectionScopeID, r.Manifest.Type)
	fmt.Fprintf(w, "Manifest hash: %s\n", r.Manifest.CryptoHash)
	if r.Context != nil {
		fmt.Fprintf(w, "Quorum: %d of %d guardians\n", r.Context.Quorum, r.Context.NumberOfGuardians)
	}
	fmt.Fprintf(w, "Guardians: %d\n", len(r.Guardians))
	fmt.Fprintf(w, "Decrypting guardians: %d\n", len(r.DecryptingGuardians))
	fmt.Fprintf(w, "Encryption devices: %d\n", len(r.Devices))
	fmt.Fprintf(w, "Submitted ballots: %d\n", len(r.SubmittedBallots))
	fmt.Fprintf(w, "Spoiled ballot tallies: %d\n", len(r.SpoiledBallots))
	fmt.Fprintf(w, "Invalid ballots: %d\n", len(r.InvalidBallots))
	if len(r.Failures) > 0 {
		fmt.Fprintf(w, "Unreadable documents: %d\n", len(r.Failures))
	}
	return nil
}

func hash(c *cli.Context) error {
	cons, closer, err := newConsumer(c)
	if err != nil {
		return err
	}
	defer closer()

	m, err := cons.Manifest()
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintln(w, m.CryptoHash)
	if !c.Bool("all") {
		return nil
	}
	for _, contest := range m.Contests {
		fmt.Fprintf(w, "contest %s %s\n", contest.ObjectID, contest.CryptoHash)
		for _, sel := range contest.Selections {
			fmt.Fprintf(w, "  selection %s %s\n", sel.ObjectID, sel.CryptoHash)
		}
	}
	return nil
}

func check(c *cli.Context) error {
	cons, closer, err := newConsumer(c)
	if err != nil {
		return err
	}
	defer closer()

	r, err := cons.ReadRecord(context.Background())
	if err != nil {
		return err
	}
	for _, f := range r.Failures {
		fmt.Fprintf(c.App.Writer, "%s: %v\n", f.Name, f.Err)
	}
	if len(r.Failures) > 0 {
		return xerrors.Errorf("%d documents could not be read", len(r.Failures))
	}
	fmt.Fprintf(c.App.Writer, "Record is readable up to stage %s\n", r.Stage)
	return nil
}

func convert(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("please give the source and the destination")
	}
	cons, closer, err := newConsumer(c)
	if err != nil {
		return err
	}
	defer closer()

	r, err := cons.ReadRecord(context.Background())
	if err != nil {
		return err
	}
	if len(r.Failures) > 0 && !c.Bool("force") {
		return xerrors.Errorf("%d documents could not be read, use --force to copy the rest",
			len(r.Failures))
	}

	dst, dstCloser, err := config.OpenStore(c.String("to"), c.Args().Get(1))
	if err != nil {
		return err
	}
	defer dstCloser()
	err = publish.New(dst, cons.Codec()).WriteRecord(r)
	if err != nil {
		return egrecord.ErrorOrNil(err, "writing "+c.Args().Get(1))
	}
	log.Infof("Copied record at stage %s to %s", r.Stage, c.Args().Get(1))
	return nil
}

func canonical(c *cli.Context) error {
	fn := c.Args().First()
	if fn == "" {
		return errors.New("please give the file of a document")
	}
	kind, err := wire.ParseKind(c.String("type"))
	if err != nil {
		return xerrors.Errorf("--type: %v", err)
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	g, err := canonicalGroup(c, cfg)
	if err != nil {
		return err
	}

	buf, err := ioutil.ReadFile(fn)
	if err != nil {
		return xerrors.Errorf("reading document: %v", err)
	}
	out, err := wire.Canonical(cfg.Codec(g), kind, buf)
	if err != nil {
		return xerrors.Errorf("%s: %w", fn, err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

// canonicalGroup returns the group of the configuration, or the one of the
// record given with --group.
func canonicalGroup(c *cli.Context, cfg *config.Config) (*group.Context, error) {
	path := c.String("group")
	if cfg.Group != nil || path == "" {
		return cfg.GroupContext()
	}
	s, closer, err := config.OpenStore("", path)
	if err != nil {
		return nil, err
	}
	defer closer()
	return groupOf(cfg, s)
}
