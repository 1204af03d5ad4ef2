package main

import cli "gopkg.in/urfave/cli.v1"

var storeFlag = cli.StringFlag{
	Name:  "kind, k",
	Usage: "store kind: dir or bolt; guessed from the path if empty",
}

var cmds = cli.Commands{
	{
		Name:      "show",
		Usage:     "show the stage of a record and what it holds",
		Aliases:   []string{"s"},
		ArgsUsage: "[record]",
		Flags:     []cli.Flag{storeFlag},
		Action:    show,
	},
	{
		Name:      "hash",
		Usage:     "print the hashes of the manifest of a record",
		ArgsUsage: "[record]",
		Flags: []cli.Flag{
			storeFlag,
			cli.BoolFlag{
				Name:  "all, a",
				Usage: "also print the hash of every contest and selection",
			},
		},
		Action: hash,
	},
	{
		Name:      "check",
		Usage:     "read the whole record and report the documents that fail",
		ArgsUsage: "[record]",
		Flags:     []cli.Flag{storeFlag},
		Action:    check,
	},
	{
		Name:      "convert",
		Usage:     "copy a record to another store, in canonical form",
		ArgsUsage: "source destination",
		Flags: []cli.Flag{
			storeFlag,
			cli.StringFlag{
				Name:  "to",
				Usage: "store kind of the destination: dir or bolt; guessed from the path if empty",
			},
			cli.BoolFlag{
				Name:  "force, f",
				Usage: "copy even if some documents cannot be read",
			},
		},
		Action: convert,
	},
	{
		Name:      "canonical",
		Usage:     "print a single document in canonical form",
		ArgsUsage: "file",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "type, t",
				Usage: "kind of the document, one of: manifest, constants, context, guardian, ...",
			},
			cli.StringFlag{
				Name:  "group, g",
				Usage: "record whose constants give the group, if no configuration is given",
			},
		},
		Action: canonical,
	},
}
