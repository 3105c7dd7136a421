// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "kitty-cli"
	app.Usage = "inspect and operate on a stopped kittyd database"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "database, d",
			Value: "",
			Usage: "*kittyd LevelDB `DIRECTORY`",
		},
		cli.StringFlag{
			Name:  "chain, n",
			Value: "local",
			Usage: " ledger `CHAIN` [kitties|testing|local]",
		},
		cli.Uint64Flag{
			Name:  "maximum-owned, m",
			Value: 0,
			Usage: " per account kitty limit `COUNT` for a new ledger (0 = as recorded)",
		},
		cli.Uint64Flag{
			Name:  "maximum-kitties, k",
			Value: 0,
			Usage: " total kitty limit `COUNT` for a new ledger (0 = as recorded)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "count",
			Usage:     "number of kitties ever created",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "at, a",
					Value: "",
					Usage: " ledger `HEIGHT` (default latest)",
				},
			},
			Action: runCount,
		},
		{
			Name:   "height",
			Usage:  "ledger height and state digest",
			Action: runHeight,
		},
		{
			Name:      "show",
			Usage:     "display one kitty",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*kitty `ID`",
				},
			},
			Action: runShow,
		},
		{
			Name:      "owned",
			Usage:     "list kitties owned by an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " start position `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, c",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runOwned,
		},
		{
			Name:      "balance",
			Usage:     "free balance of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "deposit",
			Usage:     "credit an account (test chains only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				cli.Uint64Flag{
					Name:  "amount, a",
					Value: 0,
					Usage: "*amount to credit `AMOUNT`",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "create",
			Usage:     "create a new kitty with random dna",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "price",
			Usage:     "list a kitty for sale or withdraw it",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*kitty `ID`",
				},
				cli.StringFlag{
					Name:  "price, p",
					Value: "",
					Usage: "+asking price `AMOUNT`",
				},
				cli.BoolFlag{
					Name:  "clear, x",
					Usage: "+withdraw from sale",
				},
			},
			Action: runPrice,
		},
		{
			Name:      "transfer",
			Usage:     "give a kitty to another account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*current owner `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiving `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*kitty `ID`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "buy",
			Usage:     "buy a kitty that is for sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "buyer, b",
					Value: "",
					Usage: "*buying `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "id, i",
					Value: "",
					Usage: "*kitty `ID`",
				},
				cli.Uint64Flag{
					Name:  "max, m",
					Value: 0,
					Usage: "*maximum price `AMOUNT`",
				},
			},
			Action: runBuy,
		},
		{
			Name:      "breed",
			Usage:     "breed two kitties of opposite gender",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner of both parents `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "first, f",
					Value: "",
					Usage: "*first parent `ID`",
				},
				cli.StringFlag{
					Name:  "second, s",
					Value: "",
					Usage: "*second parent `ID`",
				},
			},
			Action: runBreed,
		},
		{
			Name:  "version",
			Usage: "display program version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {

		// to suppress opening the database for certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h":
			return nil
		}

		m, err := openDatabase(c, isReadOnly(command))
		if nil != err {
			return err
		}
		c.App.Metadata["data"] = m
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["data"].(*metadata)
		if !ok {
			return nil
		}
		delete(c.App.Metadata, "data")
		m.close()
		return nil
	}

	return app
}
