// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

// bbdump reads bendy butt messages and converts them between their
// bencoded wire form and a JSON rendition of the decoded model.
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"go.mindeco.de/log"
	"go.mindeco.de/log/level"
	cli "gopkg.in/urfave/cli.v2"

	"go.cryptoscope.co/bendybutt"
)

var logger = log.NewLogfmtLogger(os.Stderr)

func main() {
	app := cli.App{
		Name:  "bbdump",
		Usage: "inspect bendy butt messages",
		Commands: []*cli.Command{
			decodeCmd,
			encodeCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		level.Error(logger).Log("event", "run failed", "err", err)
		os.Exit(1)
	}
}

func readInput(ctx *cli.Context) ([]byte, error) {
	fname := ctx.Args().First()
	if fname == "" || fname == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(fname)
}

var decodeCmd = &cli.Command{
	Name:      "decode",
	Usage:     "read a wire message (file or stdin) and print it as JSON",
	ArgsUsage: "[file]",
	Action: func(ctx *cli.Context) error {
		input, err := readInput(ctx)
		if err != nil {
			return err
		}

		msg, err := bendybutt.Decode(input)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(msg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	},
}

var encodeCmd = &cli.Command{
	Name:      "encode",
	Usage:     "read a JSON message (file or stdin) and write its wire bytes to stdout",
	ArgsUsage: "[file]",
	Action: func(ctx *cli.Context) error {
		input, err := readInput(ctx)
		if err != nil {
			return err
		}

		var msg bendybutt.Message
		if err := json.Unmarshal(input, &msg); err != nil {
			return err
		}

		wire, err := bendybutt.Encode(&msg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(wire)
		return err
	},
}
