/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// seriesfmt is a utility for parsing series strings and either
// canonicalizing them or dumping them as a JSON snapshot, useful for
// checking a series by hand before pasting it into a test.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/streamseries/streamseries/record"
	"github.com/streamseries/streamseries/series"
)

type arguments struct {
	mode      series.Mode
	seriesStr string
	values    series.Values
	reason    any
	jsonOut   bool
}

func parseMode(s string) (series.Mode, error) {
	switch s {
	case "readable":
		return series.Readable, nil
	case "writable":
		return series.Writable, nil
	case "abort":
		return series.AbortSignal, nil
	default:
		return 0, errors.Errorf("unknown mode %q", s)
	}
}

// parseValueFlag turns repeated "k=value" flags into a value table.
// Every value is stored as its literal string; seriesfmt has no way to
// know a caller's intended Go type, so callers wanting typed values
// should use the harness package's Readable/Writable directly instead.
func parseValueFlag(raw []string) (series.Values, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	values := series.Values{}
	for _, kv := range raw {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || len(parts[0]) != 1 {
			return nil, errors.Errorf("malformed --value %q, want k=value with a single-character key", kv)
		}
		values[parts[0][0]] = parts[1]
	}
	return values, nil
}

func parseArgs(args []string) (*arguments, error) {
	app := kingpin.New("seriesfmt", "Utility for parsing and canonicalizing series strings.")
	mode := app.Flag("mode", "Grammar to parse the series string against.").Default("readable").Enum("readable", "writable", "abort")
	valueFlags := app.Flag("value", "Value-table entry k=value, may be repeated.").Strings()
	reason := app.Flag("reason", "Terminal reason attached to the series' Cancel/Abort frame, if any.").String()
	jsonOut := app.Flag("json", "Print a JSON snapshot instead of the canonical series string.").Default("false").Bool()
	seriesStr := app.Arg("series", "The series string to parse (defaults to stdin).").String()

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	m, err := parseMode(*mode)
	if err != nil {
		return nil, err
	}

	values, err := parseValueFlag(*valueFlags)
	if err != nil {
		return nil, err
	}

	input := *seriesStr
	if input == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.WithMessage(err, "reading series from stdin")
		}
		input = strings.TrimSpace(string(raw))
	}

	var reasonVal any
	if *reason != "" {
		reasonVal = *reason
	}

	return &arguments{
		mode:      m,
		seriesStr: input,
		values:    values,
		reason:    reasonVal,
		jsonOut:   *jsonOut,
	}, nil
}

func (a *arguments) execute(output io.Writer) error {
	program, warnings, err := series.Parse(a.seriesStr, a.values, a.reason, a.mode)
	if err != nil {
		return errors.WithMessage(err, "parsing series")
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning at column %d: %s\n", w.Column, w.Text)
	}

	if a.jsonOut {
		snap, err := record.NewSnapshot(program.Frames, program.Extent, a.values)
		if err != nil {
			return err
		}
		return snap.Write(output)
	}

	rendered, err := series.Render(program, a.values)
	if err != nil {
		return errors.WithMessage(err, "rendering series")
	}
	fmt.Fprintln(output, rendered)
	return nil
}

func main() {
	kingpin.Version("0.0.1")
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("failed to parse arguments, %s, try --help", err)
	}
	if err := args.execute(os.Stdout); err != nil {
		kingpin.Fatalf("%s", err)
	}
}
