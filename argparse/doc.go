// Package argparse implements a command-line argument parser in the
// tradition of Python's argparse, producing its results as ordered
// dict containers.
//
// A Parser is assembled from Arg specifications, then run over a raw
// token list:
//
//	p := argparse.NewParser(argparse.Config{Prog: "tool"})
//	p.MustAddArgument(argparse.Arg{Long: "--verbose", Action: argparse.StoreTrue}).
//		MustAddArgument(argparse.Arg{Name: "path"})
//	res, err := p.Parse(os.Args[1:])
//
// The result wraps a dict.Dict keyed by destination: scalars for
// single values, index-keyed dicts for multi-value arities, and nested
// result dicts for sub-commands.
//
// # Surface
//
// Clustered single-hyphen short flags (-abc), double-hyphen long flags
// with optional =value, intermixed positionals and options, and a bare
// "--" acting as a value-boundary terminator during value collection
// (not as an option/positional separator). Sub-commands dispatch a
// registered sub-parser on an id token; sub-arguments do the same in a
// bounded, per-occurrence form. Everything is text: the parser assigns
// no types to values.
//
// # Errors
//
// All failures are typed Errors distinguishing schema, type, and parse
// kinds along with the offending argument; the package never exits the
// process. Help and version actions short-circuit the parse with the
// ErrHelp and ErrVersion sentinels after rendering their text, leaving
// exit decisions to the caller. Excess positional tokens are a warning,
// not an error.
package argparse
