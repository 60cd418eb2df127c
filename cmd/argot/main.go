// argot - dict/argparse driver CLI
//
// Usage:
//
//	argot run <def.toml> [--wire] [args...]  Parse args against a TOML parser definition
//	argot check <def.toml>                   Validate a parser definition
//	argot decode [file]                      Decode a wire-encoded dict and pretty-print it
//	argot encode [file]                      Encode key=value lines as a wire dict
//	argot version                            Print version info
//
// decode and encode read from stdin when no file is given.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/argot-sh/argot/argparse"
	"github.com/argot-sh/argot/dict"
)

const version = "0.1.0"

// prettySpec renders one record per line with two-space nesting.
var prettySpec = dict.PrintSpec{
	RecordSeparator: "\n",
	KeySuffix:       ": ",
	NestingIndent:   "  ",
	NestingPrefix:   "\n",
}

func main() {
	color.NoColor = !colorEnabled()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		cmdRun(os.Args[2:])
	case "check":
		cmdCheck(os.Args[2:])
	case "decode":
		cmdDecode(openInput(os.Args[2:]))
	case "encode":
		cmdEncode(openInput(os.Args[2:]))
	case "version", "-v", "--version":
		fmt.Printf("argot %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `argot - dict/argparse driver

Usage:
  argot run <def.toml> [--wire] [args...]  Parse args against a TOML parser definition
  argot check <def.toml>                   Validate a parser definition
  argot decode [file]                      Decode a wire-encoded dict and pretty-print it
  argot encode [file]                      Encode key=value lines as a wire dict
  argot version                            Print version info

run prints the parsed values one record per line; --wire prints the
single-string wire encoding instead. decode and encode read from stdin
when no file is given.

Examples:
  argot run cli.toml -- --verbose input.txt
  argot run cli.toml --wire -- --verbose input.txt | argot decode
  printf 'a=1\nb=2\n' | argot encode
`)
}

// cmdRun loads a parser definition and parses the remaining arguments
// against it.
func cmdRun(args []string) {
	if len(args) < 1 {
		fatal("run: missing definition file")
	}
	defFile := args[0]
	args = args[1:]

	wire := false
	if len(args) > 0 && args[0] == "--wire" {
		wire = true
		args = args[1:]
	}
	// A leading "--" separates argot's arguments from the parsed ones.
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	p, err := argparse.LoadDefinitionFile(defFile)
	if err != nil {
		fatal("load %s: %v", defFile, err)
	}

	res, err := p.Parse(args)
	if errors.Is(err, argparse.ErrHelp) || errors.Is(err, argparse.ErrVersion) {
		return
	}
	if err != nil {
		fatal("%v", err)
	}

	if wire {
		enc, err := dict.Encode(res.Values)
		if err != nil {
			fatal("encode result: %v", err)
		}
		fmt.Println(enc)
		return
	}
	printRule()
	fmt.Println(dict.PrettyPrint(res.Values, prettySpec))
}

// cmdCheck loads a definition and reports schema problems.
func cmdCheck(args []string) {
	if len(args) < 1 {
		fatal("check: missing definition file")
	}
	p, err := argparse.LoadDefinitionFile(args[0])
	if err != nil {
		fatal("%v", err)
	}
	for _, w := range p.Warnings() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", color.YellowString("warning"), w)
	}
	fmt.Printf("%s: ok\n", args[0])
}

// cmdDecode: wire string -> pretty form
func cmdDecode(r io.Reader) {
	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	d, err := dict.Decode(strings.TrimRight(string(data), "\n"))
	if err != nil {
		fatal("decode: %v", err)
	}
	printRule()
	fmt.Println(dict.PrettyPrint(d, prettySpec))
}

// cmdEncode: key=value lines -> wire string
func cmdEncode(r io.Reader) {
	d := dict.New()
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if text == "" {
			continue
		}
		eq := strings.IndexByte(text, '=')
		if eq < 0 {
			fatal("line %d: expected key=value", line)
		}
		d = d.SetStr(text[:eq], text[eq+1:])
	}
	if err := sc.Err(); err != nil {
		fatal("read input: %v", err)
	}
	enc, err := dict.Encode(d)
	if err != nil {
		fatal("encode: %v", err)
	}
	fmt.Println(enc)
}

// openInput returns the file named by the first argument, or stdin.
func openInput(args []string) io.Reader {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin
	}
	f, err := os.Open(args[0])
	if err != nil {
		fatal("open file: %v", err)
	}
	return f
}

// printRule draws a separator sized to the terminal, capped at the
// usual wrap column.
func printRule() {
	width := 79
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}
	fmt.Println(strings.Repeat("-", width))
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", color.RedString("argot"), fmt.Sprintf(format, args...))
	os.Exit(1)
}
