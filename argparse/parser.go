package argparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/argot-sh/argot/dict"
)

// Result is the outcome of a successful parse.
type Result struct {
	// Values holds the parsed values keyed by destination: scalars for
	// single values, index-keyed dicts for multi-value arities, and
	// nested result dicts for sub-commands and sub-arguments.
	Values *dict.Dict

	// Warnings are non-fatal findings (excess positionals); they were
	// already written to the parser's stderr.
	Warnings []string
}

// Parse consumes tokens against the parser descriptor, then applies
// the validation/fixup pass. Help and version actions render their
// text and return ErrHelp/ErrVersion without a Result.
func (p *Parser) Parse(tokens []string) (*Result, error) {
	e := &engine{p: p, tokens: tokens, out: dict.New()}
	if err := e.run(); err != nil {
		return nil, err
	}
	values, err := p.finalize(e.out)
	if err != nil {
		return nil, err
	}
	return &Result{Values: values, Warnings: e.warnings}, nil
}

// engine holds the state of one parse invocation. Recursive sub-parses
// get fresh engines; nothing here outlives the call.
type engine struct {
	p         *Parser
	tokens    []string
	idx       int
	out       *dict.Dict
	warnings  []string
	posCursor int
	done      bool // a sub_command consumed the rest of the input
}

func (e *engine) run() error {
	for e.idx < len(e.tokens) && !e.done {
		tok := e.tokens[e.idx]
		switch {
		case tok == "--":
			// A boundary token with nothing expecting a value; it is
			// never positional data.
			e.idx++
		case strings.HasPrefix(tok, "--"):
			if err := e.longOption(tok); err != nil {
				return err
			}
		case strings.HasPrefix(tok, "-") && len(tok) > 1:
			if err := e.shortCluster(tok); err != nil {
				return err
			}
		default:
			if err := e.positional(); err != nil {
				return err
			}
		}
	}
	return nil
}

// shortCluster handles one "-abc" token: each character is a short
// flag; value-consuming flags collect from the tokens that follow the
// cluster, in order.
func (e *engine) shortCluster(tok string) error {
	e.idx++
	for _, ch := range tok[1:] {
		flag := string(ch)
		key, ok := e.p.shortFlags[flag]
		if !ok {
			return parseErr("-"+flag, "unknown option")
		}
		if err := e.applyOption(e.p.args[key], nil); err != nil {
			return err
		}
		if e.done {
			break
		}
	}
	return nil
}

// longOption handles "--name" and "--name=value".
func (e *engine) longOption(tok string) error {
	e.idx++
	body := tok[2:]
	var inline *string
	if eq := strings.IndexByte(body, '='); eq >= 0 {
		v := body[eq+1:]
		inline = &v
		body = body[:eq]
	}
	key, ok := e.p.longFlags[body]
	if !ok {
		return parseErr("--"+body, "unknown option")
	}
	return e.applyOption(e.p.args[key], inline)
}

// applyOption dispatches an option argument's action. inline is the
// "=value" form, when present.
func (e *engine) applyOption(arg *Argument, inline *string) error {
	if inline != nil && !arg.action.consumesValues() && arg.action != SubArgument {
		return parseErr(arg.Display(), "does not take a value")
	}

	switch arg.action {
	case Help:
		fmt.Fprint(e.p.stdout, e.p.FormatHelp())
		return ErrHelp

	case Version:
		fmt.Fprintln(e.p.stdout, arg.version)
		return ErrVersion

	case StoreTrue:
		e.out = e.out.SetStr(arg.dest, "true")

	case StoreFalse:
		e.out = e.out.SetStr(arg.dest, "false")

	case StoreConst:
		e.out = e.out.SetStr(arg.dest, *arg.konst)

	case AppendConst:
		e.appendValue(arg.dest, dict.Str(*arg.konst))

	case Count:
		n := 0
		if cur, ok := e.out.Get(arg.dest); ok {
			if s, err := cur.AsStr(); err == nil {
				n, _ = strconv.Atoi(s)
			}
		}
		e.out = e.out.SetStr(arg.dest, strconv.Itoa(n+1))

	case Store:
		v, ok, err := e.collect(arg, inline)
		if err != nil {
			return err
		}
		if !ok {
			// nargs ? with no value: the const stands in.
			v = dict.Str(*arg.konst)
		}
		e.out = e.out.Set(arg.dest, v)

	case Append:
		v, ok, err := e.collect(arg, inline)
		if err != nil {
			return err
		}
		if !ok {
			v = dict.Str(*arg.konst)
		}
		e.appendValue(arg.dest, v)

	case Extend:
		v, ok, err := e.collect(arg, inline)
		if err != nil {
			return err
		}
		if !ok {
			v = dict.Str(*arg.konst)
		}
		if nested, err := v.AsDict(); err == nil {
			nested.ForEach(func(_ string, elem dict.Value, _ int) {
				e.appendValue(arg.dest, elem)
			})
		} else {
			e.appendValue(arg.dest, v)
		}

	case SubArgument:
		return e.subArgument(arg, inline)

	default:
		return parseErr(arg.Display(), "action %s is not valid as an option", arg.action)
	}
	return nil
}

// positional consumes the next expected positional according to its
// arity, or warns and discards the token when none remain.
func (e *engine) positional() error {
	if e.posCursor >= len(e.p.positionals) {
		tok := e.tokens[e.idx]
		e.idx++
		w := fmt.Sprintf("ignoring excess positional argument %q", tok)
		e.warnings = append(e.warnings, w)
		fmt.Fprintf(e.p.stderr, "%s: warning: %s\n", e.p.prog, w)
		return nil
	}
	arg := e.p.args[e.p.positionals[e.posCursor]]
	e.posCursor++

	if arg.action == SubCommand {
		return e.subCommand(arg)
	}

	v, ok, err := e.collect(arg, nil)
	if err != nil {
		return err
	}
	if !ok {
		// nargs ? positional: its default stands in (guaranteed at
		// build time).
		v = dict.Str(*arg.defaultOr(e.p.argDefault))
	}
	e.out = e.out.Set(arg.dest, v)
	return nil
}

// subCommand hands everything after the id token to the selected
// sub-parser. It is always the last argument parsed.
func (e *engine) subCommand(arg *Argument) error {
	id := e.tokens[e.idx]
	sub, canonical, ok := e.p.resolveSubParser(arg.dest, id)
	if !ok {
		return parseErr(arg.Display(), "unknown sub-command %q (expected one of %s)",
			id, strings.Join(e.p.subCommandIDs(arg.dest), ", "))
	}
	e.idx++
	rest := e.tokens[e.idx:]
	e.idx = len(e.tokens)
	e.done = true

	subRes, err := sub.Parse(rest)
	if err != nil {
		return err
	}
	e.warnings = append(e.warnings, subRes.Warnings...)
	nested := dict.New().Set(canonical, dict.Of(subRes.Values))
	e.out = e.out.Set(arg.dest, dict.Of(nested))
	return nil
}

// subArgument hands one bounded token set (first token: the id) to the
// selected sub-parser. Occurrences accumulate under the destination
// keyed by 0-based repeat index.
func (e *engine) subArgument(arg *Argument, inline *string) error {
	var set []string
	if inline != nil {
		set = append(set, *inline)
	}
	for e.idx < len(e.tokens) {
		tok := e.tokens[e.idx]
		if tok == "--" {
			e.idx++
			break
		}
		if isOptionLike(tok) {
			break
		}
		set = append(set, tok)
		e.idx++
	}
	if len(set) == 0 {
		return parseErr(arg.Display(), "expected a sub-command id")
	}

	sub, canonical, ok := e.p.resolveSubParser(arg.dest, set[0])
	if !ok {
		return parseErr(arg.Display(), "unknown sub-command %q (expected one of %s)",
			set[0], strings.Join(e.p.subCommandIDs(arg.dest), ", "))
	}
	subRes, err := sub.Parse(set[1:])
	if err != nil {
		return err
	}
	e.warnings = append(e.warnings, subRes.Warnings...)

	occ := dict.New().Set(canonical, dict.Of(subRes.Values))
	e.appendValue(arg.dest, dict.Of(occ))
	return nil
}

// appendValue adds v to the index-keyed accumulation container under
// dest.
func (e *engine) appendValue(dest string, v dict.Value) {
	acc := dict.New()
	if cur, ok := e.out.Get(dest); ok {
		if d, err := cur.AsDict(); err == nil {
			acc = d
		}
	}
	acc = acc.Set(strconv.Itoa(acc.Size()), v)
	e.out = e.out.Set(dest, dict.Of(acc))
}

// collect consumes value tokens for arg according to its arity.
// It returns (value, true) on success, or (zero, false) for an
// optional arity that found no value.
func (e *engine) collect(arg *Argument, inline *string) (dict.Value, bool, error) {
	switch arg.nargs.Kind {
	case NargsUnset:
		if inline != nil {
			return dict.Str(*inline), true, nil
		}
		val, ok := e.takeOne()
		if !ok {
			return dict.Value{}, false, parseErr(arg.Display(), "expected one value")
		}
		return dict.Str(val), true, nil

	case NargsOptional:
		if inline != nil {
			return dict.Str(*inline), true, nil
		}
		if val, ok := e.takeOne(); ok {
			return dict.Str(val), true, nil
		}
		return dict.Value{}, false, nil

	case NargsFixed:
		vals := make([]string, 0, arg.nargs.N)
		if inline != nil {
			vals = append(vals, *inline)
		}
		for len(vals) < arg.nargs.N {
			val, ok := e.takeOne()
			if !ok {
				return dict.Value{}, false, parseErr(arg.Display(),
					"expected %d values, got %d", arg.nargs.N, len(vals))
			}
			vals = append(vals, val)
		}
		return indexDict(vals), true, nil

	case NargsZeroOrMore, NargsOneOrMore:
		var vals []string
		if inline != nil {
			vals = append(vals, *inline)
		} else {
			vals = e.takeMany()
		}
		if arg.nargs.Kind == NargsOneOrMore && len(vals) == 0 {
			return dict.Value{}, false, parseErr(arg.Display(), "expected at least one value")
		}
		return indexDict(vals), true, nil

	default:
		return dict.Value{}, false, parseErr(arg.Display(), "invalid nargs kind %d", arg.nargs.Kind)
	}
}

// takeOne consumes the next token as a value. An option-looking token
// is not a value unless a literal "--" boundary precedes it; the
// boundary itself is consumed and discarded.
func (e *engine) takeOne() (string, bool) {
	if e.idx >= len(e.tokens) {
		return "", false
	}
	tok := e.tokens[e.idx]
	if tok == "--" {
		if e.idx+1 >= len(e.tokens) {
			e.idx++
			return "", false
		}
		e.idx += 2
		return e.tokens[e.idx-1], true
	}
	if isOptionLike(tok) {
		return "", false
	}
	e.idx++
	return tok, true
}

// takeMany consumes values until an option-looking token, end of
// input, or a literal "--", which is consumed and discarded to force
// termination.
func (e *engine) takeMany() []string {
	var vals []string
	for e.idx < len(e.tokens) {
		tok := e.tokens[e.idx]
		if tok == "--" {
			e.idx++
			break
		}
		if isOptionLike(tok) {
			break
		}
		vals = append(vals, tok)
		e.idx++
	}
	return vals
}

// indexDict wraps collected values in a 0-based index-keyed container.
func indexDict(vals []string) dict.Value {
	d := dict.New()
	for i, v := range vals {
		d = d.SetStr(strconv.Itoa(i), v)
	}
	return dict.Of(d)
}

func isOptionLike(tok string) bool {
	return len(tok) > 1 && tok[0] == '-'
}
