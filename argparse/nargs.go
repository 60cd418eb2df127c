package argparse

import (
	"strconv"
)

// MaxArity bounds fixed arities. The source system derived this from
// the platform argument-list limit; any real argv fits well inside it.
const MaxArity = 65536

// NargsKind discriminates the arity forms.
type NargsKind uint8

const (
	// NargsUnset means exactly one scalar value.
	NargsUnset NargsKind = iota
	// NargsFixed means exactly N values, collected index-keyed.
	NargsFixed
	// NargsOptional is "?": zero or one value.
	NargsOptional
	// NargsZeroOrMore is "*": values until an option-looking token,
	// "--", or end of input.
	NargsZeroOrMore
	// NargsOneOrMore is "+": like "*" but at least one value.
	NargsOneOrMore
)

// Nargs describes how many value tokens one argument consumes.
// The zero Nargs means exactly one scalar.
type Nargs struct {
	Kind NargsKind
	N    int // valid for NargsFixed
}

// Fixed returns a fixed-count arity.
func Fixed(n int) Nargs { return Nargs{Kind: NargsFixed, N: n} }

// Optional is the "?" arity.
func Optional() Nargs { return Nargs{Kind: NargsOptional} }

// ZeroOrMore is the "*" arity.
func ZeroOrMore() Nargs { return Nargs{Kind: NargsZeroOrMore} }

// OneOrMore is the "+" arity.
func OneOrMore() Nargs { return Nargs{Kind: NargsOneOrMore} }

// String renders the arity in its spec form.
func (n Nargs) String() string {
	switch n.Kind {
	case NargsUnset:
		return ""
	case NargsFixed:
		return strconv.Itoa(n.N)
	case NargsOptional:
		return "?"
	case NargsZeroOrMore:
		return "*"
	case NargsOneOrMore:
		return "+"
	default:
		return "invalid"
	}
}

// ParseNargs resolves an arity string, as used by declarative parser
// definitions: "?", "*", "+", or a positive integer.
func ParseNargs(s string) (Nargs, error) {
	switch s {
	case "":
		return Nargs{}, nil
	case "?":
		return Optional(), nil
	case "*":
		return ZeroOrMore(), nil
	case "+":
		return OneOrMore(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Nargs{}, schemaErr("", "invalid nargs value %q", s)
	}
	fixed := Fixed(n)
	if err := fixed.check(); err != nil {
		return Nargs{}, err
	}
	return fixed, nil
}

// multiValued reports whether collected values go into an index-keyed
// container rather than a single scalar slot.
func (n Nargs) multiValued() bool {
	switch n.Kind {
	case NargsFixed, NargsZeroOrMore, NargsOneOrMore:
		return true
	default:
		return false
	}
}

func (n Nargs) check() error {
	switch n.Kind {
	case NargsUnset, NargsOptional, NargsZeroOrMore, NargsOneOrMore:
		return nil
	case NargsFixed:
		if n.N < 1 || n.N > MaxArity {
			return schemaErr("", "nargs must be a positive integer <= %d, got %d", MaxArity, n.N)
		}
		return nil
	default:
		return schemaErr("", "invalid nargs kind %d", n.Kind)
	}
}
