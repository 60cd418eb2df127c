package argparse

import (
	"strings"

	"github.com/argot-sh/argot/dict"
)

// Arg is the attribute set for one argument specification, handed to
// AddArgument. Exactly one of Name (positional) or Short/Long (option)
// must be given. Optional text attributes use pointers so that unset
// and empty stay distinguishable.
type Arg struct {
	Name  string // positional name
	Short string // short flag, "-v" or "v"
	Long  string // long flag, "--verbose" or "verbose"

	Dest     string // result key; deduced from Name/Long/Short if empty
	Action   Action
	Nargs    Nargs
	Default  *string
	Const    *string
	Required bool
	Choices  *dict.Dict // membership set: choice keys, values ignored
	Help     string
	Metavar  string
	Version  string // version action text
}

// Argument is a built, immutable argument specification owned by its
// Parser.
type Argument struct {
	dest    string
	key     string // internal disambiguation key
	name    string // positional name, empty for options
	short   string // bare short flag char, no hyphen
	long    string // bare long flag name, no hyphens
	action  Action
	nargs   Nargs
	def     *string
	konst   *string
	required bool
	choices *dict.Dict
	help    string
	metavar string
	version string
}

// Dest returns the destination key.
func (a *Argument) Dest() string { return a.dest }

// Action returns the argument's action.
func (a *Argument) Action() Action { return a.action }

// IsPositional reports whether the argument is matched by position.
func (a *Argument) IsPositional() bool { return a.name != "" }

// Display returns the argument's user-facing identity: the positional
// name, or the long flag, or the short flag.
func (a *Argument) Display() string {
	switch {
	case a.name != "":
		return a.name
	case a.long != "":
		return "--" + a.long
	default:
		return "-" + a.short
	}
}

// invocation renders the option's flag forms with metavar, as shown in
// the options section of the help text.
func (a *Argument) invocation() string {
	if a.IsPositional() {
		return a.metavarOr(a.name)
	}
	var forms []string
	if a.short != "" {
		forms = append(forms, "-"+a.short+a.valueStub(" "))
	}
	if a.long != "" {
		forms = append(forms, "--"+a.long+a.valueStub(" "))
	}
	return strings.Join(forms, ", ")
}

// valueStub renders the metavar suffix for value-consuming options.
func (a *Argument) valueStub(sep string) string {
	if !a.action.consumesValues() {
		return ""
	}
	mv := a.metavarOr(strings.ToUpper(a.dest))
	switch a.nargs.Kind {
	case NargsUnset:
		return sep + mv
	case NargsOptional:
		return sep + "[" + mv + "]"
	case NargsZeroOrMore:
		return sep + "[" + mv + " ...]"
	case NargsOneOrMore:
		return sep + mv + " [" + mv + " ...]"
	case NargsFixed:
		stubs := make([]string, a.nargs.N)
		for i := range stubs {
			stubs[i] = mv
		}
		return sep + strings.Join(stubs, " ")
	default:
		return sep + mv
	}
}

func (a *Argument) metavarOr(fallback string) string {
	if a.metavar != "" {
		return a.metavar
	}
	return fallback
}

// defaultOr returns the argument's default, falling back to the
// parser-wide default.
func (a *Argument) defaultOr(parserDefault *string) *string {
	if a.def != nil {
		return a.def
	}
	return parserDefault
}
