package argparse

import "fmt"

// Action is the semantics applied when an argument is matched.
type Action uint8

const (
	Store Action = iota
	Append
	Extend
	StoreConst
	AppendConst
	StoreTrue
	StoreFalse
	Count
	Version
	Help
	SubCommand
	SubArgument
)

var actionNames = map[Action]string{
	Store:       "store",
	Append:      "append",
	Extend:      "extend",
	StoreConst:  "store_const",
	AppendConst: "append_const",
	StoreTrue:   "store_true",
	StoreFalse:  "store_false",
	Count:       "count",
	Version:     "version",
	Help:        "help",
	SubCommand:  "sub_command",
	SubArgument: "sub_argument",
}

// String returns the action name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction resolves an action name, as used by declarative parser
// definitions.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return 0, schemaErr("", "unknown action %q", s)
}

// positionalOK reports whether the action may be placed positionally.
func (a Action) positionalOK() bool {
	return a == Store || a == SubCommand
}

// consumesValues reports whether the action consumes value tokens from
// the input.
func (a Action) consumesValues() bool {
	switch a {
	case Store, Append, Extend:
		return true
	default:
		return false
	}
}

// forbidsNargs reports whether an explicit arity conflicts with the
// action.
func (a Action) forbidsNargs() bool {
	switch a {
	case StoreTrue, StoreFalse, StoreConst, AppendConst, Count, Version, Help:
		return true
	default:
		return false
	}
}

func (a Action) check() error {
	if _, ok := actionNames[a]; !ok {
		return fmt.Errorf("invalid action value %d", a)
	}
	return nil
}
