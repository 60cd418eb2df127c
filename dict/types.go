package dict

import "fmt"

// Kind discriminates the two value forms.
type Kind uint8

const (
	KindScalar Kind = iota
	KindDict
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is a tagged union: a text scalar or a nested Dict.
// The zero Value is the empty scalar.
type Value struct {
	kind Kind
	str  string
	dict *Dict
}

// Str creates a scalar value.
func Str(s string) Value {
	return Value{kind: KindScalar, str: s}
}

// Of creates a container value wrapping d.
func Of(d *Dict) Value {
	if d == nil {
		d = New()
	}
	return Value{kind: KindDict, dict: d}
}

// Type returns the value kind.
func (v Value) Type() Kind {
	return v.kind
}

// IsDict reports whether the value is a container. It never fails.
func (v Value) IsDict() bool {
	return v.kind == KindDict
}

// AsStr returns the scalar text.
func (v Value) AsStr() (string, error) {
	if v.kind != KindScalar {
		return "", &Error{Kind: ErrType, Message: fmt.Sprintf("expected scalar, got %s", v.kind)}
	}
	return v.str, nil
}

// AsDict returns the nested container.
func (v Value) AsDict() (*Dict, error) {
	if v.kind != KindDict {
		return nil, &Error{Kind: ErrType, Message: fmt.Sprintf("expected dict, got %s", v.kind)}
	}
	return v.dict, nil
}

// Equal reports structural equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindScalar {
		return v.str == o.str
	}
	return v.dict.Equal(o.dict)
}

// Entry is one key/value pair of a Dict.
type Entry struct {
	Key   string
	Value Value
}

// Dict is an ordered key/value container with unique keys.
// The zero Dict is empty and ready to use.
type Dict struct {
	entries []Entry
	size    int // cached; must always agree with Count
}

// New returns an empty Dict.
func New() *Dict {
	return &Dict{}
}

// IsDict reports whether v is a container: a *Dict, or a Value holding
// one. It accepts anything and never panics.
func IsDict(v any) bool {
	switch t := v.(type) {
	case *Dict:
		return t != nil
	case Dict:
		return true
	case Value:
		return t.IsDict()
	default:
		return false
	}
}
