package dict

import "fmt"

// ErrorKind classifies container errors.
type ErrorKind uint8

const (
	ErrDuplicateKey ErrorKind = iota
	ErrType
	ErrCodec
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrDuplicateKey:
		return "duplicate key"
	case ErrType:
		return "type"
	case ErrCodec:
		return "codec"
	default:
		return "unknown"
	}
}

// Error is a structured container error identifying the kind of
// failure and, when known, the offending key.
type Error struct {
	Kind    ErrorKind
	Key     string
	Message string
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("dict: %s error: key %q: %s", e.Kind, e.Key, e.Message)
	}
	return fmt.Sprintf("dict: %s error: %s", e.Kind, e.Message)
}
