package dict

import (
	"fmt"
	"strings"
)

// Wire format structure bytes, from the ASCII separator block. Scalars
// and keys must not contain them; nested encodings are escaped so the
// bytes only ever mean structure at the current nesting level.
const (
	escByte   = '\x1c' // escape introducer
	recordSep = '\x1d' // between records
	nestMark  = '\x1e' // value slot holds an escaped nested encoding
	kvSep     = '\x1f' // between key and value
)

const reserved = string(escByte) + string(recordSep) + string(nestMark) + string(kvSep)

// Encode serializes d into the single-string wire format. It fails if
// any key or scalar contains one of the four reserved bytes.
func Encode(d *Dict) (string, error) {
	var sb strings.Builder
	if d == nil {
		return "", nil
	}
	for i, e := range d.entries {
		if i > 0 {
			sb.WriteByte(recordSep)
		}
		if strings.ContainsAny(e.Key, reserved) {
			return "", &Error{Kind: ErrCodec, Key: e.Key, Message: "key contains a reserved separator byte"}
		}
		sb.WriteString(e.Key)
		sb.WriteByte(kvSep)
		switch e.Value.kind {
		case KindScalar:
			if strings.ContainsAny(e.Value.str, reserved) {
				return "", &Error{Kind: ErrCodec, Key: e.Key, Message: "scalar contains a reserved separator byte"}
			}
			sb.WriteString(e.Value.str)
		case KindDict:
			nested, err := Encode(e.Value.dict)
			if err != nil {
				return "", err
			}
			sb.WriteByte(nestMark)
			sb.WriteString(escape(nested))
		}
	}
	return sb.String(), nil
}

// Decode parses a wire-format string back into a Dict. The empty
// string decodes to the empty Dict.
func Decode(s string) (*Dict, error) {
	d := New()
	if s == "" {
		return d, nil
	}
	for _, record := range strings.Split(s, string(recordSep)) {
		sep := strings.IndexByte(record, kvSep)
		if sep < 0 {
			return nil, &Error{Kind: ErrCodec, Message: fmt.Sprintf("record %q has no key/value separator", record)}
		}
		key, raw := record[:sep], record[sep+1:]
		if _, ok := d.Get(key); ok {
			return nil, &Error{Kind: ErrDuplicateKey, Key: key, Message: "appears twice in encoded form"}
		}
		if strings.HasPrefix(raw, string(nestMark)) {
			unescaped, err := unescape(raw[1:])
			if err != nil {
				return nil, &Error{Kind: ErrCodec, Key: key, Message: err.Error()}
			}
			nested, err := Decode(unescaped)
			if err != nil {
				return nil, err
			}
			d = d.Set(key, Of(nested))
			continue
		}
		d = d.Set(key, Str(raw))
	}
	return d, nil
}

// escape maps the four reserved bytes to two-byte escape pairs so a
// nested encoding can sit inside one value slot.
func escape(s string) string {
	if !strings.ContainsAny(s, reserved) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case escByte:
			sb.WriteByte(escByte)
			sb.WriteByte('e')
		case recordSep:
			sb.WriteByte(escByte)
			sb.WriteByte('r')
		case nestMark:
			sb.WriteByte(escByte)
			sb.WriteByte('n')
		case kvSep:
			sb.WriteByte(escByte)
			sb.WriteByte('u')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func unescape(s string) (string, error) {
	if !strings.ContainsRune(s, escByte) {
		return s, nil
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != escByte {
			sb.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("truncated escape sequence")
		}
		switch s[i] {
		case 'e':
			sb.WriteByte(escByte)
		case 'r':
			sb.WriteByte(recordSep)
		case 'n':
			sb.WriteByte(nestMark)
		case 'u':
			sb.WriteByte(kvSep)
		default:
			return "", fmt.Errorf("invalid escape sequence %q", s[i-1:i+1])
		}
	}
	return sb.String(), nil
}
