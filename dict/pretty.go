package dict

import "strings"

// PrintSpec holds the literal decorations emitted around each
// structural position of a pretty-printed Dict. Unset fields render as
// the empty string.
type PrintSpec struct {
	PrintPrefix string // before the whole render
	PrintSuffix string // after the whole render

	DictPrefix string // before a container's records
	DictSuffix string // after a container's records

	RecordSeparator string // between records
	RecordPrefix    string // before each record
	RecordSuffix    string // after each record

	KeyPrefix string // before each key
	KeySuffix string // after each key

	ValuePrefix string // before each value
	ValueSuffix string // after each value

	NestingPrefix string // before a nested container render
	NestingSuffix string // after a nested container render
	NestingIndent string // prepended to every line of a nested render
}

// PrettyPrint renders d recursively according to spec.
func PrettyPrint(d *Dict, spec PrintSpec) string {
	var sb strings.Builder
	sb.WriteString(spec.PrintPrefix)
	sb.WriteString(renderDict(d, spec))
	sb.WriteString(spec.PrintSuffix)
	return sb.String()
}

func renderDict(d *Dict, spec PrintSpec) string {
	var sb strings.Builder
	sb.WriteString(spec.DictPrefix)
	if d != nil {
		for i, e := range d.entries {
			if i > 0 {
				sb.WriteString(spec.RecordSeparator)
			}
			sb.WriteString(spec.RecordPrefix)
			sb.WriteString(spec.KeyPrefix)
			sb.WriteString(e.Key)
			sb.WriteString(spec.KeySuffix)
			sb.WriteString(spec.ValuePrefix)
			switch e.Value.kind {
			case KindScalar:
				sb.WriteString(e.Value.str)
			case KindDict:
				sb.WriteString(spec.NestingPrefix)
				sb.WriteString(indentLines(renderDict(e.Value.dict, spec), spec.NestingIndent))
				sb.WriteString(spec.NestingSuffix)
			}
			sb.WriteString(spec.ValueSuffix)
			sb.WriteString(spec.RecordSuffix)
		}
	}
	sb.WriteString(spec.DictSuffix)
	return sb.String()
}

// indentLines prepends indent to every line of s.
func indentLines(s, indent string) string {
	if indent == "" || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}
