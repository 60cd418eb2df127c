package dict

import (
	"errors"
	"strings"
	"testing"
)

func encodeOrDie(t *testing.T, d *Dict) string {
	t.Helper()
	s, err := Encode(d)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return s
}

func TestCodec_FlatRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
	}{
		{"empty", nil},
		{"single", []string{"a", "1"}},
		{"several", []string{"host", "localhost", "port", "8080", "path", "/tmp/x"}},
		{"empty values", []string{"a", "", "b", ""}},
		{"newlines", []string{"text", "line1\nline2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Declare(tt.pairs...)
			if err != nil {
				t.Fatalf("Declare failed: %v", err)
			}
			wire := encodeOrDie(t, d)
			got, err := Decode(wire)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if !got.Equal(d) {
				t.Errorf("round trip mismatch: %#v != %#v", got, d)
			}
		})
	}
}

func TestCodec_NestedRoundTrip(t *testing.T) {
	// Depth 3: outer -> mid -> inner.
	inner, _ := Declare("leaf", "v", "other", "w")
	mid := New().Set("inner", Of(inner)).SetStr("s", "scalar")
	outer := New().Set("mid", Of(mid)).SetStr("top", "t")

	wire := encodeOrDie(t, outer)
	got, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !got.Equal(outer) {
		t.Fatal("depth-3 round trip not structurally equal")
	}

	// The nested encodings must not leak raw structure bytes into the
	// outer record stream: exactly one unescaped record separator at
	// the top level (two top-level records).
	if n := strings.Count(wire, string(recordSep)); n != 1 {
		t.Errorf("top-level record separators = %d, want 1", n)
	}
}

func TestCodec_EmptyNested(t *testing.T) {
	d := New().Set("empty", Of(New()))
	wire := encodeOrDie(t, d)
	got, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	v, ok := got.Get("empty")
	if !ok || !v.IsDict() {
		t.Fatal("empty nested dict lost in round trip")
	}
	nested, _ := v.AsDict()
	if nested.Size() != 0 {
		t.Errorf("nested Size = %d, want 0", nested.Size())
	}
}

func TestEncode_ReservedBytesRejected(t *testing.T) {
	tests := []struct {
		name string
		d    *Dict
	}{
		{"escape in value", New().SetStr("k", "a\x1cb")},
		{"record sep in value", New().SetStr("k", "a\x1db")},
		{"nest mark in value", New().SetStr("k", "a\x1eb")},
		{"kv sep in value", New().SetStr("k", "a\x1fb")},
		{"reserved in key", New().SetStr("k\x1d", "v")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.d)
			if err == nil {
				t.Fatal("Encode accepted a reserved byte")
			}
			var derr *Error
			if !errors.As(err, &derr) || derr.Kind != ErrCodec {
				t.Errorf("error = %v, want codec kind", err)
			}
		})
	}
}

func TestEncode_NestedEscaping(t *testing.T) {
	// A nested dict whose own encoding nests again: all structure of
	// the inner levels must arrive escaped, and unescape exactly.
	inner, _ := Declare("a", "1", "b", "2")
	mid := New().Set("inner", Of(inner))
	outer := New().Set("mid", Of(mid))

	wire := encodeOrDie(t, outer)
	got, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !got.Equal(outer) {
		t.Fatal("double-nested round trip mismatch")
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{"no kv separator", "justakey"},
		{"bad escape", "k\x1f\x1e\x1cz"},
		{"truncated escape", "k\x1f\x1ea\x1c"},
		{"duplicate key", "a\x1f1\x1da\x1f2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.wire); err == nil {
				t.Errorf("Decode(%q) succeeded, want error", tt.wire)
			}
		})
	}
}
