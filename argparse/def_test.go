package argparse

import (
	"errors"
	"strings"
	"testing"
)

const sampleDefinition = `
version = 1
prog = "vcs"
description = "A tiny version control front end."

[[argument]]
short = "-v"
action = "count"
help = "increase verbosity"

[[argument]]
long = "--color"
choices = ["auto", "always", "never"]
default = "auto"

[[argument]]
name = "cmd"
action = "sub_command"
required = true

[[subparser]]
dest = "cmd"
id = "add"
aliases = ["a"]

[subparser.parser]
description = "stage files"

[[subparser.parser.argument]]
name = "file"
nargs = "+"
`

func TestLoadDefinition(t *testing.T) {
	p, err := LoadDefinition([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("LoadDefinition failed: %v", err)
	}

	res, err := p.Parse([]string{"-vv", "--color", "never", "add", "x.txt", "y.txt"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := getStr(t, res.Values, "v"); got != "2" {
		t.Errorf("v = %q", got)
	}
	if got := getStr(t, res.Values, "color"); got != "never" {
		t.Errorf("color = %q", got)
	}
	files := getDict(t, getDict(t, getDict(t, res.Values, "cmd"), "add"), "file")
	if got := elems(t, files); !equalStrings(got, []string{"x.txt", "y.txt"}) {
		t.Errorf("file = %v", got)
	}
}

func TestLoadDefinition_AliasAndChoices(t *testing.T) {
	p, err := LoadDefinition([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("LoadDefinition failed: %v", err)
	}

	if _, err := p.Parse([]string{"--color", "sometimes", "add", "f"}); err == nil {
		t.Error("invalid choice accepted")
	}

	res, err := p.Parse([]string{"a", "f"})
	if err != nil {
		t.Fatalf("alias parse failed: %v", err)
	}
	if _, ok := getDict(t, res.Values, "cmd").Get("add"); !ok {
		t.Error("alias did not resolve to the canonical id")
	}
}

func TestLoadDefinition_Errors(t *testing.T) {
	tests := []struct {
		desc string
		doc  string
		want string
	}{
		{
			"unknown top-level attribute",
			"porg = \"x\"\n",
			"unrecognized attribute",
		},
		{
			"unknown argument attribute",
			"[[argument]]\nlong = \"--x\"\nnrags = \"+\"\n",
			"unrecognized attribute",
		},
		{
			"unknown action",
			"[[argument]]\nlong = \"--x\"\naction = \"stroe\"\n",
			"unknown action",
		},
		{
			"bad nargs",
			"[[argument]]\nlong = \"--x\"\nnargs = \"two\"\n",
			"invalid nargs",
		},
		{
			"unsupported version",
			"version = 9\n",
			"unsupported definition version",
		},
		{
			"malformed document",
			"prog = \n",
			"malformed definition",
		},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := LoadDefinition([]byte(tc.doc))
			if err == nil {
				t.Fatal("LoadDefinition succeeded")
			}
			var serr *Error
			if !errors.As(err, &serr) || serr.Kind != KindSchema {
				t.Fatalf("error = %v, want schema kind", err)
			}
			if !strings.Contains(serr.Message, tc.want) {
				t.Errorf("message = %q, want substring %q", serr.Message, tc.want)
			}
		})
	}
}

func TestLoadDefinition_SchemaErrorsPropagate(t *testing.T) {
	doc := "[[argument]]\nname = \"x\"\naction = \"store_true\"\n"
	_, err := LoadDefinition([]byte(doc))
	if err == nil {
		t.Fatal("positional store_true accepted")
	}
	var serr *Error
	if !errors.As(err, &serr) || serr.Kind != KindSchema {
		t.Errorf("error = %v, want schema kind", err)
	}
}

func TestLoadDefinitionFile_Missing(t *testing.T) {
	if _, err := LoadDefinitionFile("definitely/not/here.toml"); err == nil {
		t.Error("missing file did not fail")
	}
}
