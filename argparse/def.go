package argparse

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/argot-sh/argot/dict"
)

const definitionVersion = 1

// Definition is the declarative (TOML) form of a parser. This is the
// string-keyed surface: unknown attributes, unknown action names, and
// malformed arity strings are schema errors here.
type Definition struct {
	Version         int     `toml:"version,omitempty"`
	Prog            string  `toml:"prog,omitempty"`
	Usage           string  `toml:"usage,omitempty"`
	Description     string  `toml:"description,omitempty"`
	Epilogue        string  `toml:"epilogue,omitempty"`
	ArgumentDefault *string `toml:"argument_default,omitempty"`
	NoHelp          bool    `toml:"no_help,omitempty"`

	Arguments  []ArgumentDef  `toml:"argument,omitempty"`
	SubParsers []SubParserDef `toml:"subparser,omitempty"`
}

// ArgumentDef is one argument specification in declarative form.
type ArgumentDef struct {
	Name     string   `toml:"name,omitempty"`
	Short    string   `toml:"short,omitempty"`
	Long     string   `toml:"long,omitempty"`
	Dest     string   `toml:"dest,omitempty"`
	Action   string   `toml:"action,omitempty"`
	Nargs    string   `toml:"nargs,omitempty"`
	Default  *string  `toml:"default,omitempty"`
	Const    *string  `toml:"const,omitempty"`
	Required bool     `toml:"required,omitempty"`
	Choices  []string `toml:"choices,omitempty"`
	Help     string   `toml:"help,omitempty"`
	Metavar  string   `toml:"metavar,omitempty"`
	Version  string   `toml:"version,omitempty"`
}

// SubParserDef registers a nested parser definition under a
// (dest, id) pair.
type SubParserDef struct {
	Dest    string     `toml:"dest"`
	ID      string     `toml:"id"`
	Aliases []string   `toml:"aliases,omitempty"`
	Parser  Definition `toml:"parser"`
}

// LoadDefinition builds a parser from a TOML definition document.
func LoadDefinition(data []byte) (*Parser, error) {
	var def Definition
	md, err := toml.Decode(string(data), &def)
	if err != nil {
		return nil, schemaErr("", "malformed definition: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, schemaErr("", "unrecognized attribute(s): %s", strings.Join(keys, ", "))
	}
	if def.Version != 0 && def.Version != definitionVersion {
		return nil, schemaErr("", "unsupported definition version %d", def.Version)
	}
	return buildFromDefinition(def)
}

// LoadDefinitionFile is LoadDefinition over a file.
func LoadDefinitionFile(path string) (*Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadDefinition(data)
}

func buildFromDefinition(def Definition) (*Parser, error) {
	p := NewParser(Config{
		Prog:            def.Prog,
		Usage:           def.Usage,
		Description:     def.Description,
		Epilogue:        def.Epilogue,
		ArgumentDefault: def.ArgumentDefault,
		NoHelp:          def.NoHelp,
	})

	for _, ad := range def.Arguments {
		arg, err := ad.toArg()
		if err != nil {
			return nil, err
		}
		if err := p.AddArgument(arg); err != nil {
			return nil, err
		}
	}

	for _, sd := range def.SubParsers {
		sub, err := buildFromDefinition(sd.Parser)
		if err != nil {
			return nil, err
		}
		if err := p.AddSubParser(sd.Dest, sd.ID, sub, sd.Aliases...); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (ad ArgumentDef) toArg() (Arg, error) {
	display := firstNonEmpty(ad.Long, ad.Short, ad.Name)

	action := Store
	if ad.Action != "" {
		a, err := ParseAction(ad.Action)
		if err != nil {
			return Arg{}, annotate(err, display)
		}
		action = a
	}
	nargs, err := ParseNargs(ad.Nargs)
	if err != nil {
		return Arg{}, annotate(err, display)
	}

	var choices *dict.Dict
	if ad.Choices != nil {
		pairs := make([]string, 0, len(ad.Choices)*2)
		for _, c := range ad.Choices {
			pairs = append(pairs, c, "_")
		}
		choices, err = dict.Declare(pairs...)
		if err != nil {
			return Arg{}, schemaErr(display, "bad choices: %v", err)
		}
	}

	return Arg{
		Name:     ad.Name,
		Short:    ad.Short,
		Long:     ad.Long,
		Dest:     ad.Dest,
		Action:   action,
		Nargs:    nargs,
		Default:  ad.Default,
		Const:    ad.Const,
		Required: ad.Required,
		Choices:  choices,
		Help:     ad.Help,
		Metavar:  ad.Metavar,
		Version:  ad.Version,
	}, nil
}
