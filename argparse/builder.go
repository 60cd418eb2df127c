package argparse

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Config holds parser-wide attributes.
type Config struct {
	Prog        string // program name shown in usage; "prog" if empty
	Usage       string // explicit usage line; deduced if empty
	Description string
	Epilogue    string

	// ArgumentDefault is the parser-wide fallback default applied to
	// arguments that declare none.
	ArgumentDefault *string

	// NoHelp disables the automatic -h/--help argument.
	NoHelp bool

	// Stdout and Stderr receive help/version text and warnings.
	// They default to os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Parser is an assembled argument parser descriptor.
type Parser struct {
	prog        string
	usage       string
	description string
	epilogue    string
	argDefault  *string
	addHelp     bool
	stdout      io.Writer
	stderr      io.Writer

	args        map[string]*Argument // by disambiguation key
	order       []string             // keys in declaration order
	positionals []string             // keys of positionals, in order
	shortFlags  map[string]string    // bare short char -> key
	longFlags   map[string]string    // bare long name -> key

	// optionString is the getopt-style summary of the short flags,
	// regenerated on every registration; a trailing ':' marks a
	// value-consuming flag.
	optionString string

	subParsers map[string]map[string]*Parser // dest -> id -> parser
	subAliases map[string]map[string]string  // dest -> alias -> id

	hasSubCommand bool
	warnings      []string
}

// NewParser creates a parser from cfg. Unless cfg.NoHelp is set, a
// help action is bound to -h/--help.
func NewParser(cfg Config) *Parser {
	p := &Parser{
		prog:        cfg.Prog,
		usage:       cfg.Usage,
		description: cfg.Description,
		epilogue:    cfg.Epilogue,
		argDefault:  cfg.ArgumentDefault,
		addHelp:     !cfg.NoHelp,
		stdout:      cfg.Stdout,
		stderr:      cfg.Stderr,
		args:        make(map[string]*Argument),
		shortFlags:  make(map[string]string),
		longFlags:   make(map[string]string),
		subParsers:  make(map[string]map[string]*Parser),
		subAliases:  make(map[string]map[string]string),
	}
	if p.prog == "" {
		p.prog = "prog"
	}
	if p.stdout == nil {
		p.stdout = os.Stdout
	}
	if p.stderr == nil {
		p.stderr = os.Stderr
	}
	if p.addHelp {
		// Registration of the canonical help argument cannot fail.
		if err := p.AddArgument(Arg{
			Short:  "-h",
			Long:   "--help",
			Action: Help,
			Help:   "show this help message and exit",
		}); err != nil {
			panic(fmt.Sprintf("argparse: registering -h/--help: %v", err))
		}
	}
	return p
}

// IsParser reports whether v is a parser descriptor. It never panics.
func IsParser(v any) bool {
	p, ok := v.(*Parser)
	return ok && p != nil
}

// SetOutput redirects help/version text and warnings. Nil writers keep
// the current destination.
func (p *Parser) SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		p.stdout = stdout
	}
	if stderr != nil {
		p.stderr = stderr
	}
}

// Warnings returns suspicious-specification warnings accumulated while
// building the parser.
func (p *Parser) Warnings() []string {
	return append([]string(nil), p.warnings...)
}

// AddArgument registers one argument specification. Schema violations
// return a KindSchema error naming the offending argument.
func (p *Parser) AddArgument(a Arg) error {
	arg, err := p.buildArgument(a)
	if err != nil {
		return err
	}

	if arg.action == SubCommand {
		if p.hasSubCommand {
			return schemaErr(arg.Display(), "only one sub_command argument is supported per parser")
		}
		p.hasSubCommand = true
	}

	p.args[arg.key] = arg
	p.order = append(p.order, arg.key)
	if arg.IsPositional() {
		p.positionals = append(p.positionals, arg.key)
	}
	if arg.short != "" {
		p.shortFlags[arg.short] = arg.key
	}
	if arg.long != "" {
		p.longFlags[arg.long] = arg.key
	}
	p.regenOptionString()
	return nil
}

// MustAddArgument is AddArgument for static specifications; it panics
// on schema errors and returns the parser for chaining.
func (p *Parser) MustAddArgument(a Arg) *Parser {
	if err := p.AddArgument(a); err != nil {
		panic(err)
	}
	return p
}

func (p *Parser) buildArgument(a Arg) (*Argument, error) {
	display := firstNonEmpty(a.Long, a.Short, a.Name)

	if err := a.Action.check(); err != nil {
		return nil, schemaErr(display, "%v", err)
	}
	positional := a.Name != ""
	flagged := a.Short != "" || a.Long != ""
	if positional && flagged {
		return nil, schemaErr(display, "cannot be both positional (name) and optional (short/long)")
	}
	if !positional && !flagged {
		return nil, schemaErr("", "argument needs a positional name or a short/long flag")
	}

	short, long, err := normalizeFlags(a.Short, a.Long)
	if err != nil {
		return nil, err
	}
	if positional && strings.HasPrefix(a.Name, "-") {
		return nil, schemaErr(a.Name, "positional name must not start with a hyphen")
	}

	if err := a.Nargs.check(); err != nil {
		return nil, annotate(err, display)
	}
	if positional && !a.Action.positionalOK() {
		return nil, schemaErr(a.Name, "action %s is not valid for a positional argument", a.Action)
	}
	if err := checkActionAttrs(a, display); err != nil {
		return nil, err
	}
	if a.Version != "" && a.Action != Version {
		p.warnings = append(p.warnings,
			fmt.Sprintf("argument %s: version attribute is unused with action %s", display, a.Action))
	}

	def := a.Default
	if def == nil {
		def = p.argDefault
	}
	if a.Nargs.Kind == NargsOptional {
		if positional && def == nil {
			return nil, schemaErr(a.Name, "nargs ? positional needs a default (or a parser-wide argument default)")
		}
		if !positional && a.Const == nil {
			return nil, schemaErr(display, "nargs ? option needs a const")
		}
	}

	dest := a.Dest
	if dest == "" {
		switch {
		case a.Name != "":
			dest = a.Name
		case long != "":
			dest = strings.ReplaceAll(long, "-", "_")
		case short != "":
			dest = short
		}
	}
	if dest == "" {
		return nil, schemaErr(display, "unable to deduce a destination name")
	}

	key := firstNonEmpty(long, short, a.Name)
	if _, exists := p.args[key]; exists {
		return nil, schemaErr(display, "already registered")
	}
	if short != "" {
		if _, exists := p.shortFlags[short]; exists {
			return nil, schemaErr("-"+short, "short flag already registered")
		}
	}
	if long != "" {
		if _, exists := p.longFlags[long]; exists {
			return nil, schemaErr("--"+long, "long flag already registered")
		}
	}

	return &Argument{
		dest:     dest,
		key:      key,
		name:     a.Name,
		short:    short,
		long:     long,
		action:   a.Action,
		nargs:    a.Nargs,
		def:      a.Default,
		konst:    a.Const,
		required: a.Required,
		choices:  a.Choices,
		help:     a.Help,
		metavar:  a.Metavar,
		version:  a.Version,
	}, nil
}

// checkActionAttrs enforces the per-action attribute restrictions.
func checkActionAttrs(a Arg, display string) error {
	if a.Action.forbidsNargs() && a.Nargs.Kind != NargsUnset {
		return schemaErr(display, "action %s does not accept nargs", a.Action)
	}
	switch a.Action {
	case StoreTrue, StoreFalse:
		if a.Default != nil || a.Const != nil {
			return schemaErr(display, "action %s does not accept default or const", a.Action)
		}
	case Version:
		if a.Version == "" {
			return schemaErr(display, "version action needs a version string")
		}
		if a.Default != nil || a.Const != nil || a.Required || a.Choices != nil {
			return schemaErr(display, "version action does not accept default, const, required, or choices")
		}
	case StoreConst, AppendConst:
		if a.Const == nil {
			return schemaErr(display, "action %s needs a const", a.Action)
		}
		if a.Choices != nil {
			return schemaErr(display, "action %s does not accept choices", a.Action)
		}
	case Count:
		if a.Const != nil || a.Choices != nil {
			return schemaErr(display, "count action does not accept const or choices")
		}
	case SubCommand, SubArgument:
		if a.Default != nil || a.Const != nil || a.Nargs.Kind != NargsUnset {
			return schemaErr(display, "action %s does not accept default, const, or nargs", a.Action)
		}
	}
	return nil
}

// AddSubParser registers sub under the (destKey, id) pair plus any
// aliases. The sub-parser is copied: later changes to sub are not
// visible to the registration.
func (p *Parser) AddSubParser(destKey, id string, sub *Parser, aliases ...string) error {
	if sub == nil {
		return schemaErr(destKey, "nil sub-parser")
	}
	owner := p.argumentByDest(destKey)
	if owner == nil {
		return schemaErr(destKey, "no sub_command or sub_argument argument with this destination")
	}
	if owner.action != SubCommand && owner.action != SubArgument {
		return schemaErr(owner.Display(), "action %s does not take sub-parsers", owner.action)
	}

	ids := p.subParsers[destKey]
	if ids == nil {
		ids = make(map[string]*Parser)
		p.subParsers[destKey] = ids
	}
	if _, exists := ids[id]; exists {
		return schemaErr(destKey, "sub-command %q already registered", id)
	}
	als := p.subAliases[destKey]
	if als == nil {
		als = make(map[string]string)
		p.subAliases[destKey] = als
	}
	for _, alias := range aliases {
		if _, exists := ids[alias]; exists {
			return schemaErr(destKey, "alias %q collides with a sub-command id", alias)
		}
		if _, exists := als[alias]; exists {
			return schemaErr(destKey, "alias %q already registered", alias)
		}
	}

	ids[id] = sub.clone()
	for _, alias := range aliases {
		als[alias] = id
	}
	return nil
}

// argumentByDest finds the first argument with the given destination.
func (p *Parser) argumentByDest(dest string) *Argument {
	for _, key := range p.order {
		if p.args[key].dest == dest {
			return p.args[key]
		}
	}
	return nil
}

// resolveSubParser maps an id-or-alias token to its sub-parser.
func (p *Parser) resolveSubParser(dest, token string) (*Parser, string, bool) {
	ids := p.subParsers[dest]
	if ids == nil {
		return nil, "", false
	}
	if sub, ok := ids[token]; ok {
		return sub, token, true
	}
	if id, ok := p.subAliases[dest][token]; ok {
		return ids[id], id, true
	}
	return nil, "", false
}

// subCommandIDs lists the registered ids for a destination, in no
// particular order beyond determinism for help output.
func (p *Parser) subCommandIDs(dest string) []string {
	ids := make([]string, 0, len(p.subParsers[dest]))
	for id := range p.subParsers[dest] {
		ids = append(ids, id)
	}
	sortStrings(ids)
	return ids
}

func (p *Parser) aliasesFor(dest, id string) []string {
	var out []string
	for alias, target := range p.subAliases[dest] {
		if target == id {
			out = append(out, alias)
		}
	}
	sortStrings(out)
	return out
}

// regenOptionString rebuilds the clustered short-flag scan string.
func (p *Parser) regenOptionString() {
	var sb strings.Builder
	for _, key := range p.order {
		arg := p.args[key]
		if arg.short == "" {
			continue
		}
		sb.WriteString(arg.short)
		if arg.action.consumesValues() {
			sb.WriteByte(':')
		}
	}
	p.optionString = sb.String()
}

// clone deep-copies the descriptor. Built Arguments are immutable and
// shared; everything rebindable is copied.
func (p *Parser) clone() *Parser {
	c := &Parser{
		prog:          p.prog,
		usage:         p.usage,
		description:   p.description,
		epilogue:      p.epilogue,
		argDefault:    p.argDefault,
		addHelp:       p.addHelp,
		stdout:        p.stdout,
		stderr:        p.stderr,
		args:          make(map[string]*Argument, len(p.args)),
		order:         append([]string(nil), p.order...),
		positionals:   append([]string(nil), p.positionals...),
		shortFlags:    make(map[string]string, len(p.shortFlags)),
		longFlags:     make(map[string]string, len(p.longFlags)),
		optionString:  p.optionString,
		subParsers:    make(map[string]map[string]*Parser, len(p.subParsers)),
		subAliases:    make(map[string]map[string]string, len(p.subAliases)),
		hasSubCommand: p.hasSubCommand,
		warnings:      append([]string(nil), p.warnings...),
	}
	for k, v := range p.args {
		c.args[k] = v
	}
	for k, v := range p.shortFlags {
		c.shortFlags[k] = v
	}
	for k, v := range p.longFlags {
		c.longFlags[k] = v
	}
	for dest, ids := range p.subParsers {
		m := make(map[string]*Parser, len(ids))
		for id, sub := range ids {
			m[id] = sub.clone()
		}
		c.subParsers[dest] = m
	}
	for dest, als := range p.subAliases {
		m := make(map[string]string, len(als))
		for a, id := range als {
			m[a] = id
		}
		c.subAliases[dest] = m
	}
	return c
}

// normalizeFlags strips flag prefixes and validates their shape.
func normalizeFlags(short, long string) (string, string, error) {
	if short != "" {
		s := strings.TrimPrefix(short, "-")
		if len(s) != 1 || s == "-" {
			return "", "", schemaErr(short, "short flag must be a single character")
		}
		short = s
	}
	if long != "" {
		l := strings.TrimPrefix(long, "--")
		if l == "" || strings.HasPrefix(l, "-") {
			return "", "", schemaErr(long, "malformed long flag")
		}
		long = l
	}
	return short, long, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// annotate attaches the argument identity to a schema error built
// without one.
func annotate(err error, arg string) error {
	if e, ok := err.(*Error); ok && e.Arg == "" {
		return &Error{Kind: e.Kind, Arg: arg, Message: e.Message}
	}
	return err
}

// sortStrings is a tiny insertion sort; id lists are short.
func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
