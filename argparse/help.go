package argparse

import (
	"fmt"
	"strings"
)

const (
	// helpWidth is the wrap column for generated text.
	helpWidth = 79
	// minWrapWidth is the narrowest useful wrap target; tokens are
	// never broken, and narrower widths degrade to this.
	minWrapWidth = 12
	// helpCol is the column where item help text starts.
	helpCol = 24
)

// FormatUsage returns the one-line (wrapped) usage text.
func (p *Parser) FormatUsage() string {
	usage := p.usage
	if usage == "" {
		usage = p.deduceUsage()
	}
	prefix := "usage: "
	indent := strings.Repeat(" ", len(prefix))
	lines := wrap(prefix+usage, helpWidth, indent)
	return strings.Join(lines, "\n") + "\n"
}

// deduceUsage folds over the specs in declaration order: program name,
// options, then positionals.
func (p *Parser) deduceUsage() string {
	parts := []string{p.prog}
	for _, key := range p.order {
		arg := p.args[key]
		if arg.IsPositional() {
			continue
		}
		parts = append(parts, arg.usagePart())
	}
	for _, key := range p.positionals {
		arg := p.args[key]
		if arg.action == SubCommand {
			parts = append(parts, "{"+strings.Join(p.subCommandIDs(arg.dest), ",")+"} ...")
			continue
		}
		parts = append(parts, arg.positionalUsage())
	}
	return strings.Join(parts, " ")
}

// usagePart renders one option for the usage line, bracketed unless
// required.
func (a *Argument) usagePart() string {
	flag := "--" + a.long
	if a.short != "" {
		flag = "-" + a.short
	}
	part := flag + a.valueStub(" ")
	if a.action == SubArgument {
		part = flag + " CMD ..."
	}
	if a.required {
		return part
	}
	return "[" + part + "]"
}

// positionalUsage renders one positional for the usage line according
// to its arity.
func (a *Argument) positionalUsage() string {
	mv := a.metavarOr(a.name)
	switch a.nargs.Kind {
	case NargsOptional:
		return "[" + mv + "]"
	case NargsZeroOrMore:
		return "[" + mv + " ...]"
	case NargsOneOrMore:
		return mv + " [" + mv + " ...]"
	case NargsFixed:
		stubs := make([]string, a.nargs.N)
		for i := range stubs {
			stubs[i] = mv
		}
		return strings.Join(stubs, " ")
	default:
		return mv
	}
}

// FormatHelp returns the full help text: usage, description, the
// positional and option sections, and the epilogue.
func (p *Parser) FormatHelp() string {
	var sb strings.Builder
	sb.WriteString(p.FormatUsage())

	if p.description != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(wrap(p.description, helpWidth, ""), "\n"))
		sb.WriteString("\n")
	}

	var positionals, options []string
	for _, key := range p.order {
		arg := p.args[key]
		item := p.formatItem(arg)
		if arg.IsPositional() {
			positionals = append(positionals, item)
		} else {
			options = append(options, item)
		}
	}
	if len(positionals) > 0 {
		sb.WriteString("\npositional arguments:\n")
		for _, item := range positionals {
			sb.WriteString(item)
		}
	}
	if len(options) > 0 {
		sb.WriteString("\noptions:\n")
		for _, item := range options {
			sb.WriteString(item)
		}
	}

	if p.epilogue != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(wrap(p.epilogue, helpWidth, ""), "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatItem renders one argument entry: invocation, aligned help
// text, and for sub-command arguments a mini usage block enumerating
// the registered sub-parsers.
func (p *Parser) formatItem(arg *Argument) string {
	var sb strings.Builder
	invocation := arg.invocation()
	if arg.action == SubCommand {
		invocation = "{" + strings.Join(p.subCommandIDs(arg.dest), ",") + "}"
	}

	sb.WriteString("  ")
	sb.WriteString(invocation)
	if arg.help != "" {
		helpIndent := strings.Repeat(" ", helpCol)
		lines := wrap(arg.help, helpWidth-helpCol, "")
		if len(invocation)+2 >= helpCol {
			sb.WriteString("\n")
			for _, line := range lines {
				sb.WriteString(helpIndent)
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		} else {
			sb.WriteString(strings.Repeat(" ", helpCol-len(invocation)-2))
			for i, line := range lines {
				if i > 0 {
					sb.WriteString(helpIndent)
				}
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	} else {
		sb.WriteString("\n")
	}

	if arg.action == SubCommand || arg.action == SubArgument {
		sb.WriteString(p.formatSubCommands(arg))
	}
	return sb.String()
}

// formatSubCommands renders the mini usage block for one sub-command
// destination: ids, aliases, and each sub-parser's description.
func (p *Parser) formatSubCommands(arg *Argument) string {
	var sb strings.Builder
	for _, id := range p.subCommandIDs(arg.dest) {
		sub := p.subParsers[arg.dest][id]
		label := id
		if aliases := p.aliasesFor(arg.dest, id); len(aliases) > 0 {
			label += " (" + strings.Join(aliases, ", ") + ")"
		}
		sb.WriteString("    ")
		sb.WriteString(label)
		if sub.description != "" {
			if len(label)+4 < helpCol {
				sb.WriteString(strings.Repeat(" ", helpCol-len(label)-4))
			} else {
				sb.WriteString("  ")
			}
			sb.WriteString(sub.description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// wrap greedily word-wraps text to width; continuation lines get
// indent. Tokens longer than the width are never broken.
func wrap(text string, width int, indent string) []string {
	if width < minWrapWidth {
		width = minWrapWidth
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width && len(line) > 0 {
			lines = append(lines, line)
			line = indent + word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return lines
}

// FormatVersion renders the text of the parser's version action, if
// one is registered.
func (p *Parser) FormatVersion() (string, bool) {
	for _, key := range p.order {
		if arg := p.args[key]; arg.action == Version {
			return fmt.Sprintf("%s\n", arg.version), true
		}
	}
	return "", false
}
