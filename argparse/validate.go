package argparse

import (
	"strings"

	"github.com/argot-sh/argot/dict"
)

// finalize is the post-parse validation/fixup pass: it synthesizes
// missing positionals and defaults, enforces required and choices
// constraints, and recurses into nested sub-parse results with their
// own descriptors. It returns the fixed-up result container.
func (p *Parser) finalize(out *dict.Dict) (*dict.Dict, error) {
	var err error
	if out, err = p.fillPositionals(out); err != nil {
		return nil, err
	}
	if out, err = p.fillOptions(out); err != nil {
		return nil, err
	}
	if err = p.checkChoices(out); err != nil {
		return nil, err
	}
	return p.validateSubResults(out)
}

// fillPositionals synthesizes every declared-but-unconsumed positional
// from its default until the expected count is met.
func (p *Parser) fillPositionals(out *dict.Dict) (*dict.Dict, error) {
	for _, key := range p.positionals {
		arg := p.args[key]
		if _, ok := out.Get(arg.dest); ok {
			continue
		}
		if arg.action == SubCommand {
			// Required sub-trees are checked with the other sub
			// destinations.
			continue
		}
		if def := arg.defaultOr(p.argDefault); def != nil {
			if arg.nargs.multiValued() {
				out = out.Set(arg.dest, indexDict([]string{*def}))
			} else {
				out = out.SetStr(arg.dest, *def)
			}
			continue
		}
		if arg.nargs.Kind == NargsZeroOrMore {
			out = out.Set(arg.dest, dict.Of(dict.New()))
			continue
		}
		return nil, parseErr(arg.Display(), "missing required positional argument")
	}
	return out, nil
}

// fillOptions applies defaults to absent option destinations and
// enforces the required flag.
func (p *Parser) fillOptions(out *dict.Dict) (*dict.Dict, error) {
	for _, key := range p.order {
		arg := p.args[key]
		if arg.IsPositional() || arg.action == SubArgument {
			continue
		}
		if arg.action == Help || arg.action == Version {
			continue
		}
		if _, ok := out.Get(arg.dest); ok {
			continue
		}
		if def := arg.defaultOr(p.argDefault); def != nil {
			if arg.nargs.multiValued() {
				out = out.Set(arg.dest, indexDict([]string{*def}))
			} else {
				out = out.SetStr(arg.dest, *def)
			}
			continue
		}
		if arg.required {
			return nil, parseErr(arg.Display(), "required option was not provided")
		}
	}
	return out, nil
}

// checkChoices verifies every produced value against its choice set:
// scalars directly, multi-value containers element by element.
func (p *Parser) checkChoices(out *dict.Dict) error {
	for _, key := range p.order {
		arg := p.args[key]
		if arg.choices == nil {
			continue
		}
		v, ok := out.Get(arg.dest)
		if !ok {
			continue
		}
		if s, err := v.AsStr(); err == nil {
			if _, member := arg.choices.Get(s); !member {
				return p.invalidChoice(arg, s, -1)
			}
			continue
		}
		elems, err := v.AsDict()
		if err != nil {
			continue
		}
		var bad error
		elems.ForEach(func(_ string, elem dict.Value, idx int) {
			if bad != nil {
				return
			}
			s, serr := elem.AsStr()
			if serr != nil {
				return
			}
			if _, member := arg.choices.Get(s); !member {
				bad = p.invalidChoice(arg, s, idx-1)
			}
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}

func (p *Parser) invalidChoice(arg *Argument, val string, idx int) error {
	allowed := strings.Join(arg.choices.Keys(), ", ")
	if idx >= 0 {
		return parseErr(arg.Display(), "invalid choice %q at index %d (choose from %s)", val, idx, allowed)
	}
	return parseErr(arg.Display(), "invalid choice %q (choose from %s)", val, allowed)
}

// validateSubResults re-applies validation to nested sub-parse results
// using each sub-parser's own descriptor, and enforces required
// sub-trees.
func (p *Parser) validateSubResults(out *dict.Dict) (*dict.Dict, error) {
	for _, key := range p.order {
		arg := p.args[key]
		if arg.action != SubCommand && arg.action != SubArgument {
			continue
		}
		v, ok := out.Get(arg.dest)
		if !ok {
			if arg.required {
				return nil, parseErr(arg.Display(), "required sub-command was not provided")
			}
			continue
		}
		tree, err := v.AsDict()
		if err != nil {
			return nil, &Error{Kind: KindType, Arg: arg.Display(), Message: "sub-parse result is not a container"}
		}
		if arg.required && tree.Size() == 0 {
			return nil, parseErr(arg.Display(), "required sub-command was not provided")
		}

		switch arg.action {
		case SubCommand:
			fixed, err := p.revalidateSubTree(arg, tree)
			if err != nil {
				return nil, err
			}
			out = out.Set(arg.dest, dict.Of(fixed))

		case SubArgument:
			// dest -> repeat index -> {id: result}
			fixed := dict.New()
			var werr error
			tree.ForEach(func(idx string, occ dict.Value, _ int) {
				if werr != nil {
					return
				}
				occDict, err := occ.AsDict()
				if err != nil {
					werr = &Error{Kind: KindType, Arg: arg.Display(), Message: "sub-argument occurrence is not a container"}
					return
				}
				fixedOcc, err := p.revalidateSubTree(arg, occDict)
				if err != nil {
					werr = err
					return
				}
				fixed = fixed.Set(idx, dict.Of(fixedOcc))
			})
			if werr != nil {
				return nil, werr
			}
			out = out.Set(arg.dest, dict.Of(fixed))
		}
	}
	return out, nil
}

// revalidateSubTree walks one {id: result} pair through the registered
// sub-parser's finalize.
func (p *Parser) revalidateSubTree(arg *Argument, tree *dict.Dict) (*dict.Dict, error) {
	fixed := dict.New()
	var werr error
	tree.ForEach(func(id string, res dict.Value, _ int) {
		if werr != nil {
			return
		}
		sub, _, ok := p.resolveSubParser(arg.dest, id)
		if !ok {
			werr = parseErr(arg.Display(), "unknown sub-command %q in result", id)
			return
		}
		resDict, err := res.AsDict()
		if err != nil {
			werr = &Error{Kind: KindType, Arg: arg.Display(), Message: "nested result is not a container"}
			return
		}
		finalized, err := sub.finalize(resDict)
		if err != nil {
			werr = err
			return
		}
		fixed = fixed.Set(id, dict.Of(finalized))
	})
	if werr != nil {
		return nil, werr
	}
	return fixed, nil
}
