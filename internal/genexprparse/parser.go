// Package genexprparse turns generator-expression surface syntax
// ("prefix $<IDENT:arg,arg,...> forms intermixed with literal text") into
// the AST geneval evaluates. Parsing is kept out of geneval itself (its
// own non-goal); this package is the one place in the module allowed to
// walk raw expression text, consumed by internal/genevalyaml when
// compiling fixture property values and by cmd/genexpr for CLI input.
package genexprparse

import (
	"errors"
	"fmt"

	"genexpr/internal/geneval"
)

// ErrUnterminated is returned when a "$<" is never closed by a matching
// ">" before the input ends.
var ErrUnterminated = errors.New("genexprparse: unterminated $<...> expression")

// ErrEmptyIdentifier is returned for "$<>" or "$<:...>", which have no
// operator name at all.
var ErrEmptyIdentifier = errors.New("genexprparse: empty identifier in $<...>")

// Parse compiles s into a geneval.Concat ready for geneval.Evaluate. A bare
// "$" not followed by "<" is literal text, matching the original's
// tolerant handling of stray dollar signs in build scripts.
func Parse(s string) (geneval.Concat, error) {
	p := &parser{input: s}
	seq, err := p.parseUntil("")
	if err != nil {
		return nil, err
	}
	return geneval.Concat(seq), nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte { return p.input[p.pos] }

// parseUntil consumes text and $<...> forms up to end-of-input or, when
// stopAt is ",", the comma or closing angle bracket that ends the current
// parameter (left unconsumed for the caller to inspect).
func (p *parser) parseUntil(stopAt string) ([]geneval.Evaluator, error) {
	var seq []geneval.Evaluator
	var lit []byte

	flush := func() {
		if len(lit) > 0 {
			seq = append(seq, geneval.Text(string(lit)))
			lit = nil
		}
	}

	for !p.eof() {
		if stopAt == "," && (p.peek() == ',' || p.peek() == '>') {
			flush()
			return seq, nil
		}

		if p.peek() == '$' && p.pos+1 < len(p.input) && p.input[p.pos+1] == '<' {
			flush()
			content, err := p.parseContent()
			if err != nil {
				return nil, err
			}
			seq = append(seq, content)
			continue
		}

		lit = append(lit, p.peek())
		p.pos++
	}

	if stopAt != "" {
		return nil, fmt.Errorf("%w: at offset %d", ErrUnterminated, p.pos)
	}
	flush()
	return seq, nil
}

// parseContent parses one "$<identifier[:param,param,...]>" form, having
// already confirmed the "$<" prefix is present.
func (p *parser) parseContent() (*geneval.Content, error) {
	start := p.pos
	p.pos += 2 // consume "$<"

	identSeq, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if len(identSeq) == 0 {
		return nil, fmt.Errorf("%w: at offset %d", ErrEmptyIdentifier, start)
	}

	var params [][]geneval.Evaluator
	if !p.eof() && p.peek() == ':' {
		p.pos++ // consume ':'
		for {
			param, err := p.parseUntil(",")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.eof() {
				return nil, fmt.Errorf("%w: at offset %d", ErrUnterminated, start)
			}
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
	}

	if p.eof() || p.peek() != '>' {
		return nil, fmt.Errorf("%w: at offset %d", ErrUnterminated, start)
	}
	p.pos++ // consume '>'

	return &geneval.Content{Identifier: identSeq, Parameters: params}, nil
}

// parseIdentifier parses the identifier position of a Content node: text
// and nested $<...> forms up to the first top-level ':' or '>'.
func (p *parser) parseIdentifier() ([]geneval.Evaluator, error) {
	var seq []geneval.Evaluator
	var lit []byte

	flush := func() {
		if len(lit) > 0 {
			seq = append(seq, geneval.Text(string(lit)))
			lit = nil
		}
	}

	for !p.eof() {
		switch p.peek() {
		case ':', '>':
			flush()
			return seq, nil
		}
		if p.peek() == '$' && p.pos+1 < len(p.input) && p.input[p.pos+1] == '<' {
			flush()
			content, err := p.parseContent()
			if err != nil {
				return nil, err
			}
			seq = append(seq, content)
			continue
		}
		lit = append(lit, p.peek())
		p.pos++
	}
	return nil, fmt.Errorf("%w: at offset %d", ErrUnterminated, p.pos)
}
