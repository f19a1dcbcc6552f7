package parser

import (
	"fmt"
	"strconv"

	"github.com/zegl/thunk/compiler/lexer"
)

type parser struct {
	i     int
	input []lexer.Item
}

// Parse builds the expression tree for a lexed closure body
func Parse(input []lexer.Item) (Node, error) {
	if len(input) == 0 || input[len(input)-1].Type != lexer.EOF {
		return nil, fmt.Errorf("input is not terminated by EOF")
	}

	p := &parser{input: input}

	res, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}

	if current := p.lookAhead(0); current.Type != lexer.EOF {
		return nil, unexpected(current, "end of expression")
	}

	return res, nil
}

// ParseString lexes and parses input
func ParseString(input string) (Node, error) {
	items, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	return Parse(items)
}

// parseBinary parses operators binding at least as tight as minPrio.
// Operators of equal priority are left associative.
func (p *parser) parseBinary(minPrio int) (Node, error) {
	left, err := p.parseOne()
	if err != nil {
		return nil, err
	}

	for {
		next := p.lookAhead(0)
		if next.Type != lexer.OPERATOR {
			return left, nil
		}

		op, ok := opsCharToOp[next.Val]
		if !ok {
			return nil, unexpected(next, "operator")
		}

		prio := infixPrio(op)
		if prio < minPrio {
			return left, nil
		}

		p.i++

		right, err := p.parseBinary(prio + 1)
		if err != nil {
			return nil, err
		}

		left = OperatorNode{
			Operator: op,
			Left:     left,
			Right:    right,
		}
	}
}

func (p *parser) parseOne() (Node, error) {
	current := p.lookAhead(0)

	switch current.Type {
	case lexer.IDENTIFIER:
		p.i++
		return NameNode{Name: current.Val}, nil

	case lexer.NUMBER:
		p.i++
		val, err := strconv.ParseInt(current.Val, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", current.Col, err)
		}
		return ConstantNode{Value: val}, nil

	case lexer.OPERATOR:
		// Unary minus is sugar for 0 - x
		if current.Val == "-" {
			p.i++

			// The sign belongs to the literal, so the smallest int64 can be written
			if next := p.lookAhead(0); next.Type == lexer.NUMBER {
				p.i++
				val, err := strconv.ParseInt("-"+next.Val, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("column %d: %w", next.Col, err)
				}
				return ConstantNode{Value: val}, nil
			}

			item, err := p.parseOne()
			if err != nil {
				return nil, err
			}
			if c, ok := item.(ConstantNode); ok {
				return ConstantNode{Value: -c.Value}, nil
			}
			return OperatorNode{
				Operator: OP_SUB,
				Left:     ConstantNode{Value: 0},
				Right:    item,
			}, nil
		}

	case lexer.SEPARATOR:
		if current.Val == "(" {
			p.i++
			inner, err := p.parseBinary(0)
			if err != nil {
				return nil, err
			}
			if err := p.expect(lexer.Item{Type: lexer.SEPARATOR, Val: ")"}); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}

	return nil, unexpected(current, "value")
}

func (p *parser) lookAhead(steps int) lexer.Item {
	if p.i+steps >= len(p.input) {
		return p.input[len(p.input)-1]
	}
	return p.input[p.i+steps]
}

func (p *parser) expect(expected lexer.Item) error {
	current := p.lookAhead(0)
	if current.Type != expected.Type || (expected.Val != "" && current.Val != expected.Val) {
		return unexpected(current, fmt.Sprintf("%q", expected.Val))
	}
	p.i++
	return nil
}

func unexpected(got lexer.Item, expected string) error {
	if got.Type == lexer.EOF {
		return fmt.Errorf("column %d: unexpected EOF, expected %s", got.Col, expected)
	}
	return fmt.Errorf("column %d: unexpected %s %q, expected %s", got.Col, got.Type, got.Val, expected)
}
