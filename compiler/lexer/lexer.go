package lexer

import "fmt"

type lexType uint8

const (
	IDENTIFIER lexType = iota
	NUMBER
	OPERATOR
	SEPARATOR
	EOF
)

func (t lexType) String() string {
	switch t {
	case IDENTIFIER:
		return "identifier"
	case NUMBER:
		return "number"
	case OPERATOR:
		return "operator"
	case SEPARATOR:
		return "separator"
	case EOF:
		return "EOF"
	}
	return "unknown"
}

type Item struct {
	Type lexType
	Val  string
	Col  int
}

var operations = map[byte]struct{}{
	'+': {},
	'-': {},
	'*': {},
}

var separators = map[byte]struct{}{
	'(': {},
	')': {},
}

// Lex splits a closure body expression into items. Columns are 1-based.
func Lex(input string) ([]Item, error) {
	var res []Item

	i := 0
	for i < len(input) {
		col := i + 1

		if _, ok := operations[input[i]]; ok {
			res = append(res, Item{Type: OPERATOR, Val: string(input[i]), Col: col})
			i++
			continue
		}

		if _, ok := separators[input[i]]; ok {
			res = append(res, Item{Type: SEPARATOR, Val: string(input[i]), Col: col})
			i++
			continue
		}

		// NAME
		// Starts with a letter or _, continues with letters, digits and _
		if isLetter(input[i]) {
			start := i
			for i < len(input) && (isLetter(input[i]) || isDigit(input[i])) {
				i++
			}
			res = append(res, Item{Type: IDENTIFIER, Val: input[start:i], Col: col})
			continue
		}

		// NUMBER
		// 0-9
		if isDigit(input[i]) {
			start := i
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			res = append(res, Item{Type: NUMBER, Val: input[start:i], Col: col})
			continue
		}

		// Whitespace (ignore)
		if isSpace(input[i]) {
			i++
			continue
		}

		return nil, fmt.Errorf("unexpected char %q at column %d", input[i], col)
	}

	res = append(res, Item{Type: EOF, Col: len(input) + 1})

	return res, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
