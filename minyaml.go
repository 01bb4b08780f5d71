package minyaml

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
	"unicode"
)

// DefaultIndentWidth is the number of spaces that make up one level of nesting.
const DefaultIndentWidth = 4

// TokenKind represents the possible kinds of token in a document.
type TokenKind int8

// These tokens are yielded from [Tokens].
const (
	// Leaf is a "key: value" line. Token.Content holds the raw value.
	Leaf = TokenKind(iota)
	// Section is a "key:" line that opens a nested mapping.
	Section
	// Error is a line that is neither an entry nor a section.
	// Token.Content holds the offending text.
	Error
)

func (k TokenKind) String() string {
	switch k {
	case Leaf:
		return "Leaf"
	case Section:
		return "Section"
	case Error:
		return "Error"
	default:
		panic("Unknown TokenKind")
	}
}

func (k TokenKind) GoString() string {
	return k.String()
}

// Token is a single significant line of a document.
type Token struct {
	Kind    TokenKind
	Indent  int
	Key     string
	Content string
}

var lineRegexp = regexp.MustCompile("\r\n|\r|\n")

func lines(input string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		lno := 1
		for match := lineRegexp.FindStringIndex(input); match != nil; match = lineRegexp.FindStringIndex(input) {
			if !yield(lno, input[:match[0]]) {
				return
			}
			input = input[match[1]:]
			lno++
		}
		yield(lno, input)
	}
}

func countIndent(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func splitLine(content string) Token {
	if key, value, found := strings.Cut(content, ": "); found {
		return Token{Kind: Leaf, Key: strings.TrimSpace(key), Content: strings.TrimSpace(value)}
	}
	if key, found := strings.CutSuffix(content, ":"); found {
		return Token{Kind: Section, Key: strings.TrimSpace(key)}
	}
	return Token{Kind: Error, Content: content}
}

// Tokens iterates over the significant lines of input with their (1-based)
// line numbers. Blank lines and comments (lines starting with #) are skipped;
// every other line produces exactly one [Leaf], [Section] or [Error] token.
//
// Tokens does not stop at errors; [Parse] does.
func Tokens(input string) iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for lno, line := range lines(input) {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
			content := strings.TrimLeftFunc(line, unicode.IsSpace)
			if content == "" || strings.HasPrefix(content, "#") {
				continue
			}

			token := splitLine(content)
			token.Indent = countIndent(line)
			if !yield(lno, token) {
				return
			}
		}
	}
}

// A SyntaxError is returned by [Parse] for a line that has neither a
// "key: value" separator nor a trailing colon.
type SyntaxError struct {
	// Line is the 1-based line number.
	Line int
	// Text is the content of the line, without indentation.
	Text string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: invalid syntax: %q", e.Line, e.Text)
}

// Parser converts documents into mappings. The zero Parser uses
// [DefaultIndentWidth].
type Parser struct {
	// IndentWidth is the number of leading spaces per level of nesting.
	// Depth is the indentation divided by IndentWidth, rounded down, so
	// partial indents are tolerated.
	IndentWidth int
}

func (p Parser) width() int {
	if p.IndentWidth <= 0 {
		return DefaultIndentWidth
	}
	return p.IndentWidth
}

// Parse reads a document into a new mapping. It stops at the first line that
// cannot be parsed and returns a [*SyntaxError].
func (p Parser) Parse(input string) (*Mapping, error) {
	width := p.width()
	root := &Mapping{}
	stack := []*Mapping{root}

	for lno, token := range Tokens(input) {
		depth := token.Indent / width
		for len(stack) > depth+1 {
			stack = stack[:len(stack)-1]
		}
		current := stack[len(stack)-1]

		switch token.Kind {
		case Leaf:
			current.Set(token.Key, Coerce(token.Content))
		case Section:
			child := &Mapping{}
			current.Set(token.Key, child)
			stack = append(stack, child)
		case Error:
			return nil, &SyntaxError{Line: lno, Text: token.Content}
		default:
			panic(fmt.Errorf("%d: missing case %#v", lno, token))
		}
	}

	return root, nil
}

// Parse reads a document using the default indent width.
func Parse(input string) (*Mapping, error) {
	return Parser{}.Parse(input)
}
