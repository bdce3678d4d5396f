package surface

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 BOM and applies Unicode NFC normalization so
// that lexically equivalent source — a λ typed as a precomposed
// codepoint or built from combining marks — produces identical tokens.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}

// Lexer tokenizes Janus surface syntax.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           rune
	line         int
	column       int
	file         string
}

// NewLexer creates a Lexer over already-Normalize'd source.
func NewLexer(input string, filename string) *Lexer {
	l := &Lexer{input: input, file: filename, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	ch, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = ch
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return ch
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// skipLineComment consumes `-- ...` to end of line.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment consumes `{- ... -}`, honouring nesting.
func (l *Lexer) skipBlockComment() {
	depth := 1
	l.readChar()
	l.readChar()
	for depth > 0 && l.ch != 0 {
		if l.ch == '{' && l.peekChar() == '-' {
			depth++
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '-' && l.peekChar() == '}' {
			depth--
			l.readChar()
			l.readChar()
			continue
		}
		l.readChar()
	}
}

// NextToken returns the next token in the stream.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		if l.ch == '-' && l.peekChar() == '-' {
			l.skipLineComment()
			continue
		}
		if l.ch == '{' && l.peekChar() == '-' {
			l.skipBlockComment()
			continue
		}
		break
	}

	line, column := l.line, l.column
	var tok Token

	switch l.ch {
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = NewToken(ARROW, "->", line, column, l.file)
		} else {
			tok = NewToken(ILLEGAL, string(l.ch), line, column, l.file)
		}
	case '→': // →
		tok = NewToken(ARROW, "→", line, column, l.file)
	case '\\':
		tok = NewToken(BACKSLASH, "\\", line, column, l.file)
	case 'λ': // λ
		tok = NewToken(BACKSLASH, "λ", line, column, l.file)
	case '*':
		tok = NewToken(STAR, "*", line, column, l.file)
	case '⊗': // ⊗
		tok = NewToken(STAR, "⊗", line, column, l.file)
	case '&':
		tok = NewToken(AMP, "&", line, column, l.file)
	case '=':
		tok = NewToken(EQUALS, "=", line, column, l.file)
	case ':':
		tok = NewToken(COLON, ":", line, column, l.file)
	case ',':
		tok = NewToken(COMMA, ",", line, column, l.file)
	case '.':
		tok = NewToken(DOT, ".", line, column, l.file)
	case '(':
		if l.peekChar() == ')' {
			l.readChar()
			tok = NewToken(UNIT, "()", line, column, l.file)
		} else {
			tok = NewToken(LPAREN, "(", line, column, l.file)
		}
	case ')':
		tok = NewToken(RPAREN, ")", line, column, l.file)
	case '<':
		if l.peekChar() == '>' {
			l.readChar()
			tok = NewToken(ADDUNIT, "<>", line, column, l.file)
		} else {
			tok = NewToken(LANGLE, "<", line, column, l.file)
		}
	case '>':
		tok = NewToken(RANGLE, ">", line, column, l.file)
	case '⟨': // ⟨
		tok = NewToken(LANGLE, "⟨", line, column, l.file)
	case '⟩': // ⟩
		tok = NewToken(RANGLE, "⟩", line, column, l.file)
	case 'ω': // ω
		tok = NewToken(OMEGA, "ω", line, column, l.file)
	case 0:
		tok = NewToken(EOF, "", line, column, l.file)
	case '"':
		lit := l.readString()
		tok = NewToken(STRING, lit, line, column, l.file)
		return tok
	default:
		switch {
		case isLetter(l.ch):
			lit := l.readIdentifier()
			tok = NewToken(LookupIdent(lit), lit, line, column, l.file)
			return tok
		case isDigit(l.ch):
			lit := l.readNumber()
			tok = NewToken(INT, lit, line, column, l.file)
			return tok
		default:
			tok = NewToken(ILLEGAL, string(l.ch), line, column, l.file)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) readIdentifier() string {
	var b strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' || l.ch == '\'' {
		b.WriteRune(l.ch)
		l.readChar()
	}
	return b.String()
}

// readString consumes a double-quoted string literal starting at the
// opening quote and returns its contents, recognizing \" and \\ as
// escapes. An unterminated literal reads to EOF.
func (l *Lexer) readString() string {
	var b strings.Builder
	l.readChar() // consume opening quote
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' && (l.peekChar() == '"' || l.peekChar() == '\\') {
			l.readChar()
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return b.String()
}

func (l *Lexer) readNumber() string {
	var b strings.Builder
	for isDigit(l.ch) {
		b.WriteRune(l.ch)
		l.readChar()
	}
	return b.String()
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}

// LexError reports an illegal character at a specific position.
type LexError struct {
	Message string
	Line    int
	Column  int
	File    string
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}
