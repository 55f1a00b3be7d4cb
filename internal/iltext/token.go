// Package iltext implements the textual IL reader and canonical serializer
// (spec.md §4.1, §4.2): parse_text(input) → Result<Module, Diagnostic> and
// write_text(module, canonical) → string, with the round-trip contract P1/P2
// binding the two together. Structure (separate lexer/token/parser files,
// golden-comparable writer) follows the teacher's internal/lexer +
// internal/parser split.
package iltext

import "fmt"

// TokenType enumerates the lexical categories of IL text.
type TokenType int

const (
	TokEOF TokenType = iota
	TokIllegal

	TokIdent   // bare word: keywords, opcode mnemonics, type mnemonics, labels
	TokTemp    // %123
	TokGlobal  // @name
	TokInt     // 42, -7
	TokFloat   // 3.14
	TokString  // "escaped string"

	TokLParen   // (
	TokRParen   // )
	TokLBrace   // {
	TokRBrace   // }
	TokColon    // :
	TokComma    // ,
	TokEquals   // =
	TokArrow    // ->
	TokDot      // .
	TokNewline  // \n
)

var tokenNames = map[TokenType]string{
	TokEOF:     "EOF",
	TokIllegal: "ILLEGAL",
	TokIdent:   "IDENT",
	TokTemp:    "TEMP",
	TokGlobal:  "GLOBAL",
	TokInt:     "INT",
	TokFloat:   "FLOAT",
	TokString:  "STRING",
	TokLParen:  "(",
	TokRParen:  ")",
	TokLBrace:  "{",
	TokRBrace:  "}",
	TokColon:   ":",
	TokComma:   ",",
	TokEquals:  "=",
	TokArrow:   "->",
	TokDot:     ".",
	TokNewline: "NEWLINE",
}

func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return "?"
}

// Token is one lexical unit with its source offset (line/col, 1-based).
type Token struct {
	Type TokenType
	Lit  string // literal text; for TokTemp the digits after '%', for TokGlobal the name after '@'

	IntVal    int64
	FloatVal  float64

	Line, Col uint32
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Lit, t.Line, t.Col)
}
