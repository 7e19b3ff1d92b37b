package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(NewSourceFile("test.mylang", src))
	var toks []Token
	for {
		tok := lex.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return toks
}

func TestLexerLongestMatch(t *testing.T) {
	// "<=" must not lex as "<" followed by "=".
	toks := lexAll(t, "a <= b")
	assert.Equal(t, TokenIdent, toks[0].Type)
	assert.Equal(t, TokenLtEq, toks[1].Type)
	assert.Equal(t, "<=", toks[1].Lexeme)
	assert.Equal(t, TokenIdent, toks[2].Type)
	assert.Equal(t, TokenEOF, toks[3].Type)
}

func TestLexerKeywordReclassification(t *testing.T) {
	toks := lexAll(t, "for forever")
	assert.Equal(t, TokenFor, toks[0].Type)
	assert.Equal(t, TokenIdent, toks[1].Type, "a keyword prefix of a longer identifier must still lex as one identifier")
}

func TestLexerEmptyFileYieldsSingleEOF(t *testing.T) {
	toks := lexAll(t, "")
	assert.Len(t, toks, 1)
	assert.Equal(t, TokenEOF, toks[0].Type)
}

func TestLexerNumericTokenEndingAtDot(t *testing.T) {
	// "1." with no digit after the dot: the integer part lexes as its own
	// token and the dot starts a separate token, per §4.2's longest-match
	// rule over digit runs (a dot not followed by a digit isn't part of the
	// number).
	toks := lexAll(t, "1.foo")
	assert.Equal(t, TokenIntLiteral, toks[0].Type)
	assert.Equal(t, "1", toks[0].Lexeme)
	assert.Equal(t, TokenDot, toks[1].Type)
	assert.Equal(t, TokenIdent, toks[2].Type)
}

func TestLexerFloatLiteral(t *testing.T) {
	toks := lexAll(t, "3.0")
	assert.Equal(t, TokenFloatLiteral, toks[0].Type)
	assert.Equal(t, "3.0", toks[0].Lexeme)
}

func TestLexerStringLiteral(t *testing.T) {
	toks := lexAll(t, `"hello world"`)
	assert.Equal(t, TokenStringLiteral, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Lexeme)
}

func TestLexerBooleanLiteralsReclassifiedFromIdentifiers(t *testing.T) {
	toks := lexAll(t, "true false")
	assert.Equal(t, TokenBoolLiteral, toks[0].Type)
	assert.Equal(t, TokenBoolLiteral, toks[1].Type)
}
