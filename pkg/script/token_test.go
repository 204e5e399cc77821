package script_test

import (
	"testing"

	"github.com/dialoguebranch/dlb-core-go/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string) []script.Token {
	t.Helper()
	tok := script.NewTokenizer(src)
	var out []script.Token
	for {
		tk, err := tok.Next()
		require.NoError(t, err)
		if tk.Type == script.TokenEOF {
			return out
		}
		out = append(out, tk)
	}
}

func TestTokenizerPlainText(t *testing.T) {
	toks := allTokens(t, "Hello there")
	require.Len(t, toks, 1)
	assert.Equal(t, script.TokenText, toks[0].Type)
	assert.Equal(t, "Hello there", toks[0].Literal)
}

func TestTokenizerVariable(t *testing.T) {
	toks := allTokens(t, "Hi $name!")
	require.Len(t, toks, 3)
	assert.Equal(t, script.TokenText, toks[0].Type)
	assert.Equal(t, "Hi ", toks[0].Literal)
	assert.Equal(t, script.TokenVariable, toks[1].Type)
	assert.Equal(t, "name", toks[1].Literal)
	assert.Equal(t, script.TokenText, toks[2].Type)
	assert.Equal(t, "!", toks[2].Literal)
}

func TestTokenizerCommandWhitespaceIsSeparator(t *testing.T) {
	toks := allTokens(t, "<<set $x = 1>>")
	require.Len(t, toks, 6)
	assert.Equal(t, script.TokenCommandStart, toks[0].Type)
	assert.Equal(t, "set", toks[1].Literal)
	assert.Equal(t, script.TokenVariable, toks[2].Type)
	assert.Equal(t, "x", toks[2].Literal)
	assert.Equal(t, "=", toks[3].Literal)
	assert.Equal(t, "1", toks[4].Literal)
	assert.Equal(t, script.TokenCommandEnd, toks[5].Type)
}

func TestTokenizerPipeOutsideReplyIsLiteral(t *testing.T) {
	toks := allTokens(t, "a|b")
	require.Len(t, toks, 1)
	assert.Equal(t, "a|b", toks[0].Literal)
}

func TestTokenizerReplyStructure(t *testing.T) {
	toks := allTokens(t, "[[Yes|Start]]")
	types := make([]script.TokenType, len(toks))
	for i, tk := range toks {
		types[i] = tk.Type
	}
	assert.Equal(t, []script.TokenType{
		script.TokenReplyStart, script.TokenText, script.TokenReplySeparator,
		script.TokenText, script.TokenReplyEnd,
	}, types)
}

func TestTokenizerEscapedBracketIsLiteral(t *testing.T) {
	toks := allTokens(t, `a \<\< b`)
	require.Len(t, toks, 1)
	assert.Equal(t, "a << b", toks[0].Literal)
}

func TestTokenizerQuotedStringOnlyInCommand(t *testing.T) {
	toks := allTokens(t, `<<action say "hi there">>`)
	require.Len(t, toks, 5)
	assert.Equal(t, script.TokenQuotedString, toks[3].Type)
	assert.Equal(t, "hi there", toks[3].Literal)
}

func TestTokenizerCRLFNormalized(t *testing.T) {
	tok := script.NewTokenizer("a\r\nb")
	first, err := tok.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", first.Literal)
	nl, err := tok.Next()
	require.NoError(t, err)
	assert.Equal(t, script.TokenNewline, nl.Type)
}
