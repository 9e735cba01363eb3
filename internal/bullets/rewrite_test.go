package bullets

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeCompleter) CompleteJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestRewrite_ParsesSuggestions(t *testing.T) {
	completer := &fakeCompleter{response: `[
		{"original": "Led team", "improved": "Led a team of 5 engineers delivering the AWS migration", "reason": "Adds scale and the AWS keyword"},
		{"original": "Wrote scripts", "improved": "Automated deployments with Python, cutting release time 40%", "reason": "Adds metrics and the Python keyword"}
	]`}
	rewriter := NewRewriter(completer, 5, 10, 2000, nil)

	suggestions := rewriter.Rewrite(context.Background(), []string{"Led team", "Wrote scripts"}, "job text", []string{"AWS", "Python"})

	require.Len(t, suggestions, 2)
	assert.Equal(t, "Led team", suggestions[0].Original)
	assert.Contains(t, suggestions[0].Improved, "AWS")
}

func TestRewrite_FiltersMalformedSuggestions(t *testing.T) {
	completer := &fakeCompleter{response: `[
		{"original": "Led team", "improved": "Led a larger team", "reason": "Adds scale"},
		{"original": "Wrote scripts", "improved": ""},
		{"reason": "orphaned"}
	]`}
	rewriter := NewRewriter(completer, 5, 10, 2000, nil)

	suggestions := rewriter.Rewrite(context.Background(), []string{"Led team"}, "job text", nil)

	require.Len(t, suggestions, 1)
	assert.Equal(t, "Led team", suggestions[0].Original)
}

func TestRewrite_ErrorYieldsEmpty(t *testing.T) {
	rewriter := NewRewriter(&fakeCompleter{err: errors.New("quota exhausted")}, 5, 10, 2000, nil)

	suggestions := rewriter.Rewrite(context.Background(), []string{"Led team of engineers"}, "job text", nil)

	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestRewrite_NonArrayResponseYieldsEmpty(t *testing.T) {
	rewriter := NewRewriter(&fakeCompleter{response: `{"original": "x"}`}, 5, 10, 2000, nil)

	suggestions := rewriter.Rewrite(context.Background(), []string{"Led team of engineers"}, "job text", nil)

	assert.Empty(t, suggestions)
}

func TestRewrite_NilCompleterYieldsEmpty(t *testing.T) {
	rewriter := NewRewriter(nil, 5, 10, 2000, nil)

	suggestions := rewriter.Rewrite(context.Background(), []string{"Led team of engineers"}, "job text", nil)

	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestRewrite_AppliesLimits(t *testing.T) {
	completer := &fakeCompleter{response: `[]`}
	rewriter := NewRewriter(completer, 2, 3, 10, nil)

	bullets := []string{"first bullet text", "second bullet text", "third bullet text"}
	missing := []string{"kw1", "kw2", "kw3", "kw4"}
	rewriter.Rewrite(context.Background(), bullets, "a job description far beyond the limit", missing)

	require.Len(t, completer.prompts, 1)
	prompt := completer.prompts[0]
	assert.NotContains(t, prompt, "third bullet text")
	assert.NotContains(t, prompt, "kw4")
	assert.Contains(t, prompt, "a job desc")
	assert.False(t, strings.Contains(prompt, "a job description far"))
}
