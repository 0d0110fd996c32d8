package chatbot

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Somethings1/fintrack-sub000/internal/model"
)

// stubGenerator returns a canned answer and records the prompt.
type stubGenerator struct {
	answer string
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.answer, nil
}

func TestParse_DecodesFencedJSON(t *testing.T) {
	gen := &stubGenerator{answer: "```json\n" + `{
		"transaction": {"amount": 3.5, "type": "expense", "sourceAccount": "a1", "category": "c1", "note": "coffee"},
		"error": null
	}` + "\n```"}
	p := NewParser(gen)

	draft, err := p.Parse(context.Background(), "coffee 3.50 from checking",
		[]Option{{ID: "a1", Name: "Checking"}},
		[]Option{{ID: "c1", Name: "Food"}})
	require.NoError(t, err)
	require.Nil(t, draft.Problem)
	assert.Equal(t, 3.5, draft.Transaction.Amount)
	assert.Equal(t, model.TypeExpense, draft.Transaction.Type)
	assert.Equal(t, "a1", draft.Transaction.SourceAccount)
	assert.False(t, draft.Transaction.DateTime.IsZero(), "dateTime defaults to now")

	// the prompt carries the known options and the sentence
	assert.Contains(t, gen.prompt, `"Checking"`)
	assert.Contains(t, gen.prompt, `"Food"`)
	assert.Contains(t, gen.prompt, "coffee 3.50 from checking")
}

func TestParse_UnfencedJSONWorksToo(t *testing.T) {
	gen := &stubGenerator{answer: `{"transaction":{"amount":1,"type":"income"},"error":null}`}
	draft, err := NewParser(gen).Parse(context.Background(), "got a dollar", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1), draft.Transaction.Amount)
}

func TestParse_ModelReportsMissingAccount(t *testing.T) {
	gen := &stubGenerator{answer: `{
		"transaction": {"amount": 0, "type": "", "note": ""},
		"error": {"type": "account", "name": "Revolut", "message": "no account named Revolut"}
	}`}
	draft, err := NewParser(gen).Parse(context.Background(), "5 eur from revolut", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, draft.Problem)
	assert.Equal(t, "account", draft.Problem.Type)
	assert.Equal(t, "Revolut", draft.Problem.Name)
}

func TestParse_GarbageAnswerIsAnError(t *testing.T) {
	gen := &stubGenerator{answer: "I'm sorry, I can't help with that."}
	_, err := NewParser(gen).Parse(context.Background(), "whatever", nil, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not the expected JSON"))
}

func TestParse_EmptyAnswerWithoutProblemIsAnError(t *testing.T) {
	gen := &stubGenerator{answer: `{"transaction":{"amount":0},"error":null}`}
	_, err := NewParser(gen).Parse(context.Background(), "", nil, nil)
	require.Error(t, err)
}
