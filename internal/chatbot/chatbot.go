// Package chatbot turns a free-form sentence ("coffee 3.50 from checking")
// into a transaction draft using Gemini. The model is an opaque collaborator
// behind a one-method interface so everything here is testable without it.
package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Somethings1/fintrack-sub000/internal/model"
)

// DefaultModel is the Gemini model used for parsing.
const DefaultModel = "gemini-2.0-flash"

// Option is an id/name pair offered to the model. It must pick from these,
// never invent accounts or categories.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Problem is the structured "I could not map that" answer: the model names
// the missing account or category instead of guessing.
type Problem struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Draft is the classifier result. Problem is nil when every reference was
// mapped to a known id.
type Draft struct {
	Transaction model.Transaction `json:"transaction"`
	Problem     *Problem          `json:"error"`
}

// Generator produces text for a prompt. Satisfied by the Gemini client;
// stubbed in tests.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Parser maps sentences to transaction drafts.
type Parser struct {
	gen Generator
}

func NewParser(gen Generator) *Parser { return &Parser{gen: gen} }

// NewGeminiParser builds a Parser on the real Gemini client. Credentials come
// from the environment (GEMINI_API_KEY), the same way the rest of the SDK is
// configured.
func NewGeminiParser(ctx context.Context) (*Parser, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewParser(&geminiGenerator{client: client, model: DefaultModel}), nil
}

const promptTemplate = `You are a financial assistant.

You receive a sentence from the user and return a structured JSON object like this:

{
  "transaction": {
    "amount": number,
    "type": "income" | "expense" | "transfer",
    "sourceAccount": string (ID, optional),
    "destinationAccount": string (ID, optional),
    "category": string (ID, optional),
    "note": string
  },
  "error": null | {
    "type": "account" | "category",
    "name": string,
    "message": string
  }
}

You MUST always return both "transaction" and "error". Accounts and categories
are provided as pairs of their ID and name. Find the suitable account and
category and put their IDs in the JSON result. Use only what is provided,
don't make up new accounts or categories; if something is missing, say so in
"error".

Here are the accounts:
%s

And here are the categories:
%s

Now, convert this sentence:
%q
`

// Parse asks the model to classify input against the known accounts and
// categories. The draft's dateTime is set to now; the caller fills in the
// creator before adding it.
func (p *Parser) Parse(ctx context.Context, input string, accounts, categories []Option) (*Draft, error) {
	accJSON, err := json.Marshal(accounts)
	if err != nil {
		return nil, err
	}
	catJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}
	text, err := p.gen.Generate(ctx, fmt.Sprintf(promptTemplate, accJSON, catJSON, input))
	if err != nil {
		return nil, err
	}
	draft, err := decodeDraft(text)
	if err != nil {
		return nil, err
	}
	if draft.Transaction.DateTime.IsZero() {
		draft.Transaction.DateTime = time.Now().UTC()
	}
	return draft, nil
}

// decodeDraft strips markdown code fences the model tends to wrap JSON in,
// then unmarshals.
func decodeDraft(text string) (*Draft, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var draft Draft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, fmt.Errorf("model response is not the expected JSON: %w", err)
	}
	if draft.Transaction.Amount == 0 && draft.Problem == nil {
		return nil, errors.New("model returned neither a transaction nor an error")
	}
	return &draft, nil
}
