package view

import (
	"context"
	"time"

	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
)

// memCollection is an in-memory repo.Collection that counts reads, so tests
// can observe caching behavior.
type memCollection[T any, P interface {
	*T
	model.Doc
}] struct {
	recs     map[string]P
	getCalls int
	allCalls int
}

func newMemCollection[T any, P interface {
	*T
	model.Doc
}](recs ...P) *memCollection[T, P] {
	m := &memCollection[T, P]{recs: make(map[string]P)}
	for _, r := range recs {
		m.recs[r.EntityID()] = r
	}
	return m
}

func (m *memCollection[T, P]) GetAll(context.Context) ([]P, error) {
	m.allCalls++
	out := make([]P, 0, len(m.recs))
	for _, r := range m.recs {
		out = append(out, r)
	}
	return out, nil
}

func (m *memCollection[T, P]) GetByID(_ context.Context, id string) (P, error) {
	m.getCalls++
	if r, ok := m.recs[id]; ok {
		return r, nil
	}
	var zero P
	return zero, repo.ErrNotFound
}

func (m *memCollection[T, P]) Put(_ context.Context, doc P) error {
	m.recs[doc.EntityID()] = doc
	return nil
}

func (m *memCollection[T, P]) SoftDelete(_ context.Context, id string) error {
	if r, ok := m.recs[id]; ok {
		r.MarkDeleted(time.Now().UTC())
	}
	return nil
}

func account(id, name string) *model.Account {
	a := &model.Account{Name: name}
	a.SetEntityID(id)
	return a
}

func category(id, name string, budget float64) *model.Category {
	c := &model.Category{Name: name, Budget: budget, Type: model.TypeExpense}
	c.SetEntityID(id)
	return c
}

func transaction(id string, amount float64, txType, src, dst, cat string, at time.Time) *model.Transaction {
	t := &model.Transaction{Amount: amount, Type: txType, SourceAccount: src, DestinationAccount: dst, Category: cat, DateTime: at}
	t.SetEntityID(id)
	return t
}
