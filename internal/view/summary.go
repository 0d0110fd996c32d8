package view

import (
	"context"
	"sort"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/Somethings1/fintrack-sub000/internal/model"
	"github.com/Somethings1/fintrack-sub000/internal/repo"
)

// CategorySpend is one row of the monthly budget overview.
type CategorySpend struct {
	CategoryID string
	Name       string
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	OverBudget bool
}

// AccountBalance is one row of the accounts overview.
type AccountBalance struct {
	AccountID string
	Name      string
	Balance   decimal.Decimal
}

// Summary derives budget and balance overviews from the cache. Sums are done
// in decimal: the wire format carries float64 amounts, but a month of
// expenses added up in floats drifts.
type Summary struct {
	transactions repo.Collection[*model.Transaction]
	accounts     repo.Collection[*model.Account]
	categories   repo.Collection[*model.Category]
	currency     string
}

func NewSummary(
	transactions repo.Collection[*model.Transaction],
	accounts repo.Collection[*model.Account],
	categories repo.Collection[*model.Category],
	currency string,
) *Summary {
	if currency == "" {
		currency = money.USD
	}
	return &Summary{transactions: transactions, accounts: accounts, categories: categories, currency: currency}
}

// MonthlySpend totals expense transactions per category for the given month
// and compares each against the category budget. Categories without a budget
// are included with Budget zero and never flagged over.
func (s *Summary) MonthlySpend(ctx context.Context, year int, month time.Month) ([]CategorySpend, error) {
	cats, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactions.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	spent := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Deleted() || tx.Type != model.TypeExpense || tx.Category == "" {
			continue
		}
		if tx.DateTime.Before(start) || !tx.DateTime.Before(end) {
			continue
		}
		spent[tx.Category] = spent[tx.Category].Add(decimal.NewFromFloat(tx.Amount))
	}

	var rows []CategorySpend
	for _, cat := range cats {
		if cat.Deleted() {
			continue
		}
		budget := decimal.NewFromFloat(cat.Budget)
		row := CategorySpend{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Budget:     budget,
			Spent:      spent[cat.ID],
		}
		row.OverBudget = budget.IsPositive() && row.Spent.GreaterThan(budget)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Spent.GreaterThan(rows[j].Spent) })
	return rows, nil
}

// AccountBalances lists live accounts with their cached balances.
func (s *Summary) AccountBalances(ctx context.Context) ([]AccountBalance, error) {
	accs, err := s.accounts.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var rows []AccountBalance
	for _, acc := range accs {
		if acc.Deleted() {
			continue
		}
		rows = append(rows, AccountBalance{
			AccountID: acc.ID,
			Name:      acc.Name,
			Balance:   decimal.NewFromFloat(acc.Balance),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

// FormatFloat renders a wire-format float amount in the configured display
// currency.
func (s *Summary) FormatFloat(f float64) string {
	return s.FormatAmount(decimal.NewFromFloat(f))
}

// FormatAmount renders an amount in the configured display currency.
func (s *Summary) FormatAmount(d decimal.Decimal) string {
	cur := money.GetCurrency(s.currency)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
