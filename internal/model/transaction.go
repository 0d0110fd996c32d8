package model

import "time"

// Transaction types as the backend understands them.
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Transaction is a single money movement. Source/destination/category are
// free-form id references; they may point at soft-deleted or unknown entities
// and resolve to the "External" sentinel on display.
type Transaction struct {
	Meta               `gorm:"embedded"`
	Creator            string    `json:"creator"`
	Amount             float64   `json:"amount" gorm:"index"`
	DateTime           time.Time `json:"dateTime" gorm:"index"`
	Type               string    `json:"type" gorm:"index"`
	SourceAccount      string    `json:"sourceAccount,omitempty" gorm:"index"`
	DestinationAccount string    `json:"destinationAccount,omitempty" gorm:"index"`
	Category           string    `json:"category,omitempty" gorm:"index"`
	Note               string    `json:"note"`
}

func (Transaction) Collection() Collection { return Transactions }

func (Transaction) TableName() string { return string(Transactions) }
