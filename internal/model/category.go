package model

// Category groups transactions for budgeting. Budget is the monthly limit;
// zero means no budget set.
type Category struct {
	Meta   `gorm:"embedded"`
	Owner  string  `json:"owner"`
	Type   string  `json:"type"`
	Icon   string  `json:"icon"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget,omitempty"`
}

func (Category) Collection() Collection { return Categories }

func (Category) TableName() string { return string(Categories) }
