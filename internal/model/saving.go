package model

import "time"

// Saving is a savings goal: a balance working towards Goal by GoalDate.
type Saving struct {
	Meta        `gorm:"embedded"`
	Owner       string    `json:"owner"`
	Balance     float64   `json:"balance"`
	Icon        string    `json:"icon"`
	Name        string    `json:"name"`
	Goal        float64   `json:"goal,omitempty"`
	CreatedDate time.Time `json:"createdDate"`
	GoalDate    time.Time `json:"goalDate"`
}

func (Saving) Collection() Collection { return Savings }

func (Saving) TableName() string { return string(Savings) }
