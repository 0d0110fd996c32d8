package model

import "time"

// Subscription intervals.
const (
	IntervalDay   = "day"
	IntervalWeek  = "week"
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// Subscription is a recurring charge. The backend materializes a transaction
// and a notification each time NextActive comes around.
type Subscription struct {
	Meta            `gorm:"embedded"`
	Name            string    `json:"name"`
	Icon            string    `json:"icon"`
	Creator         string    `json:"creator"`
	Amount          float64   `json:"amount"`
	SourceAccount   string    `json:"sourceAccount"`
	Category        string    `json:"category"`
	StartDate       time.Time `json:"startDate"`
	Interval        string    `json:"interval"`
	MaxInterval     int       `json:"maxInterval"`
	CurrentInterval int       `json:"currentInterval,omitempty"`
	RemindBefore    int       `json:"remindBefore"`
	NextActive      time.Time `json:"nextActive" gorm:"index"`
}

func (Subscription) Collection() Collection { return Subscriptions }

func (Subscription) TableName() string { return string(Subscriptions) }
