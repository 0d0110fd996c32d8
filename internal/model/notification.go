package model

import "time"

// NotificationType tags what a notification refers to.
type NotificationType string

const (
	NoticeTransaction  NotificationType = "transaction"
	NoticeOverBudget   NotificationType = "over_budget"
	NoticeFinishIncome NotificationType = "finish_income"
	NoticeSubscription NotificationType = "subscription"
)

// Notification is a server-scheduled message for the user. ReferenceId points
// at the entity that caused it (subscription, transaction, ...).
type Notification struct {
	Meta        `gorm:"embedded"`
	UserID      string           `json:"userId"`
	Type        NotificationType `json:"type"`
	ReferenceID string           `json:"referenceId"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	ScheduledAt time.Time        `json:"scheduledAt" gorm:"index"`
}

func (Notification) Collection() Collection { return Notifications }

func (Notification) TableName() string { return string(Notifications) }
