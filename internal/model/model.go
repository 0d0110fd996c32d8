package model

import "time"

// Collection names a synchronized partition of the local cache and of the
// backend API. The set is closed: every collection the backend serves has a
// typed model and a typed repository in this client.
type Collection string

const (
	Transactions  Collection = "transactions"
	Accounts      Collection = "accounts"
	Savings       Collection = "savings"
	Categories    Collection = "categories"
	Subscriptions Collection = "subscriptions"
	Notifications Collection = "notifications"
)

// AllCollections lists every collection in sync order.
func AllCollections() []Collection {
	return []Collection{Transactions, Accounts, Savings, Categories, Subscriptions, Notifications}
}

// Meta carries the fields every synchronized entity shares. The backend
// assigns the id on creation; deletion is a terminal soft-delete state, the
// record itself is never removed.
type Meta struct {
	ID         string    `json:"_id,omitempty" gorm:"primaryKey"`
	LastUpdate time.Time `json:"lastUpdate,omitempty"`
	IsDeleted  bool      `json:"isDeleted"`
}

// EntityID returns the backend-assigned identifier.
func (m *Meta) EntityID() string { return m.ID }

// SetEntityID stores the identifier the backend returned on add.
func (m *Meta) SetEntityID(id string) { m.ID = id }

// Deleted reports whether the record is soft-deleted.
func (m *Meta) Deleted() bool { return m.IsDeleted }

// Touch refreshes the last-update timestamp. Every mutation must call it.
func (m *Meta) Touch(at time.Time) { m.LastUpdate = at }

// MarkDeleted flips the soft-delete flag and refreshes lastUpdate so the
// deletion shows up in get-since streams.
func (m *Meta) MarkDeleted(at time.Time) {
	m.IsDeleted = true
	m.LastUpdate = at
}

// Doc is the capability every cached entity exposes to the generic store and
// service layers.
type Doc interface {
	EntityID() string
	SetEntityID(string)
	Deleted() bool
	Touch(time.Time)
	MarkDeleted(time.Time)
	Collection() Collection
}
