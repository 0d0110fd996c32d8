package model

// Account is a spending account the user owns. Balance is maintained by the
// backend; the client treats it as a cached display value.
type Account struct {
	Meta    `gorm:"embedded"`
	Owner   string  `json:"owner"`
	Balance float64 `json:"balance"`
	Icon    string  `json:"icon"`
	Name    string  `json:"name"`
}

func (Account) Collection() Collection { return Accounts }

func (Account) TableName() string { return string(Accounts) }
