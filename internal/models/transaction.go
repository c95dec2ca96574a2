package models

import "github.com/shopspring/decimal"

// DateLayout is the calendar date format stored in tasks.date.
const DateLayout = "2006-01-02"

// Task is a single income or expense entry. The table keeps its historical
// name; the API calls these transactions.
//
// Amount is signed: negative for expenses, zero or positive for income. Type
// stores the same information explicitly and the two must agree.
type Task struct {
	Base
	Category    string          `gorm:"not null" json:"category"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Type        Kind            `gorm:"not null" json:"type"`
	Date        string          `gorm:"size:10;not null;index" json:"date"`
	User        string          `gorm:"column:user;not null" json:"user"`
}

// IsExpense reports whether the amount is negative.
func (t Task) IsExpense() bool {
	return t.Amount.IsNegative()
}
