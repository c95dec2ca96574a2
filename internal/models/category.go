package models

// Kind discriminates income from expense for categories and transactions.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// UserCategory is a category owned by a single user.
type UserCategory struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Color  string `gorm:"not null" json:"color"`
	Type   Kind   `gorm:"not null" json:"type"`
}

// TableName keeps the historical table name.
func (UserCategory) TableName() string { return "user_categories" }

// CategoryView is the client-facing shape of a category.
type CategoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategorySet groups a user's categories by kind.
type CategorySet struct {
	IncomeCategories  []CategoryView `json:"incomeCategories"`
	ExpenseCategories []CategoryView `json:"expenseCategories"`
}
