package services

import (
	"io"

	"github.com/shopspring/decimal"

	"financehub/internal/aggregate"
	"financehub/internal/models"
)

// UserServicer defines the contract for registration and login.
type UserServicer interface {
	Register(username, email, password string) (*models.User, error)
	Login(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// CategoryInput is one entry of a replace-all request.
type CategoryInput struct {
	Name  string
	Color string
	Type  models.Kind
}

// DefaultDescriptions are the system allow-lists.
type DefaultDescriptions struct {
	ExpenseDescriptions []string `json:"expenseDescriptions"`
	IncomeDescriptions  []string `json:"incomeDescriptions"`
}

// CategoryServicer defines the contract for per-user category resolution.
type CategoryServicer interface {
	GetCategories(userID string) (*models.CategorySet, error)
	SeedDefaults(userID string) error
	ReplaceAll(userID string, categories []CategoryInput) error
	Defaults() DefaultDescriptions
}

// TaskInput carries the writable fields of a transaction. Type is optional;
// when empty the kind is taken from the category label or the amount sign.
type TaskInput struct {
	Category    string
	Description string
	Amount      decimal.Decimal
	Type        models.Kind
	Date        string
	User        string
}

// ListQuery narrows and orders a transaction listing. Zero values list
// everything newest first.
type ListQuery struct {
	Search   string
	Category string
	Kind     string
	Sort     string
	Order    string
}

// Summary is the dashboard rollup of every stored transaction.
type Summary struct {
	Totals     aggregate.Totals           `json:"totals"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
	ByMonth    []aggregate.MonthTotal     `json:"byMonth"`
}

// TransactionServicer defines the contract for transaction CRUD. callerID is
// the authenticated user, or empty for anonymous requests; when set, category
// labels are checked against that user's categories.
type TransactionServicer interface {
	Create(in TaskInput, callerID string) (*models.Task, error)
	List(q ListQuery) ([]models.Task, error)
	Summary() (*Summary, error)
	Get(id string) (*models.Task, error)
	Update(id string, in TaskInput, callerID string) (*models.Task, error)
	Delete(id string) error
}

// TransferServicer defines the contract for CSV import and export.
type TransferServicer interface {
	ImportCSV(r io.Reader) (int, error)
	ExportCSV(w io.Writer) error
}
