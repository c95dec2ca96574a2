package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"financehub/internal/aggregate"
	"financehub/internal/catalog"
	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/store"
)

// dateLayouts are the inputs normalizeDate understands, most specific last.
var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// normalizeDate reduces s to YYYY-MM-DD.
func normalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(models.DateLayout), true
		}
	}
	return "", false
}

// maxAmount is the first magnitude a NUMERIC(14,2) column cannot hold.
var maxAmount = decimal.New(1, 12)

// amountProblem explains why d cannot be stored exactly, or returns "".
func amountProblem(d decimal.Decimal) string {
	if !d.Equal(d.Truncate(2)) {
		return "Amount must have at most 2 decimal places"
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return "Amount is out of range"
	}
	return ""
}

// transactionService validates and persists transactions.
type transactionService struct {
	tasks      *store.TaskStore
	categories *store.CategoryStore
	catalog    *catalog.Catalog
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, cat *catalog.Catalog) TransactionServicer {
	return &transactionService{
		tasks:      store.NewTaskStore(db),
		categories: store.NewCategoryStore(db),
		catalog:    cat,
	}
}

// Create validates in and stores it as a new transaction.
func (s *transactionService) Create(in TaskInput, callerID string) (*models.Task, error) {
	task, err := s.build(in, callerID, false)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(task); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return task, nil
}

// List returns every transaction matching q.
func (s *transactionService) List(q ListQuery) ([]models.Task, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	tasks = aggregate.Apply(tasks, aggregate.Filter{
		Search:   q.Search,
		Category: q.Category,
		Kind:     q.Kind,
	})
	if q.Sort != "" || q.Order != "" {
		tasks = aggregate.Sort(tasks, aggregate.SortKey(q.Sort), aggregate.SortOrder(q.Order))
	}
	return tasks, nil
}

// Summary rolls up every stored transaction.
func (s *transactionService) Summary() (*Summary, error) {
	tasks, err := s.tasks.List()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	return &Summary{
		Totals:     aggregate.ComputeTotals(tasks),
		ByCategory: aggregate.ByCategory(tasks),
		ByMonth:    aggregate.ByMonth(tasks),
	}, nil
}

// Get retrieves a transaction by ID
func (s *transactionService) Get(id string) (*models.Task, error) {
	task, err := s.tasks.Get(id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrTaskNotFound)
	}
	return task, nil
}

// Update overwrites every field of transaction id with in.
func (s *transactionService) Update(id string, in TaskInput, callerID string) (*models.Task, error) {
	task, err := s.build(in, callerID, true)
	if err != nil {
		return nil, err
	}
	task.ID = id

	found, err := s.tasks.Update(task)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if !found {
		return nil, apperrors.ErrTaskNotFound
	}
	return s.Get(id)
}

// Delete removes transaction id.
func (s *transactionService) Delete(id string) error {
	found, err := s.tasks.Delete(id)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	if !found {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// build turns in into a task, resolving its kind and enforcing the sign and
// label rules. Descriptions under a kind-literal label are checked against
// the allow-list only on update.
func (s *transactionService) build(in TaskInput, callerID string, update bool) (*models.Task, error) {
	label := strings.TrimSpace(in.Category)
	if label == "" || strings.TrimSpace(in.Date) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Category and date are required")
	}
	date, ok := normalizeDate(in.Date)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date")
	}

	if msg := amountProblem(in.Amount); msg != "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, msg)
	}

	kind, literal, err := resolveKind(label, in)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if literal && update && !s.catalog.Allows(kind, description) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+string(kind)+" description")
	}
	if !literal && callerID != "" {
		if err := s.checkLabel(callerID, label); err != nil {
			return nil, err
		}
	}

	return &models.Task{
		Category:    label,
		Description: description,
		Amount:      in.Amount,
		Type:        kind,
		Date:        date,
		User:        strings.TrimSpace(in.User),
	}, nil
}

// checkLabel accepts labels naming one of the caller's categories or a
// system default description.
func (s *transactionService) checkLabel(userID, label string) error {
	if s.catalog.Known(label) {
		return nil
	}
	cats, err := s.categories.ListForUser(userID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	for _, c := range cats {
		if c.Name == label {
			return nil
		}
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown category")
}

// resolveKind picks the transaction kind: a label that is itself a kind wins,
// then the declared type, then the amount sign. The amount must agree with
// the result. literal reports whether the label named the kind.
func resolveKind(label string, in TaskInput) (kind models.Kind, literal bool, err error) {
	switch {
	case models.Kind(label).Valid():
		kind, literal = models.Kind(label), true
	case in.Type != "":
		if !in.Type.Valid() {
			return "", false, apperrors.WithMessage(apperrors.ErrInvalidInput, "Type must be income or expense")
		}
		kind = in.Type
	case in.Amount.IsNegative():
		kind = models.KindExpense
	default:
		kind = models.KindIncome
	}

	if kind == models.KindExpense && !in.Amount.IsNegative() {
		return "", false, apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense amounts must be negative")
	}
	if kind == models.KindIncome && in.Amount.IsNegative() {
		return "", false, apperrors.WithMessage(apperrors.ErrInvalidInput, "Income amounts must not be negative")
	}
	return kind, literal, nil
}

func (q ListQuery) validate() error {
	switch q.Kind {
	case "", "all", string(models.KindIncome), string(models.KindExpense):
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be all, income or expense")
	}
	switch aggregate.SortKey(q.Sort) {
	case "", aggregate.SortByDate, aggregate.SortByCategory, aggregate.SortByAmount:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "sort must be date, category or amount")
	}
	switch aggregate.SortOrder(q.Order) {
	case "", aggregate.Asc, aggregate.Desc:
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "order must be asc or desc")
	}
	return nil
}
