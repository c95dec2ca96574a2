package services

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"financehub/internal/catalog"
	"financehub/internal/csvio"
	apperrors "financehub/internal/errors"
	"financehub/internal/logger"
	"financehub/internal/models"
	"financehub/internal/store"
)

// transferService moves transactions in and out as CSV.
type transferService struct {
	tasks   *store.TaskStore
	catalog *catalog.Catalog
	now     func() time.Time
}

// NewTransferService creates a new TransferServicer.
func NewTransferService(db *gorm.DB, cat *catalog.Catalog) TransferServicer {
	return &transferService{
		tasks:   store.NewTaskStore(db),
		catalog: cat,
		now:     time.Now,
	}
}

// ImportCSV inserts every acceptable row of r and returns how many were
// stored. Rows are dropped when their category column is not a kind, their
// description is not on that kind's allow-list, or their amount or date does
// not parse. Amounts with more than two decimal places or out of range are
// dropped too, as are expense rows with a zero amount, since an expense must
// be negative. Only an unreadable header fails the whole import.
func (s *transferService) ImportCSV(r io.Reader) (int, error) {
	reader, err := csvio.NewReader(r)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid CSV file"), err)
	}

	log := logger.Get()
	var accepted []models.Task
	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Debugw("skipping malformed csv row", "line", row.Line, "error", err)
			continue
		}
		task, reason := s.rowToTask(row)
		if reason != "" {
			log.Debugw("skipping csv row", "line", row.Line, "reason", reason)
			continue
		}
		accepted = append(accepted, task)
	}

	if len(accepted) == 0 {
		return 0, nil
	}

	inserted, err := s.tasks.BulkInsert(accepted)
	if err != nil {
		log.Warnw("csv import partially failed",
			"accepted", len(accepted),
			"inserted", inserted,
			"error", err,
		)
		if inserted == 0 {
			return 0, apperrors.Wrap(apperrors.ErrStore, err)
		}
	}
	return inserted, nil
}

// ExportCSV writes every transaction to w. The category column carries the
// transaction kind so that the file can be imported again.
func (s *transferService) ExportCSV(w io.Writer) error {
	tasks, err := s.tasks.List()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}

	writer, err := csvio.NewWriter(w)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	for _, t := range tasks {
		row := csvio.Row{
			Category:    string(t.Type),
			Description: t.Description,
			Amount:      t.Amount.String(),
			Date:        t.Date,
			User:        t.User,
		}
		if err := writer.Write(row); err != nil {
			return apperrors.Wrap(apperrors.ErrStore, err)
		}
	}
	if err := writer.Flush(); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// rowToTask converts an imported row, or explains why it is rejected.
func (s *transferService) rowToTask(row csvio.Row) (models.Task, string) {
	kind := models.Kind(strings.ToLower(row.Category))
	if !kind.Valid() {
		return models.Task{}, "category is not income or expense"
	}
	if !s.catalog.Allows(kind, row.Description) {
		return models.Task{}, "description not allowed"
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(row.Amount, ",", ""))
	if err != nil {
		return models.Task{}, "invalid amount"
	}
	if msg := amountProblem(amount); msg != "" {
		return models.Task{}, msg
	}
	amount = amount.Abs()
	if kind == models.KindExpense {
		if amount.IsZero() {
			return models.Task{}, "expense amount is zero"
		}
		amount = amount.Neg()
	}

	date := s.now().Format(models.DateLayout)
	if row.Date != "" {
		d, ok := normalizeDate(row.Date)
		if !ok {
			return models.Task{}, "invalid date"
		}
		date = d
	}

	return models.Task{
		Category:    string(kind),
		Description: row.Description,
		Amount:      amount,
		Type:        kind,
		Date:        date,
		User:        row.User,
	}, ""
}
