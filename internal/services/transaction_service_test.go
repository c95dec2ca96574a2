package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"financehub/internal/catalog"
	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/testutil"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreateTransaction(t *testing.T) {
	t.Run("kind_from_sign", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())

		task, err := svc.Create(TaskInput{Category: "Food", Amount: amount("-12.50"), Date: "2024-03-05T18:30:00Z"}, "")
		testutil.AssertNoError(t, err)

		if task.Type != models.KindExpense {
			t.Errorf("expected expense, got %s", task.Type)
		}
		if task.Date != "2024-03-05" {
			t.Errorf("expected normalized date, got %s", task.Date)
		}
		if task.Description != "" {
			t.Errorf("expected empty description, got %q", task.Description)
		}
	})

	t.Run("required_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())

		_, err := svc.Create(TaskInput{Amount: amount("5"), Date: "2024-01-01"}, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Create(TaskInput{Category: "Food", Amount: amount("5")}, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.Create(TaskInput{Category: "Food", Amount: amount("5"), Date: "yesterday"}, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("sign_must_match_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())

		_, err := svc.Create(TaskInput{Category: "Food", Type: models.KindExpense, Amount: amount("10"), Date: "2024-01-01"}, "")
		assertMessage(t, err, "Expense amounts must be negative")

		_, err = svc.Create(TaskInput{Category: "Pay", Type: models.KindIncome, Amount: amount("-10"), Date: "2024-01-01"}, "")
		assertMessage(t, err, "Income amounts must not be negative")
	})

	t.Run("kind_literal_without_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())

		task, err := svc.Create(TaskInput{Category: "income", Amount: amount("50"), Date: "2024-01-02"}, "")
		testutil.AssertNoError(t, err)
		if task.Type != models.KindIncome || task.Description != "" {
			t.Errorf("unexpected task %+v", task)
		}

		task, err = svc.Create(TaskInput{Category: "expense", Description: "Coffee", Amount: amount("-3"), Date: "2024-01-02"}, "")
		testutil.AssertNoError(t, err)
		if task.Type != models.KindExpense {
			t.Errorf("expected expense, got %s", task.Type)
		}
	})

	t.Run("amount_must_fit_column", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())

		_, err := svc.Create(TaskInput{Category: "Food", Type: models.KindExpense, Amount: amount("-0.004"), Date: "2024-01-01"}, "")
		assertMessage(t, err, "Amount must have at most 2 decimal places")

		_, err = svc.Create(TaskInput{Category: "Food", Amount: amount("-1.239"), Date: "2024-01-01"}, "")
		assertMessage(t, err, "Amount must have at most 2 decimal places")

		_, err = svc.Create(TaskInput{Category: "Pay", Amount: amount("1000000000000"), Date: "2024-01-01"}, "")
		assertMessage(t, err, "Amount is out of range")

		task, err := svc.Create(TaskInput{Category: "Pay", Amount: amount("999999999999.99"), Date: "2024-01-01"}, "")
		testutil.AssertNoError(t, err)
		if !task.Amount.Equal(amount("999999999999.99")) {
			t.Errorf("unexpected amount %s", task.Amount)
		}

		_, err = svc.Create(TaskInput{Category: "Food", Amount: amount("-12.500"), Date: "2024-01-01"}, "")
		testutil.AssertNoError(t, err)
	})

	t.Run("caller_labels", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.KindExpense)

		_, err := svc.Create(TaskInput{Category: cat.Name, Amount: amount("-3"), Date: "2024-01-01"}, user.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.Create(TaskInput{Category: "Groceries / Food", Amount: amount("-3"), Date: "2024-01-01"}, user.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.Create(TaskInput{Category: "Nonsense", Amount: amount("-3"), Date: "2024-01-01"}, user.ID)
		assertMessage(t, err, "Unknown category")

		_, err = svc.Create(TaskInput{Category: "Nonsense", Amount: amount("-3"), Date: "2024-01-01"}, "")
		testutil.AssertNoError(t, err)
	})
}

func TestListTransactions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, catalog.Default())

	rent := testutil.CreateTestTask(t, db, "Rent", "March rent", "-900", "2024-03-01")
	pay := testutil.CreateTestTask(t, db, "Salary", "Paycheck", "2500", "2024-02-28")
	food := testutil.CreateTestTask(t, db, "Food", "Lunch", "-15", "2024-03-10")

	t.Run("default_newest_first", func(t *testing.T) {
		list, err := svc.List(ListQuery{})
		testutil.AssertNoError(t, err)
		want := []string{food.ID, rent.ID, pay.ID}
		for i, id := range want {
			if list[i].ID != id {
				t.Fatalf("position %d: expected %s, got %s", i, id, list[i].ID)
			}
		}
	})

	t.Run("filter_kind", func(t *testing.T) {
		list, err := svc.List(ListQuery{Kind: "income"})
		testutil.AssertNoError(t, err)
		if len(list) != 1 || list[0].ID != pay.ID {
			t.Errorf("expected only the paycheck, got %d rows", len(list))
		}
	})

	t.Run("search_and_sort", func(t *testing.T) {
		list, err := svc.List(ListQuery{Search: "r", Sort: "amount", Order: "asc"})
		testutil.AssertNoError(t, err)
		if len(list) != 2 || list[0].ID != rent.ID || list[1].ID != pay.ID {
			t.Errorf("unexpected order: %+v", list)
		}
	})

	t.Run("invalid_query", func(t *testing.T) {
		_, err := svc.List(ListQuery{Sort: "color"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.List(ListQuery{Kind: "transfer"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, catalog.Default())

	testutil.CreateTestTask(t, db, "Salary", "Paycheck", "1000", "2024-01-15")
	testutil.CreateTestTask(t, db, "Food", "Dinner", "-40", "2024-01-20")
	testutil.CreateTestTask(t, db, "Food", "Lunch", "-10", "2024-02-02")

	sum, err := svc.Summary()
	testutil.AssertNoError(t, err)

	if !sum.Totals.Income.Equal(amount("1000")) || !sum.Totals.Expenses.Equal(amount("50")) || !sum.Totals.Balance.Equal(amount("950")) {
		t.Errorf("unexpected totals %+v", sum.Totals)
	}
	if !sum.ByCategory["Food"].Equal(amount("50")) || len(sum.ByCategory) != 1 {
		t.Errorf("unexpected byCategory %v", sum.ByCategory)
	}
	if len(sum.ByMonth) != 2 || sum.ByMonth[0].Month != "2024-01" || !sum.ByMonth[0].Total.Equal(amount("1040")) {
		t.Errorf("unexpected byMonth %+v", sum.ByMonth)
	}
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("full_field_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())
		task := testutil.CreateTestTask(t, db, "Food", "Lunch", "-15", "2024-03-10")

		updated, err := svc.Update(task.ID, TaskInput{Category: "Salary", Description: "Bonus", Amount: amount("300"), Date: "2024-03-11"}, "")
		testutil.AssertNoError(t, err)

		if updated.Category != "Salary" || updated.Type != models.KindIncome || updated.User != "" {
			t.Errorf("unexpected update result %+v", updated)
		}
		if !updated.Amount.Equal(amount("300")) {
			t.Errorf("expected 300, got %s", updated.Amount)
		}
	})

	t.Run("invalid_expense_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())
		task := testutil.CreateTestTask(t, db, "expense", "Utilities", "-80", "2024-03-10")

		_, err := svc.Update(task.ID, TaskInput{Category: "expense", Description: "Caviar", Amount: amount("-80"), Date: "2024-03-10"}, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		assertMessage(t, err, "Invalid expense description")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewTransactionService(db, catalog.Default())

		_, err := svc.Update("missing", TaskInput{Category: "Food", Amount: amount("-1"), Date: "2024-01-01"}, "")
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewTransactionService(db, catalog.Default())
	task := testutil.CreateTestTask(t, db, "Food", "Lunch", "-15", "2024-03-10")

	err := svc.Delete("missing")
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	testutil.AssertAppErrorKind(t, err, apperrors.KindNotFound)
	if n := countRows(t, db, &models.Task{}); n != 1 {
		t.Errorf("expected 1 transaction, got %d", n)
	}

	testutil.AssertNoError(t, svc.Delete(task.ID))
	_, err = svc.Get(task.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}
