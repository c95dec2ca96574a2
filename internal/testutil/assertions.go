package testutil

import (
	"errors"
	"testing"

	apperrors "financehub/internal/errors"
)

// appError unwraps err to the AppError a handler would write, failing the
// test when there is none.
func appError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatal("expected an AppError, got nil")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

// AssertAppError checks the client-facing code of err.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	if got := appError(t, err); got.Code != code {
		t.Errorf("expected code %q, got %q (message: %s)", code, got.Code, got.Message)
	}
}

// AssertAppErrorKind checks which taxonomy kind err falls under.
func AssertAppErrorKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()

	appError(t, err)
	if got := apperrors.KindOf(err); got != kind {
		t.Errorf("expected %s error, got %s: %v", kind, got, err)
	}
}

// AssertSameAppError checks that a and b look identical to a client: same
// kind, code, status and message.
func AssertSameAppError(t *testing.T, a, b error) {
	t.Helper()

	x, y := appError(t, a), appError(t, b)
	if x.Kind != y.Kind || x.Code != y.Code || x.StatusCode != y.StatusCode || x.Message != y.Message {
		t.Errorf("errors are distinguishable: %+v vs %+v", x, y)
	}
}

// AssertNoError stops the test on any error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
