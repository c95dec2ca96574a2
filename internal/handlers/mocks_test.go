package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"financehub/internal/config"
	"financehub/internal/logger"
	"financehub/internal/middleware"
	"financehub/internal/models"
	"financehub/internal/services"
	"financehub/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	registerFn    func(username, email, password string) (*models.User, error)
	loginFn       func(email, password string) (*models.User, error)
	getUserByIDFn func(id string) (*models.User, error)
}

func (m *mockUserService) Register(username, email, password string) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(username, email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) Login(email, password string) (*models.User, error) {
	if m.loginFn != nil {
		return m.loginFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

type mockCategoryService struct {
	getCategoriesFn func(userID string) (*models.CategorySet, error)
	seedDefaultsFn  func(userID string) error
	replaceAllFn    func(userID string, categories []services.CategoryInput) error
}

func (m *mockCategoryService) GetCategories(userID string) (*models.CategorySet, error) {
	if m.getCategoriesFn != nil {
		return m.getCategoriesFn(userID)
	}
	return &models.CategorySet{}, nil
}

func (m *mockCategoryService) SeedDefaults(userID string) error {
	if m.seedDefaultsFn != nil {
		return m.seedDefaultsFn(userID)
	}
	return nil
}

func (m *mockCategoryService) ReplaceAll(userID string, categories []services.CategoryInput) error {
	if m.replaceAllFn != nil {
		return m.replaceAllFn(userID, categories)
	}
	return nil
}

func (m *mockCategoryService) Defaults() services.DefaultDescriptions {
	return services.DefaultDescriptions{
		ExpenseDescriptions: []string{"Utilities"},
		IncomeDescriptions:  []string{"Dividends"},
	}
}

type mockTransactionService struct {
	createFn  func(in services.TaskInput, callerID string) (*models.Task, error)
	listFn    func(q services.ListQuery) ([]models.Task, error)
	summaryFn func() (*services.Summary, error)
	getFn     func(id string) (*models.Task, error)
	updateFn  func(id string, in services.TaskInput, callerID string) (*models.Task, error)
	deleteFn  func(id string) error
}

func (m *mockTransactionService) Create(in services.TaskInput, callerID string) (*models.Task, error) {
	if m.createFn != nil {
		return m.createFn(in, callerID)
	}
	return &models.Task{}, nil
}

func (m *mockTransactionService) List(q services.ListQuery) ([]models.Task, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return []models.Task{}, nil
}

func (m *mockTransactionService) Summary() (*services.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn()
	}
	return &services.Summary{}, nil
}

func (m *mockTransactionService) Get(id string) (*models.Task, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.Task{}, nil
}

func (m *mockTransactionService) Update(id string, in services.TaskInput, callerID string) (*models.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(id, in, callerID)
	}
	return &models.Task{}, nil
}

func (m *mockTransactionService) Delete(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type mockTransferService struct {
	importFn func(r io.Reader) (int, error)
	exportFn func(w io.Writer) error
}

func (m *mockTransferService) ImportCSV(r io.Reader) (int, error) {
	if m.importFn != nil {
		return m.importFn(r)
	}
	return 0, nil
}

func (m *mockTransferService) ExportCSV(w io.Writer) error {
	if m.exportFn != nil {
		return m.exportFn(w)
	}
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	decimal.MarshalJSONWithoutQuotes = true
	config.Set(&config.Config{JWTSecret: "handler-test-secret", JWTExpirationDur: time.Hour})
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertErrorMessage(t *testing.T, result map[string]interface{}, message string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["message"] != message {
		t.Errorf("expected error message %q, got %q", message, errObj["message"])
	}
}
