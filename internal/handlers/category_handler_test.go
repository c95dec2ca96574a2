package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/palette"
	"financehub/internal/services"
)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	r.GET("/categories", handler.GetDefaults)
	r.GET("/palette", handler.GetPalette)
	r.GET("/user-categories/:userId", handler.GetUserCategories)
	r.POST("/user-categories", handler.ReplaceUserCategories)
	r.POST("/user-categories/:userId/default", handler.SeedDefaults)
	return r
}

func TestCategoryHandler_GetDefaults(t *testing.T) {
	r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

	rec := doRequest(r, http.MethodGet, "/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if _, ok := result["expenseDescriptions"]; !ok {
		t.Errorf("missing expenseDescriptions in %v", result)
	}
	if _, ok := result["incomeDescriptions"]; !ok {
		t.Errorf("missing incomeDescriptions in %v", result)
	}
}

func TestCategoryHandler_GetUserCategories(t *testing.T) {
	t.Run("returns grouped categories", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoriesFn: func(userID string) (*models.CategorySet, error) {
				return &models.CategorySet{
					IncomeCategories:  []models.CategoryView{{ID: "c1", Name: "Salary", Color: "#00ff00"}},
					ExpenseCategories: []models.CategoryView{},
				}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, http.MethodGet, "/user-categories/user-1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		income := result["incomeCategories"].([]interface{})
		if len(income) != 1 {
			t.Errorf("expected 1 income category, got %d", len(income))
		}
	})

	t.Run("returns 404 for unknown user", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoriesFn: func(string) (*models.CategorySet, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, http.MethodGet, "/user-categories/ghost", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_ReplaceUserCategories(t *testing.T) {
	t.Run("passes categories to service", func(t *testing.T) {
		var gotUser string
		var got []services.CategoryInput
		svc := &mockCategoryService{
			replaceAllFn: func(userID string, cats []services.CategoryInput) error {
				gotUser, got = userID, cats
				return nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		body := `{"userId":"user-1","categories":[{"id":"tmp-1","name":"Coffee","color":"hsl(10, 80%, 50%)","type":"expense"},{"name":"Gift","type":"income"}]}`
		rec := doRequest(r, http.MethodPost, "/user-categories", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotUser != "user-1" || len(got) != 2 {
			t.Fatalf("unexpected call %s %v", gotUser, got)
		}
		if got[0].Type != models.KindExpense || got[1].Color != "" {
			t.Errorf("unexpected inputs %+v", got)
		}
	})

	t.Run("returns 400 on bad type", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, http.MethodPost, "/user-categories", `{"userId":"user-1","categories":[{"name":"X","type":"transfer"}]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing categories", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, http.MethodPost, "/user-categories", `{"userId":"user-1"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad color", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, http.MethodPost, "/user-categories", `{"userId":"user-1","categories":[{"name":"X","type":"income","color":"blue"}]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_SeedDefaults(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, http.MethodPost, "/user-categories/user-1/default", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when categories exist", func(t *testing.T) {
		svc := &mockCategoryService{
			seedDefaultsFn: func(string) error { return apperrors.ErrCategoriesExist },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc))

		rec := doRequest(r, http.MethodPost, "/user-categories/user-1/default", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORIES_EXIST")
	})
}

func TestCategoryHandler_GetPalette(t *testing.T) {
	r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

	rec := doRequest(r, http.MethodGet, "/palette?name=Groceries", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := parseJSON(t, rec)["color"]; got != palette.ColorFor("Groceries") {
		t.Errorf("unexpected color %v", got)
	}

	rec = doRequest(r, http.MethodGet, "/palette", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
