package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/palette"
	"financehub/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest is one category in a replace-all request. Client-side ids
// are accepted and ignored.
type CategoryRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required,max=100"`
	Color string `json:"color" binding:"omitempty,color"`
	Type  string `json:"type" binding:"required,category_type"`
}

// ReplaceCategoriesRequest represents the request payload for saving categories
type ReplaceCategoriesRequest struct {
	UserID     string            `json:"userId" binding:"required"`
	Categories []CategoryRequest `json:"categories" binding:"required,dive"`
}

// PaletteResponse is a derived category color.
type PaletteResponse struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	Hue        int    `json:"hue"`
	Saturation int    `json:"saturation"`
	Lightness  int    `json:"lightness"`
}

// GetDefaults returns the system description lists
// @Summary     Default descriptions
// @Description Global expense and income description allow-lists
// @Tags        categories
// @Produce     json
// @Success     200 {object} services.DefaultDescriptions
// @Router      /categories [get]
func (h *CategoryHandler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.categoryService.Defaults())
}

// GetUserCategories returns a user's categories
// @Summary     Get user categories
// @Description Seeds the defaults first when the user has none
// @Tags        categories
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {object} models.CategorySet
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /user-categories/{userId} [get]
func (h *CategoryHandler) GetUserCategories(c *gin.Context) {
	set, err := h.categoryService.GetCategories(c.Param("userId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// ReplaceUserCategories saves a user's full category set
// @Summary     Replace user categories
// @Description Deletes every category of the user and stores the submitted set
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body ReplaceCategoriesRequest true "Complete category set"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Malformed request"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /user-categories [post]
func (h *CategoryHandler) ReplaceUserCategories(c *gin.Context) {
	var req ReplaceCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput("Invalid request data", err))
		return
	}

	inputs := make([]services.CategoryInput, len(req.Categories))
	for i, cat := range req.Categories {
		inputs[i] = services.CategoryInput{Name: cat.Name, Color: cat.Color, Type: models.Kind(cat.Type)}
	}

	if err := h.categoryService.ReplaceAll(req.UserID, inputs); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Categories saved successfully"})
}

// SeedDefaults creates the starter categories for a user
// @Summary     Seed default categories
// @Tags        categories
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "User already has categories"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /user-categories/{userId}/default [post]
func (h *CategoryHandler) SeedDefaults(c *gin.Context) {
	if err := h.categoryService.SeedDefaults(c.Param("userId")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Default categories created successfully"})
}

// GetPalette derives the display color of a category name
// @Summary     Category color
// @Tags        categories
// @Produce     json
// @Param       name query string true "Category name"
// @Success     200 {object} PaletteResponse
// @Failure     400 {object} ErrorResponse "Missing name"
// @Router      /palette [get]
func (h *CategoryHandler) GetPalette(c *gin.Context) {
	name := c.Query("name")
	if strings.TrimSpace(name) == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required"))
		return
	}

	hsl := palette.For(name)
	c.JSON(http.StatusOK, PaletteResponse{
		Name:       name,
		Color:      hsl.String(),
		Hue:        hsl.Hue,
		Saturation: hsl.Saturation,
		Lightness:  hsl.Lightness,
	})
}
