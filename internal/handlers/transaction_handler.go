package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"financehub/internal/middleware"
	"financehub/internal/models"
	"financehub/internal/pagination"
	"financehub/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	transferService    services.TransferServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, transferService services.TransferServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, transferService: transferService}
}

// TransactionRequest is the body of create and update. Update replaces every
// field, so omitted optional fields are cleared.
type TransactionRequest struct {
	Category    string           `json:"category" binding:"required,max=100"`
	Description string           `json:"description" binding:"max=500"`
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number"`
	Type        string           `json:"type" binding:"omitempty,transaction_type"`
	Date        string           `json:"date" binding:"required"`
	User        string           `json:"user" binding:"max=100"`
}

func (r TransactionRequest) input() services.TaskInput {
	return services.TaskInput{
		Category:    r.Category,
		Description: r.Description,
		Amount:      *r.Amount,
		Type:        models.Kind(r.Type),
		Date:        r.Date,
		User:        r.User,
	}
}

// ImportResponse reports how many CSV rows were stored.
type ImportResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Amount is signed: negative for expenses. With a bearer token the category must be one of the caller's.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} models.Task
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /tasks [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput("Category, amount and date are required", err))
		return
	}

	task, err := h.transactionService.Create(req.input(), middleware.UserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// ListTransactions returns transactions, newest first by default
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       search   query string false "Substring of description or category"
// @Param       category query string false "Exact category label or all"
// @Param       type     query string false "all, income or expense"
// @Param       sort     query string false "date, category or amount"
// @Param       order    query string false "asc or desc"
// @Param       page      query int false "Page number; enables the paged envelope"
// @Param       page_size query int false "Items per page (max 100)"
// @Success     200 {array} models.Task
// @Failure     400 {object} ErrorResponse "Invalid query"
// @Router      /tasks [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, invalidInput("Invalid page parameters", err))
		return
	}

	tasks, err := h.transactionService.List(services.ListQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Kind:     c.Query("type"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	if page.Requested() {
		c.JSON(http.StatusOK, pagination.Slice(tasks, page))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetSummary returns dashboard totals
// @Summary     Transaction summary
// @Description Totals, expense sums per category and absolute sums per month
// @Tags        transactions
// @Produce     json
// @Success     200 {object} services.Summary
// @Router      /tasks/summary [get]
func (h *TransactionHandler) GetSummary(c *gin.Context) {
	summary, err := h.transactionService.Summary()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetTransaction returns a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Task
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /tasks/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	task, err := h.transactionService.Get(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTransaction replaces every field of a transaction
// @Summary     Update a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string             true "Transaction ID"
// @Param       request body TransactionRequest true "Transaction details"
// @Success     200 {object} models.Task
// @Failure     400 {object} ErrorResponse "Invalid input or description"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /tasks/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput("Category, amount and date are required", err))
		return
	}

	task, err := h.transactionService.Update(c.Param("id"), req.input(), middleware.UserID(c))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTransaction removes a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /tasks/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if err := h.transactionService.Delete(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}

// ImportTransactions loads a CSV upload
// @Summary     Import transactions
// @Description Rows whose category is not income or expense, or whose description is not a default one, are skipped
// @Tags        transactions
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "CSV file"
// @Success     200 {object} ImportResponse
// @Failure     400 {object} ErrorResponse "No file or unreadable CSV"
// @Router      /tasks/import [post]
func (h *TransactionHandler) ImportTransactions(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, invalidInput("No file uploaded", err))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, invalidInput("Could not read uploaded file", err))
		return
	}
	defer file.Close()

	count, err := h.transferService.ImportCSV(file)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImportResponse{
		Message: fmt.Sprintf("Successfully imported %d transactions", count),
		Count:   count,
	})
}

// ExportTransactions downloads every transaction as CSV
// @Summary     Export transactions
// @Tags        transactions
// @Produce     text/csv
// @Success     200 {file} file
// @Router      /tasks/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	// Buffered so that a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := h.transferService.ExportCSV(&buf); err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
