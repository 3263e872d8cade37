package handler

import (
	"strconv"
	"time"

	"warehouse-backend/internal/importer"
	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/internal/service"
	"warehouse-backend/pkg/apperr"
	"warehouse-backend/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

type UploadResult struct {
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Message   string `json:"message"`
}

// parseFilter reads the optional query criteria. Absent parameters stay nil
// and never narrow the result.
func parseFilter(c *fiber.Ctx) (repository.TransactionFilter, error) {
	var filter repository.TransactionFilter

	if v := c.Query("type"); v != "" {
		t := model.TransactionType(v)
		filter.Type = &t
	}
	if v := c.Query("materialType"); v != "" {
		mt := model.MaterialType(v)
		filter.MaterialType = &mt
	}
	if v := c.Query("startDate"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return filter, apperr.New(apperr.InvalidInput, "Invalid startDate")
		}
		filter.StartDate = &t
	}
	if v := c.Query("endDate"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return filter, apperr.New(apperr.InvalidInput, "Invalid endDate")
		}
		filter.EndDate = &t
	}
	if v := c.Query("party"); v != "" {
		filter.Party = &v
	}
	if v := c.Query("productName"); v != "" {
		filter.ProductName = &v
	}
	return filter, nil
}

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", value, time.Local)
}

// GetTransactions returns the filtered listing. When page or size is
// supplied the result is an offset-based page; otherwise the full list,
// newest first.
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return response.Error(c, err)
	}

	if c.Query("page") != "" || c.Query("size") != "" {
		page, _ := strconv.Atoi(c.Query("page", "0"))
		size, _ := strconv.Atoi(c.Query("size", "20"))
		result, err := h.service.Filtered(filter, page, size)
		if err != nil {
			return response.Error(c, err)
		}
		return response.OK(c, result)
	}

	transactions, err := h.service.Export(filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, transactions)
}

func (h *TransactionHandler) ExportTransactions(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return response.Error(c, err)
	}
	transactions, err := h.service.Export(filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err)
	}
	transaction, err := h.service.GetByID(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, transaction)
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var transaction model.Transaction
	if err := c.BodyParser(&transaction); err != nil {
		return response.Error(c, apperr.New(apperr.InvalidInput, "Invalid JSON"))
	}

	saved, err := h.service.Save(&transaction)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Transaction recorded", saved)
}

func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err)
	}
	if err := h.service.Delete(id); err != nil {
		return response.Error(c, err)
	}
	return response.OKMessage(c, "Transaction deleted successfully", nil)
}

// Upload ingests a spreadsheet of transactions. The extension and emptiness
// checks run before any parsing; rows the importer dropped are not reported
// back, only the accepted/persisted counts.
func (h *TransactionHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Size == 0 {
		return response.Error(c, apperr.New(apperr.InvalidInput, "File is empty"))
	}

	if !importer.IsSpreadsheet(fileHeader.Filename) {
		return response.Error(c, apperr.New(apperr.InvalidInput, "Please upload an Excel file (.xlsx or .xls)"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, apperr.Wrap(apperr.IOFailure, "Error reading file", err))
	}
	defer file.Close()

	result, err := importer.Parse(file)
	if err != nil {
		return response.Error(c, err)
	}
	if len(result.Transactions) == 0 {
		return response.Error(c, apperr.New(apperr.InvalidInput, "No valid data found in the Excel file"))
	}

	processed, err := h.service.SaveAll(result.Transactions)
	if err != nil {
		return response.Error(c, err)
	}

	return response.OK(c, UploadResult{
		Processed: processed,
		Total:     len(result.Transactions),
		Message:   "Excel file uploaded and processed successfully",
	})
}
