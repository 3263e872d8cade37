package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"warehouse-backend/config"
	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/internal/service"
	"warehouse-backend/pkg/response"
)

// newTestApp wires the full handler stack against an in-memory store, with
// the same route layout as cmd/api.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.Transaction{}, &model.ProductName{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	productHandler := NewProductHandler(service.NewProductService(
		repository.NewProductRepo(db), repository.NewProductNameRepo(db), db))
	txHandler := NewTransactionHandler(service.NewTransactionService(
		repository.NewTransactionRepo(db), db))
	statusHandler := NewStatusHandler(db, config.Config{Port: "8080", DataDir: t.TempDir(), DBFile: "warehouse.db", StaticDir: t.TempDir()})

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/health", statusHandler.Health)
	api.Get("/status", statusHandler.Status)

	products := api.Group("/products")
	products.Get("/search", productHandler.SearchProducts)
	products.Get("/filter", productHandler.FilterByMaterialType)
	products.Get("/autocomplete/:field", productHandler.Autocomplete)
	products.Get("/lookup/by-name", productHandler.LookupByName)
	products.Get("/lookup/by-code", productHandler.LookupByCode)
	products.Get("/names", productHandler.GetProductNames)
	products.Get("/", productHandler.GetProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/:id", productHandler.GetProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	transactions := api.Group("/transactions")
	transactions.Get("/export", txHandler.ExportTransactions)
	transactions.Post("/upload", txHandler.Upload)
	transactions.Get("/", txHandler.GetTransactions)
	transactions.Post("/", txHandler.CreateTransaction)
	transactions.Get("/:id", txHandler.GetTransaction)
	transactions.Delete("/:id", txHandler.DeleteTransaction)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, response.Body) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var envelope response.Body
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, envelope
}

func TestHealthEnvelope(t *testing.T) {
	app := newTestApp(t)
	resp, envelope := doJSON(t, app, "GET", "/api/health", nil)
	if resp.StatusCode != 200 || !envelope.Success {
		t.Errorf("status=%d success=%v", resp.StatusCode, envelope.Success)
	}
}

func TestStatusReportsDatabase(t *testing.T) {
	app := newTestApp(t)
	resp, envelope := doJSON(t, app, "GET", "/api/status", nil)
	if resp.StatusCode != 200 || !envelope.Success {
		t.Fatalf("status=%d success=%v", resp.StatusCode, envelope.Success)
	}
	payload, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T", envelope.Data)
	}
	if payload["backendUp"] != true || payload["dbConnectOk"] != true {
		t.Errorf("payload = %+v", payload)
	}
}

func TestCreateAndFetchProduct(t *testing.T) {
	app := newTestApp(t)

	body := map[string]interface{}{
		"productCode":  "P-001",
		"productName":  "Sugar",
		"packets":      4,
		"qtyPerPacket": 25,
		"unit":         "kg",
		"materialType": "RM",
		"source":       "local",
	}
	resp, envelope := doJSON(t, app, "POST", "/api/products/", body)
	if resp.StatusCode != 201 || !envelope.Success {
		t.Fatalf("create: status=%d message=%q", resp.StatusCode, envelope.Message)
	}

	created, _ := envelope.Data.(map[string]interface{})
	if created["quantity"].(float64) != 100 {
		t.Errorf("derived quantity = %v, want 100", created["quantity"])
	}

	id := created["id"].(string)
	resp, envelope = doJSON(t, app, "GET", "/api/products/"+id, nil)
	if resp.StatusCode != 200 || !envelope.Success {
		t.Errorf("fetch: status=%d", resp.StatusCode)
	}
}

func TestCreateProductValidationFailure(t *testing.T) {
	app := newTestApp(t)

	resp, envelope := doJSON(t, app, "POST", "/api/products/", map[string]interface{}{
		"productName": "Nameless",
	})
	if resp.StatusCode != 400 || envelope.Success {
		t.Errorf("status=%d success=%v", resp.StatusCode, envelope.Success)
	}
}

func TestGetMissingProductIs404(t *testing.T) {
	app := newTestApp(t)

	resp, envelope := doJSON(t, app, "GET", "/api/products/6b1f82a4-3a0f-4a8e-9a36-0a2b6f9d9f11", nil)
	if resp.StatusCode != 404 || envelope.Success {
		t.Errorf("status=%d success=%v", resp.StatusCode, envelope.Success)
	}

	resp, _ = doJSON(t, app, "GET", "/api/products/not-a-uuid", nil)
	if resp.StatusCode != 400 {
		t.Errorf("invalid id status=%d, want 400", resp.StatusCode)
	}
}

func TestAutocompleteEndpoint(t *testing.T) {
	app := newTestApp(t)

	doJSON(t, app, "POST", "/api/products/", map[string]interface{}{
		"productCode": "AB-1", "productName": "Alpha", "quantity": 1,
		"unit": "kg", "materialType": "RM", "source": "local",
	})
	doJSON(t, app, "POST", "/api/products/", map[string]interface{}{
		"productCode": "XY-1", "productName": "Gamma", "quantity": 1,
		"unit": "kg", "materialType": "RM", "source": "local",
	})

	resp, envelope := doJSON(t, app, "GET", "/api/products/autocomplete/product-code?term=AB", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	values, _ := envelope.Data.([]interface{})
	if len(values) != 1 || values[0] != "AB-1" {
		t.Errorf("suggestions = %v, want [AB-1]", values)
	}

	resp, _ = doJSON(t, app, "GET", "/api/products/autocomplete/bogus?term=A", nil)
	if resp.StatusCode != 400 {
		t.Errorf("unknown field status=%d, want 400", resp.StatusCode)
	}
}

func TestCreateTransactionAndFilter(t *testing.T) {
	app := newTestApp(t)

	body := map[string]interface{}{
		"productCode":  "P-001",
		"productName":  "Sugar",
		"quantity":     "12.5",
		"unit":         "kg",
		"materialType": "RM",
		"type":         "IN",
		"party":        "Acme Traders",
	}
	resp, envelope := doJSON(t, app, "POST", "/api/transactions/", body)
	if resp.StatusCode != 201 || !envelope.Success {
		t.Fatalf("create: status=%d message=%q", resp.StatusCode, envelope.Message)
	}

	resp, envelope = doJSON(t, app, "GET", "/api/transactions/?party=acme", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("filter: status=%d", resp.StatusCode)
	}
	rows, _ := envelope.Data.([]interface{})
	if len(rows) != 1 {
		t.Errorf("filtered rows = %d, want 1", len(rows))
	}

	resp, envelope = doJSON(t, app, "GET", "/api/transactions/?page=0&size=10", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("paged: status=%d", resp.StatusCode)
	}
	page, _ := envelope.Data.(map[string]interface{})
	if page["totalElements"].(float64) != 1 {
		t.Errorf("page = %+v", page)
	}

	resp, _ = doJSON(t, app, "GET", "/api/transactions/?startDate=31-12-2023", nil)
	if resp.StatusCode != 400 {
		t.Errorf("bad date status=%d, want 400", resp.StatusCode)
	}
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/api/transactions/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func workbookBytes(t *testing.T, dataRows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := append([][]interface{}{{
		"Barcode", "Product Code", "Product Name", "Quantity", "Unit",
		"Batch No", "GRN No", "Material Type", "Type", "Party", "Date",
	}}, dataRows...)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestUploadRejectsWrongExtension(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "data.csv", []byte("a,b,c")), -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("status=%d, want 400", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), ".xlsx") {
		t.Errorf("message should mention the expected extension: %s", raw)
	}
}

func TestUploadProcessesValidRows(t *testing.T) {
	app := newTestApp(t)

	content := workbookBytes(t, [][]interface{}{
		{"", "P-001", "Sugar", 10, "kg", "", "", "RM", "IN", "Acme", "25/12/2023"},
		{"", "", "Broken", 10, "kg", "", "", "RM", "IN", "Acme", ""}, // missing code, dropped silently
		{"", "P-002", "Salt", "oops", "kg", "", "", "RM", "OUT", "Mills", ""},
	})

	resp, err := app.Test(uploadRequest(t, "stock.xlsx", content), -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.StatusCode != 200 {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}

	var envelope response.Body
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	result, _ := envelope.Data.(map[string]interface{})
	if result["processed"].(float64) != 1 || result["total"].(float64) != 1 {
		t.Errorf("result = %+v, want processed=1 total=1", result)
	}

	_, listEnvelope := doJSON(t, app, "GET", "/api/transactions/", nil)
	rows, _ := listEnvelope.Data.([]interface{})
	if len(rows) != 1 {
		t.Errorf("persisted rows = %d, want 1", len(rows))
	}
}

func TestUploadWithNoValidRows(t *testing.T) {
	app := newTestApp(t)

	content := workbookBytes(t, [][]interface{}{
		{"", "", "", "oops", "", "", "", "", "", "", ""},
	})
	resp, err := app.Test(uploadRequest(t, "stock.xlsx", content), -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("status=%d, want 400", resp.StatusCode)
	}
}

func TestUploadGarbageWorkbook(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, "stock.xlsx", []byte("not a zip")), -1)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("status=%d, want 400", resp.StatusCode)
	}
}

func TestNameIndexEndpoint(t *testing.T) {
	app := newTestApp(t)

	for i := 0; i < 2; i++ {
		doJSON(t, app, "POST", "/api/products/", map[string]interface{}{
			"productCode": fmt.Sprintf("P-%03d", i), "productName": "Sugar", "quantity": 1,
			"unit": "kg", "materialType": "RM", "source": "local",
		})
	}

	_, envelope := doJSON(t, app, "GET", "/api/products/names", nil)
	names, _ := envelope.Data.([]interface{})
	if len(names) != 1 {
		t.Errorf("name index = %d entries, want 1 (deduplicated)", len(names))
	}
}
