package handler

import (
	"os"
	"path/filepath"

	"warehouse-backend/config"
	"warehouse-backend/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StatusHandler struct {
	db  *gorm.DB
	cfg config.Config
}

func NewStatusHandler(db *gorm.DB, cfg config.Config) *StatusHandler {
	return &StatusHandler{db: db, cfg: cfg}
}

func (h *StatusHandler) Home(c *fiber.Ctx) error {
	return response.OKMessage(c, "Welcome to Warehouse Management System", "Warehouse Management System API")
}

func (h *StatusHandler) Health(c *fiber.Ctx) error {
	return response.OK(c, "System is healthy")
}

// Status reports backend liveness, the listening port, static asset presence
// and the state of the database file.
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	dbPath := h.cfg.DBPath()

	_, err := os.Stat(dbPath)
	dbExists := err == nil

	dbConnectOk := true
	var one int
	if err := h.db.Raw("SELECT 1").Scan(&one).Error; err != nil {
		dbConnectOk = false
	}

	_, err = os.Stat(filepath.Join(h.cfg.StaticDir, "index.html"))
	staticIndexExists := err == nil

	return response.OK(c, fiber.Map{
		"backendUp":         true,
		"port":              h.cfg.Port,
		"staticIndexExists": staticIndexExists,
		"dbPath":            dbPath,
		"dbExists":          dbExists,
		"dbConnectOk":       dbConnectOk,
	})
}
