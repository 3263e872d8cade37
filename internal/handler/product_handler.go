package handler

import (
	"warehouse-backend/internal/model"
	"warehouse-backend/internal/service"
	"warehouse-backend/pkg/apperr"
	"warehouse-backend/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// Helper to parse the UUID path parameter
func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.New(apperr.InvalidInput, "Invalid id")
	}
	return id, nil
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAll()
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err)
	}
	product, err := h.service.GetByID(id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return response.Error(c, apperr.New(apperr.InvalidInput, "Invalid JSON"))
	}

	saved, err := h.service.Save(&product)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Product added successfully", saved)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, err)
	}
	if err := h.service.Delete(id); err != nil {
		return response.Error(c, err)
	}
	return response.OKMessage(c, "Product deleted successfully", nil)
}

func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	products, err := h.service.Search(c.Query("q"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, products)
}

func (h *ProductHandler) FilterByMaterialType(c *fiber.Ctx) error {
	products, err := h.service.FilterByMaterialType(model.MaterialType(c.Query("materialType")))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, products)
}

func (h *ProductHandler) Autocomplete(c *fiber.Ctx) error {
	suggestions, err := h.service.Autocomplete(c.Params("field"), c.Query("term"))
	if err != nil {
		return response.Error(c, err)
	}
	// Suggestion lists are never null, even when empty
	if suggestions == nil {
		suggestions = []string{}
	}
	return response.OK(c, suggestions)
}

func (h *ProductHandler) LookupByName(c *fiber.Ctx) error {
	product, err := h.service.FindByName(c.Query("name"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, product)
}

func (h *ProductHandler) LookupByCode(c *fiber.Ctx) error {
	product, err := h.service.FindByCode(c.Query("code"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, product)
}

func (h *ProductHandler) GetProductNames(c *fiber.Ctx) error {
	names, err := h.service.AllProductNames()
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, names)
}
