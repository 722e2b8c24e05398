package handler

import (
	"net/http"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/service"
	"giftshop/gift-service/internal/app/gift/validation"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductServiceInterface
	validator      *validation.Validator
}

func NewProductHandler(productService service.ProductServiceInterface, validator *validation.Validator) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator,
	}
}

// === PRODUCTS ===

// GetProducts обрабатывает GET /api/products?page=0&size=10&sort=id,desc
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, err := bindPage(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(page); err != nil {
		respondError(c, err)
		return
	}

	products, err := h.productService.GetProducts(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct обрабатывает GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// AddProduct обрабатывает POST /api/products
func (h *ProductHandler) AddProduct(c *gin.Context) {
	var req entity.ProductCreateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.productService.AddProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// EditProduct обрабатывает PUT /api/products/:id
func (h *ProductHandler) EditProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req entity.ProductUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	if err := h.productService.EditProduct(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// RemoveProduct обрабатывает DELETE /api/products/:id
func (h *ProductHandler) RemoveProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.productService.RemoveProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// === OPTIONS ===

// GetOptions обрабатывает GET /api/products/:id/options
func (h *ProductHandler) GetOptions(c *gin.Context) {
	productID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	options, err := h.productService.GetOptions(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, options)
}

// AddOption обрабатывает POST /api/products/:id/options
func (h *ProductHandler) AddOption(c *gin.Context) {
	productID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req entity.OptionRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	if err := h.productService.AddOption(c.Request.Context(), productID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// EditOption обрабатывает PUT /api/products/:id/options/:optionId
func (h *ProductHandler) EditOption(c *gin.Context) {
	productID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	optionID, err := pathID(c, "optionId")
	if err != nil {
		respondError(c, err)
		return
	}

	var req entity.OptionRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	if err := h.productService.EditOption(c.Request.Context(), productID, optionID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// RemoveOption обрабатывает DELETE /api/products/:id/options/:optionId
func (h *ProductHandler) RemoveOption(c *gin.Context) {
	productID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	optionID, err := pathID(c, "optionId")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.productService.RemoveOption(c.Request.Context(), productID, optionID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
