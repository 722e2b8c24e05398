package handler

import (
	"net/http"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/service"
	"giftshop/gift-service/internal/app/gift/validation"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryServiceInterface
	validator       *validation.Validator
}

func NewCategoryHandler(categoryService service.CategoryServiceInterface, validator *validation.Validator) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validator:       validator,
	}
}

// GetCategories обрабатывает GET /api/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// AddCategory обрабатывает POST /api/categories
func (h *CategoryHandler) AddCategory(c *gin.Context) {
	var req entity.CategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	if err := h.categoryService.AddCategory(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// EditCategory обрабатывает PUT /api/categories/:id
func (h *CategoryHandler) EditCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req entity.CategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	if err := h.categoryService.EditCategory(c.Request.Context(), id, &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// RemoveCategory обрабатывает DELETE /api/categories/:id
func (h *CategoryHandler) RemoveCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.categoryService.RemoveCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
