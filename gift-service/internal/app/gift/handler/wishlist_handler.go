package handler

import (
	"net/http"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/service"
	"giftshop/gift-service/internal/app/gift/validation"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	wishlistService service.WishlistServiceInterface
	validator       *validation.Validator
}

func NewWishlistHandler(wishlistService service.WishlistServiceInterface, validator *validation.Validator) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		validator:       validator,
	}
}

// GetWishes обрабатывает GET /api/wishes
func (h *WishlistHandler) GetWishes(c *gin.Context) {
	claims, err := currentClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	page, err := bindPage(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(page); err != nil {
		respondError(c, err)
		return
	}

	wishes, err := h.wishlistService.GetWishes(c.Request.Context(), claims.MemberID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wishes)
}

// AddWish обрабатывает POST /api/wishes
func (h *WishlistHandler) AddWish(c *gin.Context) {
	claims, err := currentClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req entity.WishRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	if err := h.wishlistService.AddWish(c.Request.Context(), claims.MemberID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// RemoveWish обрабатывает DELETE /api/wishes/:productId
func (h *WishlistHandler) RemoveWish(c *gin.Context) {
	claims, err := currentClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	productID, err := pathID(c, "productId")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.wishlistService.RemoveWish(c.Request.Context(), claims.MemberID, productID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
