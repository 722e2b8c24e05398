package handler

import (
	"net/http"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/service"
	"giftshop/gift-service/internal/app/gift/validation"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService service.MemberServiceInterface
	validator     *validation.Validator
}

func NewMemberHandler(memberService service.MemberServiceInterface, validator *validation.Validator) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		validator:     validator,
	}
}

// Register обрабатывает POST /api/members/register
func (h *MemberHandler) Register(c *gin.Context) {
	var req entity.MemberRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.memberService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login обрабатывает POST /api/members/login
func (h *MemberHandler) Login(c *gin.Context) {
	var req entity.MemberRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.memberService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout обрабатывает POST /api/members/logout
func (h *MemberHandler) Logout(c *gin.Context) {
	claims, err := currentClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.memberService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMe обрабатывает GET /api/members/me
func (h *MemberHandler) GetMe(c *gin.Context) {
	claims, err := currentClaims(c)
	if err != nil {
		respondError(c, err)
		return
	}

	member, err := h.memberService.GetMember(c.Request.Context(), claims.MemberID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}
