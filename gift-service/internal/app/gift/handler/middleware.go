package handler

import (
	"giftshop/gift-service/internal/app/gift/errcode"
	"giftshop/gift-service/internal/app/gift/service"
	"giftshop/gift-service/internal/app/gift/util"
	"giftshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	claimsKey   = "claims"
	memberIDKey = logger.MemberIDKey
)

type AuthMiddleware struct {
	memberService service.MemberServiceInterface
}

func NewAuthMiddleware(memberService service.MemberServiceInterface) *AuthMiddleware {
	return &AuthMiddleware{memberService: memberService}
}

// Authenticate пускает дальше только с действующим Bearer токеном
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.memberService.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(claimsKey, claims)
		c.Set(memberIDKey, claims.MemberID)
		c.Next()
	}
}

// currentClaims достает claims, положенные Authenticate
func currentClaims(c *gin.Context) (*util.JWTClaims, error) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, errcode.MissingToken
	}
	claims, ok := value.(*util.JWTClaims)
	if !ok {
		return nil, errcode.InvalidToken
	}
	return claims, nil
}
