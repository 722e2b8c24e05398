package handler

import (
	"net/http"
	"strconv"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/errcode"
	"giftshop/pkg/logger"
	"giftshop/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// respondError отдает {status, message}. Ошибка без кода считается внутренней и логируется
func respondError(c *gin.Context, err error) {
	code, ok := errcode.From(err)
	if !ok {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unexpected error")

		c.AbortWithStatusJSON(http.StatusInternalServerError, entity.ErrorResponse{
			Status:  http.StatusInternalServerError,
			Message: errcode.InternalErrorMessage,
		})
		return
	}

	metrics.DomainErrors.WithLabelValues(code.String()).Inc()
	c.AbortWithStatusJSON(code.Status(), entity.ErrorResponse{
		Status:  code.Status(),
		Message: code.Message(),
	})
}

// pathID читает положительный числовой параметр пути
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errcode.ValidationError
	}
	return id, nil
}

// bindJSON разбирает тело запроса. Битый JSON считается ошибкой валидации
func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errcode.Wrap(errcode.ValidationError, err)
	}
	return nil
}

// bindPage читает page/size/sort из query поверх значений по умолчанию
func bindPage(c *gin.Context) (entity.PageRequest, error) {
	page := entity.DefaultPageRequest()
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, errcode.Wrap(errcode.ValidationError, err)
	}
	return page, nil
}
