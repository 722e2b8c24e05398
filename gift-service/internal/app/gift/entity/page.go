package entity

import "strings"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage ограничивает номер страницы, чтобы Page*Size не переполнялся
	MaxPage = 100000
)

// sortable поле запроса -> колонка в БД
var sortable = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
}

// PageRequest параметры постраничной выборки: ?page=0&size=10&sort=id,desc
type PageRequest struct {
	Page int    `form:"page" validate:"min=0,max=100000"`
	Size int    `form:"size" validate:"min=1,max=100"`
	Sort string `form:"sort" validate:"omitempty,pagesort"`
}

func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 0, Size: DefaultPageSize, Sort: "id,desc"}
}

// IsSortable проверяет значение sort вида "field" или "field,asc|desc"
func IsSortable(sort string) bool {
	field, dir, _ := strings.Cut(sort, ",")
	if _, ok := sortable[strings.TrimSpace(field)]; !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc", "desc":
		return true
	}
	return false
}

// OrderBy возвращает выражение ORDER BY для репозитория. Неизвестные значения дают "id DESC"
func (p PageRequest) OrderBy(table string) string {
	column, direction := "id", "DESC"

	field, dir, _ := strings.Cut(p.Sort, ",")
	if c, ok := sortable[strings.TrimSpace(field)]; ok {
		column = c
		direction = "ASC"
		if strings.EqualFold(strings.TrimSpace(dir), "desc") {
			direction = "DESC"
		}
	}

	if table != "" {
		column = table + "." + column
	}
	return column + " " + direction
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page одна страница результата
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// MapPage проецирует элементы страницы, сохраняя метаданные
func MapPage[T, R any](page Page[T], fn func(T) R) Page[R] {
	content := make([]R, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, fn(item))
	}
	return Page[R]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}
}
