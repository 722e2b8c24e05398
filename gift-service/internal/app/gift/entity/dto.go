package entity

import "giftshop/gift-service/internal/app/gift/errcode"

// === REQUESTS ===

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=15"`
}

type OptionRequest struct {
	Name     string `json:"name" validate:"required,max=50,productname"`
	Quantity int64  `json:"quantity" validate:"min=1,max=99999999"`
}

type ProductCreateRequest struct {
	Name       string          `json:"name" validate:"required,max=15,productname,nokakao"`
	Price      int             `json:"price" validate:"min=0,max=2147483647"`
	ImageURL   string          `json:"imageUrl" validate:"required,url"`
	CategoryID int64           `json:"categoryId" validate:"required,gt=0"`
	Options    []OptionRequest `json:"options" validate:"dive"`
}

// Precheck отклоняет товар без опций раньше, чем проверяются остальные поля
func (r *ProductCreateRequest) Precheck() error {
	if len(r.Options) == 0 {
		return errcode.AtLeastOneOptionRequired
	}
	return nil
}

type ProductUpdateRequest struct {
	Name       string `json:"name" validate:"required,max=15,productname,nokakao"`
	Price      int    `json:"price" validate:"min=0,max=2147483647"`
	ImageURL   string `json:"imageUrl" validate:"required,url"`
	CategoryID int64  `json:"categoryId" validate:"required,gt=0"`
}

type MemberRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=64"`
}

type WishRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

// === RESPONSES ===

// ErrorResponse тело ответа для любой ошибки
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type OptionResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type ProductResponse struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Price    int              `json:"price"`
	ImageURL string           `json:"imageUrl"`
	Category CategoryResponse `json:"category"`
	Options  []OptionResponse `json:"options,omitempty"`
}

type MemberResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type WishProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	ImageURL string `json:"imageUrl"`
}

type WishResponse struct {
	ID      int64               `json:"id"`
	Product WishProductResponse `json:"product"`
}

// === PROJECTIONS ===

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func (o *Option) ToResponse() OptionResponse {
	return OptionResponse{ID: o.ID, Name: o.Name, Quantity: o.Quantity}
}

func (p *Product) ToResponse() ProductResponse {
	options := make([]OptionResponse, 0, len(p.Options))
	for i := range p.Options {
		options = append(options, p.Options[i].ToResponse())
	}

	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category.ToResponse(),
		Options:  options,
	}
}

func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{ID: m.ID, Email: m.Email}
}

func (w *Wish) ToResponse() WishResponse {
	return WishResponse{
		ID: w.ID,
		Product: WishProductResponse{
			ID:       w.Product.ID,
			Name:     w.Product.Name,
			Price:    w.Product.Price,
			ImageURL: w.Product.ImageURL,
		},
	}
}

func (r OptionRequest) ToOption() Option {
	return Option{Name: r.Name, Quantity: r.Quantity}
}
