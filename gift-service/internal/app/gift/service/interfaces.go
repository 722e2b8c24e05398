package service

import (
	"context"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/util"
)

type CategoryServiceInterface interface {
	ListCategories(ctx context.Context) ([]entity.CategoryResponse, error)
	AddCategory(ctx context.Context, req *entity.CategoryRequest) error
	EditCategory(ctx context.Context, id int64, req *entity.CategoryRequest) error
	RemoveCategory(ctx context.Context, id int64) error
}

type ProductServiceInterface interface {
	GetProducts(ctx context.Context, page entity.PageRequest) (entity.Page[entity.ProductResponse], error)
	GetProduct(ctx context.Context, id int64) (*entity.ProductResponse, error)
	AddProduct(ctx context.Context, req *entity.ProductCreateRequest) (*entity.ProductResponse, error)
	EditProduct(ctx context.Context, id int64, req *entity.ProductUpdateRequest) error
	RemoveProduct(ctx context.Context, id int64) error

	GetOptions(ctx context.Context, productID int64) ([]entity.OptionResponse, error)
	AddOption(ctx context.Context, productID int64, req *entity.OptionRequest) error
	EditOption(ctx context.Context, productID, optionID int64, req *entity.OptionRequest) error
	RemoveOption(ctx context.Context, productID, optionID int64) error
}

type MemberServiceInterface interface {
	Register(ctx context.Context, req *entity.MemberRequest) (*entity.TokenResponse, error)
	Login(ctx context.Context, req *entity.MemberRequest) (*entity.TokenResponse, error)
	Logout(ctx context.Context, claims *util.JWTClaims) error
	GetMember(ctx context.Context, memberID int64) (*entity.MemberResponse, error)
	Authenticate(ctx context.Context, authHeader string) (*util.JWTClaims, error)
}

type WishlistServiceInterface interface {
	GetWishes(ctx context.Context, memberID int64, page entity.PageRequest) (entity.Page[entity.WishResponse], error)
	AddWish(ctx context.Context, memberID int64, req *entity.WishRequest) error
	RemoveWish(ctx context.Context, memberID, productID int64) error
}
