package repository

import (
	"context"
	"errors"
	"fmt"

	"giftshop/gift-service/internal/app/gift/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

const uniqueViolation = "23505"

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]entity.Category, error)
	FindByID(ctx context.Context, id int64) (*entity.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	FindPage(ctx context.Context, page entity.PageRequest) ([]entity.Product, int64, error)
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error

	CreateOption(ctx context.Context, option *entity.Option) error
	UpdateOption(ctx context.Context, option *entity.Option) error
	DeleteOption(ctx context.Context, productID, optionID int64) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	FindByID(ctx context.Context, id int64) (*entity.Member, error)
	FindByEmail(ctx context.Context, email string) (*entity.Member, error)
}

type WishlistRepository interface {
	FindPageByMember(ctx context.Context, memberID int64, page entity.PageRequest) ([]entity.Wish, int64, error)
	Exists(ctx context.Context, memberID, productID int64) (bool, error)
	Create(ctx context.Context, wish *entity.Wish) error
	Delete(ctx context.Context, memberID, productID int64) error
}

// translateError приводит ошибки GORM и PostgreSQL к ошибкам репозитория
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}
