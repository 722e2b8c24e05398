package repository

import (
	"context"

	"giftshop/gift-service/internal/app/gift/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// FindPageByMember возвращает страницу вишлиста участника. Сортировка идет по полям товара
func (r *wishlistRepository) FindPageByMember(ctx context.Context, memberID int64, page entity.PageRequest) ([]entity.Wish, int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Wish{}).Where("member_id = ?", memberID).Count(&total).Error
	if err != nil {
		return nil, 0, translateError(err, "count wishes")
	}

	var wishes []entity.Wish
	err = conn(ctx, r.db).
		Joins("JOIN products ON products.id = wishes.product_id").
		Preload("Product").
		Where("wishes.member_id = ?", memberID).
		Order(page.OrderBy("products")).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&wishes).Error
	if err != nil {
		return nil, 0, translateError(err, "get wishes")
	}

	return wishes, total, nil
}

func (r *wishlistRepository) Exists(ctx context.Context, memberID, productID int64) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Wish{}).
		Where("member_id = ? AND product_id = ?", memberID, productID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, "check wish")
	}
	return count > 0, nil
}

// Create добавляет пару (участник, товар). Повтор дает ErrDuplicate
func (r *wishlistRepository) Create(ctx context.Context, wish *entity.Wish) error {
	return translateError(conn(ctx, r.db).Omit(clause.Associations).Create(wish).Error, "create wish")
}

func (r *wishlistRepository) Delete(ctx context.Context, memberID, productID int64) error {
	result := conn(ctx, r.db).Delete(&entity.Wish{}, "member_id = ? AND product_id = ?", memberID, productID)

	if result.Error != nil {
		return translateError(result.Error, "delete wish")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
