package repository

import (
	"context"

	"giftshop/gift-service/internal/app/gift/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// FindPage возвращает страницу товаров вместе с категорией и опциями
func (r *productRepository) FindPage(ctx context.Context, page entity.PageRequest) ([]entity.Product, int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&entity.Product{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "count products")
	}

	var products []entity.Product
	err := conn(ctx, r.db).
		Preload("Category").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order(page.OrderBy("")).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&products).Error
	if err != nil {
		return nil, 0, translateError(err, "get products")
	}

	return products, total, nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).
		Preload("Category").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err, "get product")
	}
	return &product, nil
}

// Create сохраняет товар, затем его опции. Категория должна уже существовать
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	db := conn(ctx, r.db)

	if err := db.Omit(clause.Associations).Create(product).Error; err != nil {
		return translateError(err, "create product")
	}

	if len(product.Options) == 0 {
		return nil
	}
	for i := range product.Options {
		product.Options[i].ProductID = product.ID
	}
	if err := db.Create(&product.Options).Error; err != nil {
		return translateError(err, "create options")
	}
	return nil
}

// Update меняет только поля самого товара, опции не трогает
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"price":       product.Price,
			"image_url":   product.ImageURL,
			"category_id": product.CategoryID,
		})

	if result.Error != nil {
		return translateError(result.Error, "update product")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет товар, опции и записи вишлиста удаляются через CASCADE
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&entity.Product{}, "id = ?", id)

	if result.Error != nil {
		return translateError(result.Error, "delete product")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// === OPTIONS ===

func (r *productRepository) CreateOption(ctx context.Context, option *entity.Option) error {
	return translateError(conn(ctx, r.db).Create(option).Error, "create option")
}

func (r *productRepository) UpdateOption(ctx context.Context, option *entity.Option) error {
	result := conn(ctx, r.db).Model(&entity.Option{}).
		Where("id = ? AND product_id = ?", option.ID, option.ProductID).
		Updates(map[string]interface{}{
			"name":     option.Name,
			"quantity": option.Quantity,
		})

	if result.Error != nil {
		return translateError(result.Error, "update option")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepository) DeleteOption(ctx context.Context, productID, optionID int64) error {
	result := conn(ctx, r.db).Delete(&entity.Option{}, "id = ? AND product_id = ?", optionID, productID)

	if result.Error != nil {
		return translateError(result.Error, "delete option")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
