package repository

import (
	"context"

	"giftshop/gift-service/internal/app/gift/entity"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// FindAll возвращает все категории в порядке создания
func (r *categoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := conn(ctx, r.db).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, translateError(err, "get categories")
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	var category entity.Category
	if err := conn(ctx, r.db).First(&category, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "get category")
	}
	return &category, nil
}

// ExistsByName проверяет занятость имени (точное совпадение)
func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Category{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, translateError(err, "check category name")
	}
	return count > 0, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return translateError(conn(ctx, r.db).Create(category).Error, "create category")
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := conn(ctx, r.db).Model(&entity.Category{}).
		Where("id = ?", category.ID).
		Update("name", category.Name)

	if result.Error != nil {
		return translateError(result.Error, "update category")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет категорию. Если на нее ссылаются товары, БД вернет ошибку внешнего ключа
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&entity.Category{}, "id = ?", id)

	if result.Error != nil {
		return translateError(result.Error, "delete category")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
