package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/errcode"
	"giftshop/gift-service/internal/app/gift/infrastructure"
	"giftshop/gift-service/internal/app/gift/repository"
	"giftshop/pkg/logger"
)

// CategoryService бизнес-логика категорий. Список категорий кешируется в Redis
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	txManager    repository.TxManager
	cache        infrastructure.CategoryCache
	cacheTTL     time.Duration
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	txManager repository.TxManager,
	cache infrastructure.CategoryCache,
	cacheTTL time.Duration,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		txManager:    txManager,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

// ListCategories сначала смотрит в кеш, при промахе или ошибке Redis читает из БД
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.CategoryResponse, error) {
	cached, err := s.cache.GetCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Category cache unavailable, reading from database")
	} else if cached != nil {
		return toCategoryResponses(cached), nil
	}

	categories, err := s.loadAndCache(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(categories), nil
}

// AddCategory создает категорию с уникальным именем
func (s *CategoryService) AddCategory(ctx context.Context, req *entity.CategoryRequest) error {
	category := entity.NewCategory(req.Name)

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return err
		}
		if exists {
			return errcode.CategoryNameNotDuplicates
		}

		return s.categoryRepo.Create(ctx, category)
	})
	if err != nil {
		return s.translate(err, "create category")
	}

	s.invalidateCache(ctx)
	return nil
}

// EditCategory переименовывает категорию. Переименование в текущее имя не считается дублем
func (s *CategoryService) EditCategory(ctx context.Context, id int64, req *entity.CategoryRequest) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		category, err := s.categoryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if category.Name != req.Name {
			exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
			if err != nil {
				return err
			}
			if exists {
				return errcode.CategoryNameNotDuplicates
			}
		}

		category.ChangeName(req.Name)
		return s.categoryRepo.Update(ctx, category)
	})
	if err != nil {
		return s.translate(err, "update category")
	}

	s.invalidateCache(ctx)
	return nil
}

// RemoveCategory удаляет существующую категорию.
// Категорию с товарами не даст удалить внешний ключ, такая ошибка уходит как внутренняя
func (s *CategoryService) RemoveCategory(ctx context.Context, id int64) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
			return err
		}
		return s.categoryRepo.Delete(ctx, id)
	})
	if err != nil {
		return s.translate(err, "delete category")
	}

	s.invalidateCache(ctx)
	return nil
}

// WarmCache заново кладет список категорий в кеш. Вызывается по расписанию
func (s *CategoryService) WarmCache(ctx context.Context) error {
	generation, err := s.cache.Generation(ctx)
	if err != nil {
		return fmt.Errorf("failed to warm categories cache: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	if categories == nil {
		categories = []entity.Category{}
	}

	if err := s.cache.SetCategories(ctx, categories, generation, s.cacheTTL); err != nil {
		return fmt.Errorf("failed to warm categories cache: %w", err)
	}
	return nil
}

// loadAndCache читает БД и кеширует результат. Поколение берется до чтения,
// чтобы запись, закоммиченная параллельно, не была перекрыта старым списком
func (s *CategoryService) loadAndCache(ctx context.Context) ([]entity.Category, error) {
	generation, genErr := s.cache.Generation(ctx)

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if categories == nil {
		categories = []entity.Category{}
	}

	if genErr != nil {
		logger.Warn().Err(genErr).Msg("Category cache unavailable, skipping cache fill")
		return categories, nil
	}
	if err := s.cache.SetCategories(ctx, categories, generation, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}
	return categories, nil
}

// invalidateCache вызывается после коммита. Ошибка Redis не откатывает изменения
func (s *CategoryService) invalidateCache(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}
}

func (s *CategoryService) translate(err error, op string) error {
	if _, ok := errcode.From(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errcode.CategoryNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return errcode.CategoryNameNotDuplicates
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func toCategoryResponses(categories []entity.Category) []entity.CategoryResponse {
	responses := make([]entity.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, categories[i].ToResponse())
	}
	return responses
}
