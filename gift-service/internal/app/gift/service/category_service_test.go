package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/errcode"
	"giftshop/gift-service/internal/app/gift/repository"
	"giftshop/gift-service/internal/app/gift/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCategoryService() (*CategoryService, *mocks.MockCategoryRepository, *mocks.MockCategoryCache, *mocks.FakeTxManager) {
	repo := new(mocks.MockCategoryRepository)
	cache := new(mocks.MockCategoryCache)
	tx := &mocks.FakeTxManager{}
	return NewCategoryService(repo, tx, cache, time.Hour), repo, cache, tx
}

func TestCategoryService_ListCategories_CacheHit(t *testing.T) {
	svc, repo, cache, _ := newTestCategoryService()
	ctx := context.Background()

	cache.On("GetCategories", ctx).Return([]entity.Category{{ID: 1, Name: "beverage"}}, nil)

	categories, err := svc.ListCategories(ctx)

	require.NoError(t, err)
	assert.Equal(t, []entity.CategoryResponse{{ID: 1, Name: "beverage"}}, categories)
	repo.AssertNotCalled(t, "FindAll", mock.Anything)
}

func TestCategoryService_ListCategories_CacheMiss(t *testing.T) {
	svc, repo, cache, _ := newTestCategoryService()
	ctx := context.Background()
	stored := []entity.Category{{ID: 1, Name: "beverage"}, {ID: 2, Name: "food"}}

	cache.On("GetCategories", ctx).Return(nil, nil)
	cache.On("Generation", ctx).Return(int64(4), nil)
	repo.On("FindAll", ctx).Return(stored, nil)
	cache.On("SetCategories", ctx, stored, int64(4), time.Hour).Return(nil)

	categories, err := svc.ListCategories(ctx)

	require.NoError(t, err)
	assert.Len(t, categories, 2)
	assert.Equal(t, "food", categories[1].Name)
	cache.AssertExpectations(t)
}

func TestCategoryService_ListCategories_CacheDown(t *testing.T) {
	svc, repo, cache, _ := newTestCategoryService()
	ctx := context.Background()

	cache.On("GetCategories", ctx).Return(nil, errors.New("connection refused"))
	cache.On("Generation", ctx).Return(int64(0), errors.New("connection refused"))
	repo.On("FindAll", ctx).Return(nil, nil)

	categories, err := svc.ListCategories(ctx)

	require.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
	cache.AssertNotCalled(t, "SetCategories", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryService_AddCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, repo, cache, tx := newTestCategoryService()
		ctx := context.Background()

		repo.On("ExistsByName", ctx, "beverage").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(c *entity.Category) bool { return c.Name == "beverage" })).Return(nil)
		cache.On("DeleteCategories", ctx).Return(nil)

		err := svc.AddCategory(ctx, &entity.CategoryRequest{Name: "beverage"})

		require.NoError(t, err)
		assert.Equal(t, 1, tx.Calls)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, repo, cache, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("ExistsByName", ctx, "beverage").Return(true, nil)

		err := svc.AddCategory(ctx, &entity.CategoryRequest{Name: "beverage"})

		assert.ErrorIs(t, err, errcode.CategoryNameNotDuplicates)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "DeleteCategories", mock.Anything)
	})

	t.Run("unique index race", func(t *testing.T) {
		svc, repo, _, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("ExistsByName", ctx, "beverage").Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

		err := svc.AddCategory(ctx, &entity.CategoryRequest{Name: "beverage"})

		assert.ErrorIs(t, err, errcode.CategoryNameNotDuplicates)
	})

	t.Run("cache invalidation failure is ignored", func(t *testing.T) {
		svc, repo, cache, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("ExistsByName", ctx, "food").Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(nil)
		cache.On("DeleteCategories", ctx).Return(errors.New("redis down"))

		assert.NoError(t, svc.AddCategory(ctx, &entity.CategoryRequest{Name: "food"}))
	})
}

func TestCategoryService_EditCategory(t *testing.T) {
	t.Run("rename to own name skips duplicate check", func(t *testing.T) {
		svc, repo, cache, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("FindByID", ctx, int64(1)).Return(&entity.Category{ID: 1, Name: "beverage"}, nil)
		repo.On("Update", ctx, mock.Anything).Return(nil)
		cache.On("DeleteCategories", ctx).Return(nil)

		err := svc.EditCategory(ctx, 1, &entity.CategoryRequest{Name: "beverage"})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
	})

	t.Run("rename to taken name", func(t *testing.T) {
		svc, repo, _, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("FindByID", ctx, int64(1)).Return(&entity.Category{ID: 1, Name: "beverage"}, nil)
		repo.On("ExistsByName", ctx, "food").Return(true, nil)

		err := svc.EditCategory(ctx, 1, &entity.CategoryRequest{Name: "food"})

		assert.ErrorIs(t, err, errcode.CategoryNameNotDuplicates)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rename", func(t *testing.T) {
		svc, repo, cache, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("FindByID", ctx, int64(1)).Return(&entity.Category{ID: 1, Name: "beverage"}, nil)
		repo.On("ExistsByName", ctx, "drinks").Return(false, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(c *entity.Category) bool {
			return c.ID == 1 && c.Name == "drinks"
		})).Return(nil)
		cache.On("DeleteCategories", ctx).Return(nil)

		require.NoError(t, svc.EditCategory(ctx, 1, &entity.CategoryRequest{Name: "drinks"}))
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("FindByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)

		err := svc.EditCategory(ctx, 9, &entity.CategoryRequest{Name: "drinks"})

		assert.ErrorIs(t, err, errcode.CategoryNotFound)
	})
}

func TestCategoryService_RemoveCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, repo, cache, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("FindByID", ctx, int64(1)).Return(&entity.Category{ID: 1, Name: "beverage"}, nil)
		repo.On("Delete", ctx, int64(1)).Return(nil)
		cache.On("DeleteCategories", ctx).Return(nil)

		require.NoError(t, svc.RemoveCategory(ctx, 1))
		repo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _, _ := newTestCategoryService()
		ctx := context.Background()

		repo.On("FindByID", ctx, int64(1)).Return(nil, repository.ErrNotFound)

		assert.ErrorIs(t, svc.RemoveCategory(ctx, 1), errcode.CategoryNotFound)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("referenced by products", func(t *testing.T) {
		svc, repo, _, _ := newTestCategoryService()
		ctx := context.Background()
		fkErr := errors.New("violates foreign key constraint")

		repo.On("FindByID", ctx, int64(1)).Return(&entity.Category{ID: 1, Name: "beverage"}, nil)
		repo.On("Delete", ctx, int64(1)).Return(fkErr)

		err := svc.RemoveCategory(ctx, 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, fkErr)
		_, coded := errcode.From(err)
		assert.False(t, coded)
	})
}

func TestCategoryService_WarmCache(t *testing.T) {
	svc, repo, cache, _ := newTestCategoryService()
	ctx := context.Background()
	stored := []entity.Category{{ID: 1, Name: "beverage"}}

	cache.On("Generation", ctx).Return(int64(2), nil)
	repo.On("FindAll", ctx).Return(stored, nil)
	cache.On("SetCategories", ctx, stored, int64(2), time.Hour).Return(nil)

	require.NoError(t, svc.WarmCache(ctx))
	cache.AssertExpectations(t)
}
