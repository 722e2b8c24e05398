package mocks

import (
	"context"
	"time"

	"giftshop/gift-service/internal/app/gift/entity"

	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository мок для CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository мок для ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindPage(ctx context.Context, page entity.PageRequest) ([]entity.Product, int64, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) CreateOption(ctx context.Context, option *entity.Option) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateOption(ctx context.Context, option *entity.Option) error {
	args := m.Called(ctx, option)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteOption(ctx context.Context, productID, optionID int64) error {
	args := m.Called(ctx, productID, optionID)
	return args.Error(0)
}

// MockMemberRepository мок для MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *entity.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id int64) (*entity.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Member), args.Error(1)
}

// MockWishlistRepository мок для WishlistRepository
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) FindPageByMember(ctx context.Context, memberID int64, page entity.PageRequest) ([]entity.Wish, int64, error) {
	args := m.Called(ctx, memberID, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Wish), args.Get(1).(int64), args.Error(2)
}

func (m *MockWishlistRepository) Exists(ctx context.Context, memberID, productID int64) (bool, error) {
	args := m.Called(ctx, memberID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) Create(ctx context.Context, wish *entity.Wish) error {
	args := m.Called(ctx, wish)
	return args.Error(0)
}

func (m *MockWishlistRepository) Delete(ctx context.Context, memberID, productID int64) error {
	args := m.Called(ctx, memberID, productID)
	return args.Error(0)
}

// FakeTxManager выполняет fn без транзакции и считает вызовы
type FakeTxManager struct {
	Calls int
}

func (f *FakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.Calls++
	return fn(ctx)
}

// MockCategoryCache мок для CategoryCache
type MockCategoryCache struct {
	mock.Mock
}

func (m *MockCategoryCache) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryCache) SetCategories(ctx context.Context, categories []entity.Category, generation int64, ttl time.Duration) error {
	args := m.Called(ctx, categories, generation, ttl)
	return args.Error(0)
}

func (m *MockCategoryCache) DeleteCategories(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTokenBlacklist мок для TokenBlacklist
type MockTokenBlacklist struct {
	mock.Mock
}

func (m *MockTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// MockMessagePublisher мок для MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
