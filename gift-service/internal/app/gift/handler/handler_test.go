package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/errcode"
	"giftshop/gift-service/internal/app/gift/repository"
	"giftshop/gift-service/internal/app/gift/repository/mocks"
	"giftshop/gift-service/internal/app/gift/service"
	"giftshop/gift-service/internal/app/gift/util"
	"giftshop/gift-service/internal/app/gift/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv полный роутер поверх мок-репозиториев
type testEnv struct {
	router       *gin.Engine
	categoryRepo *mocks.MockCategoryRepository
	productRepo  *mocks.MockProductRepository
	memberRepo   *mocks.MockMemberRepository
	wishlistRepo *mocks.MockWishlistRepository
	cache        *mocks.MockCategoryCache
	blacklist    *mocks.MockTokenBlacklist
	publisher    *mocks.MockMessagePublisher
	jwtManager   *util.JWTManager
}

func newTestEnv() *testEnv {
	env := &testEnv{
		categoryRepo: new(mocks.MockCategoryRepository),
		productRepo:  new(mocks.MockProductRepository),
		memberRepo:   new(mocks.MockMemberRepository),
		wishlistRepo: new(mocks.MockWishlistRepository),
		cache:        new(mocks.MockCategoryCache),
		blacklist:    new(mocks.MockTokenBlacklist),
		publisher:    new(mocks.MockMessagePublisher),
		jwtManager:   util.NewJWTManager("test-secret-key", 15*time.Minute),
	}
	tx := &mocks.FakeTxManager{}
	v := validation.New()

	categoryService := service.NewCategoryService(env.categoryRepo, tx, env.cache, time.Hour)
	productService := service.NewProductService(env.productRepo, env.categoryRepo, tx, env.publisher)
	memberService := service.NewMemberService(env.memberRepo, tx, env.jwtManager, env.blacklist)
	wishlistService := service.NewWishlistService(env.wishlistRepo, env.memberRepo, env.productRepo, tx)

	env.router = SetupRoutes(Handlers{
		Category: NewCategoryHandler(categoryService, v),
		Product:  NewProductHandler(productService, v),
		Member:   NewMemberHandler(memberService, v),
		Wishlist: NewWishlistHandler(wishlistService, v),
		Auth:     NewAuthMiddleware(memberService),
	})
	return env
}

func (env *testEnv) do(method, path string, body any, header ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// bearer выпускает токен и разрешает его в черном списке
func (env *testEnv) bearer(t *testing.T, memberID int64) string {
	t.Helper()

	token, err := env.jwtManager.GenerateAccessToken(memberID, "user@example.com")
	require.NoError(t, err)
	env.blacklist.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil)
	return "Bearer " + token
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) entity.ErrorResponse {
	t.Helper()

	var resp entity.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, code errcode.ErrorCode) {
	t.Helper()

	assert.Equal(t, code.Status(), w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, code.Status(), resp.Status)
	assert.Equal(t, code.Message(), resp.Message)
}

func testProduct() *entity.Product {
	return &entity.Product{
		ID:         1,
		Name:       "iced tea",
		Price:      2500,
		ImageURL:   "https://example.com",
		CategoryID: 1,
		Category:   entity.Category{ID: 1, Name: "beverage"},
		Options:    []entity.Option{{ID: 10, ProductID: 1, Name: "option", Quantity: 123}},
	}
}

// ==================== Ops ====================

func TestHealth(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gift-service")
}

// ==================== Categories ====================

func TestCategoryHandler_GetCategories(t *testing.T) {
	env := newTestEnv()
	env.cache.On("GetCategories", mock.Anything).Return([]entity.Category{{ID: 1, Name: "beverage"}}, nil)

	w := env.do(http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var categories []entity.CategoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Equal(t, []entity.CategoryResponse{{ID: 1, Name: "beverage"}}, categories)
}

func TestCategoryHandler_AddCategory(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		env := newTestEnv()
		env.categoryRepo.On("ExistsByName", mock.Anything, "beverage").Return(false, nil)
		env.categoryRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		env.cache.On("DeleteCategories", mock.Anything).Return(nil)

		w := env.do(http.MethodPost, "/api/categories", entity.CategoryRequest{Name: "beverage"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("duplicate", func(t *testing.T) {
		env := newTestEnv()
		env.categoryRepo.On("ExistsByName", mock.Anything, "beverage").Return(true, nil)

		w := env.do(http.MethodPost, "/api/categories", entity.CategoryRequest{Name: "beverage"})

		assertErrorCode(t, w, errcode.CategoryNameNotDuplicates)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("empty name never reaches service", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(http.MethodPost, "/api/categories", entity.CategoryRequest{Name: ""})

		assertErrorCode(t, w, errcode.ValidationError)
		env.categoryRepo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(http.MethodPost, "/api/categories", `{"name":`)

		assertErrorCode(t, w, errcode.ValidationError)
	})
}

func TestCategoryHandler_EditAndRemove(t *testing.T) {
	t.Run("edit not found", func(t *testing.T) {
		env := newTestEnv()
		env.categoryRepo.On("FindByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)

		w := env.do(http.MethodPut, "/api/categories/9", entity.CategoryRequest{Name: "food"})

		assertErrorCode(t, w, errcode.CategoryNotFound)
	})

	t.Run("non numeric id", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(http.MethodDelete, "/api/categories/abc", nil)

		assertErrorCode(t, w, errcode.ValidationError)
	})

	t.Run("remove", func(t *testing.T) {
		env := newTestEnv()
		env.categoryRepo.On("FindByID", mock.Anything, int64(1)).Return(&entity.Category{ID: 1, Name: "beverage"}, nil)
		env.categoryRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
		env.cache.On("DeleteCategories", mock.Anything).Return(nil)

		w := env.do(http.MethodDelete, "/api/categories/1", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unexpected error is a 500", func(t *testing.T) {
		env := newTestEnv()
		env.categoryRepo.On("FindByID", mock.Anything, int64(1)).Return(&entity.Category{ID: 1, Name: "beverage"}, nil)
		env.categoryRepo.On("Delete", mock.Anything, int64(1)).Return(errors.New("foreign key violation"))

		w := env.do(http.MethodDelete, "/api/categories/1", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, http.StatusInternalServerError, resp.Status)
		assert.NotContains(t, resp.Message, "foreign key")
	})
}

// ==================== Products ====================

func TestProductHandler_GetProducts(t *testing.T) {
	t.Run("default page", func(t *testing.T) {
		env := newTestEnv()
		env.productRepo.On("FindPage", mock.Anything, entity.DefaultPageRequest()).
			Return([]entity.Product{*testProduct()}, int64(1), nil)

		w := env.do(http.MethodGet, "/api/products", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var page entity.Page[entity.ProductResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Len(t, page.Content, 1)
		assert.Equal(t, 10, page.Size)
	})

	t.Run("custom page", func(t *testing.T) {
		env := newTestEnv()
		want := entity.PageRequest{Page: 2, Size: 5, Sort: "price,asc"}
		env.productRepo.On("FindPage", mock.Anything, want).Return([]entity.Product{}, int64(0), nil)

		w := env.do(http.MethodGet, "/api/products?page=2&size=5&sort=price,asc", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		env.productRepo.AssertExpectations(t)
	})

	t.Run("bad sort", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(http.MethodGet, "/api/products?sort=password", nil)

		assertErrorCode(t, w, errcode.ValidationError)
	})
}

func TestProductHandler_GetProduct(t *testing.T) {
	env := newTestEnv()
	env.productRepo.On("FindByID", mock.Anything, int64(1)).Return(testProduct(), nil)
	env.productRepo.On("FindByID", mock.Anything, int64(2)).Return(nil, repository.ErrNotFound)

	w := env.do(http.MethodGet, "/api/products/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var product entity.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "iced tea", product.Name)
	assert.Equal(t, "https://example.com", product.ImageURL)

	w = env.do(http.MethodGet, "/api/products/2", nil)
	assertErrorCode(t, w, errcode.ProductNotFound)
}

func TestProductHandler_AddProduct(t *testing.T) {
	valid := map[string]any{
		"name":       "iced tea",
		"price":      2500,
		"imageUrl":   "https://example.com",
		"categoryId": 1,
		"options":    []map[string]any{{"name": "option", "quantity": 123}},
	}

	t.Run("created", func(t *testing.T) {
		env := newTestEnv()
		env.categoryRepo.On("FindByID", mock.Anything, int64(1)).Return(&entity.Category{ID: 1, Name: "beverage"}, nil)
		env.productRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		env.publisher.On("PublishMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		w := env.do(http.MethodPost, "/api/products", valid)

		assert.Equal(t, http.StatusCreated, w.Code)
		var product entity.ProductResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
		assert.Equal(t, "iced tea", product.Name)
		assert.Equal(t, 2500, product.Price)
		assert.Equal(t, int64(1), product.Category.ID)
	})

	t.Run("no options", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(http.MethodPost, "/api/products", map[string]any{"name": "", "price": -1, "options": []any{}})

		assertErrorCode(t, w, errcode.AtLeastOneOptionRequired)
	})

	t.Run("reserved word", func(t *testing.T) {
		env := newTestEnv()
		body := map[string]any{}
		for k, v := range valid {
			body[k] = v
		}
		body["name"] = "카카오 선물"

		w := env.do(http.MethodPost, "/api/products", body)

		assertErrorCode(t, w, errcode.ValidationError)
	})

	t.Run("unknown category", func(t *testing.T) {
		env := newTestEnv()
		env.categoryRepo.On("FindByID", mock.Anything, int64(1)).Return(nil, repository.ErrNotFound)

		w := env.do(http.MethodPost, "/api/products", valid)

		assertErrorCode(t, w, errcode.CategoryNotFound)
		env.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductHandler_Options(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		env := newTestEnv()
		env.productRepo.On("FindByID", mock.Anything, int64(1)).Return(testProduct(), nil)

		w := env.do(http.MethodGet, "/api/products/1/options", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[{"id":10,"name":"option","quantity":123}]`, w.Body.String())
	})

	t.Run("add duplicate", func(t *testing.T) {
		env := newTestEnv()
		env.productRepo.On("FindByID", mock.Anything, int64(1)).Return(testProduct(), nil)

		w := env.do(http.MethodPost, "/api/products/1/options", entity.OptionRequest{Name: "option", Quantity: 1})

		assertErrorCode(t, w, errcode.DuplicateOption)
	})

	t.Run("remove last", func(t *testing.T) {
		env := newTestEnv()
		env.productRepo.On("FindByID", mock.Anything, int64(1)).Return(testProduct(), nil)

		w := env.do(http.MethodDelete, "/api/products/1/options/10", nil)

		assertErrorCode(t, w, errcode.AtLeastOneOptionRequired)
	})

	t.Run("edit unknown option", func(t *testing.T) {
		env := newTestEnv()
		env.productRepo.On("FindByID", mock.Anything, int64(1)).Return(testProduct(), nil)

		w := env.do(http.MethodPut, "/api/products/1/options/99", entity.OptionRequest{Name: "x", Quantity: 1})

		assertErrorCode(t, w, errcode.OptionNotFound)
	})
}

// ==================== Members ====================

func TestMemberHandler_Register(t *testing.T) {
	env := newTestEnv()
	env.memberRepo.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, repository.ErrNotFound)
	env.memberRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Member).ID = 1 }).
		Return(nil)

	w := env.do(http.MethodPost, "/api/members/register", entity.MemberRequest{Email: "new@example.com", Password: "password"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp entity.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestMemberHandler_Login_Failure(t *testing.T) {
	env := newTestEnv()
	env.memberRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	w := env.do(http.MethodPost, "/api/members/login", entity.MemberRequest{Email: "ghost@example.com", Password: "password"})

	assertErrorCode(t, w, errcode.LoginFailure)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMemberHandler_Me(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(http.MethodGet, "/api/members/me", nil)

		assertErrorCode(t, w, errcode.MissingToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(http.MethodGet, "/api/members/me", nil, "Authorization", "Bearer broken")

		assertErrorCode(t, w, errcode.InvalidToken)
	})

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv()
		auth := env.bearer(t, 3)
		env.memberRepo.On("FindByID", mock.Anything, int64(3)).Return(&entity.Member{ID: 3, Email: "user@example.com"}, nil)

		w := env.do(http.MethodGet, "/api/members/me", nil, "Authorization", auth)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":3,"email":"user@example.com"}`, w.Body.String())
	})
}

func TestMemberHandler_Logout(t *testing.T) {
	env := newTestEnv()
	auth := env.bearer(t, 3)
	env.blacklist.On("Revoke", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	w := env.do(http.MethodPost, "/api/members/logout", nil, "Authorization", auth)

	assert.Equal(t, http.StatusNoContent, w.Code)
	env.blacklist.AssertCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

// ==================== Wishes ====================

func TestWishlistHandler(t *testing.T) {
	t.Run("requires token", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(http.MethodGet, "/api/wishes", nil)

		assertErrorCode(t, w, errcode.MissingToken)
	})

	t.Run("add", func(t *testing.T) {
		env := newTestEnv()
		auth := env.bearer(t, 3)
		env.memberRepo.On("FindByID", mock.Anything, int64(3)).Return(&entity.Member{ID: 3}, nil)
		env.productRepo.On("FindByID", mock.Anything, int64(1)).Return(testProduct(), nil)
		env.wishlistRepo.On("Exists", mock.Anything, int64(3), int64(1)).Return(false, nil)
		env.wishlistRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		w := env.do(http.MethodPost, "/api/wishes", entity.WishRequest{ProductID: 1}, "Authorization", auth)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("add twice", func(t *testing.T) {
		env := newTestEnv()
		auth := env.bearer(t, 3)
		env.memberRepo.On("FindByID", mock.Anything, int64(3)).Return(&entity.Member{ID: 3}, nil)
		env.productRepo.On("FindByID", mock.Anything, int64(1)).Return(testProduct(), nil)
		env.wishlistRepo.On("Exists", mock.Anything, int64(3), int64(1)).Return(true, nil)

		w := env.do(http.MethodPost, "/api/wishes", entity.WishRequest{ProductID: 1}, "Authorization", auth)

		assertErrorCode(t, w, errcode.ProductAlreadyInWishlist)
	})

	t.Run("remove absent", func(t *testing.T) {
		env := newTestEnv()
		auth := env.bearer(t, 3)
		env.wishlistRepo.On("Delete", mock.Anything, int64(3), int64(1)).Return(repository.ErrNotFound)

		w := env.do(http.MethodDelete, "/api/wishes/1", nil, "Authorization", auth)

		assertErrorCode(t, w, errcode.ProductNotInWishlist)
	})

	t.Run("list", func(t *testing.T) {
		env := newTestEnv()
		auth := env.bearer(t, 3)
		env.wishlistRepo.On("FindPageByMember", mock.Anything, int64(3), entity.DefaultPageRequest()).
			Return([]entity.Wish{{ID: 1, MemberID: 3, ProductID: 1, Product: *testProduct()}}, int64(1), nil)

		w := env.do(http.MethodGet, "/api/wishes", nil, "Authorization", auth)

		assert.Equal(t, http.StatusOK, w.Code)
		var page entity.Page[entity.WishResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Len(t, page.Content, 1)
		assert.Equal(t, "iced tea", page.Content[0].Product.Name)
	})
}
