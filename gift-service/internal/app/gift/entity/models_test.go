package entity

import (
	"testing"

	"giftshop/gift-service/internal/app/gift/errcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *Product {
	t.Helper()

	category := &Category{ID: 1, Name: "beverage"}
	product, err := NewProduct("iced tea", 2500, "https://example.com", category, []Option{
		{ID: 10, Name: "small", Quantity: 5},
		{ID: 11, Name: "large", Quantity: 3},
	})
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	category := &Category{ID: 7, Name: "beverage"}

	t.Run("success", func(t *testing.T) {
		product, err := NewProduct("iced tea", 2500, "https://example.com", category, []Option{{Name: "option", Quantity: 123}})
		require.NoError(t, err)
		assert.Equal(t, int64(7), product.CategoryID)
		assert.Len(t, product.Options, 1)
	})

	t.Run("no options", func(t *testing.T) {
		product, err := NewProduct("iced tea", 2500, "https://example.com", category, nil)
		assert.ErrorIs(t, err, errcode.AtLeastOneOptionRequired)
		assert.Nil(t, product)
	})

	t.Run("duplicate option names", func(t *testing.T) {
		product, err := NewProduct("iced tea", 2500, "https://example.com", category, []Option{
			{Name: "option", Quantity: 1},
			{Name: "option", Quantity: 2},
		})
		assert.ErrorIs(t, err, errcode.DuplicateOption)
		assert.Nil(t, product)
	})
}

func TestProduct_Update_KeepsOptions(t *testing.T) {
	product := newTestProduct(t)

	product.Update("green tea", 3000, "https://example.com/green", &Category{ID: 2, Name: "tea"})

	assert.Equal(t, "green tea", product.Name)
	assert.Equal(t, 3000, product.Price)
	assert.Equal(t, int64(2), product.CategoryID)
	assert.Equal(t, "tea", product.Category.Name)
	assert.Len(t, product.Options, 2)
}

func TestProduct_AddOption(t *testing.T) {
	product := newTestProduct(t)
	product.ID = 5

	require.NoError(t, product.AddOption(Option{Name: "medium", Quantity: 1}))
	assert.Len(t, product.Options, 3)
	assert.Equal(t, int64(5), product.Options[2].ProductID)

	assert.ErrorIs(t, product.AddOption(Option{Name: "small", Quantity: 1}), errcode.DuplicateOption)
}

func TestProduct_EditOption(t *testing.T) {
	product := newTestProduct(t)

	option, err := product.EditOption(10, "small", 99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), option.Quantity)

	_, err = product.EditOption(10, "large", 1)
	assert.ErrorIs(t, err, errcode.DuplicateOption)

	_, err = product.EditOption(404, "x", 1)
	assert.ErrorIs(t, err, errcode.OptionNotFound)
}

func TestProduct_RemoveOption(t *testing.T) {
	product := newTestProduct(t)

	assert.ErrorIs(t, product.RemoveOption(404), errcode.OptionNotFound)

	require.NoError(t, product.RemoveOption(10))
	require.Len(t, product.Options, 1)
	assert.Equal(t, "large", product.Options[0].Name)

	assert.ErrorIs(t, product.RemoveOption(11), errcode.AtLeastOneOptionRequired)
	assert.Len(t, product.Options, 1)
}

func TestCategory_ChangeName(t *testing.T) {
	category := NewCategory("beverage")
	category.ChangeName("food")
	assert.Equal(t, "food", category.Name)
}

func TestProduct_ToResponse(t *testing.T) {
	product := newTestProduct(t)
	product.ID = 3

	resp := product.ToResponse()
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "iced tea", resp.Name)
	assert.Equal(t, "beverage", resp.Category.Name)
	assert.Len(t, resp.Options, 2)
}
