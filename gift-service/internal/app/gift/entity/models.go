package entity

import (
	"time"

	"giftshop/gift-service/internal/app/gift/errcode"
)

// Category группирует товары. Имя уникально среди всех категорий
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(15);uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}

func NewCategory(name string) *Category {
	return &Category{Name: name}
}

func (c *Category) ChangeName(name string) {
	c.Name = name
}

// Product товар каталога. У товара всегда есть хотя бы одна опция, имена опций уникальны в пределах товара
type Product struct {
	ID         int64    `json:"id" gorm:"primaryKey"`
	Name       string   `json:"name" gorm:"type:varchar(15);not null"`
	Price      int      `json:"price" gorm:"not null"`
	ImageURL   string   `json:"image_url" gorm:"column:image_url;type:varchar(255);not null"`
	CategoryID int64    `json:"category_id" gorm:"not null"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID"`
	Options    []Option `json:"options" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string {
	return "products"
}

// NewProduct собирает товар вместе с опциями и проверяет инварианты опций
func NewProduct(name string, price int, imageURL string, category *Category, options []Option) (*Product, error) {
	p := &Product{
		Name:       name,
		Price:      price,
		ImageURL:   imageURL,
		CategoryID: category.ID,
		Category:   *category,
	}

	if len(options) == 0 {
		return nil, errcode.AtLeastOneOptionRequired
	}
	for _, o := range options {
		if err := p.AddOption(o); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Update меняет изменяемые поля товара. Опции не затрагиваются
func (p *Product) Update(name string, price int, imageURL string, category *Category) {
	p.Name = name
	p.Price = price
	p.ImageURL = imageURL
	p.CategoryID = category.ID
	p.Category = *category
}

func (p *Product) HasOption(name string) bool {
	for _, o := range p.Options {
		if o.Name == name {
			return true
		}
	}
	return false
}

func (p *Product) FindOption(optionID int64) (*Option, error) {
	for i := range p.Options {
		if p.Options[i].ID == optionID {
			return &p.Options[i], nil
		}
	}
	return nil, errcode.OptionNotFound
}

func (p *Product) AddOption(option Option) error {
	if p.HasOption(option.Name) {
		return errcode.DuplicateOption
	}
	option.ProductID = p.ID
	p.Options = append(p.Options, option)
	return nil
}

// EditOption переименовывает опцию. Переименование в собственное имя конфликтом не считается
func (p *Product) EditOption(optionID int64, name string, quantity int64) (*Option, error) {
	option, err := p.FindOption(optionID)
	if err != nil {
		return nil, err
	}
	if option.Name != name && p.HasOption(name) {
		return nil, errcode.DuplicateOption
	}

	option.Name = name
	option.Quantity = quantity
	return option, nil
}

// RemoveOption удаляет опцию, но не последнюю
func (p *Product) RemoveOption(optionID int64) error {
	if _, err := p.FindOption(optionID); err != nil {
		return err
	}
	if len(p.Options) <= 1 {
		return errcode.AtLeastOneOptionRequired
	}

	kept := p.Options[:0]
	for _, o := range p.Options {
		if o.ID != optionID {
			kept = append(kept, o)
		}
	}
	p.Options = kept
	return nil
}

// Option вариант товара (размер, вкус) со своим количеством
type Option struct {
	ID        int64  `json:"id" gorm:"primaryKey"`
	ProductID int64  `json:"product_id" gorm:"not null;uniqueIndex:uk_option_product_name"`
	Name      string `json:"name" gorm:"type:varchar(50);not null;uniqueIndex:uk_option_product_name"`
	Quantity  int64  `json:"quantity" gorm:"not null"`
}

func (Option) TableName() string {
	return "options"
}

// Member участник. Password хранит bcrypt хэш
type Member struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"`
}

func (Member) TableName() string {
	return "members"
}

// Wish пара (участник, товар) в вишлисте
type Wish struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	MemberID  int64     `json:"member_id" gorm:"not null;uniqueIndex:uk_wish_member_product"`
	ProductID int64     `json:"product_id" gorm:"not null;uniqueIndex:uk_wish_member_product"`
	Product   Product   `json:"product" gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Wish) TableName() string {
	return "wishes"
}

// ProductEvent событие изменения товара для Kafka
type ProductEvent struct {
	EventType  string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID  int64     `json:"product_id"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	CategoryID int64     `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	ProductCreated = "PRODUCT_CREATED"
	ProductUpdated = "PRODUCT_UPDATED"
	ProductDeleted = "PRODUCT_DELETED"
)
