package validation

import (
	"strings"
	"unicode"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/errcode"

	"github.com/go-playground/validator/v10"
)

// Зарезервированное слово, которое нельзя использовать в названии товара
const reservedWord = "카카오"

// Спецсимволы, разрешенные в названиях товаров и опций
const allowedSpecials = "()[]+-&/_"

// Prechecker запрос с доменной проверкой, которая выполняется до проверки тегов
type Prechecker interface {
	Precheck() error
}

// Validator обертка над validator.Validate с правилами каталога
type Validator struct {
	validate *validator.Validate
}

// New создает валидатор и регистрирует кастомные правила
func New() *Validator {
	v := validator.New()

	// Ошибки всегда собраны, регистрация не может упасть на корректных именах
	_ = v.RegisterValidation("productname", validateProductName)
	_ = v.RegisterValidation("nokakao", validateNoReservedWord)
	_ = v.RegisterValidation("pagesort", validatePageSort)

	return &Validator{validate: v}
}

// Validate проверяет запрос. Нарушение тегов превращается в VALIDATION_ERROR
func (v *Validator) Validate(req any) error {
	if p, ok := req.(Prechecker); ok {
		if err := p.Precheck(); err != nil {
			return err
		}
	}

	if err := v.validate.Struct(req); err != nil {
		return errcode.Wrap(errcode.ValidationError, err)
	}
	return nil
}

func validateProductName(fl validator.FieldLevel) bool {
	return IsProductName(fl.Field().String())
}

func validateNoReservedWord(fl validator.FieldLevel) bool {
	return !strings.Contains(fl.Field().String(), reservedWord)
}

func validatePageSort(fl validator.FieldLevel) bool {
	return entity.IsSortable(fl.Field().String())
}

// IsProductName допускает буквы, цифры, пробелы и ограниченный набор спецсимволов
func IsProductName(name string) bool {
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == ' ':
		case strings.ContainsRune(allowedSpecials, r):
		default:
			return false
		}
	}
	return true
}
