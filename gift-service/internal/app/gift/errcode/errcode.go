// Package errcode реестр доменных ошибок. Каждый код связан с одним HTTP статусом и одним сообщением для пользователя
package errcode

import (
	"errors"
	"net/http"
)

// ErrorCode вид доменной ошибки. Реализует error, сервисы возвращают его напрямую
type ErrorCode int

const (
	// Validation
	ValidationError ErrorCode = iota + 1

	// Product
	ProductNotFound

	// Member
	MemberNotFound

	// JWT
	InvalidToken
	MissingToken

	// MemberService
	DuplicatedEmail
	LoginFailure

	// WishlistService
	ProductAlreadyInWishlist
	ProductNotInWishlist

	// CategoryService
	CategoryNotFound
	CategoryNameNotDuplicates

	// ProductService
	DuplicateOption
	OptionNotFound
	AtLeastOneOptionRequired
)

type definition struct {
	name    string
	message string
	status  int
}

var definitions = map[ErrorCode]definition{
	ValidationError: {"VALIDATION_ERROR", "입력 데이터의 유효성을 검사하던 중 문제가 발생했습니다.", http.StatusBadRequest},

	ProductNotFound: {"PRODUCT_NOT_FOUND", "존재하지 않는 상품입니다.", http.StatusNotFound},

	MemberNotFound: {"MEMBER_NOT_FOUND", "존재하지 않는 회원입니다.", http.StatusNotFound},

	InvalidToken: {"INVALID_TOKEN", "유효하지 않거나 만료된 토큰입니다.", http.StatusUnauthorized},
	MissingToken: {"MISSING_TOKEN", "헤더에 토큰이 존재하지 않거나 잘못된 형식입니다.", http.StatusUnauthorized},

	DuplicatedEmail: {"DUPLICATED_EMAIL", "중복된 이메일입니다.", http.StatusConflict},
	LoginFailure:    {"LOGIN_FAILURE", "이메일 또는 비밀번호가 일치하지 않습니다.", http.StatusForbidden},

	ProductAlreadyInWishlist: {"PRODUCT_ALREADY_IN_WISHLIST", "이미 위시리스트에 추가된 상품입니다.", http.StatusConflict},
	ProductNotInWishlist:     {"PRODUCT_NOT_IN_WISHLIST", "이미 위시리스트에 존재하지 않는 상품입니다.", http.StatusNotFound},

	CategoryNotFound:          {"CATEGORY_NOT_FOUND", "존재하지 않는 카테고리입니다.", http.StatusNotFound},
	CategoryNameNotDuplicates: {"CATEGORY_NAME_NOT_DUPLICATES", "이미 존재하는 카테고리 이름입니다.", http.StatusConflict},

	DuplicateOption:          {"DUPLICATE_OPTION", "중복된 옵션입니다.", http.StatusConflict},
	OptionNotFound:           {"OPTION_NOT_FOUND", "존재하지 않는 옵션입니다.", http.StatusNotFound},
	AtLeastOneOptionRequired: {"AT_LEAST_ONE_OPTION_REQUIRED", "상품에는 반드시 하나 이상의 옵션이 있어야 합니다.", http.StatusBadRequest},
}

// All все коды в порядке объявления
func All() []ErrorCode {
	codes := make([]ErrorCode, 0, len(definitions))
	for c := ValidationError; c <= AtLeastOneOptionRequired; c++ {
		codes = append(codes, c)
	}
	return codes
}

// InternalErrorMessage текст ответа 500. Его же отдает Message для незарегистрированного кода
const InternalErrorMessage = "서버 내부 오류가 발생했습니다."

func (c ErrorCode) Message() string {
	if d, ok := definitions[c]; ok {
		return d.message
	}
	return InternalErrorMessage
}

func (c ErrorCode) Status() int {
	if d, ok := definitions[c]; ok {
		return d.status
	}
	return http.StatusInternalServerError
}

// String стабильное имя, например PRODUCT_NOT_FOUND
func (c ErrorCode) String() string {
	if d, ok := definitions[c]; ok {
		return d.name
	}
	return "UNKNOWN"
}

func (c ErrorCode) Error() string {
	return c.String()
}

func (c ErrorCode) Valid() bool {
	_, ok := definitions[c]
	return ok
}

type codedError struct {
	code  ErrorCode
	cause error
}

func (e *codedError) Error() string {
	return e.code.String() + ": " + e.cause.Error()
}

func (e *codedError) Unwrap() []error {
	return []error{e.code, e.cause}
}

// Wrap помечает cause кодом. Результат проходит и errors.Is(err, code), и errors.Is(err, cause)
func Wrap(code ErrorCode, cause error) error {
	if cause == nil {
		return code
	}
	return &codedError{code: code, cause: cause}
}

// From достает ErrorCode из цепочки ошибок
func From(err error) (ErrorCode, bool) {
	var code ErrorCode
	if errors.As(err, &code) && code.Valid() {
		return code, true
	}
	return 0, false
}
