package util

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt учитывает не больше 72 байт, а пароль из 64 символов хангыля занимает 192
const maxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// PasswordCost стоимость bcrypt. Тесты понижают ее до bcrypt.MinCost
var PasswordCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword битый или пустой хэш считает несовпадением
func CheckPassword(password, hash string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
