package infrastructure

import (
	"context"
	"time"

	"giftshop/gift-service/internal/app/gift/entity"
)

// CategoryCache кеш списка категорий. Промах возвращает nil без ошибки.
// Generation берется до чтения из БД, SetCategories записывает список только если поколение с тех пор не сменилось
type CategoryCache interface {
	GetCategories(ctx context.Context) ([]entity.Category, error)
	Generation(ctx context.Context) (int64, error)
	SetCategories(ctx context.Context, categories []entity.Category, generation int64, ttl time.Duration) error
	DeleteCategories(ctx context.Context) error
}

// TokenBlacklist отозванные токены (logout) до истечения их срока
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
