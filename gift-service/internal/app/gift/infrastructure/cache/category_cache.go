package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesCacheKey = "categories:all"
	categoriesGenKey   = "categories:gen"
	categoriesPrefix   = "categories"
)

// errGenerationChanged список устарел: после чтения из БД была инвалидация
var errGenerationChanged = errors.New("categories generation changed")

type CategoryCache struct {
	client *redis.Client
}

func NewCategoryCache(client *redis.Client) *CategoryCache {
	return &CategoryCache{client: client}
}

// Generation текущее поколение списка, растет при каждой инвалидации
func (c *CategoryCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, categoriesGenKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return 0, fmt.Errorf("failed to get categories generation: %w", err)
	}
	return gen, nil
}

// SetCategories кладет список под WATCH ключа поколения. Если поколение уже не то,
// с которым читали БД, запись молча пропускается: в кеш не попадет список старше инвалидации
func (c *CategoryCache) SetCategories(ctx context.Context, categories []entity.Category, generation int64, ttl time.Duration) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, categoriesGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errGenerationChanged
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, categoriesCacheKey, data, ttl)
			return nil
		})
		return err
	}, categoriesGenKey)

	switch {
	case err == nil, errors.Is(err, errGenerationChanged), errors.Is(err, redis.TxFailedErr):
		return nil
	default:
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set categories in cache: %w", err)
	}
}

// GetCategories читает список из кеша. При промахе возвращает nil, nil
func (c *CategoryCache) GetCategories(ctx context.Context) ([]entity.Category, error) {
	data, err := c.client.Get(ctx, categoriesCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheLookup(serviceName, categoriesPrefix, false)
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get categories from cache: %w", err)
	}

	var categories []entity.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	metrics.RecordCacheLookup(serviceName, categoriesPrefix, true)
	return categories, nil
}

// DeleteCategories сбрасывает список и сдвигает поколение одной транзакцией
func (c *CategoryCache) DeleteCategories(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, categoriesGenKey)
		pipe.Del(ctx, categoriesCacheKey)
		return nil
	})
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete categories from cache: %w", err)
	}
	return nil
}
