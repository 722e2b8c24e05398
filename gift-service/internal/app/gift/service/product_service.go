package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/errcode"
	"giftshop/gift-service/internal/app/gift/infrastructure"
	"giftshop/gift-service/internal/app/gift/repository"
	"giftshop/pkg/logger"
	"giftshop/pkg/metrics"
)

const publishTimeout = 5 * time.Second

// ProductService бизнес-логика товаров и их опций.
// После коммита изменения товара отправляет ProductEvent в Kafka
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txManager    repository.TxManager
	publisher    infrastructure.MessagePublisher
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	txManager repository.TxManager,
	publisher infrastructure.MessagePublisher,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// GetProducts постраничный список, параметры сортировки передаются в репозиторий как есть
func (s *ProductService) GetProducts(ctx context.Context, page entity.PageRequest) (entity.Page[entity.ProductResponse], error) {
	products, total, err := s.productRepo.FindPage(ctx, page)
	if err != nil {
		return entity.Page[entity.ProductResponse]{}, fmt.Errorf("failed to get products: %w", err)
	}

	return entity.MapPage(entity.NewPage(products, page, total), func(p entity.Product) entity.ProductResponse {
		return p.ToResponse()
	}), nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*entity.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "get product")
	}

	resp := product.ToResponse()
	return &resp, nil
}

// AddProduct сохраняет товар вместе с опциями.
// Опции проверяются раньше категории, поэтому товар без опций всегда дает AT_LEAST_ONE_OPTION_REQUIRED
func (s *ProductService) AddProduct(ctx context.Context, req *entity.ProductCreateRequest) (*entity.ProductResponse, error) {
	options := make([]entity.Option, 0, len(req.Options))
	for _, o := range req.Options {
		options = append(options, o.ToOption())
	}

	product, err := entity.NewProduct(req.Name, req.Price, req.ImageURL, &entity.Category{ID: req.CategoryID}, options)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
		if err != nil {
			return categoryError(err)
		}
		product.Category = *category

		if err := s.productRepo.Create(ctx, product); err != nil {
			return optionError(err)
		}
		return nil
	})
	if err != nil {
		return nil, s.translate(err, "create product")
	}

	s.publishEvent(ctx, entity.ProductCreated, product)

	resp := product.ToResponse()
	return &resp, nil
}

// EditProduct меняет поля товара, опции остаются прежними
func (s *ProductService) EditProduct(ctx context.Context, id int64, req *entity.ProductUpdateRequest) error {
	var product *entity.Product

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		category, err := s.categoryRepo.FindByID(ctx, req.CategoryID)
		if err != nil {
			return categoryError(err)
		}

		product.Update(req.Name, req.Price, req.ImageURL, category)
		return s.productRepo.Update(ctx, product)
	})
	if err != nil {
		return s.translate(err, "update product")
	}

	s.publishEvent(ctx, entity.ProductUpdated, product)
	return nil
}

func (s *ProductService) RemoveProduct(ctx context.Context, id int64) error {
	var product *entity.Product

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		product, err = s.productRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return s.productRepo.Delete(ctx, product.ID)
	})
	if err != nil {
		return s.translate(err, "delete product")
	}

	s.publishEvent(ctx, entity.ProductDeleted, product)
	return nil
}

// === OPTIONS ===

func (s *ProductService) GetOptions(ctx context.Context, productID int64) ([]entity.OptionResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, s.translate(err, "get product")
	}

	responses := make([]entity.OptionResponse, 0, len(product.Options))
	for i := range product.Options {
		responses = append(responses, product.Options[i].ToResponse())
	}
	return responses, nil
}

func (s *ProductService) AddOption(ctx context.Context, productID int64, req *entity.OptionRequest) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		if err := product.AddOption(req.ToOption()); err != nil {
			return err
		}

		option := product.Options[len(product.Options)-1]
		return optionError(s.productRepo.CreateOption(ctx, &option))
	})
	if err != nil {
		return s.translate(err, "create option")
	}
	return nil
}

func (s *ProductService) EditOption(ctx context.Context, productID, optionID int64, req *entity.OptionRequest) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		option, err := product.EditOption(optionID, req.Name, req.Quantity)
		if err != nil {
			return err
		}

		if err := s.productRepo.UpdateOption(ctx, option); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errcode.OptionNotFound
			}
			return optionError(err)
		}
		return nil
	})
	if err != nil {
		return s.translate(err, "update option")
	}
	return nil
}

// RemoveOption удаляет опцию, последняя опция товара не удаляется
func (s *ProductService) RemoveOption(ctx context.Context, productID, optionID int64) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		if err := product.RemoveOption(optionID); err != nil {
			return err
		}

		if err := s.productRepo.DeleteOption(ctx, productID, optionID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errcode.OptionNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return s.translate(err, "delete option")
	}
	return nil
}

// publishEvent отправляет событие уже после коммита. Ошибка Kafka только логируется
func (s *ProductService) publishEvent(ctx context.Context, eventType string, product *entity.Product) {
	metrics.ProductsChanged.WithLabelValues(eventType).Inc()

	event := entity.ProductEvent{
		EventType:  eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price,
		CategoryID: product.CategoryID,
		Timestamp:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Int64("product_id", product.ID).Msg("Failed to marshal product event")
		return
	}

	// запрос мог уже завершиться, событие все равно нужно отправить
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(product.ID, 10), data); err != nil {
		logger.Error().
			Err(err).
			Str("event_type", eventType).
			Int64("product_id", product.ID).
			Msg("Failed to publish product event")
	}
}

func (s *ProductService) translate(err error, op string) error {
	if _, ok := errcode.From(err); ok {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return errcode.ProductNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func categoryError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errcode.CategoryNotFound
	}
	return err
}

// optionError переводит нарушение уникальности (product_id, name) в DUPLICATE_OPTION
func optionError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return errcode.DuplicateOption
	}
	return err
}
