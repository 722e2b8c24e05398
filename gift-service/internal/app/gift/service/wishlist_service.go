package service

import (
	"context"
	"errors"
	"fmt"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/errcode"
	"giftshop/gift-service/internal/app/gift/repository"
	"giftshop/pkg/metrics"
)

// WishlistService вишлист участника: пара (участник, товар) либо есть, либо нет
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	memberRepo   repository.MemberRepository
	productRepo  repository.ProductRepository
	txManager    repository.TxManager
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	memberRepo repository.MemberRepository,
	productRepo repository.ProductRepository,
	txManager repository.TxManager,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		memberRepo:   memberRepo,
		productRepo:  productRepo,
		txManager:    txManager,
	}
}

func (s *WishlistService) GetWishes(ctx context.Context, memberID int64, page entity.PageRequest) (entity.Page[entity.WishResponse], error) {
	wishes, total, err := s.wishlistRepo.FindPageByMember(ctx, memberID, page)
	if err != nil {
		return entity.Page[entity.WishResponse]{}, fmt.Errorf("failed to get wishes: %w", err)
	}

	return entity.MapPage(entity.NewPage(wishes, page, total), func(w entity.Wish) entity.WishResponse {
		return w.ToResponse()
	}), nil
}

func (s *WishlistService) AddWish(ctx context.Context, memberID int64, req *entity.WishRequest) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.memberRepo.FindByID(ctx, memberID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errcode.MemberNotFound
			}
			return err
		}

		if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errcode.ProductNotFound
			}
			return err
		}

		exists, err := s.wishlistRepo.Exists(ctx, memberID, req.ProductID)
		if err != nil {
			return err
		}
		if exists {
			return errcode.ProductAlreadyInWishlist
		}

		err = s.wishlistRepo.Create(ctx, &entity.Wish{MemberID: memberID, ProductID: req.ProductID})
		if errors.Is(err, repository.ErrDuplicate) {
			return errcode.ProductAlreadyInWishlist
		}
		return err
	})
	if err != nil {
		return s.translate(err, "add wish")
	}

	metrics.WishlistOperations.WithLabelValues("add").Inc()
	return nil
}

func (s *WishlistService) RemoveWish(ctx context.Context, memberID, productID int64) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		err := s.wishlistRepo.Delete(ctx, memberID, productID)
		if errors.Is(err, repository.ErrNotFound) {
			return errcode.ProductNotInWishlist
		}
		return err
	})
	if err != nil {
		return s.translate(err, "remove wish")
	}

	metrics.WishlistOperations.WithLabelValues("remove").Inc()
	return nil
}

func (s *WishlistService) translate(err error, op string) error {
	if _, ok := errcode.From(err); ok {
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
