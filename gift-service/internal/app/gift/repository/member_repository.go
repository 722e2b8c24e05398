package repository

import (
	"context"

	"giftshop/gift-service/internal/app/gift/entity"

	"gorm.io/gorm"
)

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create сохраняет участника. Занятый email дает ErrDuplicate
func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	return translateError(conn(ctx, r.db).Create(member).Error, "create member")
}

func (r *memberRepository) FindByID(ctx context.Context, id int64) (*entity.Member, error) {
	var member entity.Member
	if err := conn(ctx, r.db).First(&member, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "get member")
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	var member entity.Member
	if err := conn(ctx, r.db).Where("email = ?", email).First(&member).Error; err != nil {
		return nil, translateError(err, "get member by email")
	}
	return &member, nil
}
