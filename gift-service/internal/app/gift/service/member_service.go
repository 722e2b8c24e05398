package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"giftshop/gift-service/internal/app/gift/entity"
	"giftshop/gift-service/internal/app/gift/errcode"
	"giftshop/gift-service/internal/app/gift/infrastructure"
	"giftshop/gift-service/internal/app/gift/repository"
	"giftshop/gift-service/internal/app/gift/util"
	"giftshop/pkg/metrics"
)

const bearerPrefix = "Bearer "

// MemberService регистрация, вход и проверка токенов участников
type MemberService struct {
	memberRepo repository.MemberRepository
	txManager  repository.TxManager
	jwtManager *util.JWTManager
	blacklist  infrastructure.TokenBlacklist
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	txManager repository.TxManager,
	jwtManager *util.JWTManager,
	blacklist infrastructure.TokenBlacklist,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		txManager:  txManager,
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// Register создает участника и сразу выдает токен
func (s *MemberService) Register(ctx context.Context, req *entity.MemberRequest) (*entity.TokenResponse, error) {
	hash, err := util.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, util.ErrPasswordTooLong) {
			return nil, errcode.Wrap(errcode.ValidationError, err)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	member := &entity.Member{Email: req.Email, Password: hash}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.memberRepo.FindByEmail(ctx, req.Email)
		switch {
		case err == nil:
			return errcode.DuplicatedEmail
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		// уникальный индекс ловит параллельную регистрацию
		if err := s.memberRepo.Create(ctx, member); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errcode.DuplicatedEmail
			}
			return err
		}
		return nil
	})
	if err != nil {
		if _, ok := errcode.From(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register member: %w", err)
	}

	metrics.MemberRegistrations.Inc()
	return s.issueToken(member)
}

// Login не различает неизвестный email и неверный пароль
func (s *MemberService) Login(ctx context.Context, req *entity.MemberRequest) (*entity.TokenResponse, error) {
	member, err := s.memberRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.RecordLogin(false)
			return nil, errcode.LoginFailure
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if !util.CheckPassword(req.Password, member.Password) {
		metrics.RecordLogin(false)
		return nil, errcode.LoginFailure
	}

	metrics.RecordLogin(true)
	return s.issueToken(member)
}

// Logout отзывает токен до конца его срока жизни
func (s *MemberService) Logout(ctx context.Context, claims *util.JWTClaims) error {
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.TTL()); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

func (s *MemberService) GetMember(ctx context.Context, memberID int64) (*entity.MemberResponse, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errcode.MemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	resp := member.ToResponse()
	return &resp, nil
}

// Authenticate разбирает заголовок Authorization.
// Нет заголовка или не "Bearer <token>" -> MISSING_TOKEN, плохой или отозванный токен -> INVALID_TOKEN
func (s *MemberService) Authenticate(ctx context.Context, authHeader string) (*util.JWTClaims, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, errcode.MissingToken
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if tokenString == "" {
		return nil, errcode.MissingToken
	}

	claims, err := s.jwtManager.ValidateToken(tokenString)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidToken, err)
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return nil, errcode.InvalidToken
	}

	return claims, nil
}

func (s *MemberService) issueToken(member *entity.Member) (*entity.TokenResponse, error) {
	token, err := s.jwtManager.GenerateAccessToken(member.ID, member.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &entity.TokenResponse{Token: token}, nil
}
