package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/encadra/encadra/internal/modules/model"
	"github.com/encadra/encadra/internal/modules/repo"
	"github.com/encadra/encadra/internal/pkg/token"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.PublicUser, error)
	// Login returns an empty token for unknown emails and wrong passwords
	// alike, so the caller cannot tell which check failed.
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users  repo.UserRepo
	issuer *token.Issuer
	log    *zap.Logger
}

func NewAuthService(users repo.UserRepo, issuer *token.Issuer, log *zap.Logger) AuthService {
	return &authService{users: users, issuer: issuer, log: log}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.PublicUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.ParseRole(in.Role),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		s.log.Sugar().Errorw("failed to create user", "email", in.Email, "err", err)
		return nil, err
	}

	pub := user.Public()
	return &pub, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		s.log.Sugar().Errorw("failed to look up user", "err", err)
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil
	}

	return s.issuer.Generate(user.ID, user.Email)
}
