package usecases

import (
	"context"
	"strings"
	"time"

	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
	"vendor-pay.backend/pkg/crypto"
	"vendor-pay.backend/pkg/jwt"
	"vendor-pay.backend/pkg/utils"
)

// AuthUsecase handles registration and login
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo repositories.UserRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a CUSTOMER account. Vendor and staff roles are granted
// through separate flows.
func (u *AuthUsecase) Register(ctx context.Context, in *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if err != domainerrors.ErrNotFound {
		return nil, err
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        email,
		Name:         in.Name,
		Role:         entities.UserRoleCustomer,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return u.issueTokens(user)
}

// Login authenticates by email and password.
func (u *AuthUsecase) Login(ctx context.Context, in *entities.LoginInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(in.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return u.issueTokens(user)
}

func (u *AuthUsecase) issueTokens(user *entities.User) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}
