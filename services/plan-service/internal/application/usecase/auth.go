package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"learnboard/services/plan-service/internal/domain"
)

type AuthUseCase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenManager
}

func NewAuthUseCase(users UserRepository, hasher PasswordHasher, tokens TokenManager) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: tokens}
}

func (uc *AuthUseCase) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if _, err := uc.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns a signed access token. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := uc.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Generate(user.Username, user.ID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to its user.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := uc.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	return uc.users.GetByUsername(ctx, claims.Username)
}
