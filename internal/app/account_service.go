package app

import (
	"context"

	"classquiz-service/internal/auth"
	"classquiz-service/internal/domain"

	"github.com/google/uuid"
)

// AccountService handles registration and login.
type AccountService struct {
	users  UserStore
	tokens *auth.TokenManager
}

func NewAccountService(users UserStore, tokens *auth.TokenManager) *AccountService {
	return &AccountService{users: users, tokens: tokens}
}

// RegisterInput is the registration payload after transport-level decoding.
type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// Register creates a new account. Duplicate emails surface as
// domain.ErrEmailTaken from the store's unique constraint rather than a
// separate read, so concurrent registrations cannot both win.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) error {
	if in.Role != domain.RoleTeacher && in.Role != domain.RoleStudent {
		return domain.Validation("Invalid role selected")
	}
	if in.FullName == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return domain.Validation("All fields are required")
	}
	if in.Password != in.ConfirmPassword {
		return domain.Validation("Passwords do not match")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	return s.users.CreateUser(ctx, domain.User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	})
}

// Login verifies credentials and issues a bearer token.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, domain.PublicUser, error) {
	if email == "" || password == "" {
		return "", domain.PublicUser{}, domain.Validation("Email and password are required")
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		return "", domain.PublicUser{}, domain.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", domain.PublicUser{}, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", domain.PublicUser{}, err
	}
	return token, user.Public(), nil
}
