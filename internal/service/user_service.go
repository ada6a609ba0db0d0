package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/auth"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/config"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/repository"
	apperrors "github.com/MohanBabu05/Ticktet-Generation-Management-System/pkg/util"
)

// UserService handles admin account management.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.BcryptCost}
}

// CreateUser provisions an account with an explicit role. Admin only.
func (s *UserService) CreateUser(ctx context.Context, actor *domain.User, username, password, fullName string, role domain.Role) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("only admins can create users")
	}
	if !domain.IsValidRole(role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{
			"role":    role,
			"allowed": domain.ValidRoles,
		})
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewConflict("username already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	user := &domain.User{
		Username:     username,
		FullName:     fullName,
		Role:         role,
		PasswordHash: hash,
		CreatedBy:    actor.Username,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("username already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns all accounts. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbidden("only admins can view users")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// DeleteUser removes an account. Admin only; self-deletion is rejected.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, username string) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("only admins can delete users")
	}
	if username == actor.Username {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// UpdateRole changes an account's role. Admin only.
func (s *UserService) UpdateRole(ctx context.Context, actor *domain.User, username string, role domain.Role) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("only admins can update user roles")
	}
	if !domain.IsValidRole(role) {
		return apperrors.NewValidationError("invalid role", map[string]any{
			"role":    role,
			"allowed": domain.ValidRoles,
		})
	}
	if err := s.users.UpdateRole(ctx, username, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// ResetPassword sets a new password for another account. Admin only.
func (s *UserService) ResetPassword(ctx context.Context, actor *domain.User, username, newPassword string) error {
	if !actor.IsAdmin() {
		return apperrors.NewForbidden("only admins can reset passwords")
	}
	if len(newPassword) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.UpdatePassword(ctx, username, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"username": username})
		}
		return apperrors.MapError(err)
	}
	return nil
}
