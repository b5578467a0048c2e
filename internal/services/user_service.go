package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sidompet/sidompet-api/internal/models"
	"github.com/sidompet/sidompet-api/internal/repository"
	"gorm.io/gorm"
)

// UserService handles operator account management. Only admins reach these
// operations; authentication itself lives in AuthService.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserInput holds the editable account fields
type UserInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// List returns all operator accounts
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.FindAll(ctx)
}

// Create registers a new operator account
func (s *UserService) Create(ctx context.Context, in *UserInput) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, errors.New("username wajib diisi")
	}
	if len(in.Password) < 6 {
		return nil, errors.New("kata sandi minimal 6 karakter")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:          username,
		EncryptedPassword: hash,
		FullName:          strings.TrimSpace(in.FullName),
		Role:              in.Role,
		Status:            in.Status,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update edits an account. A blank password leaves the current one in place.
func (s *UserService) Update(ctx context.Context, id uint, in *UserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if username := strings.ToLower(strings.TrimSpace(in.Username)); username != "" {
		user.Username = username
	}
	if in.FullName != "" {
		user.FullName = strings.TrimSpace(in.FullName)
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Status != "" {
		user.Status = in.Status
	}
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, errors.New("kata sandi minimal 6 karakter")
		}
		hash, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.EncryptedPassword = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
