package services

import (
	"errors"
	"fmt"

	"github.com/tasknest/task-tracker-api/internal/auth"
	"github.com/tasknest/task-tracker-api/internal/models"
	"github.com/tasknest/task-tracker-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles the admin-facing user management operations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns all live users.
func (s *UserService) List() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get returns a live user by id.
func (s *UserService) Get(userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UserUpdateInput carries a full replacement payload for a user.
type UserUpdateInput struct {
	Name     string
	Email    string
	Contact  *string
	Password *string
}

// Update replaces a user's profile. Email and contact uniqueness against
// other live users is checked before writing.
func (s *UserService) Update(principal auth.Principal, userID uint64, in UserUpdateInput) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.Email != user.Email {
		if err := s.checkEmailFree(in.Email); err != nil {
			return nil, err
		}
	}
	if in.Contact != nil && (user.Contact == nil || *in.Contact != *user.Contact) {
		if err := s.checkContactFree(*in.Contact); err != nil {
			return nil, err
		}
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Contact = in.Contact
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedBy = principal.ID

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UserPatchInput carries a partial update; nil means leave unchanged.
type UserPatchInput struct {
	Name     *string
	Email    *string
	Contact  *string
	Password *string
}

// Patch applies the present fields of a partial user update.
func (s *UserService) Patch(principal auth.Principal, userID uint64, in UserPatchInput) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if err := s.checkEmailFree(*in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.Contact != nil && (user.Contact == nil || *in.Contact != *user.Contact) {
		if err := s.checkContactFree(*in.Contact); err != nil {
			return nil, err
		}
		user.Contact = in.Contact
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedBy = principal.ID

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete soft-deletes a user.
func (s *UserService) Delete(principal auth.Principal, userID uint64) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.SoftDelete(user.ID, principal.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *UserService) checkEmailFree(email string) error {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

func (s *UserService) checkContactFree(contact string) error {
	if _, err := s.userRepo.FindByContact(contact); err == nil {
		return ErrContactExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check contact: %w", err)
	}
	return nil
}
