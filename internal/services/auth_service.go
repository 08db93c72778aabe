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

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrContactExists      = errors.New("contact already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotOwnAccount      = errors.New("cannot change another user's password")
	ErrNotFirstLogin      = errors.New("password has already been changed")
)

// AuthService handles registration, login and the password flows.
type AuthService struct {
	userRepo repository.UserRepository
	jwt      *auth.Service
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwt *auth.Service) *AuthService {
	return &AuthService{userRepo: userRepo, jwt: jwt}
}

// RegisterInput carries a validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Contact  *string
	Password string
}

// Register creates a user. The very first live user becomes the admin;
// everyone after that starts as a regular member. actorID is zero for
// self-registration and the caller's id when an admin creates the account.
func (s *AuthService) Register(actorID uint64, in RegisterInput) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if in.Contact != nil {
		if _, err := s.userRepo.FindByContact(*in.Contact); err == nil {
			return nil, ErrContactExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check contact: %w", err)
		}
	}

	count, err := s.userRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		Contact:      in.Contact,
		PasswordHash: string(hash),
		IsAdmin:      count == 0,
		IsFirstLogin: true,
		Active:       true,
		Audit:        models.Audit{CreatedBy: actorID},
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and issues a signed token. The same error
// covers unknown emails and wrong passwords.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.IsAdmin, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// ChangePassword sets a new password for the caller's own account. The
// email in the payload must match the authenticated principal.
func (s *AuthService) ChangePassword(principal auth.Principal, email, newPassword string) error {
	if email != principal.Email {
		return ErrNotOwnAccount
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	return s.setPassword(user, newPassword, principal.ID)
}

// FirstChangePassword is the forced rotation after the initial login. It
// only works while the first-login flag is still set and clears it.
func (s *AuthService) FirstChangePassword(principal auth.Principal, newPassword string) error {
	user, err := s.userRepo.FindByID(principal.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsFirstLogin {
		return ErrNotFirstLogin
	}

	user.IsFirstLogin = false
	return s.setPassword(user, newPassword, principal.ID)
}

// ForgotPassword verifies the account exists. Token delivery happens out
// of band; the handler responds the same either way to avoid leaking
// which emails are registered.
func (s *AuthService) ForgotPassword(email string) error {
	if _, err := s.userRepo.FindByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

// ResetPassword replaces the password for the given account and clears
// the first-login flag.
func (s *AuthService) ResetPassword(email, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	user.IsFirstLogin = false
	return s.setPassword(user, newPassword, user.ID)
}

func (s *AuthService) setPassword(user *models.User, newPassword string, actorID uint64) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.UpdatedBy = actorID

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
