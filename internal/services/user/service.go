// Package user implements registration and profile reads.
package user

import (
	"errors"

	"realtychance/internal/models"
	"realtychance/internal/repositories"
	"realtychance/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken = errors.New("a user with this email already exists")
	ErrPhoneTaken = errors.New("a user with this phone already exists")
)

// ValidationError carries the field-level error map from registration
// validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) ValidationFields() map[string]string {
	return e.Fields
}

type Service interface {
	// Register creates a user with the given role. The role is fixed by
	// the registration endpoint (owner / seeker); the generic endpoint
	// passes RoleSeeker.
	Register(input *models.CreateUserInput, role string) (*models.User, error)
	GetByID(userID uint) (*models.User, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{userRepo: userRepo}
}

func (s *service) Register(input *models.CreateUserInput, role string) (*models.User, error) {
	v := validation.New()
	v.UserRegistration(input)
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	if taken, err := s.userRepo.EmailExists(input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.userRepo.PhoneExists(input.Phone); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrPhoneTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("password hashing failed")
	}

	user := &models.User{
		Phone:    input.Phone,
		Email:    input.Email,
		FullName: input.FullName,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := s.userRepo.Create(user); err != nil {
		// The uniqueness checks above race with concurrent
		// registrations; the unique indexes are the authority, and the
		// repository reports which column collided.
		switch {
		case errors.Is(err, repositories.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repositories.ErrDuplicatePhone),
			errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return user, nil
}

func (s *service) GetByID(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}
