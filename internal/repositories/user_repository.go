package repositories

import "realtychance/internal/models"

// UserRepository defines data access for users.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	EmailExists(email string) (bool, error)
	PhoneExists(phone string) (bool, error)
	Update(user *models.User) error
	IncrementTokenVersion(userID uint) error
}
