package repositories

import (
	"errors"
	"strings"

	"realtychance/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return duplicateUserError(err)
		}
		return ErrDatabaseOperation
	}
	return nil
}

// duplicateUserError names the column whose unique index rejected the
// insert. Postgres reports the constraint name (idx_users_email / _phone),
// sqlite the column ("UNIQUE constraint failed: users.email"); both carry
// the column name in the error text.
func duplicateUserError(err error) error {
	var pqErr *pq.Error
	msg := err.Error()
	if errors.As(err, &pqErr) {
		msg = pqErr.Constraint
	}
	switch {
	case strings.Contains(msg, "email"):
		return ErrDuplicateEmail
	case strings.Contains(msg, "phone"):
		return ErrDuplicatePhone
	}
	return ErrDuplicateKey
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	if user := GetCachedUser(GetUserCacheKeyByID(id)); user != nil {
		return user, nil
	}

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	CacheUser(&user)
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	if user := GetCachedUser(GetUserCacheKeyByEmail(email)); user != nil {
		return user, nil
	}

	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}

	CacheUser(&user)
	return &user, nil
}

func (r *userRepository) GetByPhone(phone string) (*models.User, error) {
	if user := GetCachedUser(GetUserCacheKeyByPhone(phone)); user != nil {
		return user, nil
	}

	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrDatabaseOperation
	}

	CacheUser(&user)
	return &user, nil
}

func (r *userRepository) EmailExists(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, ErrDatabaseOperation
	}
	return count > 0, nil
}

func (r *userRepository) PhoneExists(phone string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error; err != nil {
		return false, ErrDatabaseOperation
	}
	return count > 0, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return ErrDatabaseOperation
	}
	InvalidateUserCache(user.ID)
	return nil
}

func (r *userRepository) IncrementTokenVersion(userID uint) error {
	err := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
	if err != nil {
		return ErrDatabaseOperation
	}
	InvalidateUserCache(userID)
	return nil
}

// isUniqueViolation detects a unique-constraint failure from Postgres
// (SQLSTATE 23505) or the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
