package repositories

import (
	"errors"

	"realtychance/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines data access for user favorites.
type FavoriteRepository interface {
	// GetOrCreate returns the favorite row for (userID, propertyID),
	// creating it if absent. created reports whether a new row was
	// inserted. A concurrent duplicate insert is not an error; the loser
	// of the race observes created=false.
	GetOrCreate(userID, propertyID uint) (favorite *models.Favorite, created bool, err error)
	Get(userID, propertyID uint) (*models.Favorite, error)
	GetByID(id uint) (*models.Favorite, error)
	Delete(favorite *models.Favorite) error
	ListByUser(userID uint, limit, offset int) ([]models.Favorite, int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) GetOrCreate(userID, propertyID uint) (*models.Favorite, bool, error) {
	if existing, err := r.Get(userID, propertyID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrRecordNotFound) {
		return nil, false, err
	}

	favorite := &models.Favorite{UserID: userID, PropertyID: propertyID}
	if err := r.db.Create(favorite).Error; err != nil {
		// A concurrent caller may have inserted between our read and
		// write; the unique index turns that into a violation we map
		// back to "already favorited".
		if isUniqueViolation(err) {
			existing, getErr := r.Get(userID, propertyID)
			if getErr != nil {
				return nil, false, getErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return favorite, true, nil
}

func (r *favoriteRepository) Get(userID, propertyID uint) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) GetByID(id uint) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := r.db.First(&favorite, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Delete(favorite *models.Favorite) error {
	return r.db.Delete(favorite).Error
}

func (r *favoriteRepository) ListByUser(userID uint, limit, offset int) ([]models.Favorite, int64, error) {
	q := r.db.Model(&models.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []models.Favorite
	err := q.Preload("Property").Preload("Property.Images").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&favorites).Error
	return favorites, total, err
}
