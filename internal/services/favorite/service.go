// Package favorite implements the user favorites list with idempotent add
// and calm remove semantics.
package favorite

import (
	goerrors "errors"

	"realtychance/internal/errors"
	"realtychance/internal/models"
	"realtychance/internal/repositories"
)

type Service interface {
	// Add favorites the property for the user. created=false means the
	// property was already favorited; repeat and concurrent calls never
	// error.
	Add(userID, propertyID uint) (favorite *models.Favorite, created bool, err error)
	// Remove deletes the favorite. A missing row returns
	// errors.ErrFavoriteNotFound, which callers surface as a calm 404.
	Remove(userID, propertyID uint) error
	RemoveByID(userID, favoriteID uint) error
	List(userID uint, limit, offset int) ([]models.Favorite, int64, error)
}

type service struct {
	favoriteRepo repositories.FavoriteRepository
	propertyRepo repositories.PropertyRepository
}

func NewService(favoriteRepo repositories.FavoriteRepository, propertyRepo repositories.PropertyRepository) Service {
	return &service{favoriteRepo: favoriteRepo, propertyRepo: propertyRepo}
}

func (s *service) Add(userID, propertyID uint) (*models.Favorite, bool, error) {
	if _, err := s.propertyRepo.GetActiveByID(propertyID); err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, false, errors.ErrPropertyNotFound
		}
		return nil, false, err
	}
	return s.favoriteRepo.GetOrCreate(userID, propertyID)
}

func (s *service) Remove(userID, propertyID uint) error {
	favorite, err := s.favoriteRepo.Get(userID, propertyID)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return errors.ErrFavoriteNotFound
		}
		return err
	}
	return s.favoriteRepo.Delete(favorite)
}

// RemoveByID deletes one of the caller's favorite rows by its id. Rows
// belonging to other users are reported as missing, not forbidden.
func (s *service) RemoveByID(userID, favoriteID uint) error {
	favorite, err := s.favoriteRepo.GetByID(favoriteID)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return errors.ErrFavoriteNotFound
		}
		return err
	}
	if favorite.UserID != userID {
		return errors.ErrFavoriteNotFound
	}
	return s.favoriteRepo.Delete(favorite)
}

func (s *service) List(userID uint, limit, offset int) ([]models.Favorite, int64, error) {
	return s.favoriteRepo.ListByUser(userID, limit, offset)
}
