// Package property implements the property listing lifecycle: creation with
// role promotion, ownership-gated mutation, soft delete, verification and
// the visible-set queries.
package property

import (
	goerrors "errors"

	"realtychance/internal/errors"
	"realtychance/internal/models"
	"realtychance/internal/repositories"
	"realtychance/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidationError carries the field-level error map.
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
	Create(claims *models.UserClaims, input *models.PropertyInput) (*models.Property, error)
	Update(claims *models.UserClaims, id uint, input *models.PropertyInput, partial bool) (*models.Property, error)
	Delete(claims *models.UserClaims, id uint) error
	SoftDelete(claims *models.UserClaims, id uint) error
	SetVerified(id uint, verified bool) (*models.Property, error)
	Get(id uint) (*models.Property, error)
	List(filter repositories.PropertyFilter, limit, offset int) ([]models.Property, int64, error)
	MyListings(userID uint, limit, offset int) ([]models.Property, int64, error)
	Unverified(limit, offset int) ([]models.Property, int64, error)
	Deleted(limit, offset int) ([]models.Property, int64, error)
	TrendingLocations() (map[string][]repositories.LocationCount, error)
}

type service struct {
	db           *gorm.DB
	propertyRepo repositories.PropertyRepository
}

func NewService(db *gorm.DB, propertyRepo repositories.PropertyRepository) Service {
	return &service{db: db, propertyRepo: propertyRepo}
}

// CanMutate is the ownership predicate for properties: the recorded owner or
// a staff user may mutate the row.
func CanMutate(claims *models.UserClaims, property *models.Property) bool {
	return property.OwnerID == claims.UserID || claims.IsStaff
}

// Create inserts the property and applies the role transition in one
// transaction. A failed creation must not promote the user.
func (s *service) Create(claims *models.UserClaims, input *models.PropertyInput) (*models.Property, error) {
	v := validation.New()
	v.Property(input)
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	duplicate, err := s.propertyRepo.HasActiveListing(claims.UserID, input.Address)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, errors.ErrDuplicateListing
	}

	property := &models.Property{
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		AreaSqft:     input.AreaSqft,
		PropertyType: input.PropertyType,
		City:         input.City,
		State:        input.State,
		Locality:     input.Locality,
		Address:      input.Address,
		OwnerID:      claims.UserID,
		IsActive:     true,
	}

	promoted := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(property).Error; err != nil {
			return err
		}

		for _, img := range input.Images {
			image := models.PropertyImage{
				PropertyID: property.ID,
				URL:        img.URL,
				StorageKey: uuid.NewString(),
				IsPrimary:  img.IsPrimary,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			property.Images = append(property.Images, image)
		}

		// Read the stored role rather than trusting the token: a
		// concurrent creation may already have promoted the user.
		var owner models.User
		if err := tx.First(&owner, claims.UserID).Error; err != nil {
			return err
		}
		if next, changed := models.NextRole(owner.Role, models.ListingCreated); changed {
			if err := tx.Model(&owner).Update("role", next).Error; err != nil {
				return err
			}
			promoted = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if promoted {
		repositories.InvalidateUserCache(claims.UserID)
	}
	return property, nil
}

func (s *service) Update(claims *models.UserClaims, id uint, input *models.PropertyInput, partial bool) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, errors.ErrPropertyNotFound
		}
		return nil, err
	}

	if !CanMutate(claims, property) {
		return nil, errors.ErrNotOwner
	}

	if !partial {
		v := validation.New()
		v.Property(input)
		if !v.Valid() {
			return nil, &ValidationError{Fields: v.Errors}
		}
	}

	applyInput(property, input, partial)
	if err := s.propertyRepo.Update(property); err != nil {
		return nil, err
	}

	if len(input.Images) > 0 {
		images := make([]models.PropertyImage, 0, len(input.Images))
		for _, img := range input.Images {
			images = append(images, models.PropertyImage{
				PropertyID: property.ID,
				URL:        img.URL,
				StorageKey: uuid.NewString(),
				IsPrimary:  img.IsPrimary,
			})
		}
		if err := s.propertyRepo.AddImages(images); err != nil {
			return nil, err
		}
		property.Images = append(property.Images, images...)
	}

	return property, nil
}

func (s *service) Delete(claims *models.UserClaims, id uint) error {
	property, err := s.propertyRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return errors.ErrPropertyNotFound
		}
		return err
	}

	if !CanMutate(claims, property) {
		return errors.ErrNotOwner
	}

	return s.propertyRepo.Delete(property)
}

// SoftDelete marks the row inactive; it disappears from normal reads but
// stays recoverable through the staff-only deleted listing.
func (s *service) SoftDelete(claims *models.UserClaims, id uint) error {
	property, err := s.propertyRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return errors.ErrPropertyNotFound
		}
		return err
	}

	if !CanMutate(claims, property) {
		return errors.ErrNotOwner
	}

	property.IsActive = false
	return s.propertyRepo.Update(property)
}

func (s *service) SetVerified(id uint, verified bool) (*models.Property, error) {
	property, err := s.propertyRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, errors.ErrPropertyNotFound
		}
		return nil, err
	}

	property.IsVerified = verified
	if err := s.propertyRepo.Update(property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *service) Get(id uint) (*models.Property, error) {
	property, err := s.propertyRepo.GetActiveByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, errors.ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *service) List(filter repositories.PropertyFilter, limit, offset int) ([]models.Property, int64, error) {
	return s.propertyRepo.ListVisible(filter, limit, offset)
}

func (s *service) MyListings(userID uint, limit, offset int) ([]models.Property, int64, error) {
	return s.propertyRepo.ListByOwner(userID, limit, offset)
}

func (s *service) Unverified(limit, offset int) ([]models.Property, int64, error) {
	return s.propertyRepo.ListUnverified(limit, offset)
}

func (s *service) Deleted(limit, offset int) ([]models.Property, int64, error) {
	return s.propertyRepo.ListDeleted(limit, offset)
}

func (s *service) TrendingLocations() (map[string][]repositories.LocationCount, error) {
	return s.propertyRepo.TopLocations(10)
}

// applyInput copies request fields onto the row. Partial updates skip zero
// values; full updates overwrite everything.
func applyInput(p *models.Property, in *models.PropertyInput, partial bool) {
	if !partial || in.Title != "" {
		p.Title = in.Title
	}
	if !partial || in.Description != "" {
		p.Description = in.Description
	}
	if !partial || in.Price != 0 {
		p.Price = in.Price
	}
	if !partial || in.Bedrooms != 0 {
		p.Bedrooms = in.Bedrooms
	}
	if !partial || in.Bathrooms != 0 {
		p.Bathrooms = in.Bathrooms
	}
	if !partial || in.AreaSqft != 0 {
		p.AreaSqft = in.AreaSqft
	}
	if !partial || in.PropertyType != "" {
		p.PropertyType = in.PropertyType
	}
	if !partial || in.City != "" {
		p.City = in.City
	}
	if !partial || in.State != "" {
		p.State = in.State
	}
	if !partial || in.Locality != "" {
		p.Locality = in.Locality
	}
	if !partial || in.Address != "" {
		p.Address = in.Address
	}
}
