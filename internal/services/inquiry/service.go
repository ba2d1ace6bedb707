// Package inquiry implements seeker-to-owner property inquiries.
package inquiry

import (
	goerrors "errors"

	"realtychance/internal/errors"
	"realtychance/internal/models"
	"realtychance/internal/repositories"
	"realtychance/internal/validation"
)

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
	Create(claims *models.UserClaims, input *models.InquiryInput) (*models.Inquiry, error)
	Get(claims *models.UserClaims, id uint) (*models.Inquiry, error)
	// List scopes by role: owners see inquiries against their own
	// properties, everyone else sees the inquiries they sent.
	List(claims *models.UserClaims, limit, offset int) ([]models.Inquiry, int64, error)
}

type service struct {
	inquiryRepo  repositories.InquiryRepository
	propertyRepo repositories.PropertyRepository
}

func NewService(inquiryRepo repositories.InquiryRepository, propertyRepo repositories.PropertyRepository) Service {
	return &service{inquiryRepo: inquiryRepo, propertyRepo: propertyRepo}
}

// Create requires the seeker role; owners reach property holders through
// other channels.
func (s *service) Create(claims *models.UserClaims, input *models.InquiryInput) (*models.Inquiry, error) {
	if claims.Role != models.RoleSeeker {
		return nil, errors.ErrSeekerOnly
	}

	v := validation.New()
	v.Inquiry(input)
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}

	if _, err := s.propertyRepo.GetActiveByID(input.PropertyID); err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, errors.ErrPropertyNotFound
		}
		return nil, err
	}

	inquiry := &models.Inquiry{
		UserID:     claims.UserID,
		PropertyID: input.PropertyID,
		Message:    input.Message,
	}
	if err := s.inquiryRepo.Create(inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *service) Get(claims *models.UserClaims, id uint) (*models.Inquiry, error) {
	inquiry, err := s.inquiryRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, repositories.ErrRecordNotFound
		}
		return nil, err
	}

	if inquiry.UserID == claims.UserID {
		return inquiry, nil
	}
	if inquiry.Property != nil && inquiry.Property.OwnerID == claims.UserID {
		return inquiry, nil
	}
	if claims.Role == models.RoleAdmin {
		return inquiry, nil
	}
	return nil, repositories.ErrRecordNotFound
}

func (s *service) List(claims *models.UserClaims, limit, offset int) ([]models.Inquiry, int64, error) {
	if claims.Role == models.RoleOwner {
		return s.inquiryRepo.ListForOwner(claims.UserID, limit, offset)
	}
	return s.inquiryRepo.ListBySender(claims.UserID, limit, offset)
}
