package repositories

import (
	"errors"

	"realtychance/internal/models"

	"gorm.io/gorm"
)

// InquiryRepository defines data access for property inquiries.
type InquiryRepository interface {
	Create(inquiry *models.Inquiry) error
	GetByID(id uint) (*models.Inquiry, error)
	ListBySender(userID uint, limit, offset int) ([]models.Inquiry, int64, error)
	ListForOwner(ownerID uint, limit, offset int) ([]models.Inquiry, int64, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(inquiry *models.Inquiry) error {
	return r.db.Create(inquiry).Error
}

func (r *inquiryRepository) GetByID(id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.Preload("User").Preload("Property").First(&inquiry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) ListBySender(userID uint, limit, offset int) ([]models.Inquiry, int64, error) {
	return r.list(r.db.Model(&models.Inquiry{}).Where("user_id = ?", userID), limit, offset)
}

// ListForOwner returns inquiries against any property the owner holds.
func (r *inquiryRepository) ListForOwner(ownerID uint, limit, offset int) ([]models.Inquiry, int64, error) {
	q := r.db.Model(&models.Inquiry{}).
		Joins("JOIN properties ON properties.id = inquiries.property_id").
		Where("properties.owner_id = ?", ownerID)
	return r.list(q, limit, offset)
}

func (r *inquiryRepository) list(q *gorm.DB, limit, offset int) ([]models.Inquiry, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var inquiries []models.Inquiry
	err := q.Preload("User").Preload("Property").
		Order("inquiries.created_at DESC").Limit(limit).Offset(offset).Find(&inquiries).Error
	return inquiries, total, err
}
