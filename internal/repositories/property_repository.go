package repositories

import (
	"errors"
	"strings"

	"realtychance/internal/models"

	"gorm.io/gorm"
)

// PropertyFilter carries the optional search criteria for property listings.
// Every term is independently combinable; all of them AND onto the
// visibility predicate.
type PropertyFilter struct {
	MinPrice        *float64
	MaxPrice        *float64
	Bedrooms        *uint // minimum
	Bathrooms       *uint // minimum
	MinArea         *uint
	City            string
	State           string
	PropertyType    string
	Locality        string
	LocationKeyword string
	IsVerified      *bool
	OwnerID         uint
	Search          string
	Trending        bool
	Ordering        string
}

// LocationCount is one row of the trending-locations aggregate.
type LocationCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// PropertyRepository defines data access for property listings.
type PropertyRepository interface {
	GetByID(id uint) (*models.Property, error)
	GetActiveByID(id uint) (*models.Property, error)
	ListVisible(filter PropertyFilter, limit, offset int) ([]models.Property, int64, error)
	ListByOwner(ownerID uint, limit, offset int) ([]models.Property, int64, error)
	ListUnverified(limit, offset int) ([]models.Property, int64, error)
	ListDeleted(limit, offset int) ([]models.Property, int64, error)
	HasActiveListing(ownerID uint, address string) (bool, error)
	Update(property *models.Property) error
	Delete(property *models.Property) error
	AddImages(images []models.PropertyImage) error
	TopLocations(limit int) (map[string][]LocationCount, error)
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("Images").Preload("Owner").First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &property, nil
}

// GetActiveByID is the single-row visibility predicate: soft-deleted rows
// are not retrievable through normal reads.
func (r *propertyRepository) GetActiveByID(id uint) (*models.Property, error) {
	var property models.Property
	err := r.db.Preload("Images").Preload("Owner").
		Where("is_active = ?", true).First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) ListVisible(filter PropertyFilter, limit, offset int) ([]models.Property, int64, error) {
	q := r.db.Model(&models.Property{}).Where("properties.is_active = ?", true)
	q = applyPropertyFilter(q, filter)

	var total int64
	if err := q.Session(&gorm.Session{}).Distinct("properties.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Trending {
		// Favorite-ranked ordering: most-favorited first. This is the
		// property notion of "trending"; projects use recency instead.
		q = q.Joins("LEFT JOIN favorites ON favorites.property_id = properties.id").
			Group("properties.id").
			Order("COUNT(favorites.id) DESC")
	} else {
		q = q.Order(propertyOrdering(filter.Ordering))
	}

	var properties []models.Property
	err := q.Preload("Images").Preload("Owner").
		Limit(limit).Offset(offset).Find(&properties).Error
	return properties, total, err
}

func (r *propertyRepository) ListByOwner(ownerID uint, limit, offset int) ([]models.Property, int64, error) {
	return r.list(r.db.Model(&models.Property{}).Where("owner_id = ?", ownerID), limit, offset)
}

func (r *propertyRepository) ListUnverified(limit, offset int) ([]models.Property, int64, error) {
	return r.list(r.db.Model(&models.Property{}).Where("is_verified = ?", false), limit, offset)
}

func (r *propertyRepository) ListDeleted(limit, offset int) ([]models.Property, int64, error) {
	return r.list(r.db.Model(&models.Property{}).Where("is_active = ?", false), limit, offset)
}

// list paginates a prepared query, newest first.
func (r *propertyRepository) list(q *gorm.DB, limit, offset int) ([]models.Property, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var properties []models.Property
	err := q.Preload("Images").Preload("Owner").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&properties).Error
	return properties, total, err
}

func (r *propertyRepository) HasActiveListing(ownerID uint, address string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Property{}).
		Where("owner_id = ? AND address = ? AND is_active = ?", ownerID, address, true).
		Count(&count).Error
	return count > 0, err
}

func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}

func (r *propertyRepository) Delete(property *models.Property) error {
	if err := r.db.Where("property_id = ?", property.ID).Delete(&models.PropertyImage{}).Error; err != nil {
		return err
	}
	return r.db.Unscoped().Delete(property).Error
}

func (r *propertyRepository) AddImages(images []models.PropertyImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.Create(&images).Error
}

// TopLocations aggregates active, verified properties by city, locality and
// state, most listings first.
func (r *propertyRepository) TopLocations(limit int) (map[string][]LocationCount, error) {
	result := make(map[string][]LocationCount, 3)
	for group, column := range map[string]string{
		"cities":     "city",
		"localities": "locality",
		"states":     "state",
	} {
		var rows []LocationCount
		err := r.db.Model(&models.Property{}).
			Select(column+" AS value, COUNT(*) AS count").
			Where("is_active = ? AND is_verified = ?", true, true).
			Group(column).
			Order("count DESC").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		result[group] = rows
	}
	return result, nil
}

func applyPropertyFilter(q *gorm.DB, f PropertyFilter) *gorm.DB {
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Bedrooms != nil {
		q = q.Where("bedrooms >= ?", *f.Bedrooms)
	}
	if f.Bathrooms != nil {
		q = q.Where("bathrooms >= ?", *f.Bathrooms)
	}
	if f.MinArea != nil {
		q = q.Where("area_sqft >= ?", *f.MinArea)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.State != "" {
		q = q.Where("LOWER(state) = LOWER(?)", f.State)
	}
	if f.PropertyType != "" {
		q = q.Where("LOWER(property_type) = LOWER(?)", f.PropertyType)
	}
	if f.Locality != "" {
		q = q.Where("LOWER(locality) LIKE ?", contains(f.Locality))
	}
	if f.LocationKeyword != "" {
		kw := contains(f.LocationKeyword)
		q = q.Where(
			"LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(locality) LIKE ? OR LOWER(address) LIKE ?",
			kw, kw, kw, kw,
		)
	}
	if f.IsVerified != nil {
		q = q.Where("is_verified = ?", *f.IsVerified)
	}
	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Search != "" {
		kw := contains(f.Search)
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(locality) LIKE ? OR LOWER(address) LIKE ?",
			kw, kw, kw, kw, kw, kw,
		)
	}
	return q
}

// contains builds a case-insensitive LIKE pattern.
func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

var propertyOrderColumns = map[string]string{
	"price":      "price",
	"created_at": "created_at",
	"bedrooms":   "bedrooms",
	"bathrooms":  "bathrooms",
	"area_sqft":  "area_sqft",
}

// propertyOrdering maps the ordering query parameter onto a whitelisted
// column, "-" prefix meaning descending. Unknown values fall back to newest
// first.
func propertyOrdering(ordering string) string {
	return orderClause(ordering, propertyOrderColumns, "created_at DESC")
}

func orderClause(ordering string, allowed map[string]string, fallback string) string {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	column, ok := allowed[field]
	if !ok {
		return fallback
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}
