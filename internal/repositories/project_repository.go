package repositories

import (
	"errors"
	"time"

	"realtychance/internal/models"

	"gorm.io/gorm"
)

// ProjectFilter carries the optional search criteria for project listings.
type ProjectFilter struct {
	City            string
	State           string
	ProjectType     string
	LocationKeyword string
	PossessionYear  int
	AddedByID       uint
	Search          string
	Trending        bool
	Ordering        string
}

// ProjectRepository defines data access for new-construction projects.
type ProjectRepository interface {
	GetByID(id uint) (*models.NewProject, error)
	List(filter ProjectFilter, approvedOnly bool, limit, offset int) ([]models.NewProject, int64, error)
	ListByCreator(userID uint, limit, offset int) ([]models.NewProject, int64, error)
	ListUnapproved(limit, offset int) ([]models.NewProject, int64, error)
	Update(project *models.NewProject) error
	Delete(project *models.NewProject) error
	AddImages(images []models.ProjectImage) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// GetByID applies no approval filter: any caller may fetch any single
// project by id regardless of approval state.
func (r *projectRepository) GetByID(id uint) (*models.NewProject, error) {
	var project models.NewProject
	err := r.db.Preload("Images").Preload("AddedBy").First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List returns projects matching the filter. With approvedOnly the approval
// visibility predicate is included; admin callers pass false and see all
// rows.
func (r *projectRepository) List(filter ProjectFilter, approvedOnly bool, limit, offset int) ([]models.NewProject, int64, error) {
	q := r.db.Model(&models.NewProject{})
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	q = applyProjectFilter(q, filter)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Trending {
		// Recency stands in for popularity here; there is no favorite
		// signal on projects.
		q = q.Order("created_at DESC")
	} else {
		q = q.Order(projectOrdering(filter.Ordering))
	}

	var projects []models.NewProject
	err := q.Preload("Images").Preload("AddedBy").
		Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

func (r *projectRepository) ListByCreator(userID uint, limit, offset int) ([]models.NewProject, int64, error) {
	return r.list(r.db.Model(&models.NewProject{}).Where("added_by_id = ?", userID), limit, offset)
}

func (r *projectRepository) ListUnapproved(limit, offset int) ([]models.NewProject, int64, error) {
	return r.list(r.db.Model(&models.NewProject{}).Where("is_approved = ?", false), limit, offset)
}

func (r *projectRepository) list(q *gorm.DB, limit, offset int) ([]models.NewProject, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var projects []models.NewProject
	err := q.Preload("Images").Preload("AddedBy").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&projects).Error
	return projects, total, err
}

func (r *projectRepository) Update(project *models.NewProject) error {
	return r.db.Save(project).Error
}

func (r *projectRepository) Delete(project *models.NewProject) error {
	if err := r.db.Where("project_id = ?", project.ID).Delete(&models.ProjectImage{}).Error; err != nil {
		return err
	}
	return r.db.Unscoped().Delete(project).Error
}

func (r *projectRepository) AddImages(images []models.ProjectImage) error {
	if len(images) == 0 {
		return nil
	}
	return r.db.Create(&images).Error
}

func applyProjectFilter(q *gorm.DB, f ProjectFilter) *gorm.DB {
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.State != "" {
		q = q.Where("LOWER(state) = LOWER(?)", f.State)
	}
	if f.ProjectType != "" {
		q = q.Where("LOWER(project_type) = LOWER(?)", f.ProjectType)
	}
	if f.LocationKeyword != "" {
		kw := contains(f.LocationKeyword)
		q = q.Where(
			"LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(location) LIKE ?",
			kw, kw, kw,
		)
	}
	if f.PossessionYear != 0 {
		start := yearStart(f.PossessionYear)
		q = q.Where("possession_date >= ? AND possession_date < ?", start, start.AddDate(1, 0, 0))
	}
	if f.AddedByID != 0 {
		q = q.Where("added_by_id = ?", f.AddedByID)
	}
	if f.Search != "" {
		kw := contains(f.Search)
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(builder_name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(location) LIKE ?",
			kw, kw, kw, kw, kw, kw,
		)
	}
	return q
}

func yearStart(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
}

var projectOrderColumns = map[string]string{
	"launch_date":     "launch_date",
	"possession_date": "possession_date",
	"created_at":      "created_at",
}

func projectOrdering(ordering string) string {
	return orderClause(ordering, projectOrderColumns, "created_at DESC")
}
