// Package project implements the new-construction project lifecycle:
// creation with role promotion, creator-gated mutation, the approval
// workflow and approval-aware listing.
package project

import (
	goerrors "errors"
	"time"

	"realtychance/internal/errors"
	"realtychance/internal/models"
	"realtychance/internal/repositories"
	"realtychance/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
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
	Create(claims *models.UserClaims, input *models.ProjectInput) (*models.NewProject, error)
	Update(claims *models.UserClaims, id uint, input *models.ProjectInput, partial bool) (*models.NewProject, error)
	Delete(claims *models.UserClaims, id uint) error
	Approve(id uint) (*models.NewProject, error)
	Get(id uint) (*models.NewProject, error)
	List(filter repositories.ProjectFilter, isAdmin bool, limit, offset int) ([]models.NewProject, int64, error)
	MyProjects(userID uint, limit, offset int) ([]models.NewProject, int64, error)
	Unapproved(limit, offset int) ([]models.NewProject, int64, error)
}

type service struct {
	db          *gorm.DB
	projectRepo repositories.ProjectRepository
}

func NewService(db *gorm.DB, projectRepo repositories.ProjectRepository) Service {
	return &service{db: db, projectRepo: projectRepo}
}

// CanMutate is the ownership predicate for projects: the creator or an
// admin may mutate the row.
func CanMutate(claims *models.UserClaims, project *models.NewProject) bool {
	return project.AddedByID == claims.UserID || claims.Role == models.RoleAdmin
}

// Create inserts the project and applies the role transition in one
// transaction, same as property creation.
func (s *service) Create(claims *models.UserClaims, input *models.ProjectInput) (*models.NewProject, error) {
	v := validation.New()
	v.Project(input)
	if !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors}
	}
	launchDate, _ := time.Parse("2006-01-02", input.LaunchDate)
	possessionDate, _ := time.Parse("2006-01-02", input.PossessionDate)

	project := &models.NewProject{
		Name:           input.Name,
		BuilderName:    input.BuilderName,
		Description:    input.Description,
		City:           input.City,
		State:          input.State,
		Location:       input.Location,
		LaunchDate:     launchDate,
		PossessionDate: possessionDate,
		ProjectType:    input.ProjectType,
		Amenities:      input.Amenities,
		AddedByID:      claims.UserID,
	}

	promoted := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		for _, img := range input.Images {
			image := models.ProjectImage{
				ProjectID:  project.ID,
				URL:        img.URL,
				StorageKey: uuid.NewString(),
				IsPrimary:  img.IsPrimary,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			project.Images = append(project.Images, image)
		}

		var creator models.User
		if err := tx.First(&creator, claims.UserID).Error; err != nil {
			return err
		}
		if next, changed := models.NextRole(creator.Role, models.ListingCreated); changed {
			if err := tx.Model(&creator).Update("role", next).Error; err != nil {
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
	return project, nil
}

func (s *service) Update(claims *models.UserClaims, id uint, input *models.ProjectInput, partial bool) (*models.NewProject, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, errors.ErrProjectNotFound
		}
		return nil, err
	}

	if !CanMutate(claims, project) {
		return nil, errors.ErrNotCreator
	}

	if !partial {
		v := validation.New()
		v.Project(input)
		if !v.Valid() {
			return nil, &ValidationError{Fields: v.Errors}
		}
	}

	applyInput(project, input, partial)
	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}

	if len(input.Images) > 0 {
		images := make([]models.ProjectImage, 0, len(input.Images))
		for _, img := range input.Images {
			images = append(images, models.ProjectImage{
				ProjectID:  project.ID,
				URL:        img.URL,
				StorageKey: uuid.NewString(),
				IsPrimary:  img.IsPrimary,
			})
		}
		if err := s.projectRepo.AddImages(images); err != nil {
			return nil, err
		}
		project.Images = append(project.Images, images...)
	}

	return project, nil
}

func (s *service) Delete(claims *models.UserClaims, id uint) error {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return errors.ErrProjectNotFound
		}
		return err
	}

	if !CanMutate(claims, project) {
		return errors.ErrNotCreator
	}

	return s.projectRepo.Delete(project)
}

// Approve marks the project approved. Only domain failures (missing row)
// surface as client errors; storage failures propagate untouched so the
// handler can answer 500.
func (s *service) Approve(id uint) (*models.NewProject, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, errors.ErrProjectNotFound
		}
		return nil, err
	}

	project.IsApproved = true
	if err := s.projectRepo.Update(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get applies no approval filter; any caller may fetch any project by id.
func (s *service) Get(id uint) (*models.NewProject, error) {
	project, err := s.projectRepo.GetByID(id)
	if err != nil {
		if goerrors.Is(err, repositories.ErrRecordNotFound) {
			return nil, errors.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// List hides unapproved projects from everyone but admins.
func (s *service) List(filter repositories.ProjectFilter, isAdmin bool, limit, offset int) ([]models.NewProject, int64, error) {
	return s.projectRepo.List(filter, !isAdmin, limit, offset)
}

func (s *service) MyProjects(userID uint, limit, offset int) ([]models.NewProject, int64, error) {
	return s.projectRepo.ListByCreator(userID, limit, offset)
}

func (s *service) Unapproved(limit, offset int) ([]models.NewProject, int64, error) {
	return s.projectRepo.ListUnapproved(limit, offset)
}

func applyInput(p *models.NewProject, in *models.ProjectInput, partial bool) {
	if !partial || in.Name != "" {
		p.Name = in.Name
	}
	if !partial || in.BuilderName != "" {
		p.BuilderName = in.BuilderName
	}
	if !partial || in.Description != "" {
		p.Description = in.Description
	}
	if !partial || in.City != "" {
		p.City = in.City
	}
	if !partial || in.State != "" {
		p.State = in.State
	}
	if !partial || in.Location != "" {
		p.Location = in.Location
	}
	if in.LaunchDate != "" {
		if t, err := time.Parse("2006-01-02", in.LaunchDate); err == nil {
			p.LaunchDate = t
		}
	}
	if in.PossessionDate != "" {
		if t, err := time.Parse("2006-01-02", in.PossessionDate); err == nil {
			p.PossessionDate = t
		}
	}
	if !partial || in.ProjectType != "" {
		p.ProjectType = in.ProjectType
	}
	if !partial || in.Amenities != "" {
		p.Amenities = in.Amenities
	}
}
