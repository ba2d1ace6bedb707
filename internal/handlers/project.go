package handlers

import (
	"realtychance/internal/models"
	"realtychance/internal/repositories"
	"realtychance/internal/services/project"
	"realtychance/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct {
	projectService project.Service
}

func NewProjectHandler(projectService project.Service) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func projectFilterFromQuery(c *fiber.Ctx) repositories.ProjectFilter {
	filter := repositories.ProjectFilter{
		City:            c.Query("city"),
		State:           c.Query("state"),
		ProjectType:     c.Query("project_type"),
		LocationKeyword: c.Query("location_keyword"),
		AddedByID:       queryUint(c, "added_by"),
		Search:          c.Query("search"),
		Trending:        c.QueryBool("trending"),
		Ordering:        c.Query("ordering"),
	}
	if year := c.QueryInt("possession_year"); year > 0 {
		filter.PossessionYear = year
	}
	return filter
}

// ListProjects shows approved projects to everyone; admins see all of them.
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 10)

	claims := optionalClaims(c)
	isAdmin := claims != nil && claims.Role == models.RoleAdmin

	projects, total, err := h.projectService.List(projectFilterFromQuery(c), isAdmin, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(projects, p))
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid project ID")
	}

	proj, err := h.projectService.Get(id)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, proj)
}

// CreateProject adds a new construction project. Like property creation it
// promotes a seeker to owner.
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input models.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	proj, err := h.projectService.Create(claims, &input)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Created(c, proj)
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	return h.update(c, false)
}

func (h *ProjectHandler) PatchProject(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *ProjectHandler) update(c *fiber.Ctx, partial bool) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid project ID")
	}

	var input models.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	proj, err := h.projectService.Update(claims, id, &input, partial)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, proj)
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid project ID")
	}

	if err := h.projectService.Delete(claims, id); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Project deleted",
	})
}

// ApproveProject marks a project as approved so it shows up publicly.
// Missing projects are a 404, anything else is a plain 500.
func (h *ProjectHandler) ApproveProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid project ID")
	}

	proj, err := h.projectService.Approve(id)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"id":          proj.ID,
		"name":        proj.Name,
		"is_approved": proj.IsApproved,
		"status":      "approved",
	})
}

func (h *ProjectHandler) MyProjects(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	p := utils.GetPagination(c, 1, 10)

	projects, total, err := h.projectService.MyProjects(claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(projects, p))
}

func (h *ProjectHandler) UnapprovedProjects(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 10)

	projects, total, err := h.projectService.Unapproved(p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(projects, p))
}
