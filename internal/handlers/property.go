package handlers

import (
	"realtychance/internal/models"
	"realtychance/internal/repositories"
	"realtychance/internal/services/property"
	"realtychance/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	propertyService property.Service
}

func NewPropertyHandler(propertyService property.Service) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

func propertyFilterFromQuery(c *fiber.Ctx) repositories.PropertyFilter {
	return repositories.PropertyFilter{
		MinPrice:        queryFloat(c, "min_price"),
		MaxPrice:        queryFloat(c, "max_price"),
		Bedrooms:        queryUintPtr(c, "bedrooms"),
		Bathrooms:       queryUintPtr(c, "bathrooms"),
		MinArea:         queryUintPtr(c, "min_area"),
		City:            c.Query("city"),
		State:           c.Query("state"),
		PropertyType:    c.Query("property_type"),
		Locality:        c.Query("locality"),
		LocationKeyword: c.Query("location_keyword"),
		IsVerified:      queryBoolPtr(c, "is_verified"),
		OwnerID:         queryUint(c, "owner"),
		Search:          c.Query("search"),
		Trending:        c.QueryBool("trending"),
		Ordering:        c.Query("ordering"),
	}
}

// ListProperties returns the publicly visible listings with filters applied.
func (h *PropertyHandler) ListProperties(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 10)

	properties, total, err := h.propertyService.List(propertyFilterFromQuery(c), p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(properties, p))
}

func (h *PropertyHandler) GetProperty(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid property ID")
	}

	prop, err := h.propertyService.Get(id)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, prop)
}

// CreateProperty lists a new property for the caller. A seeker creating
// their first listing comes out of this call as an owner.
func (h *PropertyHandler) CreateProperty(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input models.PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	prop, err := h.propertyService.Create(claims, &input)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Created(c, prop)
}

func (h *PropertyHandler) UpdateProperty(c *fiber.Ctx) error {
	return h.update(c, false)
}

func (h *PropertyHandler) PatchProperty(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *PropertyHandler) update(c *fiber.Ctx, partial bool) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid property ID")
	}

	var input models.PropertyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	prop, err := h.propertyService.Update(claims, id, &input, partial)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, prop)
}

func (h *PropertyHandler) DeleteProperty(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid property ID")
	}

	if err := h.propertyService.Delete(claims, id); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Property deleted",
	})
}

// SoftDeleteProperty hides the listing instead of removing the row.
func (h *PropertyHandler) SoftDeleteProperty(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid property ID")
	}

	if err := h.propertyService.SoftDelete(claims, id); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message": "Property removed from listings",
	})
}

func (h *PropertyHandler) MyListings(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	p := utils.GetPagination(c, 1, 10)

	properties, total, err := h.propertyService.MyListings(claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(properties, p))
}

// VerifyProperty flips the is_verified flag. Without an explicit body the
// listing is marked verified.
func (h *PropertyHandler) VerifyProperty(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid property ID")
	}

	input := struct {
		IsVerified *bool `json:"is_verified"`
	}{}
	_ = c.BodyParser(&input) // empty body means verify

	verified := true
	if input.IsVerified != nil {
		verified = *input.IsVerified
	}

	prop, err := h.propertyService.SetVerified(id, verified)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"id":          prop.ID,
		"is_verified": prop.IsVerified,
	})
}

func (h *PropertyHandler) UnverifiedProperties(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 10)

	properties, total, err := h.propertyService.Unverified(p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(properties, p))
}

func (h *PropertyHandler) DeletedProperties(c *fiber.Ctx) error {
	p := utils.GetPagination(c, 1, 10)

	properties, total, err := h.propertyService.Deleted(p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(properties, p))
}

// TrendingLocations aggregates the most listed cities, localities and
// states among active verified properties.
func (h *PropertyHandler) TrendingLocations(c *fiber.Ctx) error {
	locations, err := h.propertyService.TrendingLocations()
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, locations)
}
