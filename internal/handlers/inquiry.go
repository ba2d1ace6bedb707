package handlers

import (
	"realtychance/internal/models"
	"realtychance/internal/services/inquiry"
	"realtychance/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type InquiryHandler struct {
	inquiryService inquiry.Service
}

func NewInquiryHandler(inquiryService inquiry.Service) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// CreateInquiry records a seeker's message about a property.
func (h *InquiryHandler) CreateInquiry(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input models.InquiryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	inq, err := h.inquiryService.Create(claims, &input)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Created(c, inq)
}

func (h *InquiryHandler) GetInquiry(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid inquiry ID")
	}

	inq, err := h.inquiryService.Get(claims, id)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, inq)
}

// ListInquiries shows owners the inquiries against their listings and
// everyone else the inquiries they sent.
func (h *InquiryHandler) ListInquiries(c *fiber.Ctx) error {
	claims, ok := getClaims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	p := utils.GetPagination(c, 1, 10)

	inquiries, total, err := h.inquiryService.List(claims, p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}

	p.SetTotal(total)
	return utils.Success(c, utils.NewPaginatedResponse(inquiries, p))
}
