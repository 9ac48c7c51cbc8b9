package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bafa2024/complaint-hub-beta/internal/api/dto"
	"github.com/bafa2024/complaint-hub-beta/internal/service"
)

// PublicHandler serves the unauthenticated complaint listing.
type PublicHandler struct {
	service *service.TicketService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(ticketService *service.TicketService) *PublicHandler {
	return &PublicHandler{service: ticketService}
}

// ListComplaints GET /public/complaints.
func (h *PublicHandler) ListComplaints(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	complaints, err := h.service.ListPublicComplaints(c.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.PublicComplaintResponse, 0, len(complaints))
	for _, complaint := range complaints {
		items = append(items, dto.PublicComplaintResponse{
			ID:             complaint.ID,
			BrandName:      complaint.BrandName,
			Description:    complaint.Description,
			DaysUnresolved: complaint.DaysUnresolved,
			Views:          complaint.Views,
			Location:       complaint.Location,
			CreatedAt:      complaint.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
