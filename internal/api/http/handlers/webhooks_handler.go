package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bafa2024/complaint-hub-beta/internal/api/dto"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/service"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

// WebhooksHandler ingests complaints from external voice and chat
// providers. Webhook tickets may be anonymous.
type WebhooksHandler struct {
	service *service.TicketService
}

// NewWebhooksHandler constructs handler.
func NewWebhooksHandler(ticketService *service.TicketService) *WebhooksHandler {
	return &WebhooksHandler{service: ticketService}
}

// Voice POST /webhooks/voice.
func (h *WebhooksHandler) Voice(c *fiber.Ctx) error {
	var req dto.VoiceWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BrandID == "" || strings.TrimSpace(req.Transcript) == "" {
		return apperrors.NewValidationError("brand_id and transcript required", nil)
	}
	ticket, err := h.service.Intake(c.Context(), service.IntakeInput{
		BrandID:     req.BrandID,
		UserID:      req.UserID,
		Channel:     domain.ChannelVoice,
		Description: req.Transcript,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"ticket_id": ticket.ID}})
}

// Chat POST /webhooks/chat.
func (h *WebhooksHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BrandID == "" || strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("brand_id and message required", nil)
	}
	ticket, err := h.service.Intake(c.Context(), service.IntakeInput{
		BrandID:     req.BrandID,
		UserID:      req.UserID,
		Channel:     domain.ChannelChat,
		Description: req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"ticket_id": ticket.ID}})
}
