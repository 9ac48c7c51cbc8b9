package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bafa2024/complaint-hub-beta/internal/api/dto"
	"github.com/bafa2024/complaint-hub-beta/internal/auth"
	"github.com/bafa2024/complaint-hub-beta/internal/domain"
	"github.com/bafa2024/complaint-hub-beta/internal/service"
	apperrors "github.com/bafa2024/complaint-hub-beta/pkg/util/errorutil"
)

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BrandID == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("brand_id and description required", nil)
	}

	userID := principal.User.ID
	ticket, err := h.service.Intake(c.Context(), service.IntakeInput{
		BrandID:     req.BrandID,
		UserID:      &userID,
		Channel:     domain.ChannelWeb,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": h.ticketSummary(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var brandID *string
	if v := c.Query("brand_id"); v != "" {
		brandID = &v
	}
	tickets, err := h.service.ListTickets(c.Context(), actorFromPrincipal(principal), brandID, parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, h.ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, responses, logs, err := h.service.GetTicket(c.Context(), actorFromPrincipal(principal), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.ticketDetail(ticket, responses, logs)})
}

// Transition POST /tickets/:id/status.
func (h *TicketsHandler) Transition(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	ticket, err := h.service.Transition(c.Context(), actorFromPrincipal(principal), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.ticketSummary(ticket)})
}

// Assign POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AssigneeID == "" {
		return apperrors.NewValidationError("assignee_id required", nil)
	}
	ticket, err := h.service.Assign(c.Context(), actorFromPrincipal(principal), c.Params("id"), req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.ticketSummary(ticket)})
}

// AddResponse POST /tickets/:id/responses.
func (h *TicketsHandler) AddResponse(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}
	resp, err := h.service.AddResponse(c.Context(), actorFromPrincipal(principal), c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponseResponse(resp)})
}

// Rate POST /tickets/:id/rate.
func (h *TicketsHandler) Rate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Rate(c.Context(), actorFromPrincipal(principal), c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.ticketSummary(ticket)})
}

func actorFromPrincipal(p *auth.Principal) service.Actor {
	return service.Actor{
		UserID:  p.User.ID,
		Role:    p.Role,
		BrandID: p.BrandID,
	}
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if channelStr := c.Query("channel"); channelStr != "" {
		channel := domain.TicketChannel(channelStr)
		filter.Channel = &channel
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func (h *TicketsHandler) ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:            ticket.ID,
		BrandID:       ticket.BrandID,
		Channel:       ticket.Channel,
		Category:      ticket.Category,
		Status:        ticket.Status,
		Urgency:       ticket.Urgency,
		Urgent:        h.service.Urgent(ticket),
		AssignedTo:    ticket.AssignedTo,
		Rating:        ticket.Rating,
		ResolvedAt:    ticket.ResolvedAt,
		ChargeApplied: ticket.ChargeApplied,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

func (h *TicketsHandler) ticketDetail(ticket *domain.Ticket, responses []domain.TicketResponse, logs []domain.TicketLog) dto.TicketDetailResponse {
	respItems := make([]dto.TicketResponseResponse, 0, len(responses))
	for i := range responses {
		respItems = append(respItems, ticketResponseResponse(&responses[i]))
	}
	logItems := make([]dto.TicketLogResponse, 0, len(logs))
	for _, entry := range logs {
		logItems = append(logItems, dto.TicketLogResponse{
			ID:        entry.ID,
			Action:    entry.Action,
			Details:   entry.Details,
			CreatedAt: entry.CreatedAt,
		})
	}
	return dto.TicketDetailResponse{
		TicketSummary:       h.ticketSummary(ticket),
		Description:         ticket.Description,
		SentimentScore:      ticket.SentimentScore,
		ResolutionTimeHours: ticket.ResolutionTimeHours,
		RatingComment:       ticket.RatingComment,
		IsPublic:            ticket.IsPublic,
		ViewCount:           ticket.ViewCount,
		Responses:           respItems,
		Logs:                logItems,
	}
}

func ticketResponseResponse(resp *domain.TicketResponse) dto.TicketResponseResponse {
	return dto.TicketResponseResponse{
		ID:          resp.ID,
		UserID:      resp.UserID,
		Message:     resp.Message,
		IsFromBrand: resp.IsFromBrand,
		CreatedAt:   resp.CreatedAt,
	}
}
