package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aoa-site/internal/dto"
	"github.com/noah-isme/aoa-site/internal/middleware"
	"github.com/noah-isme/aoa-site/internal/service"
	"github.com/noah-isme/aoa-site/internal/utils"
)

// ContactHandler exposes the contact modal controller as JSON for script-driven clients.
type ContactHandler struct {
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(validate *validator.Validate, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		validator: validate,
		logger:    logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires contact routes. The router must carry the session middleware.
func (h *ContactHandler) Register(router fiber.Router, limiters ...fiber.Handler) {
	router.Get("", h.state)
	router.Post("/open", h.open)
	router.Post("/close", h.close)

	router.Post("", append(append([]fiber.Handler{}, limiters...), h.submit)...)
}

func (h *ContactHandler) state(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}
	return utils.SendSuccess(c, "contact state", session.State(true))
}

func (h *ContactHandler) open(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}
	session.Contact.Open()
	return utils.SendSuccess(c, "contact modal opened", session.Contact.Snapshot())
}

func (h *ContactHandler) close(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}
	session.Contact.Close()
	return utils.SendSuccess(c, "contact modal closed", session.Contact.Snapshot())
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}

	var payload dto.ContactRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload = ownedRequest(payload).Normalize()

	if err := h.validator.Struct(payload); err != nil {
		if isValidationError(err) {
			return utils.SendErrorWithData(c, fiber.StatusUnprocessableEntity, "invalid contact form", fieldErrors(err))
		}
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := session.Contact.Submit(c.UserContext(), payload.Fields())
	if err != nil {
		if errors.Is(err, service.ErrSubmissionInFlight) {
			return utils.SendErrorWithData(c, fiber.StatusConflict, "a message is already being sent", session.Contact.Snapshot())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to process contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit contact form")
	}

	// The response carries the notification; drop the copy queued for the page.
	session.Toasts.Remove(result.ReferenceID)

	return utils.SendSuccess(c, result.Notification.Message, dto.ContactResponse{
		ReferenceID:  result.ReferenceID,
		Status:       string(result.Outcome),
		Notification: result.Notification,
		State:        session.Contact.Snapshot(),
	})
}
