package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aoa-site/internal/dto"
	"github.com/noah-isme/aoa-site/internal/middleware"
	"github.com/noah-isme/aoa-site/internal/models"
	"github.com/noah-isme/aoa-site/internal/service"
	"github.com/noah-isme/aoa-site/internal/utils"
	"github.com/noah-isme/aoa-site/internal/view"
)

// MessageContactInvalid is shown when the form reaches the server incomplete.
const MessageContactInvalid = "Please enter your name, a valid email address and a message."

// PageHandler renders the landing page and applies the form-driven UI toggles.
type PageHandler struct {
	studioName string
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

// NewPageHandler constructs the page handler.
func NewPageHandler(studioName string, validate *validator.Validate, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		studioName: studioName,
		validator:  validate,
		logger:     logger.With().Str("component", "page_handler").Logger(),
		now:        time.Now,
	}
}

// Register wires page routes behind the session middleware. Limiters guard the form submit only.
func (h *PageHandler) Register(router fiber.Router, sessions fiber.Handler, limiters ...fiber.Handler) {
	router.Get("/", sessions, h.home)
	router.Post("/ui/menu", sessions, h.toggleMenu)
	router.Post("/ui/nav/:anchor", sessions, h.navigate)
	router.Post("/ui/services/:index", sessions, h.toggleService)
	router.Post("/contact/open", sessions, h.openContact)
	router.Post("/contact/close", sessions, h.closeContact)
	router.Post("/contact", chain(sessions, limiters, h.submitContact)...)
}

func (h *PageHandler) home(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}

	page := view.Home(view.HomePage{
		StudioName: h.studioName,
		Year:       h.now().Year(),
		Nav:        service.NavItems(),
		Services:   service.StudioServices(),
		State:      session.State(true),
	})

	c.Type("html", "utf-8")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return page.Render(c)
}

func (h *PageHandler) toggleMenu(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}
	session.ToggleMenu()
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *PageHandler) navigate(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}

	anchor := c.Params("anchor")
	if !service.IsNavAnchor(anchor) {
		return utils.SendError(c, fiber.StatusNotFound, "unknown section")
	}

	session.CloseMenu()
	return c.Redirect("/#"+anchor, fiber.StatusSeeOther)
}

func (h *PageHandler) toggleService(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}

	index, err := c.ParamsInt("index")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid service index")
	}

	if err := session.ToggleService(index); err != nil {
		if errors.Is(err, service.ErrUnknownService) {
			return utils.SendError(c, fiber.StatusNotFound, "unknown service")
		}
		return err
	}

	return c.Redirect("/#services", fiber.StatusSeeOther)
}

func (h *PageHandler) openContact(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}
	session.Contact.Open()
	return c.Redirect("/#contact", fiber.StatusSeeOther)
}

func (h *PageHandler) closeContact(c *fiber.Ctx) error {
	session := middleware.SessionFromContext(c)
	if session == nil {
		return utils.SendError(c, fiber.StatusInternalServerError, "session unavailable")
	}
	session.Contact.Close()
	return c.Redirect("/#contact", fiber.StatusSeeOther)
}

func (h *PageHandler) submitContact(c *fiber.Ctx) error {
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
		session.Contact.SetDraftIfIdle(payload.Fields())
		session.Toasts.Notify(c.UserContext(), models.Notification{
			Level:   models.NotificationError,
			Message: MessageContactInvalid,
			At:      h.now().UTC(),
		})
		return c.Redirect("/#contact", fiber.StatusSeeOther)
	}

	result, err := session.Contact.Submit(c.UserContext(), payload.Fields())
	if err != nil {
		if errors.Is(err, service.ErrSubmissionInFlight) {
			requestLogger(h.logger, c).Debug().Str("session_id", session.ID).Msg("ignored submit while another is in flight")
			return c.Redirect("/#contact", fiber.StatusSeeOther)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to process contact submission")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit contact form")
	}

	if result.Outcome == service.ContactOutcomeSent {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Redirect("/#contact", fiber.StatusSeeOther)
}
