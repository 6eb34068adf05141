package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/noah-isme/aoa-site/internal/dto"
	"github.com/noah-isme/aoa-site/internal/middleware"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// fieldErrors maps each invalid field to the rule it failed.
func fieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		details[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return details
}

// ownedRequest copies request strings out of fasthttp's reusable buffers so
// they can outlive the handler.
func ownedRequest(req dto.ContactRequest) dto.ContactRequest {
	return dto.ContactRequest{
		Name:    fiberutils.CopyString(req.Name),
		Email:   fiberutils.CopyString(req.Email),
		Message: fiberutils.CopyString(req.Message),
	}
}

func chain(first fiber.Handler, middle []fiber.Handler, last fiber.Handler) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(middle)+2)
	handlers = append(handlers, first)
	handlers = append(handlers, middle...)
	return append(handlers, last)
}
