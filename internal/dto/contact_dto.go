package dto

import (
	"strings"

	"github.com/noah-isme/aoa-site/internal/models"
)

// ContactRequest defines the expected payload for the contact form, both as
// an HTML form post and as JSON.
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=120"`
	Email   string `json:"email" form:"email" validate:"required,email,max=160"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (r ContactRequest) Normalize() ContactRequest {
	return ContactRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Message: strings.TrimSpace(r.Message),
	}
}

// Fields converts the request into form field values.
func (r ContactRequest) Fields() models.ContactFields {
	return models.ContactFields{Name: r.Name, Email: r.Email, Message: r.Message}
}

// ContactResponse communicates the outcome of a submit action.
type ContactResponse struct {
	ReferenceID  string              `json:"reference_id"`
	Status       string              `json:"status"`
	Notification models.Notification `json:"notification"`
	State        ContactState        `json:"state"`
}

// ContactState is the controller snapshot exposed over the API.
type ContactState struct {
	ModalOpen  bool                 `json:"modal_open"`
	Submitting bool                 `json:"submitting"`
	Fields     models.ContactFields `json:"fields"`
}

// PageState is the complete per-visitor UI state rendered by the page.
type PageState struct {
	MenuOpen      bool                  `json:"menu_open"`
	ActiveService *int                  `json:"active_service"`
	Contact       ContactState          `json:"contact"`
	Toasts        []models.Notification `json:"toasts"`
}
