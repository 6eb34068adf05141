package view_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/aoa-site/internal/dto"
	"github.com/noah-isme/aoa-site/internal/models"
	"github.com/noah-isme/aoa-site/internal/service"
	"github.com/noah-isme/aoa-site/internal/view"
)

func render(t *testing.T, state dto.PageState) string {
	t.Helper()

	var buf bytes.Buffer
	err := view.Home(view.HomePage{
		StudioName: "Alpha Omega Artworks",
		Year:       2026,
		Nav:        service.NavItems(),
		Services:   service.StudioServices(),
		State:      state,
	}).Render(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestHomeDefaultState(t *testing.T) {
	html := render(t, dto.PageState{})

	require.Contains(t, html, "<!doctype html>")
	require.Contains(t, html, "<title>Alpha Omega Artworks</title>")
	require.Contains(t, html, `href="#services"`)
	require.Contains(t, html, `aria-expanded="false"`)
	require.Contains(t, html, "© 2026 Alpha Omega Artworks. All rights reserved.")
	require.Contains(t, html, `action="/contact/open"`)
	require.NotContains(t, html, `class="nav-mobile"`)
	require.NotContains(t, html, `role="dialog"`)
	require.NotContains(t, html, "service-details")
	require.NotContains(t, html, `class="toasts"`)
}

func TestHomeActiveService(t *testing.T) {
	active := 0
	html := render(t, dto.PageState{ActiveService: &active})

	require.Contains(t, html, `class="active service-card"`)
	require.Contains(t, html, "Our brand identity and logo design service")
	require.NotContains(t, html, "We design responsive websites")
}

func TestHomeMenuOpen(t *testing.T) {
	html := render(t, dto.PageState{MenuOpen: true})

	require.Contains(t, html, `class="nav-mobile"`)
	require.Contains(t, html, `action="/ui/nav/about"`)
	require.Contains(t, html, `aria-expanded="true"`)
}

func TestHomeContactModal(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		html := render(t, dto.PageState{Contact: dto.ContactState{
			ModalOpen: true,
			Fields:    models.ContactFields{Name: "Jane <b>", Email: "jane@x.com", Message: "Hi"},
		}})

		require.Contains(t, html, `role="dialog" aria-modal="true"`)
		require.Contains(t, html, `<form id="contact-form" method="post" action="/contact">`)
		require.Contains(t, html, `<label for="email">Email</label>`)
		require.Contains(t, html, `value="Jane &lt;b&gt;"`)
		require.Contains(t, html, "Send Message")
		require.NotContains(t, html, "disabled>")
	})

	t.Run("submitting", func(t *testing.T) {
		html := render(t, dto.PageState{Contact: dto.ContactState{ModalOpen: true, Submitting: true}})

		require.Contains(t, html, "Sending...")
		require.Contains(t, html, `disabled>Sending...`)
		require.NotContains(t, html, "Send Message")
	})
}

func TestHomeToasts(t *testing.T) {
	html := render(t, dto.PageState{Toasts: []models.Notification{
		{Level: models.NotificationSuccess, Message: "sent"},
		{Level: models.NotificationError, Message: "failed"},
	}})

	require.Contains(t, html, `class="toast toast-success" role="status"`)
	require.Contains(t, html, `class="toast toast-error" role="alert"`)
}
