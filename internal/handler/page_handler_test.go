package handler_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

var janeForm = url.Values{"name": {"Jane Doe"}, "email": {"jane@x.com"}, "message": {"Hello"}}

func TestPageRendersSections(t *testing.T) {
	site := newTestSite(t, &stubRelay{})

	body := site.page()
	require.NotNil(t, site.cookie)
	require.Contains(t, body, "Alpha Omega Artworks")
	require.Contains(t, body, "Crafting Artistic Experiences")
	require.Contains(t, body, `id="about"`)
	require.Contains(t, body, "Brand Identity &amp; Logo Design")
	require.Contains(t, body, `id="contact"`)
	require.NotContains(t, body, `role="dialog"`)
}

func TestPageContactSuccessClosesModal(t *testing.T) {
	relay := &stubRelay{}
	site := newTestSite(t, relay)
	site.page()

	resp := site.post("/contact/open")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/#contact", resp.Header.Get("Location"))
	require.Contains(t, site.page(), `role="dialog"`)

	resp = site.postForm("/contact", janeForm)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	require.Equal(t, int32(1), relay.calls.Load())

	body := site.page()
	require.NotContains(t, body, `role="dialog"`)
	require.Contains(t, body, "Message sent successfully!")
	require.Contains(t, body, "toast-success")

	require.NotContains(t, site.page(), "Message sent successfully!", "toasts render once")
}

func TestPageContactFailureKeepsModalAndFields(t *testing.T) {
	relay := &stubRelay{err: errors.New("relay down")}
	site := newTestSite(t, relay)
	site.page()
	site.post("/contact/open")

	resp := site.postForm("/contact", janeForm)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/#contact", resp.Header.Get("Location"))

	body := site.page()
	require.Contains(t, body, `role="dialog"`)
	require.Contains(t, body, `value="Jane Doe"`)
	require.Contains(t, body, `value="jane@x.com"`)
	require.Contains(t, body, "Hello</textarea>")
	require.Contains(t, body, "Failed to send message. Please try again or contact us directly.")
	require.Contains(t, body, "Send Message")
}

func TestPageContactInvalidInputSkipsRelay(t *testing.T) {
	relay := &stubRelay{}
	site := newTestSite(t, relay)
	site.page()
	site.post("/contact/open")

	resp := site.postForm("/contact", url.Values{"name": {"Jane Doe"}, "email": {"not-an-email"}, "message": {" "}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Zero(t, relay.calls.Load())

	body := site.page()
	require.Contains(t, body, `value="Jane Doe"`)
	require.Contains(t, body, "Please enter your name, a valid email address and a message.")
}

func TestPageCloseContact(t *testing.T) {
	site := newTestSite(t, &stubRelay{})
	site.page()
	site.post("/contact/open")

	resp := site.post("/contact/close")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.NotContains(t, site.page(), `role="dialog"`)
}

func TestPageMenuToggleAndNavigation(t *testing.T) {
	site := newTestSite(t, &stubRelay{})
	site.page()

	resp := site.post("/ui/menu")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Contains(t, site.page(), `class="nav-mobile"`)

	resp = site.post("/ui/nav/services")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/#services", resp.Header.Get("Location"))
	require.NotContains(t, site.page(), `class="nav-mobile"`)

	resp = site.post("/ui/nav/pricing")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPageServiceToggle(t *testing.T) {
	site := newTestSite(t, &stubRelay{})
	site.page()

	resp := site.post("/ui/services/1")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Contains(t, site.page(), "We design responsive websites")

	site.post("/ui/services/1")
	require.NotContains(t, site.page(), "We design responsive websites")

	require.Equal(t, fiber.StatusNotFound, site.post("/ui/services/7").StatusCode)
	require.Equal(t, fiber.StatusBadRequest, site.post("/ui/services/abc").StatusCode)
}

func TestHealthDoesNotCreateSessions(t *testing.T) {
	site := newTestSite(t, &stubRelay{})

	resp := site.do(http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Alpha Omega Artworks", resp.Header.Get("X-Application"))
	require.Nil(t, site.cookie)
	require.Zero(t, site.registry.Len())
}
