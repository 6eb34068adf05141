package emailjs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSendPostsTemplateRequest(t *testing.T) {
	var received sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, sendPath, r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client, err := New(Config{Endpoint: server.URL + "/", AccessToken: "token"}, zerolog.Nop())
	require.NoError(t, err)

	params := map[string]string{"from_name": "Jane Doe", "from_email": "jane@x.com", "message": "Hello"}
	err = client.Send(context.Background(), "service_1", "template_1", params, "public_1")
	require.NoError(t, err)

	require.Equal(t, "service_1", received.ServiceID)
	require.Equal(t, "template_1", received.TemplateID)
	require.Equal(t, "public_1", received.UserID)
	require.Equal(t, "token", received.AccessToken)
	require.Equal(t, params, received.TemplateParams)
}

func TestSendRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The Public Key is invalid"))
	}))
	defer server.Close()

	client, err := New(Config{Endpoint: server.URL}, zerolog.Nop())
	require.NoError(t, err)

	err = client.Send(context.Background(), "s", "t", nil, "k")
	require.ErrorIs(t, err, ErrRejected)
	require.Contains(t, err.Error(), "Public Key is invalid")
}

func TestSendTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, err := New(Config{Endpoint: server.URL, Timeout: 50 * time.Millisecond}, zerolog.Nop())
	require.NoError(t, err)

	err = client.Send(context.Background(), "s", "t", nil, "k")
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRequiresEndpoint(t *testing.T) {
	_, err := New(Config{}, zerolog.Nop())
	require.Error(t, err)
}
