package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/backend"
	"github.com/Ayash-Bera/copilot-chatbot/internal/session"
	"github.com/sirupsen/logrus"
)

const testSettle = 2 * time.Second

func newTestBackend(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return backend.NewClient(server.URL, 0, logrus.New())
}

func newTestChatView(t *testing.T, client ChatBackend) *ChatView {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sessions := session.NewManager(session.NewMemoryStore(time.Hour))
	return NewChatView(ctx, client, sessions, nil, testSettle, logrus.New())
}

func newTestAdminView(t *testing.T, client AdminBackend) *AdminView {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	sessions := session.NewManager(session.NewMemoryStore(time.Hour))
	return NewAdminView(ctx, client, sessions, nil, testSettle, logrus.New())
}
