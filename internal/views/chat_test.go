package views

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatView_SubmitRendersMarkdown(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"response": "# Title\n\nSome *emphasis*"})
	})
	view := newTestChatView(t, client)
	ctx := context.Background()

	require.NoError(t, view.Submit(ctx, "s1", "What is Go?", models.ModeAnswer))
	view.Wait(ctx, "s1")

	page, err := view.Page(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, page.Loading)
	assert.Equal(t, "What is Go?", page.Question)
	assert.Equal(t, models.ModeAnswer, page.Mode)
	assert.Contains(t, string(page.Response), "<h1>Title</h1>")
	assert.Contains(t, string(page.Response), "<em>emphasis</em>")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/create_answer"}, paths)
}

func TestChatView_HintModeUsesHintEndpoint(t *testing.T) {
	var (
		mu     sync.Mutex
		paths  []string
		bodies []map[string]string
	)
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		paths = append(paths, r.URL.Path)
		bodies = append(bodies, body)
		mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"response": "try this"})
	})
	view := newTestChatView(t, client)
	ctx := context.Background()

	require.NoError(t, view.Submit(ctx, "s1", "stuck on loops", models.ModeHint))
	view.Wait(ctx, "s1")

	page, err := view.Page(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.ModeHint, page.Mode)
	assert.Contains(t, string(page.Response), "try this")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/create_hint"}, paths)
	assert.Equal(t, []map[string]string{{"question": "stuck on loops"}}, bodies)
}

func TestChatView_FailureShowsFixedMessage(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	view := newTestChatView(t, client)
	ctx := context.Background()

	require.NoError(t, view.Submit(ctx, "s1", "q", models.ModeAnswer))
	view.Wait(ctx, "s1")

	page, err := view.Page(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, page.Loading)
	assert.Contains(t, string(page.Response), MsgChatFailed)
}

func TestChatView_LoadingClearsPreviousReply(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 2 {
			<-release
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "reply"})
	})
	view := newTestChatView(t, client)
	ctx := context.Background()

	require.NoError(t, view.Submit(ctx, "s1", "first", models.ModeAnswer))
	view.Wait(ctx, "s1")

	require.NoError(t, view.Submit(ctx, "s1", "second", models.ModeAnswer))

	page, err := view.Page(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, page.Loading)
	assert.Empty(t, page.Response)

	close(release)
	view.Wait(ctx, "s1")

	page, err = view.Page(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, page.Loading)
	assert.Contains(t, string(page.Response), "reply")
}

func TestChatView_NewerSubmitWins(t *testing.T) {
	release := make(chan struct{})
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["question"] == "slow" {
			select {
			case <-release:
			case <-r.Context().Done():
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "answer to " + body["question"]})
	})
	t.Cleanup(func() { close(release) })

	view := newTestChatView(t, client)
	ctx := context.Background()

	require.NoError(t, view.Submit(ctx, "s1", "slow", models.ModeAnswer))
	require.NoError(t, view.Submit(ctx, "s1", "fast", models.ModeAnswer))
	view.Wait(ctx, "s1")

	page, err := view.Page(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, page.Loading)
	assert.Equal(t, "fast", page.Question)
	assert.Contains(t, string(page.Response), "answer to fast")
	assert.NotContains(t, string(page.Response), MsgChatFailed)
}

func TestChatView_SessionsAreIndependent(t *testing.T) {
	client := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": "hi"})
	})
	view := newTestChatView(t, client)
	ctx := context.Background()

	require.NoError(t, view.Submit(ctx, "s1", "q", models.ModeHint))
	view.Wait(ctx, "s1")

	other, err := view.Page(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, models.ModeAnswer, other.Mode)
	assert.Empty(t, other.Question)
	assert.Empty(t, other.Response)
}
