package views

import (
	"context"
	"html/template"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/Ayash-Bera/copilot-chatbot/internal/services"
	"github.com/Ayash-Bera/copilot-chatbot/internal/session"
	"github.com/sirupsen/logrus"
)

// ChatBackend answers questions in either mode.
type ChatBackend interface {
	Ask(ctx context.Context, mode models.Mode, question string) (string, error)
}

// ChatPage is the template data of the chat screen.
type ChatPage struct {
	Question string
	Mode     models.Mode
	Loading  bool
	Response template.HTML
}

// IsHint reports whether the toggle is on hint.
func (p *ChatPage) IsHint() bool {
	return p.Mode == models.ModeHint
}

// ChatView owns the chat screen state of every session.
type ChatView struct {
	backend  ChatBackend
	sessions *session.Manager
	activity *services.ActivityService
	runs     *runs
	base     context.Context
	settle   time.Duration
	logger   *logrus.Logger
}

// NewChatView returns a view whose backend calls live as long as base.
func NewChatView(
	base context.Context,
	backend ChatBackend,
	sessions *session.Manager,
	activity *services.ActivityService,
	settle time.Duration,
	logger *logrus.Logger,
) *ChatView {
	return &ChatView{
		backend:  backend,
		sessions: sessions,
		activity: activity,
		runs:     newRuns(),
		base:     base,
		settle:   settle,
		logger:   logger,
	}
}

// Page returns what the chat screen shows for sessionID right now.
func (v *ChatView) Page(ctx context.Context, sessionID string) (*ChatPage, error) {
	state, err := v.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	page := &ChatPage{
		Question: state.Chat.Question,
		Mode:     state.Chat.Mode,
		Loading:  state.Chat.Loading,
	}
	if page.Mode == "" {
		page.Mode = models.ModeAnswer
	}
	if !page.Loading {
		page.Response = RenderMarkdown(state.Chat.Response)
	}
	return page, nil
}

// Submit clears the previous reply, marks the session loading and sends
// question to the endpoint for mode. The reply is applied when it
// arrives unless a newer submit has been made in the meantime.
func (v *ChatView) Submit(ctx context.Context, sessionID, question string, mode models.Mode) error {
	var generation uint64
	_, err := v.sessions.Update(ctx, sessionID, func(s *models.SessionState) error {
		s.Chat.Generation++
		generation = s.Chat.Generation
		s.Chat.Question = question
		s.Chat.Mode = mode
		s.Chat.Response = ""
		s.Chat.Loading = true
		return nil
	})
	if err != nil {
		return err
	}

	runCtx, finish := v.runs.start(v.base, sessionID, generation)
	go func() {
		defer finish()

		started := time.Now()
		text, err := v.backend.Ask(runCtx, mode, question)
		v.activity.Record(sessionID, models.OperationChat, string(mode), started, err)
		if err != nil {
			v.logger.WithError(err).WithFields(logrus.Fields{
				"session_id": sessionID,
				"mode":       mode,
			}).Warn("Chat request failed")
			text = MsgChatFailed
		}

		v.complete(sessionID, generation, text)
	}()

	return nil
}

// Wait gives the latest submit of sessionID a short window to settle so
// fast replies render without a loading round trip.
func (v *ChatView) Wait(ctx context.Context, sessionID string) {
	v.runs.wait(ctx, sessionID, v.settle)
}

// Shutdown cancels every in-flight chat request and waits for each to
// record its outcome.
func (v *ChatView) Shutdown() {
	v.runs.stop()
}

func (v *ChatView) complete(sessionID string, generation uint64, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := v.sessions.Update(ctx, sessionID, func(s *models.SessionState) error {
		if s.Chat.Generation != generation {
			v.logger.WithField("session_id", sessionID).Debug("Discarding superseded chat reply")
			return nil
		}
		s.Chat.Response = text
		s.Chat.Loading = false
		return nil
	})
	if err != nil {
		v.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to store chat reply")
	}
}
