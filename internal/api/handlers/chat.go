package handlers

import (
	"net/http"

	"github.com/Ayash-Bera/copilot-chatbot/internal/middleware"
	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/Ayash-Bera/copilot-chatbot/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	view   *views.ChatView
	logger *logrus.Logger
}

func NewChatHandler(view *views.ChatView, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		view:   view,
		logger: logger,
	}
}

// Show renders the chat page. While a reply is pending the page
// refreshes itself.
func (h *ChatHandler) Show(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	p, err := h.view.Page(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to load chat state")
		statusPage(c, http.StatusInternalServerError, chatTitle, views.MsgChatFailed)
		return
	}

	page(c, http.StatusOK, "chat.tmpl", chatTitle, gin.H{
		"Page":       p,
		"Refresh":    p.Loading,
		"RefreshURL": "/",
	})
}

// Submit sends the question and redirects back to the chat page once
// the reply has settled or the settle window has passed.
func (h *ChatHandler) Submit(c *gin.Context) {
	sessionID := middleware.SessionID(c)
	question := c.PostForm("question")
	mode := models.ParseMode(c.PostForm("mode"))

	h.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"mode":       mode,
		"length":     len(question),
	}).Info("Processing chat submit")

	if err := h.view.Submit(c.Request.Context(), sessionID, question, mode); err != nil {
		h.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to start chat request")
		statusPage(c, http.StatusInternalServerError, chatTitle, views.MsgChatFailed)
		return
	}

	h.view.Wait(c.Request.Context(), sessionID)
	c.Redirect(http.StatusSeeOther, "/")
}
