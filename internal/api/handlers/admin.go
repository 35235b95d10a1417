package handlers

import (
	"net/http"

	"github.com/Ayash-Bera/copilot-chatbot/internal/backend"
	"github.com/Ayash-Bera/copilot-chatbot/internal/middleware"
	"github.com/Ayash-Bera/copilot-chatbot/internal/views"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// adminPollURL re-renders the dashboard without fetching again.
const adminPollURL = "/admin?poll=1"

type AdminHandler struct {
	view   *views.AdminView
	logger *logrus.Logger
}

func NewAdminHandler(view *views.AdminView, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		view:   view,
		logger: logger,
	}
}

// Show renders the dashboard. A plain visit mounts the view, which
// fetches the records; ?poll=1 only re-renders the current state.
func (h *AdminHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.SessionID(c)

	if _, polling := c.GetQuery("poll"); !polling {
		if err := h.view.Mount(ctx, sessionID); err != nil {
			h.fail(c, sessionID, err)
			return
		}
		h.view.Wait(ctx, sessionID)
	}

	p, err := h.view.Page(ctx, sessionID)
	if err != nil {
		h.fail(c, sessionID, err)
		return
	}

	page(c, http.StatusOK, "admin.tmpl", adminTitle, gin.H{
		"Page":       p,
		"Refresh":    p.Loading,
		"RefreshURL": adminPollURL,
	})
}

// Reload stores the submitted range and fetches again.
func (h *AdminHandler) Reload(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.SessionID(c)
	rng := backend.DateRange{
		Start: c.PostForm("start"),
		End:   c.PostForm("end"),
	}

	if err := h.view.Reload(ctx, sessionID, rng); err != nil {
		h.fail(c, sessionID, err)
		return
	}

	h.view.Wait(ctx, sessionID)
	c.Redirect(http.StatusSeeOther, adminPollURL)
}

// Export sends the browser to the backend's CSV download.
func (h *AdminHandler) Export(c *gin.Context) {
	rng := backend.DateRange{
		Start: c.Query("start"),
		End:   c.Query("end"),
	}

	target, err := h.view.ExportURL(rng)
	if err != nil {
		h.logger.WithError(err).Warn("Rejected export range")
		statusPage(c, http.StatusBadRequest, adminTitle, err.Error())
		return
	}

	c.Redirect(http.StatusFound, target)
}

// Upload forwards the picked file. Submitting without a file changes
// nothing.
func (h *AdminHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.SessionID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil || fileHeader.Filename == "" {
		c.Redirect(http.StatusSeeOther, adminPollURL)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to open uploaded file")
		statusPage(c, http.StatusBadRequest, adminTitle, views.MsgUploadFailed)
		return
	}
	defer file.Close()

	upload := &views.UploadFile{Name: fileHeader.Filename, Content: file}
	if err := h.view.Upload(ctx, sessionID, upload); err != nil {
		h.fail(c, sessionID, err)
		return
	}

	c.Redirect(http.StatusSeeOther, adminPollURL)
}

func (h *AdminHandler) fail(c *gin.Context, sessionID string, err error) {
	h.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to update dashboard state")
	statusPage(c, http.StatusInternalServerError, adminTitle, views.MsgLoadFailed)
}
