package views

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/backend"
	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/Ayash-Bera/copilot-chatbot/internal/services"
	"github.com/Ayash-Bera/copilot-chatbot/internal/session"
	"github.com/sirupsen/logrus"
)

// AdminBackend is the part of the backend the dashboard uses.
type AdminBackend interface {
	ListEvaluations(ctx context.Context, rng backend.DateRange) ([]models.EvaluationRecord, error)
	EvaluationsURL(format backend.ExportFormat, rng backend.DateRange) (string, error)
	Upload(ctx context.Context, filename string, content io.Reader) (*backend.UploadResponse, error)
	ChartURL() string
}

// EvaluationRow is one table row, already formatted for display.
type EvaluationRow struct {
	CreatedAt string
	Question  string
	Answer    string
	Score     string
	Reason    string
}

// AdminPage is the template data of the dashboard.
type AdminPage struct {
	StartDate string
	EndDate   string
	Loading   bool
	Error     string
	Rows      []EvaluationRow
	Notice    *models.Notice
	ChartURL  string
}

// UploadFile is a file picked in the dashboard, not yet sent.
type UploadFile struct {
	Name    string
	Content io.Reader
}

// AdminView owns the dashboard state of every session.
type AdminView struct {
	backend  AdminBackend
	sessions *session.Manager
	activity *services.ActivityService
	runs     *runs
	base     context.Context
	settle   time.Duration
	logger   *logrus.Logger
}

func NewAdminView(
	base context.Context,
	backend AdminBackend,
	sessions *session.Manager,
	activity *services.ActivityService,
	settle time.Duration,
	logger *logrus.Logger,
) *AdminView {
	return &AdminView{
		backend:  backend,
		sessions: sessions,
		activity: activity,
		runs:     newRuns(),
		base:     base,
		settle:   settle,
		logger:   logger,
	}
}

// Page returns the dashboard for sessionID. A pending upload notice is
// handed out once and then cleared. While a fetch is loading the notice
// is held back, since the loading page refreshes itself.
func (v *AdminView) Page(ctx context.Context, sessionID string) (*AdminPage, error) {
	var notice *models.Notice
	state, err := v.sessions.Update(ctx, sessionID, func(s *models.SessionState) error {
		if s.Admin.Loading {
			return nil
		}
		notice = s.Admin.Notice
		s.Admin.Notice = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	page := &AdminPage{
		StartDate: state.Admin.StartDate,
		EndDate:   state.Admin.EndDate,
		Loading:   state.Admin.Loading,
		Error:     state.Admin.Error,
		Notice:    notice,
		ChartURL:  v.backend.ChartURL(),
		Rows:      make([]EvaluationRow, 0, len(state.Admin.Records)),
	}
	for _, r := range state.Admin.Records {
		page.Rows = append(page.Rows, EvaluationRow{
			CreatedAt: FormatTokyo(r.CreatedAt),
			Question:  r.Question,
			Answer:    r.Answer,
			Score:     FormatScore(r.Score),
			Reason:    r.Reason,
		})
	}
	return page, nil
}

// Mount fetches the records for the range already held by the session.
func (v *AdminView) Mount(ctx context.Context, sessionID string) error {
	return v.fetch(ctx, sessionID, nil)
}

// Reload stores a new range and fetches the records for it.
func (v *AdminView) Reload(ctx context.Context, sessionID string, rng backend.DateRange) error {
	return v.fetch(ctx, sessionID, &rng)
}

// ExportURL is the backend URL of the CSV export for rng.
func (v *AdminView) ExportURL(rng backend.DateRange) (string, error) {
	return v.backend.EvaluationsURL(backend.FormatCSV, rng)
}

// Upload forwards file to the backend and leaves a notice with the
// outcome. A nil file is a no-op.
func (v *AdminView) Upload(ctx context.Context, sessionID string, file *UploadFile) error {
	if file == nil {
		return nil
	}

	started := time.Now()
	resp, err := v.backend.Upload(ctx, file.Name, file.Content)
	v.activity.Record(sessionID, models.OperationUpload, "", started, err)

	notice := &models.Notice{Kind: models.NoticeError, Text: MsgUploadFailed}
	if err != nil {
		v.logger.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
			"filename":   file.Name,
		}).Warn("Upload failed")
	} else {
		notice = &models.Notice{Kind: models.NoticeSuccess, Text: fmt.Sprintf(MsgUploadSucceeded, resp.Filename)}
	}

	_, err = v.sessions.Update(ctx, sessionID, func(s *models.SessionState) error {
		s.Admin.Notice = notice
		return nil
	})
	return err
}

// Wait gives the latest fetch of sessionID a short window to settle.
func (v *AdminView) Wait(ctx context.Context, sessionID string) {
	v.runs.wait(ctx, sessionID, v.settle)
}

// Shutdown cancels every in-flight fetch and waits for each to record
// its outcome.
func (v *AdminView) Shutdown() {
	v.runs.stop()
}

func (v *AdminView) fetch(ctx context.Context, sessionID string, newRange *backend.DateRange) error {
	var (
		generation uint64
		rng        backend.DateRange
	)
	_, err := v.sessions.Update(ctx, sessionID, func(s *models.SessionState) error {
		if newRange != nil {
			s.Admin.StartDate = newRange.Start
			s.Admin.EndDate = newRange.End
		}
		rng = backend.DateRange{Start: s.Admin.StartDate, End: s.Admin.EndDate}

		s.Admin.Generation++
		generation = s.Admin.Generation
		s.Admin.Loading = true
		s.Admin.Error = ""
		return nil
	})
	if err != nil {
		return err
	}

	runCtx, finish := v.runs.start(v.base, sessionID, generation)
	go func() {
		defer finish()

		started := time.Now()
		records, err := v.backend.ListEvaluations(runCtx, rng)
		v.activity.Record(sessionID, models.OperationEvaluations, "", started, err)
		if err != nil {
			v.logger.WithError(err).WithField("session_id", sessionID).Warn("Evaluation fetch failed")
		}

		v.complete(sessionID, generation, records, err)
	}()

	return nil
}

func (v *AdminView) complete(sessionID string, generation uint64, records []models.EvaluationRecord, fetchErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := v.sessions.Update(ctx, sessionID, func(s *models.SessionState) error {
		if s.Admin.Generation != generation {
			v.logger.WithField("session_id", sessionID).Debug("Discarding superseded evaluation fetch")
			return nil
		}
		s.Admin.Loading = false
		if fetchErr != nil {
			// Keep the records from the last successful fetch.
			s.Admin.Error = MsgLoadFailed
			return nil
		}
		s.Admin.Records = records
		return nil
	})
	if err != nil {
		v.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to store evaluations")
	}
}
