package backend

import "fmt"

// Request models
type ChatRequest struct {
	Question string `json:"question"`
}

// Response models
type ChatResponse struct {
	Response string `json:"response"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
}

// ExportFormat is the fmt query parameter of /export/evaluations.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// Backend paths
const (
	pathCreateAnswer = "/create_answer"
	pathCreateHint   = "/create_hint"
	pathEvaluations  = "/export/evaluations"
	pathUpload       = "/upload"
	pathDailyChart   = "/metrics/quality/daily.png"
	pathRoot         = "/"
)

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend request failed with status %d: %s", e.StatusCode, e.Body)
}
