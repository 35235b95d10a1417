package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/sirupsen/logrus"
)

// Client talks to the question-answering backend. Every method is a
// single attempt; callers decide what a failure means for the page.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient returns a client for baseURL (no trailing slash). A zero
// timeout leaves requests bounded only by their context.
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) CreateAnswer(ctx context.Context, question string) (*ChatResponse, error) {
	var response ChatResponse
	err := c.postJSON(ctx, pathCreateAnswer, ChatRequest{Question: question}, &response)
	return &response, err
}

func (c *Client) CreateHint(ctx context.Context, question string) (*ChatResponse, error) {
	var response ChatResponse
	err := c.postJSON(ctx, pathCreateHint, ChatRequest{Question: question}, &response)
	return &response, err
}

// Ask sends question to the endpoint selected by mode and returns the
// markdown reply.
func (c *Client) Ask(ctx context.Context, mode models.Mode, question string) (string, error) {
	var (
		resp *ChatResponse
		err  error
	)
	if mode == models.ModeHint {
		resp, err = c.CreateHint(ctx, question)
	} else {
		resp, err = c.CreateAnswer(ctx, question)
	}
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// ListEvaluations fetches the evaluation records for rng in JSON form.
func (c *Client) ListEvaluations(ctx context.Context, rng DateRange) ([]models.EvaluationRecord, error) {
	params, err := rng.Query(FormatJSON)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, pathEvaluations+"?"+params.Encode(), "", nil)
	if err != nil {
		return nil, err
	}

	var records []models.EvaluationRecord
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluations: %w", err)
	}
	if records == nil {
		records = []models.EvaluationRecord{}
	}
	return records, nil
}

// EvaluationsURL is the absolute export URL for format and rng. The CSV
// download is a plain browser navigation to it.
func (c *Client) EvaluationsURL(format ExportFormat, rng DateRange) (string, error) {
	params, err := rng.Query(format)
	if err != nil {
		return "", err
	}
	return c.baseURL + pathEvaluations + "?" + params.Encode(), nil
}

// Upload posts content as the multipart field "file". The body is
// streamed, so content is never held in memory as a whole.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*UploadResponse, error) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)

	written := make(chan struct{})
	go func() {
		defer close(written)
		pw.CloseWithError(writeUpload(w, filename, content))
	}()

	body, err := c.do(ctx, http.MethodPost, pathUpload, w.FormDataContentType(), pr)
	// Unblocks the writer if the request ended before reading everything.
	pr.Close()
	<-written
	if err != nil {
		return nil, err
	}

	var response UploadResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upload response: %w", err)
	}
	return &response, nil
}

func writeUpload(w *multipart.Writer, filename string, content io.Reader) error {
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to copy upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}
	return nil
}

// ChartURL is the daily quality chart the dashboard embeds directly.
func (c *Client) ChartURL() string {
	return c.baseURL + pathDailyChart
}

// Ping checks that the backend answers on its root path.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, pathRoot, "", nil)
	return err
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload interface{}, result interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return err
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, contentType string, body io.Reader) ([]byte, error) {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"url":      url,
		"has_body": body != nil,
	}).Debug("Making backend request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"method":        method,
		"url":           url,
		"response_size": len(responseBody),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	}).Debug("Backend response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(responseBody), 500)}
	}

	return responseBody, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
