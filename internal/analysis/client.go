package analysis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const analyzePath = "/api/analyze/"

// Attachment is a spreadsheet sent alongside a query.
type Attachment struct {
	Name string
	Data []byte
}

// Client calls the analysis service. The service is an external collaborator:
// one multipart POST in, one schema-conforming JSON body out.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client for the given base URL. A nil httpClient gets
// a default with a generous timeout; the orchestrator itself never cancels.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Analyze submits a query and optional attachment and returns the parsed
// analysis response. Non-success statuses are uniform failures regardless of
// body content; bodies that fail schema validation are reported as ErrSchema.
func (c *Client) Analyze(ctx context.Context, query string, att *Attachment) (*Response, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	if err := w.WriteField("query", query); err != nil {
		return nil, fmt.Errorf("write query field: %w", err)
	}
	if att != nil {
		part, err := w.CreateFormFile("file", att.Name)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w (status %d)", ErrUnavailable, resp.StatusCode)
	}

	return Decode(resp.Body)
}
