// Package radarclient calls the scaffold generation service over its JSON API.
package radarclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/pedagogyradar/radar/core/scaffold"
	"github.com/pedagogyradar/radar/core/strategy"
)

const DefaultBaseURL = "http://127.0.0.1:8000"

// APIError is a non-2xx answer of the service.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Body
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client of the service at baseURL. A nil httpClient gets a 60s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}
	if out == nil {
		return nil
	}
	return errors.Wrapf(json.NewDecoder(resp.Body).Decode(out), "decoding %s response", path)
}

func (c *Client) Strategies(ctx context.Context) ([]strategy.Strategy, error) {
	var res []strategy.Strategy
	err := c.do(ctx, http.MethodGet, "/strategies", nil, &res)
	return res, err
}

func (c *Client) SuggestObjectives(ctx context.Context, req scaffold.Request) ([]string, error) {
	var res struct {
		Objectives []string `json:"objectives"`
	}
	err := c.do(ctx, http.MethodPost, "/suggest-objectives", req, &res)
	return res.Objectives, err
}

func (c *Client) SuggestActivity(ctx context.Context, req scaffold.Request) (string, error) {
	var res struct {
		Activity string `json:"activity"`
	}
	err := c.do(ctx, http.MethodPost, "/suggest-activity", req, &res)
	return res.Activity, err
}

func (c *Client) SuggestRubric(ctx context.Context, req scaffold.Request) (string, error) {
	var res struct {
		Rubric string `json:"rubric"`
	}
	err := c.do(ctx, http.MethodPost, "/suggest-rubric", req, &res)
	return res.Rubric, err
}

func (c *Client) SuggestPreworkResources(ctx context.Context, req scaffold.Request) ([]scaffold.PreworkResource, error) {
	var res struct {
		Resources []scaffold.PreworkResource `json:"resources"`
	}
	err := c.do(ctx, http.MethodPost, "/suggest-prework-resources", req, &res)
	return res.Resources, err
}

func (c *Client) SuggestEvidenceAlignment(ctx context.Context, req scaffold.AlignmentRequest) (scaffold.EvidenceAlignment, error) {
	var res scaffold.EvidenceAlignment
	err := c.do(ctx, http.MethodPost, "/suggest-evidence-alignment", req, &res)
	return res, err
}

// Scaffold returns the markdown document of the activity.
func (c *Client) Scaffold(ctx context.Context, req scaffold.Request) (string, error) {
	var res struct {
		Markdown string `json:"markdown"`
	}
	err := c.do(ctx, http.MethodPost, "/scaffold", req, &res)
	return res.Markdown, err
}

// Draft returns the activity with its empty parts filled, and its document.
func (c *Client) Draft(ctx context.Context, req scaffold.Request) (scaffold.Request, string, error) {
	var res struct {
		Markdown string           `json:"markdown"`
		Request  scaffold.Request `json:"request"`
	}
	err := c.do(ctx, http.MethodPost, "/scaffold/draft", req, &res)
	return res.Request, res.Markdown, err
}

func (c *Client) EmailScaffold(ctx context.Context, req scaffold.EmailRequest) error {
	return c.do(ctx, http.MethodPost, "/scaffold/email", req, nil)
}

// Alignment returns the alignment warnings of the objectives.
func (c *Client) Alignment(ctx context.Context, objectives, evidences []string) ([]string, error) {
	in := struct {
		Objectives []string `json:"objectives"`
		Evidences  []string `json:"evidences"`
	}{objectives, evidences}
	var res struct {
		Warnings []string `json:"warnings"`
	}
	err := c.do(ctx, http.MethodPost, "/alignment", in, &res)
	return res.Warnings, err
}
