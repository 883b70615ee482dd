package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client is a thin Jira Cloud REST v3 client: basic auth, JSON, one
// synchronous request at a time. Requests are paced by a local rate
// limiter to stay polite on large months.
type Client struct {
	baseURL  string
	email    string
	apiToken string
	http     *http.Client
	limiter  *rate.Limiter
	log      *slog.Logger
	pageSize int
}

func NewClient(baseURL, email, apiToken string, timeout time.Duration, pageSize int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		apiToken: apiToken,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(5), 1),
		log:      logger,
		pageSize: pageSize,
	}
}

type myselfResponse struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

type apiIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string   `json:"summary"`
		Labels  []string `json:"labels"`
	} `json:"fields"`
}

type searchResponse struct {
	Total  int        `json:"total"`
	Issues []apiIssue `json:"issues"`
}

type apiWorklog struct {
	Author struct {
		AccountID string `json:"accountId"`
	} `json:"author"`
	Started          string `json:"started"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

type worklogResponse struct {
	Total    int          `json:"total"`
	Worklogs []apiWorklog `json:"worklogs"`
}

func (c *Client) myself(ctx context.Context) (myselfResponse, error) {
	var out myselfResponse
	err := c.getJSON(ctx, "/rest/api/3/myself", nil, &out)
	return out, err
}

func (c *Client) searchPage(ctx context.Context, jql string, startAt int) (searchResponse, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(c.pageSize))
	q.Set("fields", "key,labels,summary")

	var out searchResponse
	err := c.getJSON(ctx, "/rest/api/3/search/jql", q, &out)
	return out, err
}

func (c *Client) worklogPage(ctx context.Context, issueKey string, startAt int) (worklogResponse, error) {
	q := url.Values{}
	q.Set("startAt", strconv.Itoa(startAt))
	q.Set("maxResults", strconv.Itoa(c.pageSize))

	var out worklogResponse
	err := c.getJSON(ctx, "/rest/api/3/issue/"+url.PathEscape(issueKey)+"/worklog", q, &out)
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	c.log.Info("jira request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
