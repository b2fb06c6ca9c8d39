package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"

	"backoffice/internal/domain"
)

// Options configures a Client
type Options struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	RetryMax int
	Logger   logr.Logger
}

// Client talks to the admin REST backend
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	token      string
	log        logr.Logger
}

// New creates a client that retries reads on transport errors and 5xx
// responses. Writes are sent once.
func New(opts Options) *Client {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	log = log.WithName("api")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.HTTPClient = &http.Client{Timeout: timeout}
	retryClient.Logger = nil
	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			log.Info("retrying request", "method", req.Method, "url", req.URL.String(), "attempt", attempt)
		}
	}
	retryClient.CheckRetry = retryReadsOnly
	// hand the last response to sendRequest instead of a generic "giving up" error
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		BaseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		HTTPClient: retryClient.StandardClient(),
		token:      opts.Token,
		log:        log,
	}
}

type sendOnceKey struct{}

// retryReadsOnly applies the default policy to GET requests. A repeated
// create or bulk item would act twice on the backend.
func retryReadsOnly(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if once, _ := ctx.Value(sendOnceKey{}).(bool); once {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// messageResponse is returned by endpoints without a payload
type messageResponse struct {
	Message string `json:"message"`
}

// HTTP helper methods
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, response any) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, endpoint, nil, response)
}

func (c *Client) post(ctx context.Context, endpoint string, body, response any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, response)
}

func (c *Client) put(ctx context.Context, endpoint string, body, response any) error {
	return c.do(ctx, http.MethodPut, endpoint, body, response)
}

func (c *Client) patch(ctx context.Context, endpoint string, body, response any) error {
	return c.do(ctx, http.MethodPatch, endpoint, body, response)
}

func (c *Client) delete(ctx context.Context, endpoint string, response any) error {
	return c.do(ctx, http.MethodDelete, endpoint, nil, response)
}

// do sends one request. Every failure comes back as *domain.NetworkError.
func (c *Client) do(ctx context.Context, method, endpoint string, body, response any) error {
	op := method + " " + opPath(endpoint)
	if method != http.MethodGet {
		ctx = context.WithValue(ctx, sendOnceKey{}, true)
	}

	req, err := c.prepareRequest(ctx, method, endpoint, body)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	c.signRequest(req)

	status, err := c.sendRequest(req, response)
	if err != nil {
		return &domain.NetworkError{Op: op, Status: status, Err: err}
	}
	return nil
}

func (c *Client) prepareRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	req.Header.Set("Accept", "application/json; charset=utf-8")
	return req, nil
}

func (c *Client) signRequest(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) sendRequest(req *http.Request, response any) (int, error) {
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.log.V(1).Info("response", "method", req.Method, "url", req.URL.String(),
		"status", resp.StatusCode, "elapsed", time.Since(start).String())

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, errors.New(serverMessage(resp.Status, bodyBytes))
	}

	if response != nil {
		if len(bodyBytes) == 0 {
			return resp.StatusCode, errors.New("received empty response from server")
		}
		if err := json.Unmarshal(bodyBytes, response); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to parse response JSON: %w", err)
		}
		if v, ok := response.(validator); ok {
			if err := v.validate(); err != nil {
				return resp.StatusCode, fmt.Errorf("invalid response: %w", err)
			}
		}
	}

	return resp.StatusCode, nil
}

// serverMessage prefers the backend's {"message": ...} over the bare status
func serverMessage(status string, body []byte) string {
	var m messageResponse
	if err := json.Unmarshal(body, &m); err == nil && m.Message != "" {
		return m.Message
	}
	return status
}

// opPath strips the query string so log and error ops stay short
func opPath(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// pageQuery builds the limit/page/search parameters of a list endpoint
func pageQuery(limit, page int, search string) url.Values {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	q.Set("page", fmt.Sprint(page))
	if search != "" {
		q.Set("search", search)
	}
	return q
}
