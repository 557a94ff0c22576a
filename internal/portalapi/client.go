// Package portalapi talks to the remote community REST API.
package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/barangay-portal/internal/domain"
	"github.com/spec-kit/barangay-portal/internal/observability"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Client wraps HTTP calls to the community API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// Options overrides client dependencies.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL is empty")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{baseURL: parsed, httpClient: client, logger: logger, metrics: opts.Metrics}, nil
}

// ErrorKind classifies API failures.
type ErrorKind string

const (
	KindNetwork      ErrorKind = "network"
	KindUnauthorized ErrorKind = "unauthorized"
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindServer       ErrorKind = "server"
	KindDecode       ErrorKind = "decode"
)

// Error describes a failed API call. Message is the server's explanation
// when it sent one.
type Error struct {
	Op      string
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "portal api error"
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an API error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// MessageOf returns the server message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type request struct {
	method      string
	path        string
	token       string
	userID      string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	req := request{method: method, path: path}
	if payload == nil {
		return req, nil
	}
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return req, err
	}
	req.body = buf
	req.contentType = "application/json"
	return req, nil
}

// form is a multipart body under construction.
type form struct {
	buf    *bytes.Buffer
	writer *multipart.Writer
	err    error
}

func newForm() *form {
	buf := &bytes.Buffer{}
	return &form{buf: buf, writer: multipart.NewWriter(buf)}
}

func (f *form) field(name, value string) *form {
	if f.err == nil {
		f.err = f.writer.WriteField(name, value)
	}
	return f
}

func (f *form) file(name string, upload *domain.Upload) *form {
	if f.err != nil || upload.Empty() {
		return f
	}
	filename := upload.Filename
	if filename == "" {
		filename = name
	}
	part, err := f.writer.CreateFormFile(name, filename)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = part.Write(upload.Data)
	return f
}

func (f *form) request(method, path string) (request, error) {
	if f.err != nil {
		return request{}, f.err
	}
	if err := f.writer.Close(); err != nil {
		return request{}, err
	}
	return request{method: method, path: path, body: f.buf, contentType: f.writer.FormDataContentType()}, nil
}

// call performs req and decodes a 2xx body into out when out is non-nil.
func (c *Client) call(ctx context.Context, op string, req request, out any) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveUpstream(op, err, time.Since(start)) }()

	resp, err := c.do(ctx, req)
	if err != nil {
		c.logger.Warn("community api unreachable", zap.String("op", op), zap.Error(err))
		return &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := statusError(op, resp)
		c.logger.Info("community api rejected request",
			zap.String("op", op),
			zap.Int("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &Error{Op: op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, r request) (*http.Response, error) {
	rel, err := url.Parse(strings.TrimPrefix(r.path, "/"))
	if err != nil {
		return nil, err
	}
	full := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, r.method, full.String(), r.body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.userID != "" {
		req.Header.Set("x-user-id", r.userID)
	}
	return c.httpClient.Do(req)
}

func statusError(op string, resp *http.Response) *Error {
	apiErr := &Error{
		Op:     op,
		Kind:   kindForStatus(resp.StatusCode),
		Status: resp.StatusCode,
		Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = strings.TrimSpace(payload.Message)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(payload.Error)
		}
	}
	return apiErr
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 500:
		return KindServer
	default:
		return KindValidation
	}
}

// Ping checks that the API answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: "/api/home"})
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
