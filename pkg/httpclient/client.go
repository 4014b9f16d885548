package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"applydi-client/internal/dto"
	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/pkg/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	module          = "HTTPClient"
	headerRequestID = "X-Request-ID"
)

// Doer sends a request. *http.Client satisfies it; tests plug in an
// in-process backend.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL string
	doer    Doer
	logger  logger.ILogger
	tracer  trace.Tracer
}

type Option func(*Client)

func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

func WithLogger(l logger.ILogger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client for baseURL. No timeout is set: requests end only when
// the transport reports completion or failure.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    &http.Client{},
		logger:  logger.NewNopLogger(),
		tracer:  otel.Tracer("applydi-client/httpclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Multipart struct {
	Fields    map[string]string
	FileField string
	FileName  string
	File      io.Reader
}

type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Token     string
	JSON      interface{}
	Multipart *Multipart
}

type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Do sends r and returns the body of a 2xx response. Every other outcome is
// a *clientutils.AppError.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	body, contentType, err := encodeBody(r)
	if err != nil {
		return nil, clientutils.NewValidationError(err.Error())
	}

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	ctx, span := c.tracer.Start(ctx, r.Method+" "+r.Path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, clientutils.NewUnavailableError("invalid backend address", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json, */*")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	span.SetAttributes(
		attribute.String("http.request.method", r.Method),
		attribute.String("url.path", r.Path),
		attribute.String("request.id", requestID),
	)

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		span.RecordError(err)
		if ctx.Err() != nil {
			span.SetStatus(codes.Error, "cancelled")
			return nil, &clientutils.AppError{Kind: clientutils.KindCancelled, Message: "request cancelled", Err: ctx.Err()}
		}
		span.SetStatus(codes.Error, "transport failure")
		c.logger.Warn(module, "Request failed", map[string]interface{}{
			"method": r.Method, "path": r.Path, "request_id": requestID, "error": err.Error(),
		})
		return nil, clientutils.NewUnavailableError("backend unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failure")
		return nil, clientutils.NewUnavailableError("connection interrupted", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	details := map[string]interface{}{
		"method":      r.Method,
		"path":        r.Path,
		"status":      resp.StatusCode,
		"request_id":  requestID,
		"duration_ms": time.Since(start).Milliseconds(),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := clientutils.FromStatus(resp.StatusCode, errorText(raw))
		span.SetStatus(codes.Error, string(appErr.Kind))
		details["kind"] = appErr.Kind
		c.logger.Warn(module, "Backend rejected request", details)
		return nil, appErr
	}

	c.logger.Debug(module, "Request completed", details)
	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}

// DoJSON sends r and decodes a 2xx body into out (when out is non-nil).
func (c *Client) DoJSON(ctx context.Context, r Request, out interface{}) error {
	resp, err := c.Do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &clientutils.AppError{
			Kind:    clientutils.KindServer,
			Message: "malformed response from backend",
			Status:  resp.Status,
			Err:     err,
		}
	}
	return nil
}

func encodeBody(r Request) (io.Reader, string, error) {
	switch {
	case r.Multipart != nil:
		return encodeMultipart(r.Multipart)
	case r.JSON != nil:
		raw, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("encode request: %w", err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}
	return nil, "", nil
}

func encodeMultipart(m *Multipart) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if m.File != nil {
		part, err := w.CreateFormFile(m.FileField, m.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("encode upload: %w", err)
		}
		if _, err := io.Copy(part, m.File); err != nil {
			return nil, "", fmt.Errorf("read upload: %w", err)
		}
	}
	for key, value := range m.Fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("encode upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("encode upload: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func errorText(raw []byte) string {
	var e dto.ErrorResponse
	if err := json.Unmarshal(raw, &e); err == nil {
		if text := e.Text(); text != "" {
			return text
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
