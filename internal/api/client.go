// Package api is the HTTP client for the fracture-prediction service.
//
// Every call runs under a bounded exponential-backoff retry policy that
// covers transport failures only: a response that arrives, even a 4xx/5xx,
// is surfaced immediately so state-changing calls are never replayed after
// the server has seen them.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/asalazarq/fracturas-client/internal/errs"
	"github.com/asalazarq/fracturas-client/internal/model"
	"github.com/asalazarq/fracturas-client/internal/retry"
)

type Client struct {
	baseURL      string
	http         *http.Client
	log          *zap.Logger
	authPolicy   retry.Policy
	uploadPolicy retry.Policy
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport (timeouts, test doubles).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithPolicies overrides the retry policies for JSON calls and uploads.
func WithPolicies(auth, upload retry.Policy) Option {
	return func(c *Client) { c.authPolicy, c.uploadPolicy = auth, upload }
}

func New(baseURL string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         &http.Client{Timeout: 30 * time.Second},
		log:          log,
		authPolicy:   retry.Auth,
		uploadPolicy: retry.Upload,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login exchanges an email for an access token.
func (c *Client) Login(ctx context.Context, email string) (model.TokenEnvelope, error) {
	var env model.TokenEnvelope
	if email == "" {
		return env, errors.New("empty email")
	}
	body, err := json.Marshal(struct {
		Email string `json:"email"`
	}{Email: email})
	if err != nil {
		return env, err
	}
	err = c.call(ctx, c.authPolicy, http.MethodPost, "/login", body, jsonHeader(""), detailOr("login failed"), &env)
	return env, err
}

// Register creates an account and returns its first access token.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.TokenEnvelope, error) {
	var env model.TokenEnvelope
	if reg.Email == "" || reg.Name == "" || reg.Role == "" {
		return env, errors.New("empty registration field")
	}
	body, err := json.Marshal(reg)
	if err != nil {
		return env, err
	}
	err = c.call(ctx, c.authPolicy, http.MethodPost, "/register", body, jsonHeader(""), detailOr("registration failed"), &env)
	return env, err
}

// UploadRadiograph submits the image at path as a multipart form and returns
// the stored radiograph with its prediction, if the model produced one.
// filename may be empty, in which case the path's base name is used; the
// extension decides the declared image type. A client-generated
// Idempotency-Key header stays constant across the retries of one call so a
// cooperating server can deduplicate replays.
func (c *Client) UploadRadiograph(ctx context.Context, token, path, filename string) (model.UploadResponse, error) {
	var out model.UploadResponse
	data, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("read image %s: %w", path, err)
	}
	if filename == "" {
		filename = filepath.Base(path)
	}
	body, contentType, err := multipartBody(filename, data)
	if err != nil {
		return out, err
	}
	key, err := uuid.NewV4()
	if err != nil {
		return out, err
	}
	hdr := http.Header{}
	hdr.Set("Content-Type", contentType)
	hdr.Set("Authorization", "Bearer "+token)
	hdr.Set("Idempotency-Key", key.String())
	err = c.call(ctx, c.uploadPolicy, http.MethodPost, "/radiografias", body, hdr, statusAndBody, &out)
	return out, err
}

// ValidateResult records a physician's verdict on a prediction result.
func (c *Client) ValidateResult(ctx context.Context, token, resultID string, v model.Validation) (model.ValidationResponse, error) {
	var out model.ValidationResponse
	if resultID == "" {
		return out, errors.New("empty result id")
	}
	body, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	path := "/resultados/" + resultID + "/validar"
	err = c.call(ctx, c.authPolicy, http.MethodPut, path, body, jsonHeader(token), statusAndBody, &out)
	return out, err
}

// call performs one endpoint exchange under the given retry policy. Each
// attempt builds a fresh request from body; transport failures are marked
// retryable, received responses never are.
func (c *Client) call(ctx context.Context, p retry.Policy, method, path string, body []byte, hdr http.Header, onReject func(*http.Response) error, out any) error {
	attempt := 0
	return retry.Do(ctx, p, func(ctx context.Context) error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		for k, vs := range hdr {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Warn("transport failure",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return retry.Retryable(errs.Transport(err))
		}
		defer resp.Body.Close()
		c.log.Debug("response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Int("status", resp.StatusCode),
		)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return onReject(resp)
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
		return nil
	})
}

func jsonHeader(token string) http.Header {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	if token != "" {
		hdr.Set("Authorization", "Bearer "+token)
	}
	return hdr
}

// detailOr builds the rejection mapper for auth endpoints: the JSON body's
// detail field when present, otherwise the fixed fallback message.
func detailOr(fallback string) func(*http.Response) error {
	return func(resp *http.Response) error {
		var payload struct {
			Detail string `json:"detail"`
		}
		msg := fallback
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
			msg = payload.Detail
		}
		return errs.API(resp.StatusCode, msg)
	}
}

// statusAndBody maps a rejection to its detail field when the body is JSON,
// otherwise to "HTTP <status>: <raw body>".
func statusAndBody(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return errs.API(resp.StatusCode, payload.Detail)
	}
	return errs.API(resp.StatusCode, fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
}
