// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/andrewbolster/openapi2callables/openapi"
	"github.com/andrewbolster/openapi2callables/retry"
	"github.com/andrewbolster/openapi2callables/types"
)

// Invoke calls the remote operation with the configured client.
func (t *APITool) Invoke(ctx context.Context, args map[string]any) (any, error) {
	return t.Call(ctx, t.client, args)
}

// Call builds the request from args, resolves auth, executes with retry
// and normalizes the result. Data errors (missing or mistyped arguments)
// return as Go errors; credential, transport and upstream failures return
// as error descriptor maps.
func (t *APITool) Call(ctx context.Context, client HTTPClient, args map[string]any) (any, error) {
	start := time.Now()
	t.logger.Info("invoking tool", zap.Int("args", len(args)))

	prepared, err := t.PrepareRequestData(args)
	if err != nil {
		t.observe("invalid_args", start)
		return nil, err
	}

	if t.RequiresAuth() && t.accessTokenName != "" {
		token, err := t.resolveAccessToken(args)
		if err != nil {
			t.logger.Warn("could not resolve access token", zap.Error(err))
			t.observe("missing_credential", start)
			return map[string]any{"error": true, "message": err.Error()}, nil
		}
		t.placeToken(prepared, token)
	}

	if client == nil {
		client = t.client
	}
	client = t.redirectPolicy(client)

	retryer := retry.NewBackoffRetryer(&retry.Policy{
		MaxRetries:   t.retryCount,
		InitialDelay: t.retryBackoff,
		Multiplier:   2.0,
		OnRetry: func(int, error, time.Duration) {
			if t.observer != nil {
				t.observer.Retry(t.operationID)
			}
		},
	}, t.logger)

	result, err := retryer.DoWithResult(ctx, func() (any, error) {
		return t.attempt(ctx, client, prepared)
	})
	if err != nil {
		t.observe("transport_error", start)
		return map[string]any{"error": true, "message": err.Error()}, nil
	}

	resp := result.(*http.Response)
	out := t.HandleResponse(resp)
	if descriptor, ok := out.(map[string]any); ok && descriptor["error"] == true {
		t.observe("upstream_error", start)
	} else {
		t.observe("success", start)
	}
	return out, nil
}

// attempt performs one HTTP attempt with the per-attempt timeout. The
// response body is drained before the attempt context is released so the
// caller can still read it.
func (t *APITool) attempt(ctx context.Context, client HTTPClient, prepared *PreparedRequest) (*http.Response, error) {
	attemptCtx := ctx
	var cancel context.CancelFunc
	if t.timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req, err := t.buildRequest(attemptCtx, prepared)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, types.NewError(types.ErrTransportFailure, "request failed").
			WithCause(err).WithRetryable(true)
	}

	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, types.NewError(types.ErrTransportFailure, "failed to read response").
			WithCause(err).WithRetryable(true)
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}

// placeToken injects the resolved credential per the token placement:
// header becomes an Authorization bearer, query and cookie place the
// token under its parameter name. Virtual placement defaults to bearer.
func (t *APITool) placeToken(prepared *PreparedRequest, token string) {
	switch t.accessTokenType {
	case openapi.InQuery:
		prepared.Query[t.accessTokenName] = token
	case openapi.InCookie:
		prepared.Cookies[t.accessTokenName] = token
	default:
		prepared.Headers["Authorization"] = "Bearer " + token
	}
}

// redirectPolicy applies the follow-redirects setting when the client is
// recognizable as the standard HTTP client. Injected capabilities manage
// their own redirect behavior.
func (t *APITool) redirectPolicy(client HTTPClient) HTTPClient {
	if t.followRedirects {
		return client
	}
	hc, ok := client.(*http.Client)
	if !ok {
		return client
	}
	clone := *hc
	clone.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &clone
}

func (t *APITool) buildRequest(ctx context.Context, prepared *PreparedRequest) (*http.Request, error) {
	headers := make(map[string]string, len(prepared.Headers))
	for name, value := range prepared.Headers {
		headers[name] = value
	}

	var body io.Reader
	switch {
	case len(prepared.Files) > 0:
		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)
		for _, name := range sortedKeys(prepared.Fields) {
			if err := writer.WriteField(name, prepared.Fields[name]); err != nil {
				return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
			}
		}
		for _, name := range sortedFileKeys(prepared.Files) {
			file := prepared.Files[name]
			filename := file.Filename
			if filename == "" {
				filename = name
			}
			part, err := writer.CreateFormFile(name, filename)
			if err != nil {
				return nil, fmt.Errorf("failed to create file part %s: %w", name, err)
			}
			if file.Content != nil {
				if _, err := io.Copy(part, file.Content); err != nil {
					return nil, fmt.Errorf("failed to write file part %s: %w", name, err)
				}
			}
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}
		body = buf
		headers["Content-Type"] = writer.FormDataContentType()
	case len(prepared.Fields) > 0:
		form := url.Values{}
		for name, value := range prepared.Fields {
			form.Set(name, value)
		}
		body = strings.NewReader(form.Encode())
		headers["Content-Type"] = "application/x-www-form-urlencoded"
	case len(prepared.Body) > 0:
		encoded, err := json.Marshal(prepared.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		if _, seeded := headers["Content-Type"]; !seeded {
			headers["Content-Type"] = "application/json"
		}
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(t.method), t.baseURL+prepared.Path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if len(prepared.Query) > 0 {
		query := req.URL.Query()
		for name, value := range prepared.Query {
			query.Set(name, value)
		}
		req.URL.RawQuery = query.Encode()
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	for _, name := range sortedKeys(prepared.Cookies) {
		req.AddCookie(&http.Cookie{Name: name, Value: prepared.Cookies[name]})
	}
	return req, nil
}

func (t *APITool) observe(outcome string, start time.Time) {
	if t.observer == nil {
		return
	}
	t.observer.Invocation(t.operationID, outcome, time.Since(start))
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedFileKeys(m map[string]FormFile) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
