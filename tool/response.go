// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package tool

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// HandleResponse normalizes an HTTP response. A status >= 400 becomes an
// error descriptor {error, status_code, message, data?}; success returns
// the decoded JSON body when parseable, plain text for text/plain, a
// {content_type, data} wrapper for text/html, and raw text otherwise.
func (t *APITool) HandleResponse(resp *http.Response) any {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.logger.Error("failed to read response body", zap.Error(err))
		data = nil
	}
	resp.Body.Close()
	text := string(data)

	if resp.StatusCode >= 400 {
		descriptor := map[string]any{
			"error":       true,
			"status_code": resp.StatusCode,
			"message":     text,
		}
		var parsed map[string]any
		if json.Unmarshal(data, &parsed) == nil && parsed != nil {
			if message, ok := parsed["message"].(string); ok {
				descriptor["message"] = message
			} else if message, ok := parsed["error"].(string); ok {
				descriptor["message"] = message
			}
			descriptor["data"] = parsed
		}
		return descriptor
	}

	var decoded any
	if len(data) > 0 && json.Unmarshal(data, &decoded) == nil {
		return decoded
	}

	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "text/plain"):
		return text
	case strings.HasPrefix(contentType, "text/html"):
		return map[string]any{"content_type": contentType, "data": text}
	}
	return text
}
