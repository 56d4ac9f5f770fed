// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/andrewbolster/openapi2callables/types"
)

// specFormat is the wire format of a spec source.
type specFormat string

const (
	formatJSON    specFormat = "json"
	formatYAML    specFormat = "yaml"
	formatUnknown specFormat = ""
)

// Loader loads OpenAPI documents from URLs or local files, selecting the
// wire format by extension or content-type. Loaded documents are cached
// per source.
type Loader struct {
	httpClient *http.Client
	logger     *zap.Logger
	observer   Observer
	cache      map[string]*Document
	mu         sync.RWMutex
}

// LoaderConfig configures the loader.
type LoaderConfig struct {
	Timeout time.Duration
	// Observer, when set, is told about every fresh (non-cached) load.
	Observer Observer
}

// NewLoader creates a spec loader.
func NewLoader(config LoaderConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(zap.String("component", "spec_loader")),
		observer:   config.Observer,
		cache:      make(map[string]*Document),
	}
}

// Load loads an OpenAPI document from a URL or file path.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	l.mu.RLock()
	if doc, ok := l.cache[source]; ok {
		l.mu.RUnlock()
		return doc, nil
	}
	l.mu.RUnlock()

	var data []byte
	var err error
	format := formatFromExtension(source)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		var contentType string
		data, contentType, err = l.fetchFromURL(ctx, source)
		if err != nil {
			return nil, err
		}
		if format == formatUnknown {
			format = formatFromContentType(contentType)
		}
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, types.NewError(types.ErrFetch, fmt.Sprintf("failed to read spec file %s", source)).WithCause(err)
		}
	}

	if format == formatUnknown {
		return nil, types.NewError(types.ErrUnsupportedFormat,
			fmt.Sprintf("unsupported spec format for %s, must be .yaml or .json", source))
	}

	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[source] = doc
	l.mu.Unlock()

	if l.observer != nil {
		l.observer.SpecLoaded(string(format))
	}
	l.logger.Info("loaded OpenAPI spec",
		zap.String("source", source),
		zap.String("title", doc.Info.Title),
		zap.String("version", doc.Info.Version),
		zap.Int("paths", len(doc.Paths)),
	)
	return doc, nil
}

func (l *Loader) fetchFromURL(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", types.NewError(types.ErrFetch, "failed to build spec request").WithCause(err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, "", types.NewError(types.ErrFetch, fmt.Sprintf("failed to fetch spec from %s", url)).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", types.NewError(types.ErrFetch, fmt.Sprintf("HTTP %d fetching spec from %s", resp.StatusCode, url)).
			WithHTTPStatus(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", types.NewError(types.ErrFetch, "failed to read spec response").WithCause(err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func decodeDocument(data []byte, format specFormat) (*Document, error) {
	var doc Document
	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON spec: %w", err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML spec: %w", err)
		}
	default:
		return nil, types.NewError(types.ErrUnsupportedFormat, "unsupported spec format")
	}
	return &doc, nil
}

func formatFromExtension(source string) specFormat {
	trimmed := source
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	switch {
	case strings.HasSuffix(trimmed, ".json"):
		return formatJSON
	case strings.HasSuffix(trimmed, ".yaml"), strings.HasSuffix(trimmed, ".yml"):
		return formatYAML
	}
	return formatUnknown
}

func formatFromContentType(contentType string) specFormat {
	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "json"):
		return formatJSON
	case strings.Contains(contentType, "yaml"), strings.Contains(contentType, "yml"):
		return formatYAML
	}
	return formatUnknown
}
