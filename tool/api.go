// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package tool

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/andrewbolster/openapi2callables/openapi"
	"github.com/andrewbolster/openapi2callables/types"
)

// TagAPI marks remote HTTP tools.
const TagAPI = "API"

// tokenDescriptionSuffix tells a downstream consumer never to prompt an
// end user for an injected credential parameter.
const tokenDescriptionSuffix = " (provided by the tool runner at execution time, NEVER ask a user for this!)"

// authIndicators are the substrings that mark a header or cookie
// parameter as auth-bearing.
var authIndicators = []string{"api_key", "token", "auth", "key", "secret"}

// HTTPClient is the injected transport capability. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer receives invocation telemetry. The internal metrics collector
// implements it.
type Observer interface {
	Invocation(operationID, outcome string, duration time.Duration)
	Retry(operationID string)
}

// APITool executes a remote API operation as a callable.
type APITool struct {
	base

	baseURL     string
	path        string
	method      string
	serviceName string

	accessTokenName string
	accessTokenType openapi.ParamLocation
	accessToken     string

	timeout         time.Duration
	retryCount      int
	retryBackoff    time.Duration
	followRedirects bool

	contentType     string
	accept          string
	securitySchemes map[string]openapi.SecurityScheme
	cookies         map[string]string

	client   HTTPClient
	observer Observer
	logger   *zap.Logger
}

// APIToolConfig configures an APITool. Zero values get sensible defaults:
// method get, 30s timeout, 1s retry backoff, redirects followed.
type APIToolConfig struct {
	OperationID string
	Summary     string
	Description string
	Parameters  map[string]*openapi.Param
	Responses   map[string]openapi.Response
	Tags        []string

	BaseURL     string
	Path        string
	Method      string
	ServiceName string

	// AccessTokenName names the credential parameter; AccessTokenType is
	// its placement (header, query, cookie; virtual when empty).
	// AccessToken pre-supplies a static credential.
	AccessTokenName string
	AccessTokenType openapi.ParamLocation
	AccessToken     string

	Timeout         time.Duration
	RetryCount      int
	RetryBackoff    time.Duration
	FollowRedirects *bool

	ContentType     string
	Accept          string
	SecuritySchemes map[string]openapi.SecurityScheme
	Cookies         map[string]string

	Client   HTTPClient
	Observer Observer
	Logger   *zap.Logger
}

// NewAPITool creates an APITool. When an access token name is configured
// and not already declared, a virtual credential parameter is injected
// into the parameter map; its description carries an instruction suffix
// appended at most once.
func NewAPITool(config APIToolConfig) *APITool {
	method := strings.ToLower(config.Method)
	if method == "" {
		method = "get"
	}
	serviceName := config.ServiceName
	if serviceName == "" {
		serviceName = "APITool"
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	retryBackoff := config.RetryBackoff
	if retryBackoff == 0 {
		retryBackoff = 1 * time.Second
	}
	followRedirects := true
	if config.FollowRedirects != nil {
		followRedirects = *config.FollowRedirects
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := config.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	// Parameters are copied so token injection never mutates the parsed
	// descriptor map shared with other tools.
	params := make(map[string]*openapi.Param, len(config.Parameters)+1)
	for name, param := range config.Parameters {
		params[name] = param
	}

	t := &APITool{
		base: newBase(config.OperationID, config.Summary, config.Description,
			params, config.Responses, config.Tags),
		baseURL:         strings.TrimRight(config.BaseURL, "/"),
		path:            config.Path,
		method:          method,
		serviceName:     serviceName,
		accessTokenName: config.AccessTokenName,
		accessTokenType: config.AccessTokenType,
		accessToken:     config.AccessToken,
		timeout:         timeout,
		retryCount:      config.RetryCount,
		retryBackoff:    retryBackoff,
		followRedirects: followRedirects,
		contentType:     config.ContentType,
		accept:          config.Accept,
		securitySchemes: config.SecuritySchemes,
		cookies:         config.Cookies,
		client:          client,
		observer:        config.Observer,
		logger:          logger.With(zap.String("operation_id", config.OperationID)),
	}
	t.tags[TagAPI] = struct{}{}
	t.injectTokenParameter()
	return t
}

// injectTokenParameter adds the virtual credential parameter and its
// instruction suffix. Idempotent.
func (t *APITool) injectTokenParameter() {
	if t.accessTokenName == "" {
		return
	}
	if t.accessTokenType == "" {
		t.accessTokenType = openapi.InVirtual
	}
	if _, exists := t.parameters[t.accessTokenName]; !exists {
		t.parameters[t.accessTokenName] = &openapi.Param{
			In:          t.accessTokenType,
			Type:        openapi.Primitive("str"),
			Required:    t.accessToken != "",
			Description: fmt.Sprintf("The API token for the %s API", t.serviceName),
		}
	}
	param := t.parameters[t.accessTokenName]
	if !strings.HasSuffix(param.Description, tokenDescriptionSuffix) {
		suffixed := *param
		suffixed.Description += tokenDescriptionSuffix
		t.parameters[t.accessTokenName] = &suffixed
	}
}

// BaseURL returns the configured base URL.
func (t *APITool) BaseURL() string { return t.baseURL }

// Path returns the URL template with {param} placeholders.
func (t *APITool) Path() string { return t.path }

// Method returns the lowercase HTTP verb.
func (t *APITool) Method() string { return t.method }

// ServiceName returns the service the tool belongs to.
func (t *APITool) ServiceName() string { return t.serviceName }

// RequiresAuth reports whether the operation needs a credential: an access
// token is configured, security schemes are declared, or a header/cookie
// parameter name contains an auth-indicating substring.
func (t *APITool) RequiresAuth() bool {
	if t.accessTokenName != "" {
		return true
	}
	if len(t.securitySchemes) > 0 {
		return true
	}
	for name, param := range t.parameters {
		if param.In != openapi.InHeader && param.In != openapi.InCookie {
			continue
		}
		lower := strings.ToLower(name)
		for _, indicator := range authIndicators {
			if strings.Contains(lower, indicator) {
				return true
			}
		}
	}
	return false
}

// resolveAccessToken picks the credential for a call: a runtime value for
// the token parameter (consumed from args) wins over the static token;
// with neither, the call cannot proceed.
func (t *APITool) resolveAccessToken(args map[string]any) (string, error) {
	if value, ok := args[t.accessTokenName]; ok && value != nil {
		t.logger.Debug("using access token from call arguments")
		delete(args, t.accessTokenName)
		return fmt.Sprint(value), nil
	}
	if t.accessToken != "" {
		t.logger.Debug("using statically configured access token")
		return t.accessToken, nil
	}
	return "", types.NewError(types.ErrMissingCredential,
		fmt.Sprintf("no %s API key found; cannot make request", t.serviceName)).
		WithService(t.serviceName)
}
