package httpclient

import (
	"encoding/json"
	nethttp "net/http"
	"strconv"
	"strings"
)

// GeneralField is the synthetic field name used when a 422 response carries
// no per-field breakdown.
const GeneralField = "_general"

type classificationKind int

const (
	kindNetwork classificationKind = iota
	kindAPI
	kindValidation
	kindRateLimit
)

// classification is the typed outcome of a failed attempt. Exactly one kind
// is populated and instances are never mutated after creation; the retry
// policy and the error mapping both consume it read-only.
type classification struct {
	kind        classificationKind
	statusCode  int
	message     string
	fieldErrors map[string][]string
	retryAfter  int
	cause       error
}

// classifier maps a completed response or a transport failure to a
// classification. It is a pure function of its inputs; logging happens at
// the pipeline boundary.
type classifier struct {
	// apiErrorPrefix is prepended to every API-originated error message.
	apiErrorPrefix string
}

func (c *classifier) classify(resp *Response, err error) classification {
	if err != nil || resp == nil {
		msg := "no response received"
		if err != nil {
			msg = err.Error()
		}
		return classification{kind: kindNetwork, message: msg, cause: err}
	}

	switch resp.StatusCode {
	case nethttp.StatusUnprocessableEntity:
		return classification{
			kind:        kindValidation,
			statusCode:  resp.StatusCode,
			message:     extractMessage(resp.Body, resp.StatusCode),
			fieldErrors: extractFieldErrors(resp.Body),
		}
	case nethttp.StatusTooManyRequests:
		return classification{
			kind:       kindRateLimit,
			statusCode: resp.StatusCode,
			message:    extractMessage(resp.Body, resp.StatusCode),
			retryAfter: parseRetryAfter(resp.Headers),
		}
	default:
		return classification{
			kind:       kindAPI,
			statusCode: resp.StatusCode,
			message:    c.apiErrorPrefix + extractMessage(resp.Body, resp.StatusCode),
		}
	}
}

// toError maps the classification to the typed error raised on exhaustion.
func (cl classification) toError() ClientError {
	switch cl.kind {
	case kindValidation:
		return NewValidationError(cl.message, cl.fieldErrors)
	case kindRateLimit:
		return NewRateLimitError(cl.message, cl.retryAfter)
	case kindAPI:
		return NewAPIError(cl.message, cl.statusCode, nil)
	default:
		return NewNetworkError(cl.message, cl.cause)
	}
}

// extractMessage pulls a human-readable message from the upstream JSON error
// envelope ({success, message, code?} or {error}), falling back to the
// status line when the body is empty or unparsable.
func extractMessage(body []byte, statusCode int) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if len(body) > 0 && json.Unmarshal(body, &envelope) == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return "HTTP " + strconv.Itoa(statusCode)
}

// fieldErrorMatcher probes one known 422 body shape and reports whether it
// matched. Matchers run in a documented order; the first match wins.
type fieldErrorMatcher func(body map[string]any) (map[string][]string, bool)

var fieldErrorMatchers = []fieldErrorMatcher{
	matchFieldMap("errors"),
	matchFieldMap("validation_errors"),
	matchValidationMessage,
}

// extractFieldErrors maps a 422 body to per-field message lists. When no
// shape matches (or the body is missing/unparsable), a single _general
// entry is synthesized so validation failures always carry field context.
func extractFieldErrors(body []byte) map[string][]string {
	var parsed map[string]any
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		for _, match := range fieldErrorMatchers {
			if fields, ok := match(parsed); ok {
				return fields
			}
		}
	}
	fallback := extractMessage(body, nethttp.StatusUnprocessableEntity)
	return map[string][]string{GeneralField: {"Validation failed: " + fallback}}
}

// matchFieldMap matches the Laravel-style {key: {field: [msgs]}} shape.
func matchFieldMap(key string) fieldErrorMatcher {
	return func(body map[string]any) (map[string][]string, bool) {
		raw, ok := body[key].(map[string]any)
		if !ok || len(raw) == 0 {
			return nil, false
		}
		fields := make(map[string][]string, len(raw))
		for field, value := range raw {
			switch v := value.(type) {
			case []any:
				msgs := make([]string, 0, len(v))
				for _, item := range v {
					if s, ok := item.(string); ok {
						msgs = append(msgs, s)
					}
				}
				if len(msgs) > 0 {
					fields[field] = msgs
				}
			case string:
				fields[field] = []string{v}
			}
		}
		if len(fields) == 0 {
			return nil, false
		}
		return fields, true
	}
}

// matchValidationMessage matches bodies whose message mentions validation
// without a per-field breakdown.
func matchValidationMessage(body map[string]any) (map[string][]string, bool) {
	msg, ok := body["message"].(string)
	if !ok || !strings.Contains(strings.ToLower(msg), "validation") {
		return nil, false
	}
	return map[string][]string{GeneralField: {msg}}, true
}

// parseRetryAfter reads the Retry-After header as integer seconds. Absent or
// malformed values yield 0, leaving the default backoff decision to the
// retry policy.
func parseRetryAfter(headers nethttp.Header) int {
	raw := headers.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
