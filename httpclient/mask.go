package httpclient

import (
	"encoding/json"
	"strings"
)

// MaskValue replaces sensitive values in diagnostic output.
const MaskValue = "***"

// maskedHeaderNames lists header names whose values are redacted wholesale,
// matched case-insensitively.
var maskedHeaderNames = map[string]struct{}{
	"authorization": {},
	"x-api-key":     {},
	"cookie":        {},
	"set-cookie":    {},
}

// maskedBodyFields lists top-level JSON object keys whose values are redacted.
var maskedBodyFields = []string{
	"password",
	"token",
	"api_key",
	"secret",
	"private_key",
}

// MaskHeaders returns a copy of headers with sensitive values replaced by
// MaskValue. The input map is never mutated. Masking is idempotent.
func MaskHeaders(headers map[string]string) map[string]string {
	masked := make(map[string]string, len(headers))
	for name, value := range headers {
		if _, sensitive := maskedHeaderNames[strings.ToLower(name)]; sensitive {
			masked[name] = MaskValue
			continue
		}
		masked[name] = value
	}
	return masked
}

// MaskBody redacts sensitive top-level fields from a JSON object body and
// re-serializes it. Bodies that are not valid JSON objects are returned
// unchanged; no masking is applied to opaque text.
func MaskBody(body []byte) []byte {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return body
	}
	for _, field := range maskedBodyFields {
		if _, present := parsed[field]; present {
			parsed[field] = MaskValue
		}
	}
	masked, err := json.Marshal(parsed)
	if err != nil {
		return body
	}
	return masked
}
