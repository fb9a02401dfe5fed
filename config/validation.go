package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints (tag-driven ranges) and semantic
// rules the tags cannot express. The first failed check is returned.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("invalid configuration: %s", describeFieldErrors(fieldErrs))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := validateCredentials(&cfg.API); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	if err := validateProxy(&cfg.HTTP); err != nil {
		return fmt.Errorf("http config: %w", err)
	}

	return nil
}

func validateCredentials(cfg *APIConfig) error {
	if cfg.Token != "" && (cfg.ClientID != "" || cfg.ClientSecret != "") {
		return fmt.Errorf("static token and client credentials are mutually exclusive")
	}

	if (cfg.ClientID == "") != (cfg.ClientSecret == "") {
		return fmt.Errorf("client_id and client_secret must be provided together")
	}

	return nil
}

func validateProxy(cfg *HTTPConfig) error {
	if cfg.ProxyAuth != "" && cfg.ProxyURL == "" {
		return fmt.Errorf("proxy_auth requires proxy_url")
	}

	if cfg.ProxyAuth != "" && !strings.Contains(cfg.ProxyAuth, ":") {
		return fmt.Errorf("proxy_auth must be in user:pass form")
	}

	return nil
}

func describeFieldErrors(fieldErrs validator.ValidationErrors) string {
	descriptions := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		descriptions = append(descriptions, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return strings.Join(descriptions, "; ")
}
