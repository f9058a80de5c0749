package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid matches any validation failure returned by Load.
var ErrInvalid = errors.New("invalid config")

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string // e.g. "messaging.contact"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Is makes errors.Is(err, ErrInvalid) true.
func (e ValidationErrors) Is(target error) bool { return target == ErrInvalid }

// Validate returns every invalid setting, or nil.
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors
	add := func(field string, value any, msg string) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: msg})
	}

	if strings.TrimSpace(c.School.Name) == "" {
		add("school.name", c.School.Name, "must not be empty")
	}
	if strings.TrimSpace(c.Messaging.Domain) == "" || strings.ContainsAny(c.Messaging.Domain, "/ ") {
		add("messaging.domain", c.Messaging.Domain, "must be a bare host name")
	}
	if c.Messaging.Contact == "" || strings.Trim(c.Messaging.Contact, "0123456789") != "" {
		add("messaging.contact", c.Messaging.Contact, "must be digits only")
	}
	if c.Flow.AutoAdvanceMs < 0 || c.Flow.AutoAdvanceMs > 5000 {
		add("flow.auto_advance_ms", c.Flow.AutoAdvanceMs, "must be between 0 and 5000")
	}
	if c.Flow.KidsAdvisoryAge < 1 || c.Flow.KidsAdvisoryAge > 18 {
		add("flow.kids_advisory_age", c.Flow.KidsAdvisoryAge, "must be between 1 and 18")
	}
	for _, p := range []struct {
		field string
		price int
	}{
		{"prices.group", c.Prices.Group},
		{"prices.individual", c.Prices.Individual},
		{"prices.kids", c.Prices.Kids},
	} {
		if p.price < 0 {
			add(p.field, p.price, "must not be negative")
		}
	}
	if c.Log.Enabled && strings.TrimSpace(c.Log.Dir) == "" {
		add("log.dir", c.Log.Dir, "required when log.enabled is set")
	}
	if c.Telegram.SessionTTLMinutes <= 0 {
		add("telegram.session_ttl_minutes", c.Telegram.SessionTTLMinutes, "must be positive")
	}
	return errs
}
