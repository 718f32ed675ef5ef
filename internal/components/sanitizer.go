package components

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-newsroom/pkg/interfaces"
)

var (
	// Attributes are consumed whole, values included, so only attribute
	// names can match the on* handler prefix.
	eventAttributePattern = regexp.MustCompile(`(?i)<[a-z][^\s/>]*(?:[\s/]+[^\s"'>/=]+(?:\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'>]+))?)*[\s/]+on[a-z]+\s*=`)
	embedSourcePattern    = regexp.MustCompile(`(?i)<(?:iframe|embed)\b[^>]*\ssrc\s*=\s*"([^"]*)"`)
)

// Sanitizer is a conservative checker that rejects inline scripts, event
// handler attributes, and embeds pointing outside http(s).
type Sanitizer struct {
	allowedSchemes map[string]struct{}
}

// NewSanitizer returns a sanitizer allowing http, https, and relative URLs.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		allowedSchemes: map[string]struct{}{
			"http":  {},
			"https": {},
			"":      {},
		},
	}
}

// Sanitize returns html unchanged when it passes every check.
func (s *Sanitizer) Sanitize(html string) (string, error) {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "<script") {
		return "", fmt.Errorf("%w: script tags are not allowed", ErrUnsafeMarkup)
	}
	if eventAttributePattern.MatchString(html) {
		return "", fmt.Errorf("%w: event handler attributes are not allowed", ErrUnsafeMarkup)
	}
	for _, match := range embedSourcePattern.FindAllStringSubmatch(html, -1) {
		if err := s.ValidateURL(unescapeAttribute(match[1])); err != nil {
			return "", err
		}
	}
	return html, nil
}

// ValidateURL ensures the URL has an allowed scheme.
func (s *Sanitizer) ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafeMarkup, err)
	}

	if _, ok := s.allowedSchemes[strings.ToLower(parsed.Scheme)]; !ok {
		return fmt.Errorf("%w: url scheme %q not permitted", ErrUnsafeMarkup, parsed.Scheme)
	}
	return nil
}

// ValidateAttributes rejects inline event handlers like onload/onerror.
func (s *Sanitizer) ValidateAttributes(attrs map[string]any) error {
	for key := range attrs {
		lower := strings.ToLower(key)
		if strings.HasPrefix(lower, "on") {
			return fmt.Errorf("%w: attribute %q not permitted", ErrUnsafeMarkup, key)
		}
	}
	return nil
}

func unescapeAttribute(value string) string {
	return strings.NewReplacer("&amp;", "&", "&#43;", "+", "&#34;", `"`, "&#39;", "'").Replace(value)
}

var _ interfaces.ComponentSanitizer = (*Sanitizer)(nil)
