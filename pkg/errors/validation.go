package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// maxURLLength bounds document URLs accepted by the fetcher and the server.
const maxURLLength = 2048

// ValidateDocumentURL checks that raw is an absolute http or https URL with a
// host. It rejects control characters and overlong input before any network
// access happens.
func ValidateDocumentURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, New(ErrCodeInvalidURL, "document URL cannot be empty")
	}
	if len(raw) > maxURLLength {
		return nil, New(ErrCodeInvalidURL, "document URL too long (max %d characters)", maxURLLength)
	}
	for _, r := range raw {
		if unicode.IsControl(r) {
			return nil, New(ErrCodeInvalidURL, "document URL contains invalid control characters")
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, Wrap(ErrCodeInvalidURL, err, "cannot parse document URL")
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, New(ErrCodeInvalidURL, "unsupported URL scheme %q (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return nil, New(ErrCodeInvalidURL, "document URL has no host")
	}
	return u, nil
}

// ValidateFormat checks that format names one of the known renderings.
func ValidateFormat(format string, valid []string) error {
	for _, v := range valid {
		if format == v {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(valid, ", "))
}
