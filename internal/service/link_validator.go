package service

import (
	"net/url"
	"strings"

	"checkwise/internal/errors"
	"checkwise/internal/model"
)

// LinkValidator validates product submissions before the pipeline runs.
type LinkValidator struct{}

// NewLinkValidator creates a new link validator.
func NewLinkValidator() *LinkValidator {
	return &LinkValidator{}
}

// ValidateProductLink checks that the product URL is a well-formed absolute
// http(s) URL and that the platform tag is non-empty. The platform is an open
// set: unknown tags are accepted and treated as "other" by the UI.
func (v *LinkValidator) ValidateProductLink(rawURL, platform string) error {
	if strings.TrimSpace(platform) == "" {
		return errors.ErrInvalidInput
	}

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return errors.ErrInvalidInput
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ErrInvalidInput
	}

	return nil
}

// GuessPlatform maps a product URL host to a known platform tag, falling back
// to "other". Used for display hints only; it never overrides the submitted
// tag.
func (v *LinkValidator) GuessPlatform(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return model.PlatformOther
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "amazon."):
		return model.PlatformAmazon
	case strings.Contains(host, "temu."):
		return model.PlatformTemu
	case strings.Contains(host, "tiktok."):
		return model.PlatformTikTok
	case strings.Contains(host, "aliexpress."):
		return model.PlatformAliExpress
	default:
		return model.PlatformOther
	}
}
