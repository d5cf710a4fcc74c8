package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithFrontendURL(url string) Option {
	return func(d *EmailData) { d.FrontendURL = strings.TrimRight(url, "/") }
}

// NewWelcomeData builds the payload for the post-signup greeting.
func NewWelcomeData(appName, name, email string, opts ...Option) map[string]any {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           Welcome,
		AppName:        appName,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return ToMap(d)
}
