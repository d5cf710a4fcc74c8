package helpers

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid data uri")

// DataURI is a decoded RFC 2397 "data:" URL.
type DataURI struct {
	ContentType string
	Data        []byte
}

var imageExt = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// IsDataURI reports whether s carries inline content rather than a link.
func IsDataURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

// ParseDataURI decodes data:[<mediatype>][;base64],<data>.
func ParseDataURI(s string) (*DataURI, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return nil, ErrInvalidDataURI
	}

	isBase64 := false
	contentType := "text/plain"
	for i, part := range strings.Split(meta, ";") {
		switch {
		case i == 0 && part != "":
			contentType = strings.ToLower(part)
		case part == "base64":
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, ErrInvalidDataURI
		}
		data = b
	} else {
		raw, err := url.PathUnescape(payload)
		if err != nil {
			return nil, ErrInvalidDataURI
		}
		data = []byte(raw)
	}
	return &DataURI{ContentType: contentType, Data: data}, nil
}

// Ext returns a file extension for known image types, or ".bin".
func (d *DataURI) Ext() string {
	if ext, ok := imageExt[d.ContentType]; ok {
		return ext
	}
	return ".bin"
}
