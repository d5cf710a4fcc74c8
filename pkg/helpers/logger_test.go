package helpers

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLogError_AddsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	LogError(logger, "insert failed", errors.New("boom"), logrus.Fields{"email": "a@b.c"})

	out := buf.String()
	assert.Contains(t, out, `"msg":"insert failed"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"email":"a@b.c"`)
}

func TestLogHelpers_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", errors.New("y"), nil)
		LogInfo(nil, "x", nil)
	})
}

func TestNewLogger_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("shop", "development", "").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("shop", "production", "").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("shop", "production", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("shop", "production", "loud").GetLevel())

	_, isJSON := NewLogger("shop", "production", "").Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}
