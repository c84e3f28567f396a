package logger_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignatzorin/jobmarket-backend/internal/logger"
)

func TestFromContext_AddsRequestID(t *testing.T) {
	logger.Init("debug")
	var buf bytes.Buffer
	logger.Log.SetOutput(&buf)

	ctx := logger.WithRequestID(context.Background(), "req-1")
	logger.FromContext(ctx).Info("hello")

	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Equal(t, "req-1", logger.RequestID(ctx))
	assert.Empty(t, logger.RequestID(context.Background()))
}
