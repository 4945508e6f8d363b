package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/codesurface/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{" error ", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logging.ParseLevel(tt.level))
			assert.Equal(t, tt.want, logging.New(tt.level).GetLevel())
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")
	logger.Debug("built tree", logging.FieldName, "Foo", logging.FieldDetached, 2)

	out := buf.String()
	assert.Contains(t, out, "built tree")
	assert.Contains(t, out, "name=Foo")
	assert.Contains(t, out, "detached=2")
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	require.NotNil(t, logger)
	logger.Error("dropped")
}

func TestSetDefaultAndLevel(t *testing.T) {
	// Not parallel: mutates the process-wide logger.
	original := logging.Default()
	defer logging.SetDefault(original)

	replacement := logging.New("info")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))
}
