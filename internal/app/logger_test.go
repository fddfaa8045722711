package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_FormatSelection(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		newLogger("info", "json", buf).Info("hello")
		assert.True(t, strings.HasPrefix(buf.String(), "{"), "json handler emits objects")
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		newLogger("info", "text", buf).Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger("warn", "text", buf)

	logger.Debug("quiet")
	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewLogger_UnknownValuesFallBack(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newLogger("shouting", "xml", buf)

	logger.Debug("filtered at the info default")
	logger.Info("visible")

	out := buf.String()
	assert.NotContains(t, out, "filtered")
	assert.Contains(t, out, "msg=visible", "unknown format falls back to text")
}
