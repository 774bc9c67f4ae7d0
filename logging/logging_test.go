package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, WarnLevel)

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("shown", Fields{"frames": 3})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown frames=3")
}

func TestDefaultLoggerFieldsAreSortedAndMerged(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, DebugLevel).WithFields(Fields{"b": 2})

	l.Info("msg", Fields{"a": 1})
	assert.Equal(t, "[INFO] msg a=1 b=2\n", buf.String())
}

func TestDefaultLoggerError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, DebugLevel)

	l.Error(errors.New("boom"), "analysis failed")
	assert.Equal(t, "[ERROR] analysis failed: boom\n", buf.String())
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, DebugLevel)

	ctx := ContextWithFields(context.Background(), Fields{"request": "abc"})
	l.WithContext(ctx).Info("hello")
	assert.Equal(t, "[INFO] hello request=abc\n", buf.String())

	buf.Reset()
	l.WithContext(context.Background()).Info("plain")
	assert.Equal(t, "[INFO] plain\n", buf.String())
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	_, ok := GetGlobalLogger().(*NoOpLogger)
	assert.True(t, ok)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
