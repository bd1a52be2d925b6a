package log

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failWriter struct {
	err error
}

func (w *failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

type countingCloser struct {
	closed int
	err    error
}

func (c *countingCloser) Close() error {
	c.closed++
	return c.err
}

func newTestHook() (*hook, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	main, critical, verbose := &bytes.Buffer{}, &bytes.Buffer{}, &bytes.Buffer{}
	return &hook{
		mainWriter:     main,
		criticalWriter: critical,
		verboseWriter:  verbose,
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}, main, critical, verbose
}

func fire(t *testing.T, h *hook, level Level, msg string) error {
	t.Helper()
	return h.Fire(&Entry{Logger: logrus.New(), Level: level, Message: msg, Data: Fields{}})
}

func TestHook_Routing(t *testing.T) {
	tests := []struct {
		name         string
		level        Level
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{"Error", ErrorLevel, true, true, false},
		{"Warn", WarnLevel, true, false, false},
		{"Info", InfoLevel, true, false, false},
		{"Debug", DebugLevel, false, false, true},
		{"Trace", TraceLevel, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, main, critical, verbose := newTestHook()

			require.NoError(t, fire(t, h, tt.level, "routed"))

			assert.Equal(t, tt.wantMain, main.Len() > 0)
			assert.Equal(t, tt.wantCritical, critical.Len() > 0)
			assert.Equal(t, tt.wantVerbose, verbose.Len() > 0)
		})
	}
}

func TestHook_WriteFailureStillWritesMain(t *testing.T) {
	h, main, _, _ := newTestHook()
	writeErr := errors.New("disk full")
	h.criticalWriter = &failWriter{err: writeErr}

	err := fire(t, h, ErrorLevel, "critical failure")

	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, main.String(), "critical failure")
}

func TestHook_ClosedIgnoresEntries(t *testing.T) {
	h, main, _, _ := newTestHook()
	require.NoError(t, h.Close())

	require.NoError(t, fire(t, h, InfoLevel, "after close"))
	assert.Zero(t, main.Len())
}

func TestCloser_Idempotent(t *testing.T) {
	h, _, _, _ := newTestHook()
	first := &countingCloser{}
	second := &countingCloser{err: errors.New("close failed")}

	c := &closer{closers: []io.Closer{first, second}, hook: h}

	err := c.Close()
	assert.EqualError(t, err, "close failed")
	assert.True(t, h.closed)

	assert.NoError(t, c.Close())
	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, second.closed)
}
