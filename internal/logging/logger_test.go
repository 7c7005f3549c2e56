package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{FormatText, "msg=hello"},
		{FormatJSON, `"msg":"hello"`},
		{FormatZap, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := New(tt.format, "info", &buf)
			require.NoError(t, err)

			log.Info(context.Background(), "hello", "k", "v")
			log.Debug(context.Background(), "hidden")

			out := buf.String()
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "hidden")
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("xml", "info", &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(FormatText, "loud", &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(FormatZap, "loud", &bytes.Buffer{})
	require.Error(t, err)
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop()
	log.With("a", 1).Error(context.Background(), "discarded")
}
