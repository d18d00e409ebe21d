package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want slog.Level
	}{
		{name: "debug", in: "debug", want: slog.LevelDebug},
		{name: "upper case warn", in: "WARN", want: slog.LevelWarn},
		{name: "warning", in: " warning ", want: slog.LevelWarn},
		{name: "error", in: "error", want: slog.LevelError},
		{name: "unknown defaults to info", in: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestCommonLogger(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")

	l, err := CommonLogger(NewConfig(`tests`))
	require.NoError(t, err)
	require.NotNil(t, l)
	require.True(t, l.Enabled(context.Background(), slog.LevelDebug))

	_, err = CommonLogger(nil)
	require.Error(t, err)
}
