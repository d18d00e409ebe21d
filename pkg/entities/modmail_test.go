package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseModmailStatus(t *testing.T) {
	tests := []struct {
		name    string
		in      int64
		want    ModmailStatus
		wantErr bool
	}{
		{name: "open", in: 0, want: ModmailStatusOpen},
		{name: "in progress", in: 1, want: ModmailStatusInProgress},
		{name: "closed", in: 2, want: ModmailStatusClosed},
		{name: "negative", in: -1, wantErr: true},
		{name: "out of range", in: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModmailStatus(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidModmailStatus)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.in, got.Int64())
		})
	}
}

func TestModmailStatus_ScanValue(t *testing.T) {
	var s ModmailStatus
	require.NoError(t, s.Scan(int64(2)))
	require.Equal(t, ModmailStatusClosed, s)

	require.ErrorIs(t, s.Scan(int64(7)), ErrInvalidModmailStatus)
	require.Error(t, s.Scan("open"))

	v, err := ModmailStatusInProgress.Value()
	require.NoError(t, err)
	require.Equal(t, int64(1), v)

	_, err = ModmailStatus(9).Value()
	require.ErrorIs(t, err, ErrInvalidModmailStatus)
}

func TestParseModmailStatusName(t *testing.T) {
	for _, s := range ModmailStatuses {
		got, err := ParseModmailStatusName(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}

	_, err := ParseModmailStatusName("pending")
	require.ErrorIs(t, err, ErrInvalidModmailStatus)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to ModmailStatus
		want     bool
	}{
		{ModmailStatusOpen, ModmailStatusInProgress, true},
		{ModmailStatusOpen, ModmailStatusClosed, true},
		{ModmailStatusInProgress, ModmailStatusClosed, true},
		{ModmailStatusInProgress, ModmailStatusInProgress, true},
		{ModmailStatusInProgress, ModmailStatusOpen, false},
		{ModmailStatusClosed, ModmailStatusOpen, true},
		{ModmailStatusClosed, ModmailStatusInProgress, false},
		{ModmailStatus(5), ModmailStatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			require.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
