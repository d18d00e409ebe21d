package custom

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDatetime_Scan(t *testing.T) {
	want := time.Date(2021, time.March, 4, 13, 37, 0, 0, time.UTC)

	tests := []struct {
		name    string
		src     any
		want    time.Time
		wantErr bool
	}{
		{name: "time", src: want, want: want},
		{name: "sqlite text", src: "2021-03-04 13:37:00+00:00", want: want},
		{name: "rfc3339 bytes", src: []byte("2021-03-04T13:37:00Z"), want: want},
		{name: "unix seconds", src: want.Unix(), want: want},
		{name: "null", src: nil, want: time.Time{}},
		{name: "garbage", src: "yesterday", wantErr: true},
		{name: "unsupported", src: 1.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Datetime
			err := d.Scan(tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.want.Equal(d.Time()), "got %s", d)
		})
	}
}

func TestDatetime_ValueIsUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	d := Datetime(time.Date(2021, time.March, 4, 14, 37, 0, 0, loc))

	v, err := d.Value()
	require.NoError(t, err)

	got, ok := v.(time.Time)
	require.True(t, ok)
	require.Equal(t, time.UTC, got.Location())
	require.Equal(t, 13, got.Hour())
}

func TestDatetime_JSON(t *testing.T) {
	d := Datetime(time.Date(2021, time.March, 4, 13, 37, 0, 0, time.UTC))

	b, err := json.Marshal(&d)
	require.NoError(t, err)
	require.Equal(t, `"2021-03-04T13:37:00Z"`, string(b))

	var got Datetime
	require.NoError(t, json.Unmarshal(b, &got))
	require.True(t, d.Time().Equal(got.Time()))
}
