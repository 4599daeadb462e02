package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeString
		wantErr error
	}{
		{name: "hh:mm", in: "18:00", want: "18:00"},
		{name: "single digit hour", in: "6:30", want: "06:30"},
		{name: "postgres time", in: "09:00:00", want: "09:00"},
		{name: "end of day", in: "24:00", want: "24:00"},
		{name: "garbage", in: "noon", wantErr: ErrInvalidFormat},
		{name: "minutes overflow", in: "10:75", wantErr: ErrOutOfRange},
		{name: "past end of day", in: "24:30", wantErr: ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddHours(t *testing.T) {
	end, err := TimeString("18:00").AddHours(2)
	require.NoError(t, err)
	assert.Equal(t, TimeString("20:00"), end)

	end, err = TimeString("22:00").AddHours(2)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	_, err = TimeString("23:00").AddHours(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:00"))
	assert.Equal(t, 18, TimeString("18:00").Hour())
	assert.True(t, TimeString("18:00").IsHourAligned())
	assert.False(t, TimeString("18:30").IsHourAligned())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("07:00:00")))
	assert.Equal(t, TimeString("07:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 21, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("21:00"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC), TimeString("18:00").On(day))
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), TimeString("24:00").On(day))
}
