package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBTime_Scan(t *testing.T) {
	want := time.Date(2024, 5, 30, 1, 31, 30, 123000000, time.UTC)

	cases := map[string]interface{}{
		"time.Time":    want.In(time.FixedZone("UTC+5", 5*3600)),
		"sqlite text":  "2024-05-30 01:31:30.123+00:00",
		"offset text":  "2024-05-30 06:31:30.123+05:00",
		"rfc3339":      []byte("2024-05-30T01:31:30.123Z"),
		"no time zone": "2024-05-30 01:31:30.123",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			var got dbTime
			require.NoError(t, got.Scan(src))
			assert.True(t, want.Equal(got.Time), "got %v", got.Time)
			assert.Equal(t, time.UTC, got.Time.Location())
		})
	}
}

func TestDBTime_ScanInvalid(t *testing.T) {
	var got dbTime
	assert.Error(t, got.Scan(nil))
	assert.Error(t, got.Scan(42))
	assert.Error(t, got.Scan("вчера"))
}
