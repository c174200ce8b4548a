package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlu-router/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	hcm := time.FixedZone("ICT", 7*60*60)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "utc", in: time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC), want: `"2024-05-01T15:30:00Z"`},
		{name: "converted to utc", in: time.Date(2024, 5, 1, 22, 30, 0, 0, hcm), want: `"2024-05-01T15:30:00Z"`},
		{name: "zero", in: time.Time{}, want: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(response.DateTime(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestRespOmitsEmpty(t *testing.T) {
	b, err := json.Marshal(response.Resp{ErrorCode: 0, Message: response.MessageSuccess})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error_code":0,"message":"Success"}`, string(b))
}
