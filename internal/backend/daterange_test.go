package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRange_Query(t *testing.T) {
	tests := []struct {
		name      string
		rng       DateRange
		wantStart string
		wantEnd   string
		hasStart  bool
		hasEnd    bool
	}{
		{name: "unbounded", rng: DateRange{}},
		{name: "start only", rng: DateRange{Start: "2024-05-01"}, wantStart: "2024-05-01", hasStart: true},
		{name: "end only", rng: DateRange{End: "2024-05-10"}, wantEnd: "2024-05-11", hasEnd: true},
		{name: "both", rng: DateRange{Start: "2024-05-10", End: "2024-05-10"}, wantStart: "2024-05-10", wantEnd: "2024-05-11", hasStart: true, hasEnd: true},
		{name: "month boundary", rng: DateRange{End: "2024-04-30"}, wantEnd: "2024-05-01", hasEnd: true},
		{name: "leap day", rng: DateRange{End: "2024-02-28"}, wantEnd: "2024-02-29", hasEnd: true},
		{name: "year boundary", rng: DateRange{End: "2023-12-31"}, wantEnd: "2024-01-01", hasEnd: true},
		{name: "whitespace", rng: DateRange{Start: " 2024-05-01 ", End: " "}, wantStart: "2024-05-01", hasStart: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := tt.rng.Query(FormatJSON)
			require.NoError(t, err)

			assert.Equal(t, "json", params.Get("fmt"))
			assert.Equal(t, tt.hasStart, params.Has("start"))
			assert.Equal(t, tt.hasEnd, params.Has("end"))
			assert.Equal(t, tt.wantStart, params.Get("start"))
			assert.Equal(t, tt.wantEnd, params.Get("end"))
		})
	}
}

func TestDateRange_QueryRejectsMalformedDates(t *testing.T) {
	_, err := DateRange{Start: "2024-13-01"}.Query(FormatCSV)
	assert.Error(t, err)

	_, err = DateRange{End: "2024/05/10"}.Query(FormatCSV)
	assert.Error(t, err)
}

func TestNextDay(t *testing.T) {
	next, err := NextDay("2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-11", next)
}
