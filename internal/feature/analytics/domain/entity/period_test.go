package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_analytics/internal/feature/analytics/domain"
)

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in        string
		wantStart time.Time
		wantErr   bool
	}{
		{in: "", wantStart: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)}, // Feb 31 normalizes to Mar 2
		{in: "5d", wantStart: time.Date(2024, 3, 26, 0, 0, 0, 0, time.UTC)},
		{in: "1y", wantStart: time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{in: "5y", wantStart: time.Date(2019, 3, 31, 0, 0, 0, 0, time.UTC)},
		{in: "10y", wantErr: true},
		{in: "max", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			p, err := ParsePeriod(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, p.Start(end))
		})
	}
}
