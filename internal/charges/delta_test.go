package charges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldApplyDelta(t *testing.T) {
	base := time.Date(2021, 10, 29, 12, 30, 0, 0, time.UTC)
	earlier := base.Add(-time.Hour)
	later := base.Add(time.Hour)

	tests := []struct {
		name     string
		incoming *time.Time
		stored   *time.Time
		want     bool
	}{
		{"both absent", nil, nil, true},
		{"incoming absent", nil, &base, true},
		{"stored absent", &base, nil, true},
		{"incoming earlier", &earlier, &base, false},
		{"incoming equal", &base, &base, true},
		{"incoming later", &later, &base, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ShouldApplyDelta(tc.incoming, tc.stored))
		})
	}
}
