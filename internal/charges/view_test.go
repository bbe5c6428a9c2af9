package charges

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/companieshouse/charges-data-api-sub000/internal/storage"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

func intPtr(v int) *int { return &v }

func TestBuildCollectionView(t *testing.T) {
	page := &storage.ChargesPage{
		Items: []storage.ChargeDocument{
			{ID: "a", Data: model.ChargeData{ChargeNumber: 2}},
			{ID: "b", Data: model.ChargeData{ChargeNumber: 1}},
		},
		TotalCount: 5,
	}

	tests := []struct {
		name    string
		summary *model.CompanyMetricsSummary
		want    model.ChargesCollectionView
	}{
		{
			name:    "metrics absent defaults counts to zero",
			summary: nil,
			want: model.ChargesCollectionView{
				TotalCount: 5,
			},
		},
		{
			name: "metrics present",
			summary: &model.CompanyMetricsSummary{
				Etag:               "metrics-etag",
				SatisfiedCount:     intPtr(3),
				PartSatisfiedCount: intPtr(1),
				TotalCount:         intPtr(9),
			},
			want: model.ChargesCollectionView{
				Etag:               "metrics-etag",
				TotalCount:         5,
				SatisfiedCount:     3,
				PartSatisfiedCount: 1,
				UnfilteredCount:    9,
			},
		},
		{
			name: "nil metric fields default individually",
			summary: &model.CompanyMetricsSummary{
				Etag:           "metrics-etag",
				SatisfiedCount: intPtr(4),
			},
			want: model.ChargesCollectionView{
				Etag:           "metrics-etag",
				TotalCount:     5,
				SatisfiedCount: 4,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			view := BuildCollectionView(page, tc.summary)

			assert.Equal(t, tc.want.Etag, view.Etag)
			assert.Equal(t, tc.want.TotalCount, view.TotalCount)
			assert.Equal(t, tc.want.SatisfiedCount, view.SatisfiedCount)
			assert.Equal(t, tc.want.PartSatisfiedCount, view.PartSatisfiedCount)
			assert.Equal(t, tc.want.UnfilteredCount, view.UnfilteredCount)

			// Payloads in page order.
			assert.Equal(t, []model.ChargeData{{ChargeNumber: 2}, {ChargeNumber: 1}}, view.Items)
		})
	}
}

func TestBuildCollectionView_EmptyPage(t *testing.T) {
	view := BuildCollectionView(&storage.ChargesPage{}, nil)

	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.TotalCount)
}
