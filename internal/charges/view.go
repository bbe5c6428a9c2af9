package charges

import (
	"github.com/companieshouse/charges-data-api-sub000/internal/storage"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

// BuildCollectionView merges a queried page of charges with the company
// metrics summary into the outward-facing collection view. A nil summary
// defaults all counts to zero and leaves the etag unset; this merge never
// fails.
func BuildCollectionView(page *storage.ChargesPage, summary *model.CompanyMetricsSummary) *model.ChargesCollectionView {
	view := &model.ChargesCollectionView{
		Items: make([]model.ChargeData, 0, len(page.Items)),
	}
	for _, doc := range page.Items {
		view.Items = append(view.Items, doc.Data)
	}
	view.TotalCount = page.TotalCount

	if summary != nil {
		view.Etag = summary.Etag
		view.SatisfiedCount = intOrZero(summary.SatisfiedCount)
		view.PartSatisfiedCount = intOrZero(summary.PartSatisfiedCount)
		view.UnfilteredCount = intOrZero(summary.TotalCount)
	}
	return view
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
