package rest

import (
	"fmt"
	"time"

	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

// ListChargesRequest carries the list endpoint's query parameters.
type ListChargesRequest struct {
	Filter       string `schema:"filter"`
	StartIndex   int64  `schema:"start_index"`
	ItemsPerPage int64  `schema:"items_per_page"`
}

// InternalData is the provenance section of an upsert delta.
type InternalData struct {
	DeltaAt   string `json:"delta_at"`
	UpdatedBy string `json:"updated_by"`
}

// UpsertChargeRequest is the delta body for the internal upsert endpoint.
type UpsertChargeRequest struct {
	InternalData InternalData     `json:"internal_data"`
	ExternalData model.ChargeData `json:"external_data"`
}

// parseDeltaAt parses the delta timestamp. An empty value is legal (no
// ordering information); a malformed one is rejected before the ordering
// policy runs.
func parseDeltaAt(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable delta_at %q", model.ErrInvalidInput, v)
	}
	return &t, nil
}
