// Package model defines the wire and domain model shared between the charges
// service core and its HTTP surface.
package model

import "fmt"

// ChargeStatus is the closed set of charge statuses. Values are the wire
// representation; anything outside the set is rejected at the boundary.
type ChargeStatus string

const (
	StatusOutstanding    ChargeStatus = "outstanding"
	StatusPartSatisfied  ChargeStatus = "part-satisfied"
	StatusSatisfied      ChargeStatus = "satisfied"
	StatusFullySatisfied ChargeStatus = "fully-satisfied"
)

// chargeStatuses is the exhaustive membership table for the closed set.
var chargeStatuses = map[ChargeStatus]struct{}{
	StatusOutstanding:    {},
	StatusPartSatisfied:  {},
	StatusSatisfied:      {},
	StatusFullySatisfied: {},
}

// IsValid reports whether the status is a member of the closed set.
func (s ChargeStatus) IsValid() bool {
	_, ok := chargeStatuses[s]
	return ok
}

// ParseChargeStatus validates a wire value against the closed set.
func ParseChargeStatus(v string) (ChargeStatus, error) {
	s := ChargeStatus(v)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown charge status %q", ErrInvalidInput, v)
	}
	return s, nil
}

// SatisfiedFamily is the set of statuses excluded by the "outstanding" filter
// token: charges that have been wholly settled.
func SatisfiedFamily() []ChargeStatus {
	return []ChargeStatus{StatusSatisfied, StatusFullySatisfied}
}

// Transaction is a filing associated with a charge. Opaque to the core.
type Transaction struct {
	FilingType          string `json:"filing_type,omitempty" bson:"filing_type,omitempty"`
	DeliveredOn         string `json:"delivered_on,omitempty" bson:"delivered_on,omitempty"`
	TransactionID       string `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	InsolvencyCaseTitle string `json:"insolvency_case_title,omitempty" bson:"insolvency_case_title,omitempty"`
}

// PersonEntitled names a party entitled under a charge.
type PersonEntitled struct {
	Name string `json:"name" bson:"name"`
}

// Classification describes the legal classification of a charge.
type Classification struct {
	Type        string `json:"type,omitempty" bson:"type,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Particulars carries the descriptive text of a charge.
type Particulars struct {
	Type                    string `json:"type,omitempty" bson:"type,omitempty"`
	Description             string `json:"description,omitempty" bson:"description,omitempty"`
	ContainsFloatingCharge  bool   `json:"contains_floating_charge,omitempty" bson:"contains_floating_charge,omitempty"`
	ContainsFixedCharge     bool   `json:"contains_fixed_charge,omitempty" bson:"contains_fixed_charge,omitempty"`
	FloatingChargeCoversAll bool   `json:"floating_charge_covers_all,omitempty" bson:"floating_charge_covers_all,omitempty"`
	ContainsNegativePledge  bool   `json:"contains_negative_pledge,omitempty" bson:"contains_negative_pledge,omitempty"`
}

// ChargeData is the business payload of a charge record. Dates use the
// YYYY-MM-DD wire format; created_on is preferred over delivered_on as the
// effective date for sorting.
type ChargeData struct {
	Etag            string           `json:"etag,omitempty" bson:"etag,omitempty"`
	ChargeCode      string           `json:"charge_code,omitempty" bson:"charge_code,omitempty"`
	ChargeNumber    int              `json:"charge_number" bson:"charge_number"`
	Status          ChargeStatus     `json:"status" bson:"status"`
	CreatedOn       string           `json:"created_on,omitempty" bson:"created_on,omitempty"`
	DeliveredOn     string           `json:"delivered_on,omitempty" bson:"delivered_on,omitempty"`
	SatisfiedOn     string           `json:"satisfied_on,omitempty" bson:"satisfied_on,omitempty"`
	Classification  *Classification  `json:"classification,omitempty" bson:"classification,omitempty"`
	Particulars     *Particulars     `json:"particulars,omitempty" bson:"particulars,omitempty"`
	PersonsEntitled []PersonEntitled `json:"persons_entitled,omitempty" bson:"persons_entitled,omitempty"`
	Transactions    []Transaction    `json:"transactions,omitempty" bson:"transactions,omitempty"`
}

// CompanyMetricsSummary is the externally computed mortgage metrics for a
// company. A nil summary means the provider has nothing for the company or
// could not be reached; the read degrades to zeroed counts.
type CompanyMetricsSummary struct {
	Etag               string `json:"etag"`
	SatisfiedCount     *int   `json:"satisfied_count"`
	PartSatisfiedCount *int   `json:"part_satisfied_count"`
	TotalCount         *int   `json:"total_count"`
}

// ChargesCollectionView is the outward-facing read response: a page of charge
// payloads merged with the company metrics summary.
type ChargesCollectionView struct {
	Etag               string       `json:"etag,omitempty"`
	Items              []ChargeData `json:"items"`
	TotalCount         int64        `json:"total_count"`
	SatisfiedCount     int          `json:"satisfied_count"`
	PartSatisfiedCount int          `json:"part_satisfied_count"`
	UnfilteredCount    int          `json:"unfiltered_count"`
}
