package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

func TestEffectiveDate(t *testing.T) {
	tests := []struct {
		name string
		data model.ChargeData
		want string
	}{
		{"created_on preferred", model.ChargeData{CreatedOn: "2018-07-10", DeliveredOn: "2017-10-10"}, "2018-07-10"},
		{"delivered_on fallback", model.ChargeData{DeliveredOn: "2017-10-10"}, "2017-10-10"},
		{"no dates", model.ChargeData{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := ChargeDocument{Data: tc.data}
			assert.Equal(t, tc.want, doc.EffectiveDate())
		})
	}
}
