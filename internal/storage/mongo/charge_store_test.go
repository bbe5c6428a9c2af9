package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/companieshouse/charges-data-api-sub000/internal/storage"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"
)

func TestMakeCompanyFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria storage.QueryCriteria
		want     bson.M
	}{
		{
			name:     "no status filter",
			criteria: storage.QueryCriteria{},
			want:     bson.M{"company_number": "00006400"},
		},
		{
			name: "include statuses",
			criteria: storage.QueryCriteria{
				IncludeStatuses: []model.ChargeStatus{model.StatusSatisfied},
			},
			want: bson.M{
				"company_number": "00006400",
				"data.status":    bson.M{"$in": []string{"satisfied"}},
			},
		},
		{
			name: "exclude statuses",
			criteria: storage.QueryCriteria{
				ExcludeStatuses: model.SatisfiedFamily(),
			},
			want: bson.M{
				"company_number": "00006400",
				"data.status":    bson.M{"$nin": []string{"satisfied", "fully-satisfied"}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, makeCompanyFilter("00006400", tc.criteria))
		})
	}
}

func TestMakeCompanyPipeline(t *testing.T) {
	match := bson.M{"company_number": "00006400"}

	pipeline := makeCompanyPipeline(match, storage.QueryCriteria{StartIndex: 2, ItemsPerPage: 3})
	require.Len(t, pipeline, 5)

	assert.Equal(t, "$match", pipeline[0][0].Key)
	assert.Equal(t, "$addFields", pipeline[1][0].Key)
	assert.Equal(t, "$sort", pipeline[2][0].Key)
	assert.Equal(t, "$skip", pipeline[3][0].Key)
	assert.Equal(t, int64(2), pipeline[3][0].Value)
	assert.Equal(t, "$limit", pipeline[4][0].Key)
	assert.Equal(t, int64(3), pipeline[4][0].Value)

	sort, ok := pipeline[2][0].Value.(bson.D)
	require.True(t, ok)
	require.Len(t, sort, 3)
	assert.Equal(t, bson.E{Key: "effective_date", Value: -1}, sort[0])
	assert.Equal(t, bson.E{Key: "data.charge_number", Value: 1}, sort[1])
	assert.Equal(t, bson.E{Key: "_id", Value: 1}, sort[2])
}

func TestMakeCompanyPipeline_NoPagingStages(t *testing.T) {
	pipeline := makeCompanyPipeline(bson.M{}, storage.QueryCriteria{})
	assert.Len(t, pipeline, 3)
}
