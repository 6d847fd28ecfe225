package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageOrder(t *testing.T) {
	assert.Equal(t, StageCustomer, StageSelectService.Next())
	assert.Equal(t, StagePayment, StageCustomer.Next())
	assert.Equal(t, StageOverview, StagePayment.Next())
	assert.Equal(t, StageReceipt, StageOverview.Next())
	// Receipt is terminal
	assert.Equal(t, StageReceipt, StageReceipt.Next())

	assert.Equal(t, StageOverview, StageReceipt.Prev())
	// SelectService has no predecessor
	assert.Equal(t, StageSelectService, StageSelectService.Prev())
}

func TestStageIsValid(t *testing.T) {
	for s := StageSelectService; s <= StageReceipt; s++ {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, Stage(-1).IsValid())
	assert.False(t, Stage(5).IsValid())
}

func TestStageJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(StagePayment)
	require.NoError(t, err)
	assert.Equal(t, `"Payment"`, string(data))

	var s Stage
	require.NoError(t, json.Unmarshal([]byte(`"Overview"`), &s))
	assert.Equal(t, StageOverview, s)

	// Numeric form is accepted for backwards compatibility
	require.NoError(t, json.Unmarshal([]byte(`4`), &s))
	assert.Equal(t, StageReceipt, s)
}

func TestStageUnmarshalRejectsUnknown(t *testing.T) {
	var s Stage
	assert.Error(t, json.Unmarshal([]byte(`"Checkout"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`9`), &s))
	assert.Error(t, json.Unmarshal([]byte(`-1`), &s))
}

func TestStageStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Unknown", Stage(-1).String())
	assert.Equal(t, "Unknown", Stage(9).String())
}
