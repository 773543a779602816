package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSimulatedCharge(t *testing.T) {
	gw := NewSimulated(zap.NewNop())

	receipt, err := gw.Charge("TXN-20260101000000-abc123", 99.90, "credit_card")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(receipt, &payload))

	assert.Equal(t, "TXN-20260101000000-abc123", payload["id"])
	assert.Equal(t, "approved", payload["status"])
	assert.Equal(t, 99.90, payload["amount"])
	assert.Equal(t, "credit_card", payload["method"])
	assert.NotEmpty(t, payload["processed_at"])
}
