package gateway

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Gateway charges a payment and returns the provider receipt.
//
// No real provider is integrated; the simulated implementation approves every
// charge synchronously. The interface keeps the payment workflow unaware of
// that.
type Gateway interface {
	Charge(transactionID string, amount float64, method string) (datatypes.JSON, error)
}

// Simulated approves every charge and fabricates a receipt payload.
type Simulated struct {
	log *zap.Logger
}

func NewSimulated(log *zap.Logger) *Simulated {
	return &Simulated{log: log}
}

var _ Gateway = (*Simulated)(nil)

func (g *Simulated) Charge(transactionID string, amount float64, method string) (datatypes.JSON, error) {
	receipt := map[string]any{
		"id":            transactionID,
		"status":        "approved",
		"status_detail": "accredited",
		"amount":        amount,
		"method":        method,
		"processed_at":  time.Now().UTC().Format(time.RFC3339Nano),
	}

	payload, err := json.Marshal(receipt)
	if err != nil {
		return nil, err
	}

	g.log.Info("simulated charge approved",
		zap.String("transaction_id", transactionID),
		zap.Float64("amount", amount),
		zap.String("method", method),
	)
	return datatypes.JSON(payload), nil
}
