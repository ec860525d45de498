package domain

import (
	"fmt"
	"math"
)

// PayloadBudget is the maximum encoded size in bytes of one published batch.
type PayloadBudget int

// NewPayloadBudget derives the budget as
// floor(maxPacketSize * (1 - marginPercent/100)).
// It fails unless 0 < budget < maxPacketSize.
func NewPayloadBudget(maxPacketSize int, marginPercent float64) (PayloadBudget, error) {
	if maxPacketSize <= 0 {
		return 0, fmt.Errorf("%w: device max packet size must be positive, got %d", ErrInvalidConfig, maxPacketSize)
	}
	if marginPercent <= 0 || marginPercent >= 100 {
		return 0, fmt.Errorf("%w: safety margin must be between 0 and 100 percent, got %v", ErrInvalidConfig, marginPercent)
	}
	budget := int(math.Floor(float64(maxPacketSize) * (100 - marginPercent) / 100))
	if budget <= 0 || budget >= maxPacketSize {
		return 0, fmt.Errorf("%w: payload budget %d out of range for packet size %d", ErrInvalidConfig, budget, maxPacketSize)
	}
	return PayloadBudget(budget), nil
}

// Fits reports whether an encoded size is within the budget.
func (p PayloadBudget) Fits(encodedBytes int) bool {
	return encodedBytes <= int(p)
}
