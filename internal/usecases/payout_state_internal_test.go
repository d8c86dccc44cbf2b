package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vendor-pay.backend/internal/domain/entities"
)

func TestPayoutTransitionMatrix(t *testing.T) {
	cases := []struct {
		from    entities.PayoutStatus
		to      entities.PayoutStatus
		allowed bool
	}{
		{entities.PayoutStatusPending, entities.PayoutStatusProcessing, true},
		{entities.PayoutStatusPending, entities.PayoutStatusFailed, true},
		{entities.PayoutStatusPending, entities.PayoutStatusCompleted, false},
		{entities.PayoutStatusProcessing, entities.PayoutStatusCompleted, true},
		{entities.PayoutStatusProcessing, entities.PayoutStatusFailed, true},
		{entities.PayoutStatusProcessing, entities.PayoutStatusPending, false},
		{entities.PayoutStatusCompleted, entities.PayoutStatusFailed, false},
		{entities.PayoutStatusCompleted, entities.PayoutStatusPending, false},
		{entities.PayoutStatusFailed, entities.PayoutStatusPending, false},
		{entities.PayoutStatusFailed, entities.PayoutStatusProcessing, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, transitionAllowed(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestPayoutDeletable(t *testing.T) {
	assert.True(t, (&entities.Payout{Status: entities.PayoutStatusPending}).Deletable())
	assert.True(t, (&entities.Payout{Status: entities.PayoutStatusFailed}).Deletable())
	assert.False(t, (&entities.Payout{Status: entities.PayoutStatusProcessing}).Deletable())
	assert.False(t, (&entities.Payout{Status: entities.PayoutStatusCompleted}).Deletable())
}
