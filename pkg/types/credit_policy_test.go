package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditPolicyNormalize_EmptyGetsDefaults(t *testing.T) {
	p := CreditPolicy{}.Normalize()
	assert.Equal(t, DefaultCreditPolicy(), p)
}

func TestCreditPolicyNormalize_KeepsConfiguredValues(t *testing.T) {
	p := CreditPolicy{
		PeriodDays:   7,
		MsgNoCredits: "no credits",
	}.Normalize()

	assert.Equal(t, 7, p.PeriodDays)
	assert.Equal(t, "no credits", p.MsgNoCredits)
	// Unset fields still fall back.
	assert.Equal(t, 1, p.CreditsPerPeriod)
	assert.Equal(t, "Créditos esgotados", p.MsgCreditsExhausted)
}

func TestCreditPolicyNormalize_RejectsNonPositiveNumbers(t *testing.T) {
	p := CreditPolicy{PeriodDays: -1, CreditsPerPeriod: 0}.Normalize()
	assert.Equal(t, 30, p.PeriodDays)
	assert.Equal(t, 1, p.CreditsPerPeriod)
}
