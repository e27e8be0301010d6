package types

// CreditPolicy parameterizes the credit-based access policy. Defaults match
// the production behavior: one credit buys 30 days, messages in pt-BR.
type CreditPolicy struct {
	// PeriodDays is how many days one credit is worth.
	PeriodDays int `json:"period_days" mapstructure:"period_days"`
	// CreditsPerPeriod is how many credits the consumption job removes per period.
	CreditsPerPeriod int `json:"credits_per_period" mapstructure:"credits_per_period"`

	MsgCreditsExhausted     string `json:"msg_credits_exhausted" mapstructure:"msg_credits_exhausted"`
	MsgNoCredits            string `json:"msg_no_credits" mapstructure:"msg_no_credits"`
	MsgAccountBlocked       string `json:"msg_account_blocked" mapstructure:"msg_account_blocked"`
	MsgInactiveSubscription string `json:"msg_inactive_subscription" mapstructure:"msg_inactive_subscription"`
}

func DefaultCreditPolicy() CreditPolicy {
	return CreditPolicy{
		PeriodDays:              30,
		CreditsPerPeriod:        1,
		MsgCreditsExhausted:     "Créditos esgotados",
		MsgNoCredits:            "Sem créditos disponíveis",
		MsgAccountBlocked:       "Conta bloqueada",
		MsgInactiveSubscription: "Assinatura inativa",
	}
}

// Normalize fills zero-valued fields with defaults so a partially configured
// policy never changes observed behavior.
func (p CreditPolicy) Normalize() CreditPolicy {
	def := DefaultCreditPolicy()
	if p.PeriodDays <= 0 {
		p.PeriodDays = def.PeriodDays
	}
	if p.CreditsPerPeriod <= 0 {
		p.CreditsPerPeriod = def.CreditsPerPeriod
	}
	if p.MsgCreditsExhausted == "" {
		p.MsgCreditsExhausted = def.MsgCreditsExhausted
	}
	if p.MsgNoCredits == "" {
		p.MsgNoCredits = def.MsgNoCredits
	}
	if p.MsgAccountBlocked == "" {
		p.MsgAccountBlocked = def.MsgAccountBlocked
	}
	if p.MsgInactiveSubscription == "" {
		p.MsgInactiveSubscription = def.MsgInactiveSubscription
	}
	return p
}
