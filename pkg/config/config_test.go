package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	// No config file in the test working directory; defaults apply.
	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, c.Env)
	assert.Equal(t, "0.0.0.0", c.Server.Host)
	assert.Equal(t, 8888, c.Server.Port)
	assert.NotEmpty(t, c.Database.DSN)
	assert.Equal(t, 24, c.Jobs.ConsumeCreditsIntervalHours)

	// Policy is normalized at load time.
	assert.Equal(t, 30, c.Policy.PeriodDays)
	assert.Equal(t, 1, c.Policy.CreditsPerPeriod)
	assert.Equal(t, "Sem créditos disponíveis", c.Policy.MsgNoCredits)
}
