package tenancy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	models "github.com/rendalink/locador/internal/models"
)

func TestReferenceMonthFormat(t *testing.T) {
	valid := []string{"2026-01", "2026-12", "1999-09"}
	for _, v := range valid {
		assert.True(t, referenceMonthRe.MatchString(v), v)
	}

	invalid := []string{"2026-13", "2026-00", "2026-1", "26-01", "2026/01", "2026-01-15", ""}
	for _, v := range invalid {
		assert.False(t, referenceMonthRe.MatchString(v), v)
	}
}

func TestRepairTransitions(t *testing.T) {
	allowed := func(from, to models.RepairStatus) bool {
		for _, next := range repairTransitions[from] {
			if next == to {
				return true
			}
		}
		return false
	}

	assert.True(t, allowed(models.RepairStatusOpen, models.RepairStatusInProgress))
	assert.True(t, allowed(models.RepairStatusOpen, models.RepairStatusResolved))
	assert.True(t, allowed(models.RepairStatusInProgress, models.RepairStatusCancelled))

	// Terminal states never move.
	assert.False(t, allowed(models.RepairStatusResolved, models.RepairStatusOpen))
	assert.False(t, allowed(models.RepairStatusCancelled, models.RepairStatusInProgress))
	// No reopening.
	assert.False(t, allowed(models.RepairStatusInProgress, models.RepairStatusOpen))
}
