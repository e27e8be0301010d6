package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	models "github.com/rendalink/locador/internal/models"
)

// Service aggregates the counters shown on the owner dashboard.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type OwnerSummary struct {
	Properties    int64 `json:"properties"`
	ActiveTenants int64 `json:"active_tenants"`
	PendingProofs int64 `json:"pending_proofs"`
	OpenRepairs   int64 `json:"open_repairs"`
}

func (s *Service) OwnerSummary(ctx context.Context, ownerID string) (*OwnerSummary, error) {
	var out OwnerSummary

	counts := []struct {
		dest  *int64
		model interface{}
		query string
		args  []interface{}
	}{
		{&out.Properties, &models.Property{}, "owner_id = ? AND is_active = true", []interface{}{ownerID}},
		{&out.ActiveTenants, &models.Tenant{}, "owner_id = ? AND is_active = true", []interface{}{ownerID}},
		{&out.PendingProofs, &models.PaymentProof{}, "owner_id = ? AND status = ?", []interface{}{ownerID, models.PaymentProofStatusPending}},
		{&out.OpenRepairs, &models.RepairRequest{}, "owner_id = ? AND status IN ?", []interface{}{ownerID, []models.RepairStatus{models.RepairStatusOpen, models.RepairStatusInProgress}}},
	}

	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(c.model).Where(c.query, c.args...).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count dashboard rows: %w", err)
		}
	}
	return &out, nil
}
