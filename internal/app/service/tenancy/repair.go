package tenancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/tool"
)

type CreateRepairRequest struct {
	Title       string                `json:"title" binding:"required"`
	Description string                `json:"description"`
	Priority    models.RepairPriority `json:"priority"`
}

// repairTransitions lists allowed status moves.
var repairTransitions = map[models.RepairStatus][]models.RepairStatus{
	models.RepairStatusOpen:       {models.RepairStatusInProgress, models.RepairStatusResolved, models.RepairStatusCancelled},
	models.RepairStatusInProgress: {models.RepairStatusResolved, models.RepairStatusCancelled},
}

func (s *Service) CreateRepairRequest(ctx context.Context, tenant *models.Tenant, req *CreateRepairRequest) (*models.RepairRequest, error) {
	priority := req.Priority
	switch priority {
	case models.RepairPriorityLow, models.RepairPriorityMedium, models.RepairPriorityHigh:
	case "":
		priority = models.RepairPriorityMedium
	default:
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}

	r := &models.RepairRequest{
		ID:          tool.GenerateUUIDV7(),
		OwnerID:     tenant.OwnerID,
		TenantID:    tenant.ID,
		PropertyID:  tenant.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      models.RepairStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, fmt.Errorf("failed to create repair request: %w", err)
	}
	return r, nil
}

func (s *Service) ListRepairsByTenant(ctx context.Context, tenantID string) ([]*models.RepairRequest, error) {
	var rows []*models.RepairRequest
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list repair requests: %w", err)
	}
	return rows, nil
}

func (s *Service) ListRepairsByOwner(ctx context.Context, ownerID string, status models.RepairStatus) ([]*models.RepairRequest, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rows []*models.RepairRequest
	if err := q.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list repair requests: %w", err)
	}
	return rows, nil
}

// TransitionRepair moves a repair request along its lifecycle.
func (s *Service) TransitionRepair(ctx context.Context, ownerID, repairID string, to models.RepairStatus) (*models.RepairRequest, error) {
	var r models.RepairRequest
	if err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", repairID, ownerID).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get repair request: %w", err)
	}

	allowed := false
	for _, next := range repairTransitions[r.Status] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("invalid transition from %s to %s", r.Status, to)
	}

	r.Status = to
	if to == models.RepairStatusResolved {
		now := time.Now()
		r.ResolvedAt = &now
	}
	if err := s.db.WithContext(ctx).Save(&r).Error; err != nil {
		return nil, fmt.Errorf("failed to update repair request: %w", err)
	}
	return &r, nil
}
