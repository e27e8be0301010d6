package tenancy

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"

	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/tool"
)

var referenceMonthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type SubmitProofRequest struct {
	ReferenceMonth string `json:"reference_month" binding:"required"`
	Amount         int64  `json:"amount" binding:"required"`
	FileURL        string `json:"file_url" binding:"required"`
}

type ReviewProofRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// SubmitProof records a proof-of-payment uploaded by a tenant. The file is
// already in external storage; only its URL arrives here.
func (s *Service) SubmitProof(ctx context.Context, tenant *models.Tenant, req *SubmitProofRequest) (*models.PaymentProof, error) {
	if !referenceMonthRe.MatchString(req.ReferenceMonth) {
		return nil, fmt.Errorf("invalid reference_month, expected YYYY-MM")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	p := &models.PaymentProof{
		ID:             tool.GenerateUUIDV7(),
		OwnerID:        tenant.OwnerID,
		TenantID:       tenant.ID,
		ReferenceMonth: req.ReferenceMonth,
		Amount:         req.Amount,
		FileURL:        req.FileURL,
		Status:         models.PaymentProofStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment proof: %w", err)
	}
	return p, nil
}

func (s *Service) ListProofsByTenant(ctx context.Context, tenantID string) ([]*models.PaymentProof, error) {
	var rows []*models.PaymentProof
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment proofs: %w", err)
	}
	return rows, nil
}

func (s *Service) ListProofsByOwner(ctx context.Context, ownerID string, status models.PaymentProofStatus) ([]*models.PaymentProof, error) {
	q := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rows []*models.PaymentProof
	if err := q.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment proofs: %w", err)
	}
	return rows, nil
}

// ReviewProof approves or rejects a pending proof.
func (s *Service) ReviewProof(ctx context.Context, ownerID, proofID string, req *ReviewProofRequest) (*models.PaymentProof, error) {
	var p models.PaymentProof
	if err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", proofID, ownerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProofNotFound
		}
		return nil, fmt.Errorf("failed to get payment proof: %w", err)
	}
	if p.Status != models.PaymentProofStatusPending {
		return nil, fmt.Errorf("payment proof already reviewed")
	}

	now := time.Now()
	if req.Approve {
		p.Status = models.PaymentProofStatusApproved
	} else {
		p.Status = models.PaymentProofStatusRejected
	}
	p.ReviewedAt = &now
	p.ReviewNote = req.Note

	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to update payment proof: %w", err)
	}
	return &p, nil
}
