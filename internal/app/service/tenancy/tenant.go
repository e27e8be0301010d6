package tenancy

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/tool"
)

var (
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrProofNotFound   = errors.New("payment proof not found")
	ErrRequestNotFound = errors.New("repair request not found")
)

// Service covers the tenant-facing product surface: tenant registry,
// payment proofs and repair requests.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type CreateTenantRequest struct {
	PropertyID *string `json:"property_id"`
	Name       string  `json:"name" binding:"required"`
	CPF        string  `json:"cpf" binding:"required"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	RentDueDay int     `json:"rent_due_day"`
}

type UpdateTenantRequest struct {
	PropertyID *string `json:"property_id"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	RentDueDay *int    `json:"rent_due_day"`
	IsActive   *bool   `json:"is_active"`
}

func (s *Service) CreateTenant(ctx context.Context, ownerID string, req *CreateTenantRequest) (*models.Tenant, error) {
	dueDay := req.RentDueDay
	if dueDay < 1 || dueDay > 28 {
		dueDay = 5
	}
	t := &models.Tenant{
		ID:         tool.GenerateUUIDV7(),
		OwnerID:    ownerID,
		PropertyID: req.PropertyID,
		Name:       req.Name,
		CPF:        req.CPF,
		Email:      req.Email,
		Phone:      req.Phone,
		RentDueDay: dueDay,
		IsActive:   true,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return t, nil
}

func (s *Service) GetTenant(ctx context.Context, ownerID, id string) (*models.Tenant, error) {
	var t models.Tenant
	if err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &t, nil
}

// GetTenantByProfileID resolves a tenant-portal principal to its tenant row.
func (s *Service) GetTenantByProfileID(ctx context.Context, profileID string) (*models.Tenant, error) {
	var t models.Tenant
	if err := s.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by profile: %w", err)
	}
	return &t, nil
}

func (s *Service) ListTenants(ctx context.Context, ownerID string) ([]*models.Tenant, error) {
	var rows []*models.Tenant
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return rows, nil
}

func (s *Service) UpdateTenant(ctx context.Context, ownerID, id string, req *UpdateTenantRequest) (*models.Tenant, error) {
	t, err := s.GetTenant(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.PropertyID != nil {
		t.PropertyID = req.PropertyID
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Email != nil {
		t.Email = *req.Email
	}
	if req.Phone != nil {
		t.Phone = *req.Phone
	}
	if req.RentDueDay != nil && *req.RentDueDay >= 1 && *req.RentDueDay <= 28 {
		t.RentDueDay = *req.RentDueDay
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if err := s.db.WithContext(ctx).Save(t).Error; err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return t, nil
}

func (s *Service) DeleteTenant(ctx context.Context, ownerID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Tenant{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete tenant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTenantNotFound
	}
	return nil
}
