package property

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	models "github.com/rendalink/locador/internal/models"
	"github.com/rendalink/locador/pkg/tool"
)

var ErrNotFound = errors.New("property not found")

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

type CreateRequest struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city"`
	State      string `json:"state"`
	RentAmount int64  `json:"rent_amount"`
	Bedrooms   int    `json:"bedrooms"`
	Notes      string `json:"notes"`
}

type UpdateRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	RentAmount *int64  `json:"rent_amount"`
	Bedrooms   *int    `json:"bedrooms"`
	Notes      *string `json:"notes"`
	IsActive   *bool   `json:"is_active"`
}

func (s *Service) Create(ctx context.Context, ownerID string, req *CreateRequest) (*models.Property, error) {
	p := &models.Property{
		ID:         tool.GenerateUUIDV7(),
		OwnerID:    ownerID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		RentAmount: req.RentAmount,
		Bedrooms:   req.Bedrooms,
		Notes:      req.Notes,
		IsActive:   true,
	}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id string) (*models.Property, error) {
	var p models.Property
	if err := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return &p, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*models.Property, error) {
	var rows []*models.Property
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return rows, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, req *UpdateRequest) (*models.Property, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.RentAmount != nil {
		p.RentAmount = *req.RentAmount
	}
	if req.Bedrooms != nil {
		p.Bedrooms = *req.Bedrooms
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Property{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
