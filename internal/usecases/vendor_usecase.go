package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"vendor-pay.backend/internal/domain/entities"
	domainerrors "vendor-pay.backend/internal/domain/errors"
	"vendor-pay.backend/internal/domain/repositories"
	"vendor-pay.backend/pkg/utils"
)

// VendorUsecase handles vendor registration and admin verification
type VendorUsecase struct {
	vendorRepo repositories.VendorRepository
	userRepo   repositories.UserRepository
	auditRepo  repositories.AuditLogRepository
}

// NewVendorUsecase creates a new vendor usecase
func NewVendorUsecase(
	vendorRepo repositories.VendorRepository,
	userRepo repositories.UserRepository,
	auditRepo repositories.AuditLogRepository,
) *VendorUsecase {
	return &VendorUsecase{
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
	}
}

// Apply registers the user as a vendor pending admin verification.
func (u *VendorUsecase) Apply(ctx context.Context, userID uuid.UUID, in *entities.VendorApplyInput) (*entities.Vendor, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if existing, err := u.vendorRepo.GetByUserID(ctx, userID); err == nil && existing != nil {
		return existing, domainerrors.ErrAlreadyExists
	} else if err != nil && err != domainerrors.ErrNotFound {
		return nil, err
	}

	minPayout := in.MinimumPayout
	if minPayout <= 0 {
		minPayout = entities.DefaultMinimumPayout
	}

	vendor := &entities.Vendor{
		ID:            utils.GenerateUUIDv7(),
		UserID:        userID,
		BusinessName:  in.BusinessName,
		BusinessEmail: in.BusinessEmail,
		Status:        entities.VendorStatusPendingVerification,
		MinimumPayout: minPayout,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := u.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

// GetByUser returns the vendor owned by the given user.
func (u *VendorUsecase) GetByUser(ctx context.Context, userID uuid.UUID) (*entities.Vendor, error) {
	return u.vendorRepo.GetByUserID(ctx, userID)
}

// UpdateStatus applies an admin verification decision.
func (u *VendorUsecase) UpdateStatus(ctx context.Context, vendorID uuid.UUID, in *entities.VendorStatusUpdateInput, actorID uuid.UUID) (*entities.Vendor, error) {
	if !entities.ValidVendorStatus(in.Status) {
		return nil, domainerrors.ErrInvalidInput
	}

	vendor, err := u.vendorRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	prev := vendor.Status
	if err := u.vendorRepo.UpdateStatus(ctx, vendorID, in.Status); err != nil {
		return nil, err
	}
	vendor.Status = in.Status
	if in.Status == entities.VendorStatusActive && !vendor.VerifiedAt.Valid {
		vendor.VerifiedAt = null.TimeFrom(time.Now())
	}

	if err := u.auditRepo.Create(ctx, &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		ActorID:    &actorID,
		Action:     entities.AuditActionVendorStatusChanged,
		EntityType: "vendor",
		EntityID:   vendorID.String(),
		Details: map[string]interface{}{
			"from":   string(prev),
			"to":     string(in.Status),
			"reason": in.Reason,
		},
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	return vendor, nil
}

// List returns vendors for the admin dashboard.
func (u *VendorUsecase) List(ctx context.Context, page, limit int) ([]*entities.Vendor, int, error) {
	offset := (page - 1) * limit
	return u.vendorRepo.List(ctx, limit, offset)
}
