package services

import (
	"errors"
	"fmt"

	"github.com/tasknest/task-tracker-api/internal/auth"
	"github.com/tasknest/task-tracker-api/internal/models"
	"github.com/tasknest/task-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrStatusNotFound   = errors.New("status not found")
	ErrStatusCodeExists = errors.New("status code already exists")
)

// StatusService manages the status registry that task lifecycles draw
// their codes from.
type StatusService struct {
	statusRepo repository.StatusRepository
}

// NewStatusService creates a new StatusService
func NewStatusService(statusRepo repository.StatusRepository) *StatusService {
	return &StatusService{statusRepo: statusRepo}
}

// List returns all live statuses.
func (s *StatusService) List() ([]models.StatusMaster, error) {
	statuses, err := s.statusRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	return statuses, nil
}

// Get returns a live status addressed by numeric id or by code.
func (s *StatusService) Get(idOrCode string) (*models.StatusMaster, error) {
	status, err := s.statusRepo.FindByIDOrCode(idOrCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, fmt.Errorf("failed to find status: %w", err)
	}
	return status, nil
}

// Create registers a new status code. Codes are unique among live rows;
// a previously deleted code can be registered again.
func (s *StatusService) Create(principal auth.Principal, code, name string) (*models.StatusMaster, error) {
	if _, err := s.statusRepo.FindByCode(code); err == nil {
		return nil, ErrStatusCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check status code: %w", err)
	}

	status := &models.StatusMaster{
		Code:   code,
		Name:   name,
		Active: true,
		Audit:  models.Audit{CreatedBy: principal.ID},
	}

	if err := s.statusRepo.Create(status); err != nil {
		return nil, fmt.Errorf("failed to create status: %w", err)
	}

	return status, nil
}

// StatusUpdateInput carries a partial status update; nil means leave
// unchanged.
type StatusUpdateInput struct {
	Code   *string
	Name   *string
	Active *bool
}

// Update modifies a live status. Renaming a code re-checks uniqueness;
// tasks that reference the old code keep it and drop off joined reads.
func (s *StatusService) Update(principal auth.Principal, idOrCode string, in StatusUpdateInput) (*models.StatusMaster, error) {
	status, err := s.Get(idOrCode)
	if err != nil {
		return nil, err
	}

	if in.Code != nil && *in.Code != status.Code {
		if _, err := s.statusRepo.FindByCode(*in.Code); err == nil {
			return nil, ErrStatusCodeExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check status code: %w", err)
		}
		status.Code = *in.Code
	}
	if in.Name != nil {
		status.Name = *in.Name
	}
	if in.Active != nil {
		status.Active = *in.Active
	}
	status.UpdatedBy = principal.ID

	if err := s.statusRepo.Update(status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return status, nil
}

// Delete soft-deletes a status. Tasks still carrying the code are not
// touched; they simply stop appearing on joined reads.
func (s *StatusService) Delete(principal auth.Principal, idOrCode string) error {
	status, err := s.Get(idOrCode)
	if err != nil {
		return err
	}

	if err := s.statusRepo.SoftDelete(status.Code, principal.ID); err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}

	return nil
}
