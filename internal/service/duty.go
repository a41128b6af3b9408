package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"lakehouse-scheduler/internal/model"

	"gorm.io/gorm"
)

// DutyService is the board of recurring household duties and their
// assignment lifecycle:
//
//	ASSIGNED -> IN_PROGRESS -> COMPLETED
//	ASSIGNED -> CANCELLED
//	IN_PROGRESS -> CANCELLED
//
// COMPLETED and CANCELLED are terminal. Several users may hold assignments
// for the same duty at once; duties are shared chores, not leases.
type DutyService struct {
	db *gorm.DB
}

func NewDutyService(db *gorm.DB) *DutyService { return &DutyService{db: db} }

var transitions = map[string][]string{
	model.StatusAssigned:   {model.StatusInProgress, model.StatusCancelled},
	model.StatusInProgress: {model.StatusCompleted, model.StatusCancelled},
}

func validStatus(status string) bool {
	switch status {
	case model.StatusAssigned, model.StatusInProgress, model.StatusCompleted, model.StatusCancelled:
		return true
	}
	return false
}

func validPriority(priority string) bool {
	switch priority {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityUrgent:
		return true
	}
	return false
}

func (s *DutyService) CreateDuty(ctx context.Context, req model.DutyRequest) (*model.Duty, error) {
	if req.Name == "" {
		return nil, Validation("name", "must not be empty")
	}
	if req.Description == "" {
		return nil, Validation("description", "must not be empty")
	}
	if req.EstimatedHours < 1 {
		return nil, Validation("estimated_hours", "must be at least 1")
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !validPriority(priority) {
		return nil, Validation("priority", "must be LOW, MEDIUM, HIGH or URGENT")
	}

	duty := &model.Duty{
		Name:           req.Name,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		Priority:       priority,
		IsActive:       true,
	}
	if err := s.db.WithContext(ctx).Create(duty).Error; err != nil {
		return nil, fmt.Errorf("insert duty: %w", err)
	}
	return duty, nil
}

// UpdateDuty patches a duty; deactivating it removes it from the
// assignable pool without touching historical assignments.
func (s *DutyService) UpdateDuty(ctx context.Context, id uint, req model.DutyUpdateRequest) (*model.Duty, error) {
	var duty model.Duty
	if err := s.db.WithContext(ctx).First(&duty, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("duty")
		}
		return nil, fmt.Errorf("load duty %d: %w", id, err)
	}

	if req.Name != "" {
		duty.Name = req.Name
	}
	if req.Description != "" {
		duty.Description = req.Description
	}
	if req.EstimatedHours != 0 {
		if req.EstimatedHours < 1 {
			return nil, Validation("estimated_hours", "must be at least 1")
		}
		duty.EstimatedHours = req.EstimatedHours
	}
	if req.Priority != "" {
		if !validPriority(req.Priority) {
			return nil, Validation("priority", "must be LOW, MEDIUM, HIGH or URGENT")
		}
		duty.Priority = req.Priority
	}
	if req.IsActive != nil {
		duty.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(&duty).Error; err != nil {
		return nil, fmt.Errorf("update duty %d: %w", id, err)
	}
	return &duty, nil
}

func (s *DutyService) ActiveDuties(ctx context.Context) ([]model.Duty, error) {
	var out []model.Duty
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).Order("priority, name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list active duties: %w", err)
	}
	return out, nil
}

func (s *DutyService) Duties(ctx context.Context) ([]model.Duty, error) {
	var out []model.Duty
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list duties: %w", err)
	}
	return out, nil
}

// Assign creates an assignment for an active duty. Inactive and unknown
// duties look the same to callers: not found.
func (s *DutyService) Assign(ctx context.Context, dutyID, userID uint, assignedDate, notes string) (*model.DutyAssignment, error) {
	var duty model.Duty
	if err := s.db.WithContext(ctx).First(&duty, dutyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("duty")
		}
		return nil, fmt.Errorf("load duty %d: %w", dutyID, err)
	}
	if !duty.IsActive {
		return nil, NotFound("duty")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check assignee: %w", err)
	}
	if count == 0 {
		return nil, NotFound("user")
	}

	date := assignedDate
	if date == "" {
		date = today()
	}
	date, err := parseDate("assigned_date", date)
	if err != nil {
		return nil, err
	}

	assignment := &model.DutyAssignment{
		DutyID:       dutyID,
		UserID:       userID,
		AssignedDate: date,
		Status:       model.StatusAssigned,
		Notes:        notes,
	}
	if err := s.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	return assignment, nil
}

// Transition moves an assignment along the state machine. Status and
// completion date always change together in one transaction: COMPLETED
// stamps the completion date (now, or an explicit date no earlier than the
// assigned date); every other status clears it.
func (s *DutyService) Transition(ctx context.Context, id uint, newStatus, completedDate string) (*model.DutyAssignment, error) {
	if !validStatus(newStatus) {
		return nil, Validation("status", "must be ASSIGNED, IN_PROGRESS, COMPLETED or CANCELLED")
	}

	var assignment model.DutyAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&assignment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("assignment")
			}
			return fmt.Errorf("load assignment %d: %w", id, err)
		}

		if !slices.Contains(transitions[assignment.Status], newStatus) {
			return InvalidState(fmt.Sprintf("cannot move assignment from %s to %s", assignment.Status, newStatus))
		}

		if newStatus == model.StatusCompleted {
			date := completedDate
			if date == "" {
				date = today()
			}
			date, err := parseDate("completed_date", date)
			if err != nil {
				return err
			}
			if date < assignment.AssignedDate {
				return Validation("completed_date", "must not be before the assigned date")
			}
			assignment.CompletedDate = &date
		} else {
			assignment.CompletedDate = nil
		}
		assignment.Status = newStatus

		if err := tx.Save(&assignment).Error; err != nil {
			return fmt.Errorf("update assignment %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *DutyService) Assignment(ctx context.Context, id uint) (*model.DutyAssignment, error) {
	var assignment model.DutyAssignment
	if err := s.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("assignment")
		}
		return nil, fmt.Errorf("load assignment %d: %w", id, err)
	}
	return &assignment, nil
}

func (s *DutyService) Assignments(ctx context.Context) ([]model.DutyAssignment, error) {
	var out []model.DutyAssignment
	if err := s.db.WithContext(ctx).Order("assigned_date desc, id desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

func (s *DutyService) AssignmentsByUser(ctx context.Context, userID uint) ([]model.DutyAssignment, error) {
	var out []model.DutyAssignment
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).Order("assigned_date desc, id desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list assignments for user %d: %w", userID, err)
	}
	return out, nil
}
