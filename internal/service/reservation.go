package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"

	"lakehouse-scheduler/internal/model"

	"gorm.io/gorm"
)

// ReservationService is the ledger of date-range bookings against the
// single shared property.
type ReservationService struct {
	db *gorm.DB
	mu sync.Mutex // serializes the overlap check with its insert
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db}
}

func today() string { return time.Now().Format(model.DateLayout) }

func parseDate(field, value string) (string, error) {
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return "", Validation(field, "must be a date in YYYY-MM-DD form")
	}
	return t.Format(model.DateLayout), nil
}

// Create books [startDate, endDate] for ownerID. Intervals are closed: a
// booking ending on day D conflicts with one starting on day D. The check
// and the insert run under one lock and one transaction so concurrent
// overlapping requests cannot both succeed.
func (s *ReservationService) Create(ctx context.Context, ownerID uint, startDate, endDate, notes string) (*model.Reservation, error) {
	start, err := parseDate("start_date", startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", endDate)
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, Validation("end_date", "must not be before start date")
	}
	if start < today() {
		return nil, Validation("start_date", "must not be in the past")
	}

	res := &model.Reservation{UserID: ownerID, StartDate: start, EndDate: end, Notes: notes}

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Reservation{}).
			Where("start_date <= ? AND end_date >= ?", end, start).
			Count(&count).Error; err != nil {
			return fmt.Errorf("scan ledger: %w", err)
		}
		if count > 0 {
			return Conflict("dates conflict with an existing reservation")
		}
		if err := tx.Create(res).Error; err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// All yields every reservation in ascending start-date order. The sequence
// is restartable and fetches in batches, so the ledger never has to fit a
// single page.
func (s *ReservationService) All(ctx context.Context) iter.Seq2[model.Reservation, error] {
	const batch = 200
	return func(yield func(model.Reservation, error) bool) {
		lastStart, lastID := "", uint(0)
		for {
			var page []model.Reservation
			err := s.db.WithContext(ctx).
				Where("start_date > ? OR (start_date = ? AND id > ?)", lastStart, lastStart, lastID).
				Order("start_date, id").
				Limit(batch).
				Find(&page).Error
			if err != nil {
				yield(model.Reservation{}, fmt.Errorf("list reservations: %w", err))
				return
			}
			for _, r := range page {
				if !yield(r, nil) {
					return
				}
			}
			if len(page) < batch {
				return
			}
			last := page[len(page)-1]
			lastStart, lastID = last.StartDate, last.ID
		}
	}
}

// Upcoming returns current and future reservations, soonest first.
func (s *ReservationService) Upcoming(ctx context.Context) ([]model.Reservation, error) {
	var out []model.Reservation
	err := s.db.WithContext(ctx).
		Where("end_date >= ?", today()).
		Order("start_date, id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list upcoming reservations: %w", err)
	}
	return out, nil
}

func (s *ReservationService) ByOwner(ctx context.Context, ownerID uint) ([]model.Reservation, error) {
	var out []model.Reservation
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("start_date, id").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list reservations for user %d: %w", ownerID, err)
	}
	return out, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*model.Reservation, error) {
	var res model.Reservation
	if err := s.db.WithContext(ctx).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("reservation")
		}
		return nil, fmt.Errorf("load reservation %d: %w", id, err)
	}
	return &res, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) error {
	out := s.db.WithContext(ctx).Delete(&model.Reservation{}, id)
	if out.Error != nil {
		return fmt.Errorf("delete reservation %d: %w", id, out.Error)
	}
	if out.RowsAffected == 0 {
		return NotFound("reservation")
	}
	return nil
}
