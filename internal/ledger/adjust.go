package ledger

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wigilabs/timeledger/internal/models"
)

// Direction selects what a manual adjustment does to the remaining
// balance.
type Direction string

const (
	// AddWork books extra consumed hours, decreasing the balance.
	AddWork Direction = "add"
	// RemoveWork returns hours to the budget, increasing the balance.
	RemoveWork Direction = "remove"
)

// Adjust applies a manual correction of hours to the project balance.
// Every adjustment is journaled as a TimeLog row with MANUAL markers
// and a signed duration, so the balance stays derivable from the log.
// No bound is enforced: the balance may go negative or exceed the
// allocation. finalize additionally marks the project finished.
func (s *Store) Adjust(actor, code string, hours float64, dir Direction, finalize bool) (*models.Project, error) {
	if hours <= 0 {
		return nil, ErrInvalidHours
	}
	if dir != AddWork && dir != RemoveWork {
		return nil, ErrInvalidHours
	}

	signed := hours
	if dir == RemoveWork {
		signed = -hours
	}

	var project models.Project
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("username = ?", actor).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("code = ?", code).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !canBook(&user, &project) {
			return ErrNotOwner
		}

		entry := models.TimeLog{
			Username:      actor,
			ProjectCode:   code,
			Day:           dateOf(s.now()),
			StartClock:    models.ManualMarker,
			EndClock:      models.ManualMarker,
			DurationHours: signed,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"remaining_hours": gorm.Expr("remaining_hours - ?", signed),
		}
		if finalize {
			updates["finished"] = true
		}
		if err := tx.Model(&project).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("code = ?", code).First(&project).Error
	})
	if err != nil {
		if !isSentinel(err) {
			s.log.Error("adjust failed", zap.String("code", code), zap.Error(err))
		}
		return nil, err
	}
	return &project, nil
}

// ReplayedRemaining recomputes the remaining balance from the journal:
// allocation minus the signed sum of every logged duration.
func (s *Store) ReplayedRemaining(code string) (float64, error) {
	project, err := s.GetProject(code)
	if err != nil {
		return 0, err
	}

	var consumed float64
	err = s.db.Model(&models.TimeLog{}).
		Where("project_code = ?", code).
		Select("COALESCE(SUM(duration_hours), 0)").
		Scan(&consumed).Error
	if err != nil {
		s.log.Error("replay failed", zap.String("code", code), zap.Error(err))
		return 0, err
	}
	return project.AllocatedHours - consumed, nil
}

// ReconcileProject overwrites the stored running total with the value
// replayed from the journal and returns (stored, replayed). The two
// drift when writes are applied inconsistently; the journal wins.
// Rewriting a balance is a mutation, so the actor must own the project
// or be a manager, same as Adjust.
func (s *Store) ReconcileProject(actor, code string) (stored, replayed float64, err error) {
	user, err := s.GetUser(actor)
	if err != nil {
		return 0, 0, err
	}
	project, err := s.GetProject(code)
	if err != nil {
		return 0, 0, err
	}
	if !canBook(user, project) {
		return 0, 0, ErrNotOwner
	}
	stored = project.RemainingHours

	replayed, err = s.ReplayedRemaining(code)
	if err != nil {
		return 0, 0, err
	}
	if stored == replayed {
		return stored, replayed, nil
	}

	err = s.db.Model(&models.Project{}).Where("code = ?", code).
		Update("remaining_hours", replayed).Error
	if err != nil {
		s.log.Error("reconcile failed", zap.String("code", code), zap.Error(err))
		return 0, 0, err
	}
	s.log.Info("reconciled project balance",
		zap.String("code", code),
		zap.Float64("stored", stored),
		zap.Float64("replayed", replayed))
	return stored, replayed, nil
}
