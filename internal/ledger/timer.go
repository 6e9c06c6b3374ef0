package ledger

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wigilabs/timeledger/internal/models"
)

const clockLayout = "15:04:05"

// StartTimer begins tracking time for username against the project with
// the given code. Exactly one timer may run per user; a second start is
// rejected instead of silently overwriting the first.
func (s *Store) StartTimer(username, code string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if user.Working {
			return ErrAlreadyWorking
		}

		var project models.Project
		if err := tx.Where("code = ?", code).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !canBook(&user, &project) {
			return ErrNotOwner
		}
		if project.Finished {
			return ErrProjectFinished
		}

		now := s.now()
		return tx.Model(&user).Updates(map[string]interface{}{
			"working":             true,
			"working_since":       now,
			"active_project_code": project.Code,
		}).Error
	})
	if err != nil && !isSentinel(err) {
		s.log.Error("start timer failed", zap.String("username", username), zap.String("code", code), zap.Error(err))
	}
	return err
}

// StopTimer ends the running timer, appends exactly one journal row and
// decrements the project balance by the elapsed fractional hours. The
// working flag is cleared with a guarded update, so of two racing stops
// only one applies the decrement; the other gets ErrNotWorking.
func (s *Store) StopTimer(username string) (*models.TimeLog, error) {
	var entry models.TimeLog
	var repairID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !user.Working {
			return ErrNotWorking
		}
		if user.WorkingSince == nil || user.ActiveProjectCode == nil {
			// Working flag set without timer fields: repair the row
			// instead of booking a bogus duration. Returning the
			// sentinel rolls this transaction back, so the clear
			// must run on s.db afterwards.
			repairID = user.ID
			return ErrNotWorking
		}

		now := s.now()
		start := *user.WorkingSince
		code := *user.ActiveProjectCode
		duration := now.Sub(start).Hours()

		entry = models.TimeLog{
			Username:      username,
			ProjectCode:   code,
			Day:           dateOf(start),
			StartClock:    start.Format(clockLayout),
			EndClock:      now.Format(clockLayout),
			DurationHours: duration,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Project{}).Where("code = ?", code).
			Update("remaining_hours", gorm.Expr("remaining_hours - ?", duration))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		res = tx.Model(&models.User{}).Where("id = ? AND working = ?", user.ID, true).
			Updates(map[string]interface{}{
				"working":             false,
				"working_since":       nil,
				"active_project_code": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotWorking
		}
		return nil
	})
	if repairID != 0 {
		s.log.Warn("clearing inconsistent timer state", zap.String("username", username))
		if cerr := clearTimer(s.db, repairID); cerr != nil {
			s.log.Error("timer state repair failed", zap.String("username", username), zap.Error(cerr))
		}
	}
	if err != nil {
		if !isSentinel(err) {
			s.log.Error("stop timer failed", zap.String("username", username), zap.Error(err))
		}
		return nil, err
	}
	return &entry, nil
}

// ActiveTimer returns the running timer state for username, or nil when
// idle.
func (s *Store) ActiveTimer(username string) (*models.User, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}
	if !user.Working || user.WorkingSince == nil || user.ActiveProjectCode == nil {
		return nil, nil
	}
	return user, nil
}

func clearTimer(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"working":             false,
			"working_since":       nil,
			"active_project_code": nil,
		}).Error
}

// dateOf truncates a timestamp to its calendar day in local time.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isSentinel(err error) bool {
	for _, sentinel := range []error{
		ErrDuplicateUser, ErrInvalidCredentials, ErrDuplicateProject,
		ErrNotFound, ErrNotOwner, ErrNotManager, ErrProjectFinished,
		ErrAlreadyWorking, ErrNotWorking, ErrInvalidHours,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
