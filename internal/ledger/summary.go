package ledger

import (
	"time"

	"go.uber.org/zap"

	"github.com/wigilabs/timeledger/internal/models"
)

// WeekMatrix is a zero-filled project × weekday grid of summed hours
// for one user and one calendar week.
type WeekMatrix struct {
	WeekStart time.Time
	Projects  []models.Project
	// Hours maps project code to hours per day offset 0..6 from
	// WeekStart. Every visible project has a row, logged or not.
	Hours map[string][7]float64
}

// RowTotal sums one project's hours across the week.
func (w *WeekMatrix) RowTotal(code string) float64 {
	var total float64
	for _, h := range w.Hours[code] {
		total += h
	}
	return total
}

// GrandTotal sums all hours in the matrix.
func (w *WeekMatrix) GrandTotal() float64 {
	var total float64
	for code := range w.Hours {
		total += w.RowTotal(code)
	}
	return total
}

// WeekStart returns the Monday 00:00 of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := dateOf(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeeklySummary builds the week grid for username starting at
// weekStart. Manual adjustment rows count with their signed duration.
// Rows whose project no longer matches a visible project are skipped.
func (s *Store) WeeklySummary(username string, weekStart time.Time) (*WeekMatrix, error) {
	projects, err := s.ownedProjects(username)
	if err != nil {
		return nil, err
	}

	weekStart = dateOf(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)

	matrix := &WeekMatrix{
		WeekStart: weekStart,
		Projects:  projects,
		Hours:     make(map[string][7]float64, len(projects)),
	}
	for _, p := range projects {
		matrix.Hours[p.Code] = [7]float64{}
	}

	var entries []models.TimeLog
	err = s.db.
		Where("username = ? AND day >= ? AND day < ?", username, weekStart, weekEnd).
		Find(&entries).Error
	if err != nil {
		s.log.Error("weekly summary query failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	for _, e := range entries {
		row, ok := matrix.Hours[e.ProjectCode]
		if !ok {
			continue
		}
		offset := int(dateOf(e.Day).Sub(weekStart).Hours() / 24)
		if offset < 0 || offset > 6 {
			continue
		}
		row[offset] += e.DurationHours
		matrix.Hours[e.ProjectCode] = row
	}

	return matrix, nil
}

// ownedProjects lists the user's own projects ordered by code; the
// weekly grid shows a user's timesheet, so manager visibility does not
// widen it.
func (s *Store) ownedProjects(username string) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Where("owner = ?", username).Order("code").Find(&projects).Error
	if err != nil {
		s.log.Error("owned projects query failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return projects, nil
}

// ProjectDetail is the material for a per-project report: the journal
// newest first plus the current balance.
type ProjectDetail struct {
	Project models.Project
	Entries []models.TimeLog
}

// DetailedEntries returns every journal row for (code, username)
// ordered by day descending, plus the project's current state.
func (s *Store) DetailedEntries(code, username string) (*ProjectDetail, error) {
	project, err := s.GetProject(code)
	if err != nil {
		return nil, err
	}

	var entries []models.TimeLog
	err = s.db.
		Where("project_code = ? AND username = ?", code, username).
		Order("day DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		s.log.Error("detail query failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	return &ProjectDetail{Project: *project, Entries: entries}, nil
}

// StatusOverview lists every project across all owners, for the global
// status report. Manager accounts only.
func (s *Store) StatusOverview(actor string) ([]models.Project, error) {
	user, err := s.GetUser(actor)
	if err != nil {
		return nil, err
	}
	if !user.Manager {
		return nil, ErrNotManager
	}

	var projects []models.Project
	if err := s.db.Order("owner, code").Find(&projects).Error; err != nil {
		s.log.Error("status overview query failed", zap.Error(err))
		return nil, err
	}
	return projects, nil
}
