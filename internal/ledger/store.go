package ledger

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wigilabs/timeledger/internal/models"
)

// Store implements every ledger operation on top of a gorm handle. All
// mutating operations run inside a transaction so a timer stop and its
// balance decrement land together or not at all.
type Store struct {
	db  *gorm.DB
	log *zap.Logger

	// now is swapped out by tests to simulate elapsed time.
	now func() time.Time
}

// New creates a Store. A nil logger is replaced with a no-op one.
func New(gdb *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: gdb, log: log, now: time.Now}
}

// Register creates a new non-manager account.
func (s *Store) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	user := models.User{Username: username, Password: password}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUser
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, ErrDuplicateUser
		}
		s.log.Error("register failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and returns the account. The rejection is
// the same whether the username or the password was wrong.
func (s *Store) Login(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Error("login query failed", zap.String("username", username), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetUser returns the account for username.
func (s *Store) GetUser(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("user query failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// CreateProject registers a new hour budget owned by owner. The
// remaining balance starts equal to the allocation.
func (s *Store) CreateProject(owner, code, name string, allocated float64) (*models.Project, error) {
	code = strings.TrimSpace(code)
	if code == "" || strings.TrimSpace(name) == "" {
		return nil, errors.New("project code and name are required")
	}
	if allocated < 0 {
		return nil, ErrInvalidHours
	}

	project := models.Project{
		Code:           code,
		Name:           strings.TrimSpace(name),
		AllocatedHours: allocated,
		RemainingHours: allocated,
		Owner:          owner,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Project{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateProject
		}
		return tx.Create(&project).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateProject) {
			return nil, ErrDuplicateProject
		}
		s.log.Error("create project failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return &project, nil
}

// GetProject returns the project with the given code.
func (s *Store) GetProject(code string) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("code = ?", code).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("project query failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return &project, nil
}

// ProjectsFor lists the projects visible to username: their own, or
// every project when the account is a manager.
func (s *Store) ProjectsFor(username string) ([]models.Project, error) {
	user, err := s.GetUser(username)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	q := s.db.Order("owner, code")
	if !user.Manager {
		q = q.Where("owner = ?", username)
	}
	if err := q.Find(&projects).Error; err != nil {
		s.log.Error("project list failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return projects, nil
}

// OpenProjectsFor lists timer targets: visible projects that are not
// finished.
func (s *Store) OpenProjectsFor(username string) ([]models.Project, error) {
	projects, err := s.ProjectsFor(username)
	if err != nil {
		return nil, err
	}
	open := projects[:0]
	for _, p := range projects {
		if !p.Finished {
			open = append(open, p)
		}
	}
	return open, nil
}

// canBook reports whether user may book time or adjustments on project.
func canBook(user *models.User, project *models.Project) bool {
	return user.Manager || project.Owner == user.Username
}
