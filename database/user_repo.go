package database

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/personal-goal-tracker-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *UserRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByID returns a user by its ID
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email, matched case-insensitively
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "lower(email) = lower(?)", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.Create(user).Error
}

// Search returns up to limit users whose email or name matches the query,
// excluding the requesting user. Used to pick reviewer candidates.
func (r *UserRepo) Search(query string, excludeID uuid.UUID, limit int) ([]*models.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var users []*models.User
	err := r.db.
		Where("id <> ?", excludeID).
		Where("lower(email) LIKE ? OR lower(name) LIKE ?", pattern, pattern).
		Order("email").
		Limit(limit).
		Find(&users).Error
	return users, err
}
