package database

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB

	userRepo           *UserRepo
	projectRepo        *ProjectRepo
	reviewerRepo       *ReviewerRepo
	reviewRepo         *ReviewRepo
	progressUpdateRepo *ProgressUpdateRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		userRepo:           NewUserRepo(db),
		projectRepo:        NewProjectRepo(db),
		reviewerRepo:       NewReviewerRepo(db),
		reviewRepo:         NewReviewRepo(db),
		progressUpdateRepo: NewProgressUpdateRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ReviewerRepo() *ReviewerRepo {
	return d.reviewerRepo
}

func (d Database) ReviewRepo() *ReviewRepo {
	return d.reviewRepo
}

func (d Database) ProgressUpdateRepo() *ProgressUpdateRepo {
	return d.progressUpdateRepo
}

// Migrate applies any pending schema migrations from the embedded migration
// files. Already-applied versions are a no-op.
func (d Database) Migrate() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
