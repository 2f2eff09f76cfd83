package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories contains all repository implementations
type Repositories struct {
	Organization *OrganizationRepository
	User         *UserRepository
	Token        *TokenRepository
	Vehicle      *VehicleRepository
	Lesson       *LessonRepository
	Flag         *FlagRepository
	License      *LicenseRepository
	Setting      *SettingRepository
	History      *HistoryRepository
}

// NewRepositories creates a new Repositories instance backed by the given
// connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Organization: NewOrganizationRepository(db),
		User:         NewUserRepository(db),
		Token:        NewTokenRepository(db),
		Vehicle:      NewVehicleRepository(db),
		Lesson:       NewLessonRepository(db),
		Flag:         NewFlagRepository(db),
		License:      NewLicenseRepository(db),
		Setting:      NewSettingRepository(db),
		History:      NewHistoryRepository(db),
	}
}
