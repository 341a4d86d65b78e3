package config

import (
	"log"

	"asperda-backend/internal/adapters/persistence/models"
	"asperda-backend/internal/core/domain"
	"asperda-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedDpcRegions(); err != nil {
		log.Printf("⚠️ DPC region seeder skipped: %v", err)
	}
	if err := s.seedSuperAdmin(); err != nil {
		log.Printf("⚠️ Super admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedDpcRegions seeds the initial regional chapters
func (s *Seeder) seedDpcRegions() error {
	var count int64
	s.db.Model(&models.DpcRegion{}).Count(&count)
	if count > 0 {
		return nil // Regions already exist
	}

	regions := []models.DpcRegion{
		{Name: "DPC Kota Bandung", Province: "Jawa Barat"},
		{Name: "DPC Kota Yogyakarta", Province: "DI Yogyakarta"},
		{Name: "DPC Kota Denpasar", Province: "Bali"},
	}

	return s.db.Create(&regions).Error
}

// seedSuperAdmin seeds the default super admin account
// This is for development/testing only
// In production, create the super admin through a secure process
func (s *Seeder) seedSuperAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleSuperAdmin)).Count(&count)
	if count > 0 {
		return nil // Super admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		FullName: "ASPERDA Super Admin",
		Email:    "admin@asperda.or.id",
		Password: hashedPassword,
		Role:     string(domain.RoleSuperAdmin),
		IsActive: true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("🔑 Default super admin created (admin@asperda.or.id)")
	return nil
}

// SeedData runs all seeders (called from main)
func SeedData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}
