package services

import (
	"fmt"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fleet_dispatch/internal/models"
)

// DriverService handles driver onboarding (including account provisioning),
// the delete saga, payroll resets and aggregate stats.
type DriverService struct {
	db              *gorm.DB
	defaultPassword string
}

func NewDriverService(db *gorm.DB, defaultPassword string) *DriverService {
	return &DriverService{db: db, defaultPassword: defaultPassword}
}

// DriverStats aggregates a driver's completed missions.
type DriverStats struct {
	TotalKilometers   int     `json:"total_kilometers"`
	TotalHoursWorked  float64 `json:"total_hours_worked"`
	CompletedMissions int     `json:"completed_missions"`
}

// Create persists the driver and provisions their login account in the
// same transaction. The username is derived from the email local part,
// suffixed with a counter on collision; the password is a placeholder the
// driver changes on first login.
func (s *DriverService) Create(driver *models.Driver) error {
	if driver.Email == "" || !strings.Contains(driver.Email, "@") {
		return &ValidationError{Field: "email", Reason: "a valid email is required"}
	}
	if driver.ContractualHours <= 0 {
		driver.ContractualHours = 40
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		username, err := s.uniqueUsername(tx, driver.Email)
		if err != nil {
			return err
		}

		user := models.User{
			Username: username,
			Email:    driver.Email,
			Password: string(hashed),
			Role:     "driver",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		driver.UserID = &user.ID
		driver.IsActive = true
		if err := tx.Create(driver).Error; err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"driver_id": driver.ID,
			"username":  username,
		}).Info("driver onboarded, account provisioned")
		return nil
	})
}

// uniqueUsername takes the email local part and appends a numeric suffix
// until it does not collide with an existing account.
func (s *DriverService) uniqueUsername(tx *gorm.DB, email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]
	username := base
	for counter := 1; ; counter++ {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, counter)
	}
}

// Delete removes a driver and their account. Any mission still underway is
// cancelled first, inside the same transaction, so a failed step leaves
// everything untouched.
func (s *DriverService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var driver models.Driver
		if err := tx.First(&driver, id).Error; err != nil {
			return err
		}

		var active []models.Mission
		if err := tx.Where("driver_id = ? AND status = ?", driver.ID, models.MissionInProgress).
			Find(&active).Error; err != nil {
			return err
		}
		now := time.Now()
		for i := range active {
			active[i].Status = models.MissionCancelled
			active[i].ActualEndTime = &now
			if err := tx.Save(&active[i]).Error; err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"mission_id": active[i].ID,
				"driver_id":  driver.ID,
			}).Warn("mission cancelled by driver removal")
		}

		// Missions keep their history but drop the driver reference.
		if err := tx.Model(&models.Mission{}).Where("driver_id = ?", driver.ID).
			Update("driver_id", nil).Error; err != nil {
			return err
		}

		// Dependent rows go with the driver.
		if err := tx.Where("driver_id = ?", driver.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("driver_id = ?", driver.ID).Delete(&models.WeeklyStats{}).Error; err != nil {
			return err
		}

		driver.IsActive = false
		if err := tx.Save(&driver).Error; err != nil {
			return err
		}

		if driver.UserID != nil {
			if err := tx.Delete(&models.User{}, *driver.UserID).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&driver).Error
	})
}

// Stats sums the driver's completed missions.
func (s *DriverService) Stats(id uint) (*DriverStats, error) {
	var driver models.Driver
	if err := s.db.First(&driver, id).Error; err != nil {
		return nil, err
	}

	var missions []models.Mission
	if err := s.db.Where("driver_id = ? AND status = ?", driver.ID, models.MissionCompleted).
		Find(&missions).Error; err != nil {
		return nil, err
	}

	stats := DriverStats{CompletedMissions: len(missions)}
	for _, m := range missions {
		stats.TotalKilometers += m.Distance
		stats.TotalHoursWorked += m.HoursWorked
	}
	return &stats, nil
}

// ResetWeeklyHours zeroes hours_worked for every active driver. Invoked
// from the admin endpoint and from cmd/resethours on a weekly cron.
func (s *DriverService) ResetWeeklyHours() (int64, error) {
	result := s.db.Model(&models.Driver{}).
		Where("is_active = ?", true).
		Update("hours_worked", 0)
	if result.Error != nil {
		return 0, result.Error
	}
	logrus.WithField("drivers", result.RowsAffected).Info("weekly hours reset")
	return result.RowsAffected, nil
}
