package cron

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"ridepool_backend/internal/model"
	"ridepool_backend/pkg/database"
)

var (
	lastSweepTime time.Time
	sweepMutex    sync.Mutex
)

func InitSubscriptionExpiryCron() {
	c := cron.New()

	_, err := c.AddFunc("0 9 * * *", func() {
		sweepMutex.Lock()
		defer sweepMutex.Unlock()

		if time.Since(lastSweepTime) < 23*time.Hour {
			log.Printf("Subscription expiry sweep already ran today, skipping...")
			return
		}

		expireLapsedSubscriptions()
		lastSweepTime = time.Now()
	})

	if err != nil {
		log.Printf("Could not initialize subscription expiry cron: %v", err)
		return
	}

	c.Start()
	log.Printf("Subscription expiry cron initialized successfully")
}

// expireLapsedSubscriptions marks active subscriptions past their period end
// as expired and demotes their owners back to common users.
func expireLapsedSubscriptions() {
	log.Println("Checking for lapsed subscriptions...")

	var lapsed []model.Subscription
	err := database.DB.
		Where("status = ? AND ends_at < ?", model.SubscriptionStatusActive, time.Now()).
		Find(&lapsed).Error
	if err != nil {
		log.Printf("Error fetching lapsed subscriptions: %v", err)
		return
	}

	log.Printf("Found %d lapsed subscriptions", len(lapsed))

	for _, sub := range lapsed {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&model.Subscription{}).
				Where("id = ?", sub.ID).
				Update("status", model.SubscriptionStatusExpired).Error; err != nil {
				return err
			}

			return tx.Model(&model.User{}).
				Where("id = ?", sub.UserID).
				Update("user_type", model.UserTypeCommon).Error
		})
		if err != nil {
			log.Printf("Error expiring subscription %d: %v", sub.ID, err)
			continue
		}

		log.Printf("Expired subscription %d for user %d", sub.ID, sub.UserID)
	}
}
