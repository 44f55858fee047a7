package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/equimarket/horse_market/database"
	"github.com/equimarket/horse_market/models"
	"github.com/equimarket/horse_market/notifications"
)

const staleListingAge = 90 * 24 * time.Hour

// PauseStaleListings pauses active listings that have not been touched
// in 90 days and tells the seller how to reactivate them.
func PauseStaleListings() {
	log.Println("Running job: PauseStaleListings...")

	cutoff := time.Now().Add(-staleListingAge)

	var horses []models.Horse
	err := database.DB.
		Preload("Seller").
		Where("status = ? AND updated_at < ?", "active", cutoff).
		Find(&horses).Error
	if err != nil {
		log.Printf("Error checking for stale listings: %v", err)
		return
	}

	if len(horses) == 0 {
		return
	}

	for _, horse := range horses {
		if err := database.DB.Model(&models.Horse{}).
			Where("id = ?", horse.ID).
			Update("status", "paused").Error; err != nil {
			log.Printf("Error pausing listing %s: %v", horse.ID, err)
			continue
		}

		emailSubject := fmt.Sprintf("Your listing for %s has been paused", horse.Name)
		emailBody := fmt.Sprintf(
			"<h1>Listing Paused</h1><p>Your listing for <b>%s</b> has been inactive for 90 days and was paused automatically. Update the listing and set it active again to keep it visible to buyers.</p>",
			horse.Name,
		)

		go notifications.SendEmail(horse.Seller.FullName, horse.Seller.Email, emailSubject, emailBody)
	}
}
