package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/equimarket/horse_market/database"
	"github.com/equimarket/horse_market/models"
	"github.com/equimarket/horse_market/notifications"
)

// SendVaccineReminders emails sellers whose horses have vaccines
// falling due within the next 7 days.
func SendVaccineReminders() {
	log.Println("Running job: SendVaccineReminders...")

	now := time.Now()
	upperBound := now.Add(7 * 24 * time.Hour)

	var vaccines []models.Vaccine
	err := database.DB.
		Where("next_due_at IS NOT NULL AND next_due_at BETWEEN ? AND ?", now, upperBound).
		Find(&vaccines).Error
	if err != nil {
		log.Printf("Error checking for due vaccines: %v", err)
		return
	}

	if len(vaccines) == 0 {
		return
	}

	for _, vaccine := range vaccines {
		var record models.VetRecord
		if err := database.DB.Preload("Horse.Seller").First(&record, "id = ?", vaccine.VetRecordID).Error; err != nil {
			log.Printf("Error loading vet record %s: %v", vaccine.VetRecordID, err)
			continue
		}

		seller := record.Horse.Seller
		emailSubject := fmt.Sprintf("Vaccine due soon for %s", record.Horse.Name)
		emailBody := fmt.Sprintf(
			"<h1>Vaccine Reminder</h1><p>The vaccine <b>%s</b> for your horse <b>%s</b> is due on %s. Keeping the veterinary record current keeps your listing's validated badge.</p>",
			vaccine.Name,
			record.Horse.Name,
			vaccine.NextDueAt.Format("January 2, 2006"),
		)

		go notifications.SendEmail(seller.FullName, seller.Email, emailSubject, emailBody)
	}
}
