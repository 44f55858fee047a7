package handlers

import (
	"log"
	"time"

	"github.com/equimarket/horse_market/database"
	"github.com/equimarket/horse_market/models"
	"github.com/equimarket/horse_market/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GET /api/admin/sellers/pending
func GetPendingSellers(c *fiber.Ctx) error {
	var sellers []models.User
	err := database.DB.
		Where("role = ? AND seller_verification_status = ?", "seller", "pending").
		Order("created_at asc").
		Find(&sellers).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(sellers)
}

// PUT /api/admin/sellers/:id/verify
func VerifySeller(c *fiber.Ctx) error {
	sellerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	type Request struct {
		Action          string  `json:"action" validate:"required,oneof=approve reject"`
		RejectionReason *string `json:"rejection_reason,omitempty"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var seller models.User
	err = database.DB.Where("id = ? AND role = ?", sellerID, "seller").First(&seller).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Seller not found"})
	}

	adminID := currentUserID(c)
	now := time.Now()
	method := "manual"

	if req.Action == "approve" {
		seller.SellerProfile.VerificationStatus = "verified"
		seller.SellerProfile.VerificationMethod = &method
		seller.SellerProfile.VerifiedAt = &now
		seller.SellerProfile.VerifiedBy = &adminID
		seller.SellerProfile.IsVerifiedBadge = true
		seller.SellerProfile.RejectionReason = nil
	} else {
		reason := "No reason provided"
		if req.RejectionReason != nil && *req.RejectionReason != "" {
			reason = *req.RejectionReason
		}
		seller.SellerProfile.VerificationStatus = "rejected"
		seller.SellerProfile.IsVerifiedBadge = false
		seller.SellerProfile.RejectionReason = &reason
	}

	if err := database.DB.Save(&seller).Error; err != nil {
		log.Printf("verifySeller error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update seller"})
	}

	switch req.Action {
	case "approve":
		go notifications.SendEmail(
			seller.FullName,
			seller.Email,
			"Your Seller Account has been Verified!",
			"<h1>Congratulations!</h1><p>Your identity has been verified. Your listings now carry the verified seller badge.</p>",
		)
	case "reject":
		go notifications.SendEmail(
			seller.FullName,
			seller.Email,
			"Update on Your Seller Verification",
			"<h1>Verification Update</h1><p>We could not verify your seller profile. Please review the reason in your account and submit your documents again.</p>",
		)
	}

	return c.JSON(fiber.Map{"message": "Seller " + req.Action + "d", "data": seller})
}

// GET /api/admin/vet-records/pending
func GetPendingVetRecords(c *fiber.Ctx) error {
	var records []models.VetRecord
	err := database.DB.
		Preload("Horse").
		Preload("Vaccines").
		Preload("Certificates").
		Where("validation_status = ?", "pending").
		Order("created_at asc").
		Find(&records).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(records)
}

// PUT /api/admin/vet-records/:id/validate
func ValidateVetRecord(c *fiber.Ctx) error {
	recordID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	type Request struct {
		Action          string  `json:"action" validate:"required,oneof=validate reject"`
		RejectionReason *string `json:"rejection_reason,omitempty"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var record models.VetRecord
	if err := database.DB.First(&record, "id = ?", recordID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vet record not found"})
	}

	adminID := currentUserID(c)
	now := time.Now()

	if req.Action == "validate" {
		record.ValidationStatus = "validated"
		record.ValidatedBy = &adminID
		record.ValidatedAt = &now
		record.RejectionReason = nil
	} else {
		reason := "No reason provided"
		if req.RejectionReason != nil && *req.RejectionReason != "" {
			reason = *req.RejectionReason
		}
		record.ValidationStatus = "rejected"
		record.RejectionReason = &reason
	}

	if err := database.DB.Save(&record).Error; err != nil {
		log.Printf("validateVetRecord error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update vet record"})
	}

	return c.JSON(fiber.Map{"data": record})
}

// GET /api/admin/dashboard
func GetDashboard(c *fiber.Ctx) error {
	var totalUsers, pendingSellers, totalHorses, activeListings, pendingVet int64

	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.User{}).
		Where("role = ? AND seller_verification_status = ?", "seller", "pending").
		Count(&pendingSellers)
	database.DB.Model(&models.Horse{}).Count(&totalHorses)
	database.DB.Model(&models.Horse{}).Where("status = ?", "active").Count(&activeListings)
	database.DB.Model(&models.VetRecord{}).Where("validation_status = ?", "pending").Count(&pendingVet)

	return c.JSON(fiber.Map{
		"total_users":     totalUsers,
		"pending_sellers": pendingSellers,
		"total_horses":    totalHorses,
		"active_listings": activeListings,
		"pending_vet":     pendingVet,
	})
}

// DELETE /api/admin/horses/:id
func AdminDeleteHorse(c *fiber.Ctx) error {
	horseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid horse ID"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteHorseCascade(tx, horseID); err != nil {
			return err
		}
		return tx.Delete(&models.Horse{}, "id = ?", horseID).Error
	})
	if err != nil {
		log.Printf("adminDeleteHorse error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete listing"})
	}

	return c.JSON(fiber.Map{"message": "Listing deleted by admin"})
}
