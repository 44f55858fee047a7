package handlers

import (
	"errors"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/equimarket/horse_market/database"
	"github.com/equimarket/horse_market/models"
	"github.com/equimarket/horse_market/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultListingLimit = 12
	maxListingLimit     = 50
)

func currentUserRole(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims := token.Claims.(jwt.MapClaims)
	role, _ := claims["role"].(string)
	return role
}

func clampListingLimit(limit int) int {
	if limit < 1 {
		return defaultListingLimit
	}
	if limit > maxListingLimit {
		return maxListingLimit
	}
	return limit
}

func listingSortClause(sort string) string {
	switch sort {
	case "price_asc":
		return "price asc"
	case "price_desc":
		return "price desc"
	case "age":
		return "age asc"
	default:
		return "created_at desc"
	}
}

type PhotoRequest struct {
	URL     string  `json:"url" validate:"required,url"`
	Caption *string `json:"caption,omitempty"`
	IsCover bool    `json:"is_cover"`
}

type VideoRequest struct {
	URL         string    `json:"url" validate:"required,url"`
	VideoType   string    `json:"video_type" validate:"required,oneof=training competition other"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	RecordedAt  time.Time `json:"recorded_at" validate:"required"`
}

type LocationRequest struct {
	Country string   `json:"country" validate:"required"`
	Region  string   `json:"region" validate:"required"`
	City    *string  `json:"city,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

type HorseRequest struct {
	Name       string          `json:"name" validate:"required"`
	Age        int             `json:"age" validate:"gte=0,lte=40"`
	Breed      string          `json:"breed" validate:"required"`
	Discipline string          `json:"discipline" validate:"required"`
	Pedigree   *string         `json:"pedigree,omitempty"`
	Location   LocationRequest `json:"location" validate:"required"`
	Price      *float64        `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency   string          `json:"currency,omitempty" validate:"omitempty,oneof=USD EUR ARS BRL MXN"`
	Photos     []PhotoRequest  `json:"photos" validate:"required,min=3,dive"`
	Videos     []VideoRequest  `json:"videos,omitempty" validate:"omitempty,dive"`
}

// GET /api/horses
// Public listing search over active horses.
func ListHorses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "12"))
	limit = clampListingLimit(limit)

	query := database.DB.Model(&models.Horse{}).Where("status = ?", "active")

	if breed := c.Query("breed"); breed != "" {
		query = query.Where("breed ILIKE ?", "%"+breed+"%")
	}
	if discipline := c.Query("discipline"); discipline != "" {
		query = query.Where("discipline ILIKE ?", "%"+discipline+"%")
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("location_country ILIKE ?", "%"+country+"%")
	}
	if region := c.Query("region"); region != "" {
		query = query.Where("location_region ILIKE ?", "%"+region+"%")
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR breed ILIKE ? OR discipline ILIKE ? OR pedigree ILIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("listHorses count error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listings"})
	}

	var horses []models.Horse
	err := query.
		Order(listingSortClause(c.Query("sort"))).
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Photos").
		Preload("Videos").
		Preload("Seller").
		Find(&horses).Error
	if err != nil {
		log.Printf("listHorses error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listings"})
	}

	return c.JSON(fiber.Map{
		"data": horses,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// GET /api/horses/:id
// Public detail view; increments the view counter and attaches the
// latest validated vet record plus a USD-normalized price.
func GetHorse(c *fiber.Ctx) error {
	horseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid horse ID"})
	}

	result := database.DB.Model(&models.Horse{}).
		Where("id = ? AND status = ?", horseID, "active").
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if result.Error != nil {
		log.Printf("getHorse error: %v", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listing"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Horse not found"})
	}

	var horse models.Horse
	err = database.DB.
		Preload("Photos").
		Preload("Videos").
		Preload("Seller").
		First(&horse, "id = ?", horseID).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listing"})
	}

	var latestVet *models.VetRecord
	var record models.VetRecord
	err = database.DB.
		Preload("Vaccines").
		Preload("Certificates").
		Where("horse_id = ? AND validation_status = ?", horseID, "validated").
		Order("review_date desc").
		First(&record).Error
	if err == nil {
		latestVet = &record
	}

	var priceUSD *float64
	if horse.Price != nil {
		if converted, err := services.ConvertToUSD(*horse.Price, horse.Currency); err == nil {
			priceUSD = &converted
		}
	}

	return c.JSON(fiber.Map{
		"data":       horse,
		"seller":     horse.Seller.Summary(),
		"vet_record": latestVet,
		"price_usd":  priceUSD,
	})
}

// POST /api/horses
func CreateHorse(c *fiber.Ctx) error {
	var req HorseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	horse := models.Horse{
		SellerID:   currentUserID(c),
		Name:       req.Name,
		Age:        req.Age,
		Breed:      req.Breed,
		Discipline: req.Discipline,
		Pedigree:   req.Pedigree,
		Location: models.Location{
			Country: req.Location.Country,
			Region:  req.Location.Region,
			City:    req.Location.City,
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
		},
		Price:    req.Price,
		Currency: req.Currency,
		Status:   "draft",
	}
	if horse.Currency == "" {
		horse.Currency = "USD"
	}
	for _, p := range req.Photos {
		horse.Photos = append(horse.Photos, models.HorsePhoto{URL: p.URL, Caption: p.Caption, IsCover: p.IsCover})
	}
	for _, v := range req.Videos {
		horse.Videos = append(horse.Videos, models.HorseVideo{
			URL:         v.URL,
			VideoType:   v.VideoType,
			Title:       v.Title,
			Description: v.Description,
			RecordedAt:  v.RecordedAt,
		})
	}

	if err := database.DB.Create(&horse).Error; err != nil {
		log.Printf("createHorse error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create listing"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Horse listing created", "data": horse})
}

// PUT /api/horses/:id
// Owner updates own listing; admins update any.
func UpdateHorse(c *fiber.Ctx) error {
	horseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid horse ID"})
	}

	query := database.DB.Where("id = ?", horseID)
	if currentUserRole(c) != "admin" {
		query = query.Where("seller_id = ?", currentUserID(c))
	}

	var horse models.Horse
	if err := query.Preload("Photos").Preload("Videos").First(&horse).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Horse not found or unauthorized"})
	}

	type UpdateRequest struct {
		HorseRequest
		Status *string `json:"status,omitempty" validate:"omitempty,oneof=active sold paused draft"`
	}
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	horse.Name = req.Name
	horse.Age = req.Age
	horse.Breed = req.Breed
	horse.Discipline = req.Discipline
	horse.Pedigree = req.Pedigree
	horse.Location = models.Location{
		Country: req.Location.Country,
		Region:  req.Location.Region,
		City:    req.Location.City,
		Lat:     req.Location.Lat,
		Lng:     req.Location.Lng,
	}
	horse.Price = req.Price
	if req.Currency != "" {
		horse.Currency = req.Currency
	}
	if req.Status != nil {
		horse.Status = *req.Status
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("horse_id = ?", horse.ID).Delete(&models.HorsePhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("horse_id = ?", horse.ID).Delete(&models.HorseVideo{}).Error; err != nil {
			return err
		}
		horse.Photos = nil
		horse.Videos = nil
		for _, p := range req.Photos {
			horse.Photos = append(horse.Photos, models.HorsePhoto{HorseID: horse.ID, URL: p.URL, Caption: p.Caption, IsCover: p.IsCover})
		}
		for _, v := range req.Videos {
			horse.Videos = append(horse.Videos, models.HorseVideo{
				HorseID:     horse.ID,
				URL:         v.URL,
				VideoType:   v.VideoType,
				Title:       v.Title,
				Description: v.Description,
				RecordedAt:  v.RecordedAt,
			})
		}
		return tx.Save(&horse).Error
	})
	if err != nil {
		log.Printf("updateHorse error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update listing"})
	}

	return c.JSON(fiber.Map{"data": horse})
}

// DELETE /api/horses/:id
// Owner deletes own listing; admins delete any. Vet records go with it.
func DeleteHorse(c *fiber.Ctx) error {
	horseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid horse ID"})
	}

	query := database.DB.Where("id = ?", horseID)
	if currentUserRole(c) != "admin" {
		query = query.Where("seller_id = ?", currentUserID(c))
	}

	var horse models.Horse
	if err := query.First(&horse).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Horse not found or unauthorized"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteHorseCascade(tx, horse.ID); err != nil {
			return err
		}
		return tx.Delete(&horse).Error
	})
	if err != nil {
		log.Printf("deleteHorse error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete listing"})
	}

	return c.JSON(fiber.Map{"message": "Horse listing deleted"})
}

func deleteHorseCascade(tx *gorm.DB, horseID uuid.UUID) error {
	if err := tx.Where("horse_id = ?", horseID).Delete(&models.HorsePhoto{}).Error; err != nil {
		return err
	}
	if err := tx.Where("horse_id = ?", horseID).Delete(&models.HorseVideo{}).Error; err != nil {
		return err
	}
	recordIDs := tx.Model(&models.VetRecord{}).Select("id").Where("horse_id = ?", horseID)
	if err := tx.Where("vet_record_id IN (?)", recordIDs).Delete(&models.Vaccine{}).Error; err != nil {
		return err
	}
	if err := tx.Where("vet_record_id IN (?)", recordIDs).Delete(&models.VetCertificate{}).Error; err != nil {
		return err
	}
	return tx.Where("horse_id = ?", horseID).Delete(&models.VetRecord{}).Error
}

// GET /api/horses/my-listings
func MyListings(c *fiber.Ctx) error {
	var horses []models.Horse
	err := database.DB.
		Where("seller_id = ?", currentUserID(c)).
		Order("created_at desc").
		Preload("Photos").
		Preload("Videos").
		Find(&horses).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listings"})
	}
	return c.JSON(horses)
}

type VaccineRequest struct {
	Name        string     `json:"name" validate:"required"`
	AppliedAt   time.Time  `json:"applied_at" validate:"required"`
	NextDueAt   *time.Time `json:"next_due_at,omitempty"`
	BatchNumber *string    `json:"batch_number,omitempty"`
}

type VetCertificateRequest struct {
	URL   string  `json:"url" validate:"required,url"`
	Title *string `json:"title,omitempty"`
}

// POST /api/horses/:id/vet-record
// Seller attaches a vet record to their own horse; it stays pending
// until an admin validates it.
func AddVetRecord(c *fiber.Ctx) error {
	horseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid horse ID"})
	}

	var horse models.Horse
	err = database.DB.Where("id = ? AND seller_id = ?", horseID, currentUserID(c)).First(&horse).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Horse not found or unauthorized"})
	}

	type Request struct {
		ReviewDate   time.Time               `json:"review_date" validate:"required"`
		HealthStatus string                  `json:"health_status" validate:"required"`
		Notes        *string                 `json:"notes,omitempty"`
		Vaccines     []VaccineRequest        `json:"vaccines,omitempty" validate:"omitempty,dive"`
		Certificates []VetCertificateRequest `json:"certificates,omitempty" validate:"omitempty,dive"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record := models.VetRecord{
		HorseID:          horse.ID,
		ReviewDate:       req.ReviewDate,
		HealthStatus:     req.HealthStatus,
		Notes:            req.Notes,
		ValidationStatus: "pending",
	}
	for _, v := range req.Vaccines {
		record.Vaccines = append(record.Vaccines, models.Vaccine{
			Name:        v.Name,
			AppliedAt:   v.AppliedAt,
			NextDueAt:   v.NextDueAt,
			BatchNumber: v.BatchNumber,
		})
	}
	for _, cert := range req.Certificates {
		record.Certificates = append(record.Certificates, models.VetCertificate{URL: cert.URL, Title: cert.Title})
	}

	if err := database.DB.Create(&record).Error; err != nil {
		log.Printf("addVetRecord error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create vet record"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Vet record submitted for validation", "data": record})
}

// GET /api/horses/:id/vet-records
// Public: only validated records are shown.
func GetVetRecords(c *fiber.Ctx) error {
	horseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid horse ID"})
	}

	var records []models.VetRecord
	err = database.DB.
		Preload("Vaccines").
		Preload("Certificates").
		Where("horse_id = ? AND validation_status = ?", horseID, "validated").
		Order("review_date desc").
		Find(&records).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch vet records"})
	}
	return c.JSON(records)
}

// POST /api/horses/:id/fact-sheet
// Seller renders a printable PDF of their listing and gets back the
// hosted URL.
func GenerateFactSheet(c *fiber.Ctx) error {
	horseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid horse ID"})
	}

	var horse models.Horse
	err = database.DB.
		Where("id = ? AND seller_id = ?", horseID, currentUserID(c)).
		Preload("Photos").
		Preload("Seller").
		First(&horse).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Horse not found or unauthorized"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listing"})
	}

	url, err := services.GenerateFactSheet(horse)
	if err != nil {
		log.Printf("generateFactSheet error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate fact sheet"})
	}

	return c.JSON(fiber.Map{"fact_sheet_url": url})
}
