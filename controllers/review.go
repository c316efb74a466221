package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/utils"
)

// CreateReview adds a new review for a practitioner. Reviews start
// unpublished and only appear in the directory after moderation. IsVerified
// is fixed at creation time: true iff a completed consultation exists for the
// pair.
func CreateReview(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if actor.Role != models.RolePatient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only patients can write reviews",
		})
	}

	type ReviewInput struct {
		PractitionerID uint   `json:"practitioner_id"`
		Rating         int    `json:"rating"`
		Comment        string `json:"comment"`
	}
	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid review data",
			Error:   err.Error(),
		})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Rating must be between 1 and 5",
			Details: fiber.Map{"rating": input.Rating},
		})
	}

	var practitioner models.Practitioner
	if err := db.DB.First(&practitioner, input.PractitionerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Practitioner not found",
		})
	}

	review := models.Review{
		PractitionerID: practitioner.ID,
		PatientID:      actor.UserID,
		Rating:         input.Rating,
		Comment:        input.Comment,
	}

	hasExisting, err := review.HasExistingReview(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check existing reviews",
			Error:   err.Error(),
		})
	}
	if hasExisting {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "You have already reviewed this practitioner",
		})
	}

	// Verified iff a completed consultation exists for the pair, decided now
	// and never revisited.
	var completed models.Consultation
	err = db.DB.Where("patient_id = ? AND practitioner_id = ? AND status = ?",
		actor.UserID, practitioner.ID, models.ConsultationCompleted).
		First(&completed).Error
	if err == nil {
		review.IsVerified = true
		review.ConsultationID = &completed.ID
	} else if err != gorm.ErrRecordNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check consultations",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Create(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create review",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetPractitionerReviews lists the published reviews for a practitioner,
// newest first, with pagination. Unpublished reviews are invisible here.
func GetPractitionerReviews(c *fiber.Ctx) error {
	practitionerID := c.Params("id")

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	var reviews []models.Review
	if err := db.DB.Preload("Patient", func(db *gorm.DB) *gorm.DB {
		// Only select non-sensitive fields
		return db.Select("id, name, created_at")
	}).
		Where("practitioner_id = ? AND is_published = ?", practitionerID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}

	var count int64
	db.DB.Model(&models.Review{}).
		Where("practitioner_id = ? AND is_published = ?", practitionerID, true).
		Count(&count)

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"total":   count,
		"page":    page,
		"limit":   limit,
		"pages":   (int(count) + limit - 1) / limit,
	})
}
