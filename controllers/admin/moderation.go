package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/utils"
)

// GetPendingReviews lists unpublished reviews awaiting moderation, oldest
// first.
func GetPendingReviews(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset := (page - 1) * limit

	var count int64
	db.DB.Model(&models.Review{}).Where("is_published = ?", false).Count(&count)

	var reviews []models.Review
	err := db.DB.Preload("Practitioner").
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Where("is_published = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch pending reviews",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"total":   count,
		"page":    page,
		"limit":   limit,
	})
}

// ModerateReview approves or rejects a pending review. Approval publishes it
// and recomputes the practitioner's rating and review count in the same
// transaction; rejection deletes the review permanently and leaves the stats
// alone.
func ModerateReview(c *fiber.Ctx) error {
	type ModerationInput struct {
		Action string `json:"action"` // "approve" or "reject"
	}
	input := new(ModerationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Action != "approve" && input.Action != "reject" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Action must be approve or reject",
		})
	}

	var review models.Review
	if err := db.DB.First(&review, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Review not found",
		})
	}
	if review.IsPublished {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Review has already been moderated",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if input.Action == "approve" {
			return review.Approve(tx)
		}
		return review.Reject(tx)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to moderate review",
			Error:   err.Error(),
		})
	}

	if input.Action == "reject" {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(review)
}
