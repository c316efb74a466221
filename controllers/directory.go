package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/redis"
	"github.com/holistichub/practitioner-hub/utils"
)

const (
	searchTimeout  = 5 * time.Second
	searchCacheTTL = 5 * time.Minute
	searchCacheKey = "directory:search:"
)

// SearchPractitioners is the public directory search: free-text over name and
// bio, filters for specialty, condition, insurance and city, ordered by
// rating. The aggregate query runs under an explicit timeout; a slow store
// fails the whole request as retryable rather than hanging the caller.
func SearchPractitioners(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	cacheKey := fmt.Sprintf("%s%s|%s|%s|%s|%s|%d|%d",
		searchCacheKey, c.Query("q"), c.Query("specialty"), c.Query("condition"),
		c.Query("insurance"), c.Query("city"), page, limit)
	if cached := redis.GetCached(cacheKey); cached != "" {
		c.Set("Content-Type", "application/json")
		return c.SendString(cached)
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	query := db.DB.WithContext(ctx).Model(&models.Practitioner{}).
		Where("membership_status = ?", models.MembershipActive)

	if q := c.Query("q"); q != "" {
		like := fmt.Sprintf("%%%s%%", q)
		query = query.Where("display_name ILIKE ? OR bio ILIKE ?", like, like)
	}
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.
			Joins("JOIN practitioner_specialties ps ON ps.practitioner_id = practitioners.id").
			Joins("JOIN specialties ON specialties.id = ps.specialty_id").
			Where("specialties.name = ?", specialty)
	}
	if condition := c.Query("condition"); condition != "" {
		query = query.
			Joins("JOIN practitioner_conditions pc ON pc.practitioner_id = practitioners.id").
			Joins("JOIN conditions ON conditions.id = pc.condition_id").
			Where("conditions.name = ?", condition)
	}
	if insurance := c.Query("insurance"); insurance != "" {
		query = query.
			Joins("JOIN practitioner_insurances pi ON pi.practitioner_id = practitioners.id").
			Joins("JOIN insurances ON insurances.id = pi.insurance_id").
			Where("insurances.name = ?", insurance)
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city ILIKE ?", city)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return searchError(c, err)
	}

	var practitioners []models.Practitioner
	err := query.Preload("Specialties").Preload("Insurances").
		Order("rating DESC, review_count DESC").
		Limit(limit).
		Offset(offset).
		Find(&practitioners).Error
	if err != nil {
		return searchError(c, err)
	}

	payload := fiber.Map{
		"practitioners": practitioners,
		"total":         count,
		"page":          page,
		"limit":         limit,
		"pages":         (int(count) + limit - 1) / limit,
	}

	if encoded, err := json.Marshal(payload); err == nil {
		redis.SetCached(cacheKey, string(encoded), searchCacheTTL)
	}

	return c.JSON(payload)
}

func searchError(c *fiber.Ctx, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(utils.ErrorResponse{
			Message: "Directory search is temporarily unavailable, please retry",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
		Message: "Failed to search practitioners",
		Error:   err.Error(),
	})
}

// GetPractitioner returns a public practitioner profile with its published
// review stats and listing associations.
func GetPractitioner(c *fiber.Ctx) error {
	var practitioner models.Practitioner
	err := db.DB.Preload("Specialties").Preload("Conditions").Preload("Insurances").
		First(&practitioner, c.Params("id")).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Practitioner not found",
		})
	}

	return c.JSON(practitioner)
}
