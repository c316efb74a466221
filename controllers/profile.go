package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/redis"
	"github.com/holistichub/practitioner-hub/utils"
)

// GetMyPractitionerProfile returns the authenticated practitioner's own
// profile with all listing associations.
func GetMyPractitionerProfile(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil || actor.PractitionerID == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "No practitioner profile for this account",
		})
	}

	var practitioner models.Practitioner
	err = db.DB.Preload("Specialties").Preload("Conditions").Preload("Insurances").
		First(&practitioner, actor.PractitionerID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Practitioner not found",
		})
	}

	return c.JSON(practitioner)
}

// UpdateMyPractitionerProfile updates profile fields and replaces the
// specialty/condition/insurance listings. The join rows are swapped inside a
// single transaction so a partial failure never leaves the listing mixed
// between old and new sets.
func UpdateMyPractitionerProfile(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil || actor.PractitionerID == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "No practitioner profile for this account",
		})
	}

	type ProfileUpdate struct {
		DisplayName *string  `json:"display_name"`
		Title       *string  `json:"title"`
		Bio         *string  `json:"bio"`
		City        *string  `json:"city"`
		State       *string  `json:"state"`
		Phone       *string  `json:"phone"`
		Website     *string  `json:"website"`
		Specialties []string `json:"specialties"`
		Conditions  []string `json:"conditions"`
		Insurances  []string `json:"insurances"`
	}
	input := new(ProfileUpdate)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var practitioner models.Practitioner
	if err := db.DB.First(&practitioner, actor.PractitionerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Practitioner not found",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if input.DisplayName != nil {
			updates["display_name"] = *input.DisplayName
		}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Bio != nil {
			updates["bio"] = *input.Bio
		}
		if input.City != nil {
			updates["city"] = *input.City
		}
		if input.State != nil {
			updates["state"] = *input.State
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Website != nil {
			updates["website"] = *input.Website
		}
		if len(updates) > 0 {
			if err := tx.Model(&practitioner).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.Specialties != nil {
			specialties, err := findOrCreateNamed[models.Specialty](tx, input.Specialties)
			if err != nil {
				return err
			}
			if err := tx.Model(&practitioner).Association("Specialties").Replace(specialties); err != nil {
				return err
			}
		}
		if input.Conditions != nil {
			conditions, err := findOrCreateNamed[models.Condition](tx, input.Conditions)
			if err != nil {
				return err
			}
			if err := tx.Model(&practitioner).Association("Conditions").Replace(conditions); err != nil {
				return err
			}
		}
		if input.Insurances != nil {
			insurances, err := findOrCreateNamed[models.Insurance](tx, input.Insurances)
			if err != nil {
				return err
			}
			if err := tx.Model(&practitioner).Association("Insurances").Replace(insurances); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}

	// directory results may now be stale
	redis.InvalidatePrefix("directory:search:")

	return GetMyPractitionerProfile(c)
}

// findOrCreateNamed resolves a list of names to rows of a named lookup table,
// creating missing ones.
func findOrCreateNamed[T any](tx *gorm.DB, names []string) ([]*T, error) {
	out := make([]*T, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		row := new(T)
		err := tx.Where("name = ?", name).
			Attrs(map[string]interface{}{"name": name}).
			FirstOrCreate(row).Error
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// UploadProfilePhoto stores the practitioner's photo in Cloudinary and saves
// the returned URL.
func UploadProfilePhoto(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil || actor.PractitionerID == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "No practitioner profile for this account",
		})
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "photo file is required",
			Error:   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to read uploaded file",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadProfilePhoto(file, fmt.Sprintf("practitioner-%d", actor.PractitionerID))
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(utils.ErrorResponse{
			Message: "Failed to upload photo",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&models.Practitioner{}).
		Where("id = ?", actor.PractitionerID).
		Update("photo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save photo URL",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"photo_url": url})
}
