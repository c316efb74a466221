package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/models"
)

// CurrentActor builds the Actor for the authenticated request. Practitioners
// get their profile ID resolved so ownership checks can compare against it.
func CurrentActor(c *fiber.Ctx) (models.Actor, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return models.Actor{}, errors.New("no authenticated user")
	}
	role, _ := c.Locals("role").(string)

	actor := models.Actor{UserID: userID, Role: role}

	if role == models.RolePractitioner {
		var practitioner models.Practitioner
		err := db.DB.Select("id").Where("user_id = ?", userID).First(&practitioner).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Actor{}, err
		}
		actor.PractitionerID = practitioner.ID
	}

	return actor, nil
}
