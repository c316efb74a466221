package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/notify"
	"github.com/holistichub/practitioner-hub/quota"
	"github.com/holistichub/practitioner-hub/utils"
)

// CreateEvent creates an event hosted by a practitioner (quota-gated) or an
// admin (ungated).
func CreateEvent(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if actor.Role != models.RolePractitioner && actor.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only practitioners and admins can create events",
		})
	}

	type EventInput struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		StartsAt    time.Time `json:"starts_at"`
		EndsAt      time.Time `json:"ends_at"`
		Capacity    *int      `json:"capacity"`
	}
	input := new(EventInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Title == "" || input.StartsAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
			Details: fiber.Map{"required": []string{"title", "starts_at"}},
		})
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Capacity cannot be negative",
		})
	}

	event := models.Event{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Capacity:    input.Capacity,
		CreatedByID: actor.UserID,
	}

	if actor.Role == models.RolePractitioner {
		var practitioner models.Practitioner
		if err := db.DB.First(&practitioner, actor.PractitionerID).Error; err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "No practitioner profile for this account",
			})
		}
		if err := quota.Admit(db.DB, &practitioner, quota.ResourceEvents); err != nil {
			var denied *quota.DeniedError
			if errors.As(err, &denied) {
				return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
					Message: denied.Reason,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to check event limit",
				Error:   err.Error(),
			})
		}
		event.PractitionerID = &practitioner.ID
	}

	if err := db.DB.Create(&event).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create event",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// GetEvents lists upcoming events with their remaining capacity.
func GetEvents(c *fiber.Ctx) error {
	var events []models.Event
	if err := db.DB.Preload("Practitioner").
		Where("starts_at >= ?", time.Now()).
		Order("starts_at ASC").
		Find(&events).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch events",
			Error:   err.Error(),
		})
	}

	for i := range events {
		events[i].LoadSpotsRemaining(db.DB)
	}

	return c.JSON(events)
}

// GetEvent returns one event with remaining capacity.
func GetEvent(c *fiber.Ctx) error {
	var event models.Event
	if err := db.DB.Preload("Practitioner").First(&event, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Event not found",
		})
	}
	if err := event.LoadSpotsRemaining(db.DB); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to count registrations",
			Error:   err.Error(),
		})
	}
	return c.JSON(event)
}

// RegisterForEvent takes a public registration: one per email per event,
// rejected when the event is full. The capacity and duplicate checks run
// inside one transaction with the insert.
func RegisterForEvent(c *fiber.Ctx) error {
	type RegistrationInput struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	input := new(RegistrationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Name == "" || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
			Details: fiber.Map{"required": []string{"name", "email"}},
		})
	}

	var event models.Event
	if err := db.DB.First(&event, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Event not found",
		})
	}

	var registration *models.EventRegistration
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		registration, err = event.Register(tx, input.Name, input.Email)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadyRegistered), errors.Is(err, models.ErrEventFull):
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to register for event",
				Error:   err.Error(),
			})
		}
	}

	notify.Dispatch(notify.EventRegistered(&event, registration))

	return c.Status(fiber.StatusCreated).JSON(registration)
}
