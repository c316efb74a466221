package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/notify"
	"github.com/holistichub/practitioner-hub/utils"
)

// CreateConsultation lets a patient request a session with a practitioner.
// Only one REQUESTED or SCHEDULED consultation may exist per pair.
func CreateConsultation(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if actor.Role != models.RolePatient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only patients can request consultations",
		})
	}

	type ConsultationInput struct {
		PractitionerID uint   `json:"practitioner_id"`
		Reason         string `json:"reason"`
	}
	input := new(ConsultationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.PractitionerID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "practitioner_id is required",
		})
	}

	var practitioner models.Practitioner
	if err := db.DB.Preload("User").First(&practitioner, input.PractitionerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Practitioner not found",
		})
	}

	active, err := models.HasActiveConsultation(db.DB, actor.UserID, practitioner.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check existing consultations",
			Error:   err.Error(),
		})
	}
	if active {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: models.ErrDuplicateConsultation.Error(),
		})
	}

	consultation := models.Consultation{
		PatientID:      actor.UserID,
		PractitionerID: practitioner.ID,
		Reason:         input.Reason,
		Status:         models.ConsultationRequested,
	}
	if err := db.DB.Create(&consultation).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create consultation",
			Error:   err.Error(),
		})
	}

	var patient models.User
	if err := db.DB.First(&patient, actor.UserID).Error; err == nil {
		notify.Dispatch(notify.ConsultationRequested(&practitioner, &patient, &consultation))
	}

	return c.Status(fiber.StatusCreated).JSON(consultation)
}

// GetMyConsultations lists the consultations the actor participates in:
// requested ones for patients, received ones for practitioners, all for staff.
func GetMyConsultations(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	query := db.DB.Preload("Practitioner").Preload("Patient")
	switch {
	case actor.IsStaff():
	case actor.Role == models.RolePractitioner:
		query = query.Where("practitioner_id = ?", actor.PractitionerID)
	default:
		query = query.Where("patient_id = ?", actor.UserID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var consultations []models.Consultation
	if err := query.Order("created_at DESC").Find(&consultations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch consultations",
			Error:   err.Error(),
		})
	}

	for i := range consultations {
		consultations[i].Patient.Password = ""
	}

	return c.JSON(consultations)
}

// UpdateConsultationStatus applies a lifecycle transition. The transition
// table is enforced first, then actor permissions; an illegal pair is a
// conflict no matter who asks.
func UpdateConsultationStatus(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	type TransitionInput struct {
		Status      models.ConsultationStatus `json:"status"`
		ScheduledAt *time.Time                `json:"scheduled_at"`
		Notes       *string                   `json:"notes"`
	}
	input := new(TransitionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "status is required",
		})
	}

	var consultation models.Consultation
	if err := db.DB.First(&consultation, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Consultation not found",
		})
	}

	err = consultation.UpdateStatus(db.DB, actor, input.Status, models.StatusUpdate{
		ScheduledAt: input.ScheduledAt,
		Notes:       input.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		case errors.Is(err, models.ErrTransitionDenied):
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update consultation",
				Error:   err.Error(),
			})
		}
	}

	var patient models.User
	var practitioner models.Practitioner
	if db.DB.First(&patient, consultation.PatientID).Error == nil &&
		db.DB.Preload("User").First(&practitioner, consultation.PractitionerID).Error == nil {
		notify.Dispatch(notify.ConsultationStatusChanged(&patient, &practitioner, &consultation))
	}

	return c.JSON(consultation)
}
