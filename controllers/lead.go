package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/notify"
	"github.com/holistichub/practitioner-hub/quota"
	"github.com/holistichub/practitioner-hub/utils"
)

// CreateLead handles a public patient inquiry. The creation is gated by the
// receiving practitioner's monthly lead quota; on success the practitioner is
// notified best-effort.
func CreateLead(c *fiber.Ctx) error {
	type LeadInput struct {
		PractitionerID uint    `json:"practitioner_id"`
		Name           string  `json:"name"`
		Email          string  `json:"email"`
		Phone          string  `json:"phone"`
		Condition      *string `json:"condition"`
		Message        string  `json:"message"`
	}

	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if input.PractitionerID == 0 || input.Name == "" || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
			Details: fiber.Map{"required": []string{"practitioner_id", "name", "email"}},
		})
	}

	var practitioner models.Practitioner
	if err := db.DB.Preload("User").First(&practitioner, input.PractitionerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Practitioner not found",
		})
	}

	if err := quota.Admit(db.DB, &practitioner, quota.ResourceLeads); err != nil {
		var denied *quota.DeniedError
		if errors.As(err, &denied) {
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "This practitioner is not accepting new inquiries right now",
				Details: fiber.Map{"reason": denied.Reason},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check inquiry limit",
			Error:   err.Error(),
		})
	}

	lead := models.Lead{
		PractitionerID: practitioner.ID,
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Condition:      input.Condition,
		Message:        input.Message,
	}
	if err := db.DB.Create(&lead).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create inquiry",
			Error:   err.Error(),
		})
	}

	notify.Dispatch(notify.NewLead(&practitioner, &lead))

	return c.Status(fiber.StatusCreated).JSON(lead)
}

// GetMyLeads lists the authenticated practitioner's own leads, newest first,
// optionally filtered by status.
func GetMyLeads(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}
	if actor.PractitionerID == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "No practitioner profile for this account",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	query := db.DB.Model(&models.Lead{}).Where("practitioner_id = ?", actor.PractitionerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	query.Count(&count)

	var leads []models.Lead
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&leads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch leads",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"leads": leads,
		"total": count,
		"page":  page,
		"limit": limit,
		"pages": (int(count) + limit - 1) / limit,
	})
}

// UpdateLeadStatus lets the owning practitioner (or staff) move a lead through
// NEW, CONTACTED, CONVERTED, CLOSED. Only the status field is mutable.
func UpdateLeadStatus(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	type StatusInput struct {
		Status models.LeadStatus `json:"status"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	switch input.Status {
	case models.LeadNew, models.LeadContacted, models.LeadConverted, models.LeadClosed:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown lead status",
		})
	}

	var lead models.Lead
	if err := db.DB.First(&lead, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Lead not found",
		})
	}

	if !actor.IsStaff() && lead.PractitionerID != actor.PractitionerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission to update this lead",
		})
	}

	if err := db.DB.Model(&lead).Update("status", input.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update lead",
			Error:   err.Error(),
		})
	}

	return c.JSON(lead)
}
