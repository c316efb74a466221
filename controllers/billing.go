package controllers

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/holistichub/practitioner-hub/db"
	"github.com/holistichub/practitioner-hub/middleware"
	"github.com/holistichub/practitioner-hub/models"
	"github.com/holistichub/practitioner-hub/utils"
)

// tierPriceID maps a paid tier to its Stripe price, configured per
// environment (STRIPE_PRICE_PROFESSIONAL etc).
func tierPriceID(tier models.MembershipTier) string {
	return os.Getenv("STRIPE_PRICE_" + strings.ToUpper(string(tier)))
}

// CreateCheckoutSession starts a Stripe checkout for a membership upgrade.
// The subscription lifecycle itself lives in Stripe; this endpoint only hands
// the practitioner a redirect URL. Webhook-driven tier changes are handled
// out of band.
func CreateCheckoutSession(c *fiber.Ctx) error {
	actor, err := middleware.CurrentActor(c)
	if err != nil || actor.PractitionerID == 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "No practitioner profile for this account",
		})
	}

	type CheckoutInput struct {
		Tier models.MembershipTier `json:"tier"`
	}
	input := new(CheckoutInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	switch input.Tier {
	case models.TierProfessional, models.TierPremium, models.TierElite, models.TierEnterprise:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown or non-purchasable membership tier",
		})
	}

	priceID := tierPriceID(input.Tier)
	if priceID == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("No Stripe price configured for tier %s", input.Tier),
		})
	}

	var practitioner models.Practitioner
	if err := db.DB.Preload("User").First(&practitioner, actor.PractitionerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Practitioner not found",
		})
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8000"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(practitioner.User.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(appURL + "/membership/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(appURL + "/membership/cancelled"),
	}
	params.AddMetadata("practitioner_id", fmt.Sprint(practitioner.ID))
	params.AddMetadata("tier", string(input.Tier))

	sess, err := session.New(params)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(utils.ErrorResponse{
			Message: "Payment provider is temporarily unavailable, please retry",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"checkout_url": sess.URL,
	})
}
