package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/utils"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	checkoutService *service.CheckoutService
	validator       *utils.Validator
	webhookSecret   string
	log             *zap.Logger
}

func NewPaymentHandler(checkoutService *service.CheckoutService, validator *utils.Validator, webhookSecret string, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		checkoutService: checkoutService,
		validator:       validator,
		webhookSecret:   webhookSecret,
		log:             log,
	}
}

// CreatePackageCheckout starts the package purchase flow and returns the
// hosted checkout URL. Domain errors map to the documented statuses; internal
// failures are logged with detail and reduced to a generic message.
func (h *PaymentHandler) CreatePackageCheckout(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.PackageCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("packageId and a paymentType of full or installments are required"))
	}

	url, err := h.checkoutService.CreatePackageCheckout(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid package"))
		case errors.Is(err, service.ErrInvalidPaymentType):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid payment type"))
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		case errors.Is(err, service.ErrPaymentsNotConfigured):
			h.log.Error("checkout attempted without stripe configuration", zap.Uint("user_id", userID))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Payment is not configured"))
		default:
			h.log.Error("package checkout failed", zap.Uint("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Server error"))
		}
	}

	return c.JSON(models.CheckoutResponse{URL: url})
}

func (h *PaymentHandler) GetPackages(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(h.checkoutService.Plans(), "Packages retrieved"))
}

func (h *PaymentHandler) CreateSubscriptionCheckout(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.SubscriptionCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("priceId is required"))
	}

	url, err := h.checkoutService.CreateSubscriptionCheckout(userID, req.PriceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrice):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid price"))
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		case errors.Is(err, service.ErrPaymentsNotConfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Payment is not configured"))
		default:
			h.log.Error("subscription checkout failed", zap.Uint("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Server error"))
		}
	}

	return c.JSON(models.CheckoutResponse{URL: url})
}

func (h *PaymentHandler) CreateBillingPortal(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	url, err := h.checkoutService.CreateBillingPortal(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found"))
		case errors.Is(err, service.ErrNoBillingAccount):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No billing account for this user"))
		case errors.Is(err, service.ErrPaymentsNotConfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Payment is not configured"))
		default:
			h.log.Error("billing portal failed", zap.Uint("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Server error"))
		}
	}

	return c.JSON(models.CheckoutResponse{URL: url})
}

// HandleStripeWebhook is the processor-facing entry point. Signature
// verification is the only authentication; an invalid signature is a terminal
// 400 with zero state change, while a dispatch failure is a 500 so Stripe
// redelivers the event.
func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		h.log.Warn("webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	if err := h.checkoutService.HandleStripeWebhook(&event); err != nil {
		h.log.Error("webhook dispatch failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Webhook processing failed",
		})
	}

	return c.JSON(fiber.Map{"received": true})
}
