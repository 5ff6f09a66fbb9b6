package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oussamai/oussamai-backend/internal/billing"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/internal/service"
	"github.com/oussamai/oussamai-backend/pkg/utils"
)

const testWebhookSecret = "whsec_test"

// erroringUserStore fails every lookup, which makes any reconciling event
// surface as a dispatch error.
type erroringUserStore struct{}

func (erroringUserStore) GetByID(id uint) (*models.User, error) {
	return nil, errors.New("record not found")
}
func (erroringUserStore) GetByStripeCustomerID(customerID string) (*models.User, error) {
	return nil, errors.New("record not found")
}
func (erroringUserStore) GetByStripeSubscriptionID(subscriptionID string) (*models.User, error) {
	return nil, errors.New("record not found")
}
func (erroringUserStore) SetStripeCustomerID(userID uint, customerID string) error {
	return errors.New("record not found")
}
func (erroringUserStore) UpdateSubscription(userID uint, subscriptionID, priceID string, periodEnd *time.Time, plan models.UserPlan) error {
	return errors.New("record not found")
}

func newWebhookApp() *fiber.App {
	svc := service.NewCheckoutService(
		billing.DefaultCatalog(), nil, erroringUserStore{}, nil, nil,
		"https://app.example", nil, zap.NewNop())
	h := NewPaymentHandler(svc, utils.NewValidator(), testWebhookSecret, zap.NewNop())

	app := fiber.New()
	app.Post("/api/payments/webhook", h.HandleStripeWebhook)
	return app
}

// signPayload builds a Stripe-Signature header the way stripe signs webhook
// deliveries: v1 is an HMAC-SHA256 of "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestWebhookAcceptsSignedPayload(t *testing.T) {
	app := newWebhookApp()
	payload := []byte(`{"id":"evt_1","type":"charge.refunded","data":{"object":{}}}`)

	req := httptest.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, testWebhookSecret, time.Now().Unix()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"received":true}`, string(body))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	app := newWebhookApp()
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{"id":"sub_123"}}}`)

	cases := map[string]string{
		"missing header": "",
		"wrong secret":   signPayload(payload, "whsec_other", time.Now().Unix()),
		"garbage header": "t=abc,v1=deadbeef",
	}
	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(payload))
			if sig != "" {
				req.Header.Set("Stripe-Signature", sig)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestWebhookRejectsTamperedPayload(t *testing.T) {
	app := newWebhookApp()
	signed := []byte(`{"id":"evt_1","type":"charge.refunded","data":{"object":{}}}`)
	sig := signPayload(signed, testWebhookSecret, time.Now().Unix())

	tampered := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{"id":"sub_123"}}}`)
	req := httptest.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(tampered))
	req.Header.Set("Stripe-Signature", sig)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWebhookDispatchFailureIs500(t *testing.T) {
	app := newWebhookApp()
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.deleted","data":{"object":{"id":"sub_123"}}}`)

	req := httptest.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, testWebhookSecret, time.Now().Unix()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
