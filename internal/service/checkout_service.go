package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oussamai/oussamai-backend/internal/billing"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

var (
	ErrInvalidPlan           = errors.New("invalid plan")
	ErrUserNotFound          = errors.New("user not found")
	ErrPaymentsNotConfigured = errors.New("payments are not configured")
	ErrInvalidPaymentType    = errors.New("invalid payment type")
	ErrInvalidPrice          = errors.New("invalid subscription price")
	ErrNoBillingAccount      = errors.New("no billing account for user")
)

// PaymentProvider is the processor capability surface the checkout flow
// needs; pkg/payment.StripeClient is the production implementation.
type PaymentProvider interface {
	Enabled() bool
	CreateCustomer(email, name string) (string, error)
	CreatePackageCheckoutSession(p payment.PackageSessionParams) (*stripe.CheckoutSession, error)
	CreateSubscriptionCheckoutSession(customerID, priceID, successURL, cancelURL string, metadata map[string]string) (*stripe.CheckoutSession, error)
	CreateBillingPortalSession(customerID, returnURL string) (string, error)
	GetSubscription(id string) (*stripe.Subscription, error)
}

type CheckoutUserStore interface {
	GetByID(id uint) (*models.User, error)
	GetByStripeCustomerID(customerID string) (*models.User, error)
	GetByStripeSubscriptionID(subscriptionID string) (*models.User, error)
	SetStripeCustomerID(userID uint, customerID string) error
	UpdateSubscription(userID uint, subscriptionID, priceID string, periodEnd *time.Time, plan models.UserPlan) error
}

type CheckoutWeddingStore interface {
	GetByIDForUser(id, userID uint) (*models.Wedding, error)
	Create(wedding *models.Wedding, ownerID uint) error
}

type CheckoutPackageStore interface {
	Create(pkg *models.WeddingPackage) error
	CreateWithPayments(pkg *models.WeddingPackage, payments []models.Payment) error
}

type CheckoutService struct {
	catalog  billing.Catalog
	provider PaymentProvider
	users    CheckoutUserStore
	weddings CheckoutWeddingStore
	packages CheckoutPackageStore
	appURL   string
	// Price ids subscription checkout accepts. Empty means unrestricted,
	// for environments without the price env vars.
	subscriptionPrices []string
	log                *zap.Logger
	now                func() time.Time
}

func NewCheckoutService(
	catalog billing.Catalog,
	provider PaymentProvider,
	users CheckoutUserStore,
	weddings CheckoutWeddingStore,
	packages CheckoutPackageStore,
	appURL string,
	subscriptionPrices []string,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog:            catalog,
		provider:           provider,
		users:              users,
		weddings:           weddings,
		packages:           packages,
		appURL:             appURL,
		subscriptionPrices: subscriptionPrices,
		log:                log,
		now:                time.Now,
	}
}

func (s *CheckoutService) Plans() []billing.PlanTerms {
	return s.catalog.All()
}

// CreatePackageCheckout runs the package purchase flow: resolve the plan,
// make sure a Stripe customer and a target wedding exist, open a hosted
// checkout session and persist the purchase record (plus its payment
// schedule in installment mode). It returns the hosted checkout URL.
func (s *CheckoutService) CreatePackageCheckout(userID uint, req models.PackageCheckoutRequest) (string, error) {
	terms, err := s.catalog.Resolve(req.PackageID)
	if err != nil {
		return "", ErrInvalidPlan
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	// Checked before any processor call so a missing secret at boot surfaces
	// as a configuration problem, not a generic downstream failure.
	if !s.provider.Enabled() {
		return "", ErrPaymentsNotConfigured
	}

	if req.PaymentType != "full" && req.PaymentType != "installments" {
		return "", ErrInvalidPaymentType
	}

	customerID, err := s.ensureCustomer(user)
	if err != nil {
		return "", err
	}

	wedding, err := s.resolveWedding(user, req.WeddingID, terms)
	if err != nil {
		return "", err
	}

	if req.PaymentType == "full" {
		return s.checkoutFull(user, wedding, customerID, terms)
	}
	return s.checkoutInstallments(user, wedding, customerID, terms, req.Installments)
}

// ensureCustomer returns the user's Stripe customer id, creating and
// persisting one on first use. A stored id is never regenerated.
func (s *CheckoutService) ensureCustomer(user *models.User) (string, error) {
	if user.StripeCustomerID != "" {
		return user.StripeCustomerID, nil
	}

	customerID, err := s.provider.CreateCustomer(user.Email, user.Name)
	if err != nil {
		return "", err
	}

	if err := s.users.SetStripeCustomerID(user.ID, customerID); err != nil {
		return "", err
	}
	user.StripeCustomerID = customerID

	s.log.Info("created stripe customer",
		zap.Uint("user_id", user.ID),
		zap.String("customer_id", customerID))

	return customerID, nil
}

// resolveWedding reuses the given wedding when the user owns it, otherwise
// creates a placeholder wedding one year out with the plan's guest limit.
func (s *CheckoutService) resolveWedding(user *models.User, weddingID uint, terms billing.PlanTerms) (*models.Wedding, error) {
	if weddingID != 0 {
		wedding, err := s.weddings.GetByIDForUser(weddingID, user.ID)
		if err == nil {
			return wedding, nil
		}
	}

	partner1 := user.Name
	if partner1 == "" {
		partner1 = "Partenaire 1"
	}

	wedding := &models.Wedding{
		Name:         "Mon Mariage",
		Date:         s.now().AddDate(1, 0, 0),
		Partner1Name: partner1,
		Partner2Name: "Partenaire 2",
		GuestLimit:   terms.GuestLimit,
	}
	if err := s.weddings.Create(wedding, user.ID); err != nil {
		return nil, err
	}
	return wedding, nil
}

func (s *CheckoutService) checkoutFull(user *models.User, wedding *models.Wedding, customerID string, terms billing.PlanTerms) (string, error) {
	sess, err := s.provider.CreatePackageCheckoutSession(payment.PackageSessionParams{
		CustomerID:  customerID,
		ProductName: fmt.Sprintf("OussamAI - Forfait %s", terms.Name),
		Description: fmt.Sprintf("Forfait mariage complet avec %s", guestLimitLabel(terms.GuestLimit)),
		AmountCents: int64(terms.Price) * 100,
		SuccessURL:  fmt.Sprintf("%s/dashboard?payment=success&package=%s", s.appURL, terms.ID),
		CancelURL:   s.appURL + "/pricing?canceled=true",
		Metadata: map[string]string{
			"userId":      strconv.FormatUint(uint64(user.ID), 10),
			"weddingId":   strconv.FormatUint(uint64(wedding.ID), 10),
			"packageId":   terms.ID,
			"paymentType": "full",
		},
	})
	if err != nil {
		return "", err
	}

	pkg := &models.WeddingPackage{
		WeddingID:       wedding.ID,
		Name:            terms.Name,
		TotalPrice:      terms.Price,
		PaymentType:     models.PaymentTypeFull,
		Status:          models.PackageStatusPending,
		GuestLimit:      terms.GuestLimit,
		IncludesAI:      terms.IncludesAI,
		IncludesEmails:  terms.IncludesEmails,
		IncludesSupport: terms.IncludesSupport,
		IncludesPlanner: terms.IncludesPlanner,
		StripeSessionID: sess.ID,
	}
	if err := s.packages.Create(pkg); err != nil {
		return "", err
	}

	s.log.Info("package checkout created",
		zap.Uint("user_id", user.ID),
		zap.String("plan", terms.ID),
		zap.String("payment_type", "full"))

	return sess.URL, nil
}

func (s *CheckoutService) checkoutInstallments(user *models.User, wedding *models.Wedding, customerID string, terms billing.PlanTerms, count int) (string, error) {
	if count <= 0 {
		count = billing.DefaultInstallments
	}
	installmentAmount := billing.InstallmentAmount(terms.Price, count)

	sess, err := s.provider.CreatePackageCheckoutSession(payment.PackageSessionParams{
		CustomerID:  customerID,
		ProductName: fmt.Sprintf("OussamAI - Forfait %s (Acompte)", terms.Name),
		Description: fmt.Sprintf("Première échéance sur %d - Total: %d€", count, terms.Price),
		AmountCents: int64(installmentAmount) * 100,
		SuccessURL:  fmt.Sprintf("%s/dashboard?payment=success&package=%s&installments=%d", s.appURL, terms.ID, count),
		CancelURL:   s.appURL + "/pricing?canceled=true",
		SaveCard:    true,
		Metadata: map[string]string{
			"userId":            strconv.FormatUint(uint64(user.ID), 10),
			"weddingId":         strconv.FormatUint(uint64(wedding.ID), 10),
			"packageId":         terms.ID,
			"paymentType":       "installments",
			"installmentsCount": strconv.Itoa(count),
			"installmentNumber": "1",
		},
	})
	if err != nil {
		return "", err
	}

	pkg := &models.WeddingPackage{
		WeddingID:         wedding.ID,
		Name:              terms.Name,
		TotalPrice:        terms.Price,
		DepositAmount:     installmentAmount,
		PaymentType:       models.PaymentTypeInstallments,
		InstallmentsCount: count,
		InstallmentAmount: installmentAmount,
		Status:            models.PackageStatusPending,
		GuestLimit:        terms.GuestLimit,
		IncludesAI:        terms.IncludesAI,
		IncludesEmails:    terms.IncludesEmails,
		IncludesSupport:   terms.IncludesSupport,
		IncludesPlanner:   terms.IncludesPlanner,
		StripeSessionID:   sess.ID,
	}
	schedule := billing.BuildSchedule(0, terms.Price, count, s.now())
	if err := s.packages.CreateWithPayments(pkg, schedule); err != nil {
		return "", err
	}

	s.log.Info("package checkout created",
		zap.Uint("user_id", user.ID),
		zap.String("plan", terms.ID),
		zap.String("payment_type", "installments"),
		zap.Int("installments", count))

	return sess.URL, nil
}

// CreateSubscriptionCheckout opens a subscription-mode hosted checkout for a
// premium price id. Completion is applied by the webhook, never here.
func (s *CheckoutService) CreateSubscriptionCheckout(userID uint, priceID string) (string, error) {
	if !s.allowedSubscriptionPrice(priceID) {
		return "", ErrInvalidPrice
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	if !s.provider.Enabled() {
		return "", ErrPaymentsNotConfigured
	}

	customerID, err := s.ensureCustomer(user)
	if err != nil {
		return "", err
	}

	sess, err := s.provider.CreateSubscriptionCheckoutSession(
		customerID,
		priceID,
		s.appURL+"/dashboard?success=true",
		s.appURL+"/pricing?canceled=true",
		map[string]string{
			"userId": strconv.FormatUint(uint64(user.ID), 10),
		},
	)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

func (s *CheckoutService) CreateBillingPortal(userID uint) (string, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	if !s.provider.Enabled() {
		return "", ErrPaymentsNotConfigured
	}

	if user.StripeCustomerID == "" {
		return "", ErrNoBillingAccount
	}

	return s.provider.CreateBillingPortalSession(user.StripeCustomerID, s.appURL+"/dashboard/settings")
}

// HandleStripeWebhook applies one verified processor event. Every branch is
// an absolute set keyed by customer or subscription id, so redelivery of the
// same event converges on the same state. Unhandled event types are ignored.
func (s *CheckoutService) HandleStripeWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return err
		}

		if sess.Mode != stripe.CheckoutSessionModeSubscription || sess.Subscription == nil {
			// One-time package payments carry their correlation in the
			// stored package record; nothing to reconcile here.
			return nil
		}

		if sess.Customer == nil {
			return fmt.Errorf("checkout session %s has no customer", sess.ID)
		}

		sub, err := s.provider.GetSubscription(sess.Subscription.ID)
		if err != nil {
			return err
		}

		user, err := s.users.GetByStripeCustomerID(sess.Customer.ID)
		if err != nil {
			return err
		}

		periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
		return s.users.UpdateSubscription(user.ID, sub.ID, subscriptionPriceID(sub), &periodEnd, models.PlanPremium)

	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return err
		}

		if invoice.Subscription == nil {
			return nil
		}
		if invoice.Customer == nil {
			return fmt.Errorf("invoice %s has no customer", invoice.ID)
		}

		sub, err := s.provider.GetSubscription(invoice.Subscription.ID)
		if err != nil {
			return err
		}

		user, err := s.users.GetByStripeCustomerID(invoice.Customer.ID)
		if err != nil {
			return err
		}

		periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
		return s.users.UpdateSubscription(user.ID, sub.ID, subscriptionPriceID(sub), &periodEnd, models.PlanPremium)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}

		user, err := s.users.GetByStripeSubscriptionID(sub.ID)
		if err != nil {
			return err
		}

		return s.users.UpdateSubscription(user.ID, "", "", nil, models.PlanFree)

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}

		user, err := s.users.GetByStripeSubscriptionID(sub.ID)
		if err != nil {
			return err
		}

		periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
		return s.users.UpdateSubscription(user.ID, sub.ID, subscriptionPriceID(&sub), &periodEnd, user.Plan)
	}

	return nil
}

func (s *CheckoutService) allowedSubscriptionPrice(priceID string) bool {
	if priceID == "" {
		return false
	}
	if len(s.subscriptionPrices) == 0 {
		return true
	}
	for _, p := range s.subscriptionPrices {
		if p == priceID {
			return true
		}
	}
	return false
}

func subscriptionPriceID(sub *stripe.Subscription) string {
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		return sub.Items.Data[0].Price.ID
	}
	return ""
}

func guestLimitLabel(limit int) string {
	if limit >= 999999 {
		return "invités illimités"
	}
	return fmt.Sprintf("%d invités max", limit)
}
