package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/oussamai/oussamai-backend/internal/billing"
	"github.com/oussamai/oussamai-backend/internal/models"
	"github.com/oussamai/oussamai-backend/pkg/payment"
)

type fakeProvider struct {
	enabled bool

	createCustomerCalls int
	customerID          string

	packageSessions []payment.PackageSessionParams
	sessionID       string
	sessionURL      string

	subscription *stripe.Subscription
	subErr       error
}

func (f *fakeProvider) Enabled() bool { return f.enabled }

func (f *fakeProvider) CreateCustomer(email, name string) (string, error) {
	f.createCustomerCalls++
	return f.customerID, nil
}

func (f *fakeProvider) CreatePackageCheckoutSession(p payment.PackageSessionParams) (*stripe.CheckoutSession, error) {
	f.packageSessions = append(f.packageSessions, p)
	return &stripe.CheckoutSession{ID: f.sessionID, URL: f.sessionURL}, nil
}

func (f *fakeProvider) CreateSubscriptionCheckoutSession(customerID, priceID, successURL, cancelURL string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	return &stripe.CheckoutSession{ID: f.sessionID, URL: f.sessionURL}, nil
}

func (f *fakeProvider) CreateBillingPortalSession(customerID, returnURL string) (string, error) {
	return "https://billing.example/" + customerID, nil
}

func (f *fakeProvider) GetSubscription(id string) (*stripe.Subscription, error) {
	if f.subErr != nil {
		return nil, f.subErr
	}
	return f.subscription, nil
}

type fakeUserStore struct {
	users map[uint]*models.User

	setCustomerCalls int
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (f *fakeUserStore) GetByStripeCustomerID(customerID string) (*models.User, error) {
	for _, u := range f.users {
		if u.StripeCustomerID == customerID && customerID != "" {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeUserStore) GetByStripeSubscriptionID(subscriptionID string) (*models.User, error) {
	for _, u := range f.users {
		if u.StripeSubscriptionID == subscriptionID && subscriptionID != "" {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeUserStore) SetStripeCustomerID(userID uint, customerID string) error {
	f.setCustomerCalls++
	u, ok := f.users[userID]
	if !ok {
		return errors.New("record not found")
	}
	if u.StripeCustomerID == "" {
		u.StripeCustomerID = customerID
	}
	return nil
}

func (f *fakeUserStore) UpdateSubscription(userID uint, subscriptionID, priceID string, periodEnd *time.Time, plan models.UserPlan) error {
	u, ok := f.users[userID]
	if !ok {
		return errors.New("record not found")
	}
	u.StripeSubscriptionID = subscriptionID
	u.StripePriceID = priceID
	u.StripeCurrentPeriodEnd = periodEnd
	u.Plan = plan
	return nil
}

type fakeWeddingStore struct {
	weddings map[uint]*models.Wedding
	owners   map[uint]uint

	created []*models.Wedding
	nextID  uint
}

func (f *fakeWeddingStore) GetByIDForUser(id, userID uint) (*models.Wedding, error) {
	w, ok := f.weddings[id]
	if !ok || f.owners[id] != userID {
		return nil, errors.New("record not found")
	}
	return w, nil
}

func (f *fakeWeddingStore) Create(wedding *models.Wedding, ownerID uint) error {
	f.nextID++
	wedding.ID = f.nextID
	f.weddings[wedding.ID] = wedding
	f.owners[wedding.ID] = ownerID
	f.created = append(f.created, wedding)
	return nil
}

type fakePackageStore struct {
	packages []*models.WeddingPackage
	payments [][]models.Payment

	createErr error
}

func (f *fakePackageStore) Create(pkg *models.WeddingPackage) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.packages = append(f.packages, pkg)
	return nil
}

func (f *fakePackageStore) CreateWithPayments(pkg *models.WeddingPackage, payments []models.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.packages = append(f.packages, pkg)
	f.payments = append(f.payments, payments)
	return nil
}

type checkoutFixture struct {
	svc      *CheckoutService
	provider *fakeProvider
	users    *fakeUserStore
	weddings *fakeWeddingStore
	packages *fakePackageStore
}

func newCheckoutFixture() *checkoutFixture {
	provider := &fakeProvider{
		enabled:    true,
		customerID: "cus_test",
		sessionID:  "cs_test",
		sessionURL: "https://checkout.example/cs_test",
	}
	users := &fakeUserStore{users: map[uint]*models.User{
		1: {ID: 1, Name: "Marie", Email: "marie@example.com", Plan: models.PlanFree},
	}}
	weddings := &fakeWeddingStore{
		weddings: map[uint]*models.Wedding{},
		owners:   map[uint]uint{},
	}
	packages := &fakePackageStore{}

	svc := NewCheckoutService(billing.DefaultCatalog(), provider, users, weddings, packages, "https://app.example", nil, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	}
	return &checkoutFixture{svc: svc, provider: provider, users: users, weddings: weddings, packages: packages}
}

func TestCreatePackageCheckoutFull(t *testing.T) {
	f := newCheckoutFixture()

	url, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{
		PackageID:   "premium",
		PaymentType: "full",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_test", url)

	require.Len(t, f.provider.packageSessions, 1)
	sess := f.provider.packageSessions[0]
	assert.Equal(t, int64(299000), sess.AmountCents)
	assert.False(t, sess.SaveCard)
	assert.Equal(t, "full", sess.Metadata["paymentType"])
	assert.Equal(t, "premium", sess.Metadata["packageId"])

	require.Len(t, f.packages.packages, 1)
	pkg := f.packages.packages[0]
	assert.Equal(t, models.PaymentTypeFull, pkg.PaymentType)
	assert.Equal(t, 2990, pkg.TotalPrice)
	assert.Equal(t, models.PackageStatusPending, pkg.Status)
	assert.Equal(t, 200, pkg.GuestLimit)
	assert.Equal(t, "cs_test", pkg.StripeSessionID)
	assert.Empty(t, f.packages.payments, "full mode must not write installment rows")
}

func TestCreatePackageCheckoutInstallments(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{
		PackageID:    "luxe",
		PaymentType:  "installments",
		Installments: 3,
	})
	require.NoError(t, err)

	require.Len(t, f.provider.packageSessions, 1)
	sess := f.provider.packageSessions[0]
	// ceil(7990/3) = 2664 euros per installment
	assert.Equal(t, int64(266400), sess.AmountCents)
	assert.True(t, sess.SaveCard)
	assert.Equal(t, "3", sess.Metadata["installmentsCount"])
	assert.Equal(t, "1", sess.Metadata["installmentNumber"])

	require.Len(t, f.packages.packages, 1)
	pkg := f.packages.packages[0]
	assert.Equal(t, models.PaymentTypeInstallments, pkg.PaymentType)
	assert.Equal(t, 3, pkg.InstallmentsCount)
	assert.Equal(t, 2664, pkg.InstallmentAmount)
	assert.Equal(t, 2664, pkg.DepositAmount)

	require.Len(t, f.packages.payments, 1)
	schedule := f.packages.payments[0]
	require.Len(t, schedule, 3)
	assert.Equal(t, models.InstallmentTypeDeposit, schedule[0].Type)
	assert.Equal(t, models.InstallmentTypeInstallment, schedule[1].Type)
	total := 0
	for _, p := range schedule {
		total += p.Amount
	}
	assert.Equal(t, 7992, total)
}

func TestCreatePackageCheckoutDefaultInstallments(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{
		PackageID:   "essentiel",
		PaymentType: "installments",
	})
	require.NoError(t, err)

	require.Len(t, f.packages.packages, 1)
	assert.Equal(t, billing.DefaultInstallments, f.packages.packages[0].InstallmentsCount)
	require.Len(t, f.packages.payments, 1)
	assert.Len(t, f.packages.payments[0], 6)
	// 990 / 6 splits exactly
	assert.Equal(t, 165, f.packages.packages[0].InstallmentAmount)
}

func TestCreatePackageCheckoutCustomerCreatedOnce(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{PackageID: "essentiel", PaymentType: "full"})
	require.NoError(t, err)
	_, err = f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{PackageID: "premium", PaymentType: "full"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.provider.createCustomerCalls)
	assert.Equal(t, 1, f.users.setCustomerCalls)
	assert.Equal(t, "cus_test", f.users.users[1].StripeCustomerID)
}

func TestCreatePackageCheckoutExistingCustomerKept(t *testing.T) {
	f := newCheckoutFixture()
	f.users.users[1].StripeCustomerID = "cus_existing"

	_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{PackageID: "essentiel", PaymentType: "full"})
	require.NoError(t, err)

	assert.Zero(t, f.provider.createCustomerCalls)
	assert.Equal(t, "cus_existing", f.users.users[1].StripeCustomerID)
	require.Len(t, f.provider.packageSessions, 1)
	assert.Equal(t, "cus_existing", f.provider.packageSessions[0].CustomerID)
}

func TestCreatePackageCheckoutErrors(t *testing.T) {
	t.Run("unknown plan", func(t *testing.T) {
		f := newCheckoutFixture()
		_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{PackageID: "platine", PaymentType: "full"})
		assert.ErrorIs(t, err, ErrInvalidPlan)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newCheckoutFixture()
		_, err := f.svc.CreatePackageCheckout(42, models.PackageCheckoutRequest{PackageID: "premium", PaymentType: "full"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("invalid payment type", func(t *testing.T) {
		f := newCheckoutFixture()
		_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{PackageID: "premium", PaymentType: "weekly"})
		assert.ErrorIs(t, err, ErrInvalidPaymentType)
	})

	t.Run("provider disabled", func(t *testing.T) {
		f := newCheckoutFixture()
		f.provider.enabled = false
		_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{PackageID: "premium", PaymentType: "full"})
		assert.ErrorIs(t, err, ErrPaymentsNotConfigured)
		assert.Empty(t, f.provider.packageSessions)
		assert.Empty(t, f.packages.packages)
	})
}

func TestCreatePackageCheckoutPersistFailureIsNotSuccess(t *testing.T) {
	storeErr := errors.New("connection reset")

	t.Run("installments", func(t *testing.T) {
		f := newCheckoutFixture()
		f.packages.createErr = storeErr

		url, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{
			PackageID:    "luxe",
			PaymentType:  "installments",
			Installments: 3,
		})
		assert.ErrorIs(t, err, storeErr)
		assert.Empty(t, url)
		assert.Empty(t, f.packages.packages)
		assert.Empty(t, f.packages.payments)
	})

	t.Run("full", func(t *testing.T) {
		f := newCheckoutFixture()
		f.packages.createErr = storeErr

		url, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{
			PackageID:   "premium",
			PaymentType: "full",
		})
		assert.ErrorIs(t, err, storeErr)
		assert.Empty(t, url)
		assert.Empty(t, f.packages.packages)
	})
}

func TestCreatePackageCheckoutWeddingReuse(t *testing.T) {
	f := newCheckoutFixture()
	owned := &models.Wedding{ID: 7, Name: "Notre Mariage", GuestLimit: 80}
	f.weddings.weddings[7] = owned
	f.weddings.owners[7] = 1

	_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{
		PackageID:   "premium",
		PaymentType: "full",
		WeddingID:   7,
	})
	require.NoError(t, err)

	assert.Empty(t, f.weddings.created)
	require.Len(t, f.packages.packages, 1)
	assert.Equal(t, uint(7), f.packages.packages[0].WeddingID)
}

func TestCreatePackageCheckoutWeddingCreated(t *testing.T) {
	f := newCheckoutFixture()

	// Wedding 7 belongs to somebody else: fall back to creating one.
	f.weddings.weddings[7] = &models.Wedding{ID: 7}
	f.weddings.owners[7] = 99

	_, err := f.svc.CreatePackageCheckout(1, models.PackageCheckoutRequest{
		PackageID:   "luxe",
		PaymentType: "full",
		WeddingID:   7,
	})
	require.NoError(t, err)

	require.Len(t, f.weddings.created, 1)
	w := f.weddings.created[0]
	assert.Equal(t, "Mon Mariage", w.Name)
	assert.Equal(t, "Marie", w.Partner1Name)
	assert.Equal(t, "Partenaire 2", w.Partner2Name)
	assert.Equal(t, 999999, w.GuestLimit)
	assert.Equal(t, time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC), w.Date)
}

func TestCreateSubscriptionCheckoutPriceAllowlist(t *testing.T) {
	f := newCheckoutFixture()
	f.svc.subscriptionPrices = []string{"price_premium", "price_enterprise"}

	url, err := f.svc.CreateSubscriptionCheckout(1, "price_premium")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example/cs_test", url)

	_, err = f.svc.CreateSubscriptionCheckout(1, "price_forged")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = f.svc.CreateSubscriptionCheckout(1, "")
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCreateBillingPortalRequiresCustomer(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.svc.CreateBillingPortal(1)
	assert.ErrorIs(t, err, ErrNoBillingAccount)

	f.users.users[1].StripeCustomerID = "cus_test"
	url, err := f.svc.CreateBillingPortal(1)
	require.NoError(t, err)
	assert.Equal(t, "https://billing.example/cus_test", url)
}

func stripeEvent(t *testing.T, eventType string, payload string) *stripe.Event {
	t.Helper()
	return &stripe.Event{
		Type: eventType,
		Data: &stripe.EventData{Raw: json.RawMessage(payload)},
	}
}

func TestWebhookSubscriptionCompleted(t *testing.T) {
	f := newCheckoutFixture()
	f.users.users[1].StripeCustomerID = "cus_test"
	periodEnd := time.Date(2025, time.July, 15, 10, 0, 0, 0, time.UTC)
	f.provider.subscription = &stripe.Subscription{
		ID:               "sub_123",
		CurrentPeriodEnd: periodEnd.Unix(),
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_premium"}}},
		},
	}

	event := stripeEvent(t, "checkout.session.completed",
		`{"mode":"subscription","subscription":"sub_123","customer":"cus_test"}`)

	require.NoError(t, f.svc.HandleStripeWebhook(event))

	u := f.users.users[1]
	assert.Equal(t, models.PlanPremium, u.Plan)
	assert.Equal(t, "sub_123", u.StripeSubscriptionID)
	assert.Equal(t, "price_premium", u.StripePriceID)
	require.NotNil(t, u.StripeCurrentPeriodEnd)
	assert.Equal(t, periodEnd.Unix(), u.StripeCurrentPeriodEnd.Unix())

	// Redelivery sets the exact same values.
	require.NoError(t, f.svc.HandleStripeWebhook(event))
	assert.Equal(t, models.PlanPremium, u.Plan)
	assert.Equal(t, "sub_123", u.StripeSubscriptionID)
}

func TestWebhookPaymentModeSessionIgnored(t *testing.T) {
	f := newCheckoutFixture()
	f.users.users[1].StripeCustomerID = "cus_test"

	event := stripeEvent(t, "checkout.session.completed",
		`{"mode":"payment","customer":"cus_test"}`)

	require.NoError(t, f.svc.HandleStripeWebhook(event))
	assert.Equal(t, models.PlanFree, f.users.users[1].Plan)
	assert.Empty(t, f.users.users[1].StripeSubscriptionID)
}

func TestWebhookMissingCustomerIsError(t *testing.T) {
	t.Run("checkout session", func(t *testing.T) {
		f := newCheckoutFixture()
		event := stripeEvent(t, "checkout.session.completed",
			`{"id":"cs_1","mode":"subscription","subscription":"sub_123"}`)

		err := f.svc.HandleStripeWebhook(event)
		assert.Error(t, err)
		assert.Equal(t, models.PlanFree, f.users.users[1].Plan)
	})

	t.Run("invoice", func(t *testing.T) {
		f := newCheckoutFixture()
		event := stripeEvent(t, "invoice.payment_succeeded",
			`{"id":"in_1","subscription":"sub_123"}`)

		err := f.svc.HandleStripeWebhook(event)
		assert.Error(t, err)
		assert.Equal(t, models.PlanFree, f.users.users[1].Plan)
	})
}

func TestWebhookInvoicePaymentSucceeded(t *testing.T) {
	f := newCheckoutFixture()
	f.users.users[1].StripeCustomerID = "cus_test"
	periodEnd := time.Date(2025, time.August, 15, 10, 0, 0, 0, time.UTC)
	f.provider.subscription = &stripe.Subscription{
		ID:               "sub_123",
		CurrentPeriodEnd: periodEnd.Unix(),
	}

	event := stripeEvent(t, "invoice.payment_succeeded",
		`{"subscription":"sub_123","customer":"cus_test"}`)

	require.NoError(t, f.svc.HandleStripeWebhook(event))

	u := f.users.users[1]
	assert.Equal(t, models.PlanPremium, u.Plan)
	require.NotNil(t, u.StripeCurrentPeriodEnd)
	assert.Equal(t, periodEnd.Unix(), u.StripeCurrentPeriodEnd.Unix())
}

func TestWebhookSubscriptionDeleted(t *testing.T) {
	f := newCheckoutFixture()
	u := f.users.users[1]
	u.StripeCustomerID = "cus_test"
	u.StripeSubscriptionID = "sub_123"
	u.StripePriceID = "price_premium"
	u.Plan = models.PlanPremium
	end := time.Now()
	u.StripeCurrentPeriodEnd = &end

	event := stripeEvent(t, "customer.subscription.deleted", `{"id":"sub_123"}`)

	require.NoError(t, f.svc.HandleStripeWebhook(event))
	assert.Equal(t, models.PlanFree, u.Plan)
	assert.Empty(t, u.StripeSubscriptionID)
	assert.Empty(t, u.StripePriceID)
	assert.Nil(t, u.StripeCurrentPeriodEnd)
	// Customer id stays: the billing account outlives the subscription.
	assert.Equal(t, "cus_test", u.StripeCustomerID)

	// Redelivery no longer matches a subscription; state is untouched and the
	// error lets the processor retry and eventually give up.
	err := f.svc.HandleStripeWebhook(event)
	assert.Error(t, err)
	assert.Equal(t, models.PlanFree, u.Plan)
}

func TestWebhookSubscriptionUpdatedKeepsPlan(t *testing.T) {
	f := newCheckoutFixture()
	u := f.users.users[1]
	u.StripeCustomerID = "cus_test"
	u.StripeSubscriptionID = "sub_123"
	u.Plan = models.PlanPremium

	event := stripeEvent(t, "customer.subscription.updated",
		`{"id":"sub_123","current_period_end":1767225600,"items":{"data":[{"price":{"id":"price_new"}}]}}`)

	require.NoError(t, f.svc.HandleStripeWebhook(event))
	assert.Equal(t, models.PlanPremium, u.Plan)
	assert.Equal(t, "price_new", u.StripePriceID)
	require.NotNil(t, u.StripeCurrentPeriodEnd)
	assert.Equal(t, int64(1767225600), u.StripeCurrentPeriodEnd.Unix())
}

func TestWebhookUnknownEventIgnored(t *testing.T) {
	f := newCheckoutFixture()
	event := stripeEvent(t, "charge.refunded", `{}`)
	require.NoError(t, f.svc.HandleStripeWebhook(event))
}
