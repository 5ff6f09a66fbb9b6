package models

type PackageCheckoutRequest struct {
	PackageID    string `json:"packageId" validate:"required"`
	PaymentType  string `json:"paymentType" validate:"required,payment_type"`
	Installments int    `json:"installments"`
	WeddingID    uint   `json:"weddingId"`
}

type SubscriptionCheckoutRequest struct {
	PriceID string `json:"priceId" validate:"required"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}
