package models

import "time"

type PaymentType string

const (
	PaymentTypeFull         PaymentType = "FULL"
	PaymentTypeInstallments PaymentType = "INSTALLMENTS"
)

type PackageStatus string

const (
	PackageStatusPending PackageStatus = "PENDING"
)

// WeddingPackage is one commercial transaction: a plan bought in full or in
// installments. Feature flags are copied from the catalog at purchase time so a
// catalog change never alters an already sold package.
type WeddingPackage struct {
	ID                uint          `json:"id" gorm:"primaryKey"`
	WeddingID         uint          `json:"wedding_id" gorm:"not null;index"`
	Name              string        `json:"name" gorm:"not null"`
	TotalPrice        int           `json:"total_price" gorm:"not null"`
	DepositAmount     int           `json:"deposit_amount"`
	PaymentType       PaymentType   `json:"payment_type" gorm:"not null"`
	InstallmentsCount int           `json:"installments_count"`
	InstallmentAmount int           `json:"installment_amount"`
	Status            PackageStatus `json:"status" gorm:"not null;default:'PENDING'"`
	GuestLimit        int           `json:"guest_limit" gorm:"not null"`
	IncludesAI        bool          `json:"includes_ai"`
	IncludesEmails    bool          `json:"includes_emails"`
	IncludesSupport   bool          `json:"includes_support"`
	IncludesPlanner   bool          `json:"includes_planner"`
	StripeSessionID   string        `json:"-" gorm:"index"`

	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:PackageID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InstallmentType string

const (
	InstallmentTypeDeposit     InstallmentType = "DEPOSIT"
	InstallmentTypeInstallment InstallmentType = "INSTALLMENT"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
)

// Payment is one scheduled installment of a WeddingPackage.
type Payment struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	PackageID         uint            `json:"package_id" gorm:"not null;index"`
	InstallmentNumber int             `json:"installment_number" gorm:"not null"`
	Amount            int             `json:"amount" gorm:"not null"`
	Type              InstallmentType `json:"type" gorm:"not null"`
	Status            PaymentStatus   `json:"status" gorm:"not null;default:'PENDING'"`
	DueDate           time.Time       `json:"due_date" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
