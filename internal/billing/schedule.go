package billing

import (
	"time"

	"github.com/oussamai/oussamai-backend/internal/models"
)

const DefaultInstallments = 6

// InstallmentAmount is the per-installment charge: a ceiling division of the
// total, the same for every installment including the last. The schedule can
// over-collect by up to count-1 euros; that remainder is intentionally not
// folded back into the final installment.
func InstallmentAmount(totalPrice, count int) int {
	return (totalPrice + count - 1) / count
}

// BuildSchedule materializes the payment rows for an installment purchase.
// Due dates are one calendar month apart starting at the purchase date, using
// time.AddDate month arithmetic. The first row is the deposit.
func BuildSchedule(packageID uint, totalPrice, count int, purchaseDate time.Time) []models.Payment {
	amount := InstallmentAmount(totalPrice, count)

	payments := make([]models.Payment, 0, count)
	for i := 1; i <= count; i++ {
		typ := models.InstallmentTypeInstallment
		if i == 1 {
			typ = models.InstallmentTypeDeposit
		}
		payments = append(payments, models.Payment{
			PackageID:         packageID,
			InstallmentNumber: i,
			Amount:            amount,
			Type:              typ,
			Status:            models.PaymentStatusPending,
			DueDate:           purchaseDate.AddDate(0, i-1, 0),
		})
	}
	return payments
}
