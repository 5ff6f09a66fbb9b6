package billing

import (
	"testing"
	"time"

	"github.com/oussamai/oussamai-backend/internal/models"
)

func TestBuildScheduleExactSplit(t *testing.T) {
	purchase := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	payments := BuildSchedule(7, 990, 6, purchase)

	if len(payments) != 6 {
		t.Fatalf("expected 6 payments, got %d", len(payments))
	}
	for i, p := range payments {
		if p.Amount != 165 {
			t.Fatalf("payment %d amount = %d, want 165", i+1, p.Amount)
		}
		if p.PackageID != 7 {
			t.Fatalf("payment %d packageID = %d, want 7", i+1, p.PackageID)
		}
		if p.InstallmentNumber != i+1 {
			t.Fatalf("payment %d number = %d", i+1, p.InstallmentNumber)
		}
		if p.Status != models.PaymentStatusPending {
			t.Fatalf("payment %d status = %s, want PENDING", i+1, p.Status)
		}
		want := purchase.AddDate(0, i, 0)
		if !p.DueDate.Equal(want) {
			t.Fatalf("payment %d due %v, want %v", i+1, p.DueDate, want)
		}
	}
	if payments[0].Type != models.InstallmentTypeDeposit {
		t.Fatalf("first payment should be the deposit, got %s", payments[0].Type)
	}
	for _, p := range payments[1:] {
		if p.Type != models.InstallmentTypeInstallment {
			t.Fatalf("payment %d should be INSTALLMENT, got %s", p.InstallmentNumber, p.Type)
		}
	}
}

func TestBuildScheduleRoundsUp(t *testing.T) {
	purchase := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	payments := BuildSchedule(1, 7990, 3, purchase)

	if len(payments) != 3 {
		t.Fatalf("expected 3 payments, got %d", len(payments))
	}
	sum := 0
	for _, p := range payments {
		if p.Amount != 2664 {
			t.Fatalf("amount = %d, want 2664", p.Amount)
		}
		sum += p.Amount
	}
	if sum != 7992 {
		t.Fatalf("sum = %d, want 7992", sum)
	}
}

// sum(amounts) >= total with excess below the installment count, for any
// total and count in the supported range.
func TestScheduleSumInvariant(t *testing.T) {
	purchase := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	for _, total := range []int{1, 99, 990, 2990, 7990, 12345} {
		for count := 1; count <= 12; count++ {
			payments := BuildSchedule(1, total, count, purchase)
			if len(payments) != count {
				t.Fatalf("total=%d count=%d: got %d rows", total, count, len(payments))
			}
			sum := 0
			for i, p := range payments {
				sum += p.Amount
				if i > 0 && !payments[i-1].DueDate.Before(p.DueDate) {
					t.Fatalf("total=%d count=%d: due dates not strictly increasing", total, count)
				}
			}
			if sum < total {
				t.Fatalf("total=%d count=%d: sum %d under-collects", total, count, sum)
			}
			if sum-total >= count {
				t.Fatalf("total=%d count=%d: excess %d >= count", total, count, sum-total)
			}
		}
	}
}

// time.AddDate normalizes end-of-month overflow (Jan 31 + 1 month lands in
// early March); the schedule follows that calendar behavior rather than
// fixed 30-day steps.
func TestScheduleMonthEndNormalization(t *testing.T) {
	purchase := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	payments := BuildSchedule(1, 990, 3, purchase)

	if got := payments[1].DueDate; got != time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("second due date = %v, want 2025-03-03 (normalized Feb 31)", got)
	}
	if got := payments[2].DueDate; got != time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("third due date = %v, want 2025-03-31", got)
	}
}

func TestInstallmentAmount(t *testing.T) {
	tests := []struct {
		total, count, want int
	}{
		{990, 6, 165},
		{7990, 3, 2664},
		{2990, 12, 250},
		{100, 1, 100},
	}
	for _, tt := range tests {
		if got := InstallmentAmount(tt.total, tt.count); got != tt.want {
			t.Fatalf("InstallmentAmount(%d, %d) = %d, want %d", tt.total, tt.count, got, tt.want)
		}
	}
}
