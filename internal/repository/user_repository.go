package repository

import (
	"time"

	"github.com/oussamai/oussamai-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) GetByStripeCustomerID(customerID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("stripe_customer_id = ?", customerID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByStripeSubscriptionID(subscriptionID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("stripe_subscription_id = ?", subscriptionID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetStripeCustomerID persists a freshly created customer id, but never
// overwrites one that is already set.
func (r *UserRepository) SetStripeCustomerID(userID uint, customerID string) error {
	return r.db.Model(&models.User{}).
		Where("id = ? AND (stripe_customer_id IS NULL OR stripe_customer_id = '')", userID).
		Update("stripe_customer_id", customerID).Error
}

// UpdateSubscription sets the subscription fields as absolute values; webhook
// redelivery therefore converges on the same state.
func (r *UserRepository) UpdateSubscription(userID uint, subscriptionID, priceID string, periodEnd *time.Time, plan models.UserPlan) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"stripe_subscription_id":    subscriptionID,
		"stripe_price_id":           priceID,
		"stripe_current_period_end": periodEnd,
		"plan":                      plan,
	}).Error
}

func (r *UserRepository) WeddingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Table("wedding_owners").Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
