package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a signed-in CheckWise user together with their credit ledger.
type User struct {
	ID              string `json:"id" gorm:"type:char(36);primaryKey"`
	Email           string `json:"email" gorm:"uniqueIndex;size:255"`
	PasswordHash    string `json:"-" gorm:"size:255"` // Never expose in JSON
	FirstName       string `json:"firstName,omitempty" gorm:"size:100"`
	LastName        string `json:"lastName,omitempty" gorm:"size:100"`
	ProfileImageURL string `json:"profileImageUrl,omitempty" gorm:"size:512"`

	// Subscription & credits
	PlanType         PlanType   `json:"planType" gorm:"type:varchar(20);not null;default:'free';index"`
	CreditsTotal     int        `json:"creditsTotal" gorm:"not null;default:3"`
	CreditsRemaining int        `json:"creditsRemaining" gorm:"not null;default:3"`
	CreditsResetDate *time.Time `json:"creditsResetDate,omitempty"`

	// Payment provider references (payment processing itself is stubbed)
	StripeCustomerID     string `json:"-" gorm:"size:255"`
	StripeSubscriptionID string `json:"-" gorm:"size:255"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Checks []Check `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets a UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// HasCredit reports whether the user can pay for one more check.
func (u *User) HasCredit() bool {
	return u.CreditsRemaining > 0
}
