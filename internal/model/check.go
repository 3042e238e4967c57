package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrustLevel is the three-tier classification derived from a trust score.
type TrustLevel string

const (
	TrustLevelTrusted   TrustLevel = "trusted"
	TrustLevelWarning   TrustLevel = "warning"
	TrustLevelUntrusted TrustLevel = "untrusted"
)

// TrustLevelForScore derives the trust level from a 0-100 trust score.
func TrustLevelForScore(score int) TrustLevel {
	switch {
	case score >= 80:
		return TrustLevelTrusted
	case score >= 50:
		return TrustLevelWarning
	default:
		return TrustLevelUntrusted
	}
}

// ValidTrustLevel reports whether tag is one of the three trust level tags.
func ValidTrustLevel(tag string) bool {
	switch TrustLevel(tag) {
	case TrustLevelTrusted, TrustLevelWarning, TrustLevelUntrusted:
		return true
	}
	return false
}

// Known platform tags. The platform field stays an open string: anything
// non-empty is accepted and unknown sources fall under "other".
const (
	PlatformAmazon     = "amazon"
	PlatformTemu       = "temu"
	PlatformTikTok     = "tiktok"
	PlatformAliExpress = "aliexpress"
	PlatformOther      = "other"
)

// Alternative is one synthesized alternative-product suggestion.
type Alternative struct {
	Name       string   `json:"name"`
	URL        string   `json:"url"`
	Price      string   `json:"price"`
	TrustScore int      `json:"trustScore"`
	Savings    string   `json:"savings"`
	Highlights []string `json:"highlights"`
}

// Check is one immutable product-analysis record. Checks are created once per
// successful analysis run and never updated or deleted.
type Check struct {
	ID     string `json:"id" gorm:"type:char(36);primaryKey"`
	UserID string `json:"userId" gorm:"type:char(36);not null;index"`

	// Product info
	ProductURL   string `json:"productUrl" gorm:"type:text;not null"`
	ProductName  string `json:"productName" gorm:"type:text;not null"`
	ProductPrice string `json:"productPrice,omitempty" gorm:"size:64"`
	ProductImage string `json:"productImage,omitempty" gorm:"type:text"`
	Platform     string `json:"platform" gorm:"size:32;not null"`

	// Analysis results
	TrustScore     int        `json:"trustScore" gorm:"not null"`
	TrustLevel     TrustLevel `json:"trustLevel" gorm:"type:varchar(20);not null"`
	PositivePoints []string   `json:"positivePoints" gorm:"type:json;serializer:json"`
	NegativePoints []string   `json:"negativePoints" gorm:"type:json;serializer:json"`
	Recommendation string     `json:"recommendation" gorm:"type:text;not null"`
	AIAnalysis     string     `json:"aiAnalysis,omitempty" gorm:"type:text"`

	// Alternatives, synthesized when the score fell below the trusted band
	Alternatives []Alternative `json:"alternatives" gorm:"type:json;serializer:json"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets a UUID before creating the record.
func (c *Check) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
