package model

import (
	"time"
)

// JWTTokenBlacklist stores revoked token JTIs until they expire on their own
type JWTTokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"-"` // JTI, not the raw token
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	Reason    string    `gorm:"type:varchar(50)" json:"reason"` // logout, password_change, admin_revoke

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
