package database

import (
	"time"

	"rajendranagar-portal/internal/models"
)

// UserLimitRow is the storage shape of a per-owner quota override.
type UserLimitRow struct {
	Mobile    string    `gorm:"type:varchar(20);primaryKey"`
	MaxPosts  int       `gorm:"type:int;default:1"`
	TierName  string    `gorm:"type:varchar(20);default:'Free'"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

// TableName pins the legacy table name.
func (UserLimitRow) TableName() string {
	return "user_limits"
}

func rowToUserLimit(row *UserLimitRow) *models.UserLimit {
	return &models.UserLimit{
		Mobile:    row.Mobile,
		MaxPosts:  row.MaxPosts,
		TierName:  row.TierName,
		UpdatedAt: row.UpdatedAt,
	}
}

// DeleteLog records a physically deleted listing for operator visibility.
type DeleteLog struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID   string    `gorm:"type:varchar(64);not null;index" json:"property_id"`
	Title        string    `gorm:"type:text" json:"title"`
	Area         string    `gorm:"type:varchar(50)" json:"area"`
	ContactPhone string    `gorm:"type:varchar(20)" json:"contact_phone"`
	PostedAt     time.Time `gorm:"type:datetime" json:"posted_at"`
	DeletedAt    time.Time `gorm:"type:datetime;not null;autoCreateTime;index" json:"deleted_at"`
	Reason       string    `gorm:"type:varchar(50);not null" json:"reason"`
}

// TableName specifies the table name
func (DeleteLog) TableName() string {
	return "delete_logs"
}

// DeleteReason constants
const (
	DeleteReasonExpiredPurge = "expired_purge"
	DeleteReasonManual       = "manual_deletion"
)
