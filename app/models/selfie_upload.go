package models

import (
	"time"
)

// SelfieUpload records a single selfie stored for model training. The binary
// lives in object storage under ObjectKey; the row keeps the metadata we
// extracted at upload time.
type SelfieUpload struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UUID        string     `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	ObjectKey   string     `gorm:"type:varchar(255);not null" json:"-"`
	FileName    string     `gorm:"type:varchar(255);not null" json:"file_name"`
	FileSize    int64      `gorm:"type:bigint" json:"file_size"`
	FileType    string     `gorm:"type:varchar(50)" json:"file_type"`
	Width       int        `gorm:"type:int" json:"width"`
	Height      int        `gorm:"type:int" json:"height"`
	CameraModel *string    `gorm:"type:varchar(255)" json:"camera_model,omitempty"`
	TakenAt     *time.Time `gorm:"type:datetime" json:"taken_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
