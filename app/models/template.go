package models

import (
	"encoding/json"
	"time"
)

// Template is a catalog entity, not user-owned. Config carries the full
// styleguide template document (colors, typography, imagery defaults).
type Template struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:varchar(100)" json:"category"`
	Config      JSON      `gorm:"type:json" json:"config"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TemplateConfig is the decoded shape of Template.Config used by the chat
// assistant when narrating a template.
type TemplateConfig struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color"`
	HeadingFont    string `json:"heading_font"`
	BodyFont       string `json:"body_font"`
	ImageryStyle   string `json:"imagery_style"`
}

// DecodeConfig unmarshals the raw config blob, returning zero values for
// missing fields.
func (t *Template) DecodeConfig() (TemplateConfig, error) {
	var cfg TemplateConfig
	if len(t.Config) == 0 {
		return cfg, nil
	}
	err := json.Unmarshal(t.Config, &cfg)
	return cfg, err
}
