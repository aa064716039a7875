package models

import (
	"encoding/json"
	"time"
)

// GeneratedImage is a batch of candidate images produced by a user's trained
// model for one prompt. ImageURLs holds the JSON-encoded candidate list;
// SelectedURL is the user's pick; Saved flags persistence intent.
type GeneratedImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        string    `gorm:"type:char(36);uniqueIndex;not null" json:"uuid"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	UserModelID uint      `gorm:"not null;index" json:"user_model_id"`
	UserModel   UserModel `gorm:"foreignKey:UserModelID" json:"-" validate:"-"`
	Prompt      string    `gorm:"type:text;not null" json:"prompt"`
	ImageURLs   JSON      `gorm:"type:json" json:"image_urls"`
	SelectedURL string    `gorm:"type:varchar(512);default:''" json:"selected_url"`
	Saved       bool      `gorm:"default:false" json:"saved"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CandidateURLs decodes the stored candidate list.
func (g *GeneratedImage) CandidateURLs() ([]string, error) {
	if len(g.ImageURLs) == 0 {
		return nil, nil
	}
	var urls []string
	err := json.Unmarshal(g.ImageURLs, &urls)
	return urls, err
}

// SetCandidateURLs encodes and stores the candidate list.
func (g *GeneratedImage) SetCandidateURLs(urls []string) error {
	raw, err := json.Marshal(urls)
	if err != nil {
		return err
	}
	g.ImageURLs = JSON(raw)
	return nil
}

// HasCandidate reports whether url is one of the stored candidates.
func (g *GeneratedImage) HasCandidate(url string) bool {
	urls, err := g.CandidateURLs()
	if err != nil {
		return false
	}
	for _, u := range urls {
		if u == url {
			return true
		}
	}
	return false
}
