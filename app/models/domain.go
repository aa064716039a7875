package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Resource kinds a domain can point at.
const (
	CONNECTED_BRANDBOOK    = "brandbook"
	CONNECTED_DASHBOARD    = "dashboard"
	CONNECTED_LANDING_PAGE = "landing_page"
)

var ErrInvalidConnection = errors.New("domain connection target does not match connected type")

// Domain maps a custom domain (and platform subdomain) onto one published
// artifact. The connection is a tagged reference: ConnectedType names the
// resource kind and exactly one of the typed id columns is set to match.
type Domain struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Domain        string         `gorm:"type:varchar(253);uniqueIndex;not null" json:"domain" validate:"required,fqdn"`
	Subdomain     string         `gorm:"type:varchar(63);uniqueIndex;not null" json:"subdomain" validate:"required,hostname,min=3,max=63"`
	ConnectedType string         `gorm:"type:varchar(20);not null" json:"connected_type" validate:"oneof=brandbook dashboard landing_page"`
	BrandbookID   *uint          `gorm:"index" json:"brandbook_id,omitempty"`
	DashboardID   *uint          `gorm:"index" json:"dashboard_id,omitempty"`
	LandingPageID *uint          `gorm:"index" json:"landing_page_id,omitempty"`
	IsVerified    bool           `gorm:"default:false" json:"is_verified"`
	IsLive        bool           `gorm:"default:false" json:"is_live"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Domain) Validate() error {
	if err := validator.New().Struct(d); err != nil {
		return err
	}
	return d.validateConnection()
}

// validateConnection enforces the tagged-reference invariant: exactly one id
// column set, matching ConnectedType.
func (d *Domain) validateConnection() error {
	set := 0
	if d.BrandbookID != nil {
		set++
	}
	if d.DashboardID != nil {
		set++
	}
	if d.LandingPageID != nil {
		set++
	}
	if set != 1 {
		return ErrInvalidConnection
	}
	switch d.ConnectedType {
	case CONNECTED_BRANDBOOK:
		if d.BrandbookID == nil {
			return ErrInvalidConnection
		}
	case CONNECTED_DASHBOARD:
		if d.DashboardID == nil {
			return ErrInvalidConnection
		}
	case CONNECTED_LANDING_PAGE:
		if d.LandingPageID == nil {
			return ErrInvalidConnection
		}
	default:
		return ErrInvalidConnection
	}
	return nil
}

// ConnectBrandbook points the domain at a brandbook, clearing other targets.
func (d *Domain) ConnectBrandbook(id uint) {
	d.ConnectedType = CONNECTED_BRANDBOOK
	d.BrandbookID = &id
	d.DashboardID = nil
	d.LandingPageID = nil
}

// ConnectDashboard points the domain at a dashboard, clearing other targets.
func (d *Domain) ConnectDashboard(id uint) {
	d.ConnectedType = CONNECTED_DASHBOARD
	d.DashboardID = &id
	d.BrandbookID = nil
	d.LandingPageID = nil
}

// ConnectLandingPage points the domain at a landing page, clearing other targets.
func (d *Domain) ConnectLandingPage(id uint) {
	d.ConnectedType = CONNECTED_LANDING_PAGE
	d.LandingPageID = &id
	d.BrandbookID = nil
	d.DashboardID = nil
}

// ConnectedID returns the id of whichever resource the domain points at.
func (d *Domain) ConnectedID() uint {
	switch d.ConnectedType {
	case CONNECTED_BRANDBOOK:
		if d.BrandbookID != nil {
			return *d.BrandbookID
		}
	case CONNECTED_DASHBOARD:
		if d.DashboardID != nil {
			return *d.DashboardID
		}
	case CONNECTED_LANDING_PAGE:
		if d.LandingPageID != nil {
			return *d.LandingPageID
		}
	}
	return 0
}
