package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestDomainValidateConnection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		domain  Domain
		wantErr bool
	}{
		{
			name: "brandbook target matches type",
			domain: Domain{
				Domain:        "jane.example.com",
				Subdomain:     "jane",
				ConnectedType: CONNECTED_BRANDBOOK,
				BrandbookID:   uintPtr(1),
			},
		},
		{
			name: "dashboard target matches type",
			domain: Domain{
				Domain:        "studio.example.com",
				Subdomain:     "studio",
				ConnectedType: CONNECTED_DASHBOARD,
				DashboardID:   uintPtr(7),
			},
		},
		{
			name: "no target set",
			domain: Domain{
				Domain:        "jane.example.com",
				Subdomain:     "jane",
				ConnectedType: CONNECTED_BRANDBOOK,
			},
			wantErr: true,
		},
		{
			name: "target does not match type",
			domain: Domain{
				Domain:        "jane.example.com",
				Subdomain:     "jane",
				ConnectedType: CONNECTED_BRANDBOOK,
				DashboardID:   uintPtr(7),
			},
			wantErr: true,
		},
		{
			name: "two targets set",
			domain: Domain{
				Domain:        "jane.example.com",
				Subdomain:     "jane",
				ConnectedType: CONNECTED_DASHBOARD,
				DashboardID:   uintPtr(7),
				LandingPageID: uintPtr(3),
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.domain.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDomainConnectClearsOtherTargets(t *testing.T) {
	d := Domain{}
	d.ConnectBrandbook(3)
	assert.Equal(t, CONNECTED_BRANDBOOK, d.ConnectedType)
	assert.Equal(t, uint(3), d.ConnectedID())

	d.ConnectLandingPage(9)
	assert.Equal(t, CONNECTED_LANDING_PAGE, d.ConnectedType)
	assert.Nil(t, d.BrandbookID)
	assert.Nil(t, d.DashboardID)
	assert.Equal(t, uint(9), d.ConnectedID())
}
