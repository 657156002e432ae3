package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{CampaignStatusDraft, CampaignStatusActive, true},
		{CampaignStatusDraft, CampaignStatusArchived, true},
		{CampaignStatusDraft, CampaignStatusPaused, false},
		{CampaignStatusActive, CampaignStatusPaused, true},
		{CampaignStatusActive, CampaignStatusCompleted, true},
		{CampaignStatusActive, CampaignStatusDraft, false},
		{CampaignStatusPaused, CampaignStatusActive, true},
		{CampaignStatusPaused, CampaignStatusArchived, true},
		{CampaignStatusCompleted, CampaignStatusArchived, true},
		{CampaignStatusCompleted, CampaignStatusActive, false},
		{CampaignStatusArchived, CampaignStatusActive, false},
	}

	for _, tt := range tests {
		c := &Campaign{Status: tt.from}
		assert.Equal(t, tt.allowed, c.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCampaignLocationRoundTrip(t *testing.T) {
	c := &Campaign{}

	loc, err := c.Location()
	require.NoError(t, err)
	assert.Empty(t, loc.City)

	err = c.SetLocation(TargetLocation{City: "Austin", State: "TX", RadiusMiles: 25})
	require.NoError(t, err)

	got, err := c.Location()
	require.NoError(t, err)
	assert.Equal(t, "Austin", got.City)
	assert.Equal(t, "TX", got.State)
	assert.Equal(t, 25, got.RadiusMiles)
}

func TestCampaignKeywords(t *testing.T) {
	c := &Campaign{}
	assert.Empty(t, c.Keywords())

	require.NoError(t, c.SetKeywords([]string{"plumber near me", "emergency plumber"}))
	assert.Equal(t, []string{"plumber near me", "emergency plumber"}, c.Keywords())
}

func TestTemplateByKey(t *testing.T) {
	tpl := TemplateByKey("local_service")
	require.NotNil(t, tpl)
	assert.Equal(t, "Local Service Campaign", tpl.Name)
	assert.NotEmpty(t, tpl.Keywords)

	assert.Nil(t, TemplateByKey("does_not_exist"))
}

func TestCampaignValidate(t *testing.T) {
	c := &Campaign{
		UUID:       "c8b1b2f0-0000-0000-0000-000000000001",
		UserID:     1,
		BusinessID: 1,
		Name:       "Spring Promo",
		Status:     CampaignStatusDraft,
		Type:       CampaignTypeGoogleAds,
	}
	assert.NoError(t, c.Validate())

	c.Status = "bogus"
	assert.Error(t, c.Validate())
}
