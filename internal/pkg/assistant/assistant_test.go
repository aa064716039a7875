package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandforgehq/brandforge/app/models"
)

func catalogFixture() []models.Template {
	return []models.Template{
		{
			ID:          1,
			Key:         "classic-professional",
			Name:        "Classic Professional",
			Description: "A timeless, trustworthy look for consultants and coaches",
			Category:    "professional",
			Config: models.JSON(`{
				"primary_color": "#1a365d",
				"heading_font": "Playfair Display",
				"body_font": "Source Sans Pro"
			}`),
			IsActive: true,
		},
		{ID: 2, Key: "bold-creative", Name: "Bold Creative"},
	}
}

func TestRespondCreationRequest(t *testing.T) {
	t.Parallel()

	resp := Respond("please create something", nil, nil, catalogFixture())

	assert.Equal(t, TypeStyleguideCreated, resp.Type)
	require.NotNil(t, resp.StyleguideData)
	assert.Equal(t, uint(1), resp.StyleguideData.TemplateID)
	assert.Contains(t, resp.Message, "Classic Professional")
	assert.Contains(t, resp.Message, "Playfair Display")
	assert.Contains(t, resp.Message, "#1a365d")
	assert.Empty(t, resp.Suggestions)
}

func TestRespondKeywordsAreCaseInsensitiveSubstrings(t *testing.T) {
	t.Parallel()

	for _, msg := range []string{"CREATE", "New", "GENERATE", "I just created one", "a newer look please"} {
		resp := Respond(msg, nil, nil, catalogFixture())
		assert.Equal(t, TypeStyleguideCreated, resp.Type, "message %q should trigger creation", msg)
	}
}

func TestRespondConversation(t *testing.T) {
	t.Parallel()

	resp := Respond("hello", nil, nil, catalogFixture())

	assert.Equal(t, TypeConversation, resp.Type)
	assert.Nil(t, resp.StyleguideData)
	assert.Len(t, resp.Suggestions, 3)
	assert.NotEmpty(t, resp.Message)
}

func TestRespondOnboardingFallbacks(t *testing.T) {
	t.Parallel()

	resp := Respond("create", nil, nil, catalogFixture())
	require.NotNil(t, resp.StyleguideData)
	assert.Equal(t, FallbackMission, resp.StyleguideData.PersonalMission)
	assert.Equal(t, FallbackVoice, resp.StyleguideData.BrandVoice)
	assert.Equal(t, FallbackAudience, resp.StyleguideData.TargetAudience)
}

func TestRespondOnboardingFieldsOverrideFallbacks(t *testing.T) {
	t.Parallel()

	onboarding := &models.OnboardingData{
		PersonalMission: "Help freelancers find clients",
		BrandVoice:      "Playful",
		// TargetAudience deliberately empty
	}

	resp := Respond("generate a styleguide", onboarding, nil, catalogFixture())
	require.NotNil(t, resp.StyleguideData)
	assert.Equal(t, "Help freelancers find clients", resp.StyleguideData.PersonalMission)
	assert.Equal(t, "Playful", resp.StyleguideData.BrandVoice)
	assert.Equal(t, FallbackAudience, resp.StyleguideData.TargetAudience)
}

func TestRespondNoTemplatesFallsBackToConversation(t *testing.T) {
	t.Parallel()

	resp := Respond("create", nil, nil, nil)
	assert.Equal(t, TypeConversation, resp.Type)
}

func TestRespondIsDeterministic(t *testing.T) {
	t.Parallel()

	a := Respond("create", nil, nil, catalogFixture())
	b := Respond("create", nil, nil, catalogFixture())
	assert.Equal(t, a, b)
}
