package assistant

import (
	"fmt"
	"strings"

	"github.com/brandforgehq/brandforge/app/models"
)

// Response types returned by the assistant.
const (
	TypeStyleguideCreated = "styleguide_created"
	TypeConversation      = "conversation"
)

// Placeholder values used when onboarding data is absent for a field.
const (
	FallbackMission  = "To inspire and help others with my unique skills"
	FallbackVoice    = "Professional yet approachable"
	FallbackAudience = "Professionals looking to grow their personal brand"
)

// Keywords that classify a message as a creation request. Substring match,
// so "created" triggers as well.
var creationKeywords = []string{"create", "new", "generate"}

// StyleguideData is the structured payload attached to a creation response.
type StyleguideData struct {
	TemplateID       uint        `json:"templateId"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Colors           models.JSON `json:"colors"`
	Typography       models.JSON `json:"typography"`
	PersonalMission  string      `json:"personalMission"`
	BrandVoice       string      `json:"brandVoice"`
	TargetAudience   string      `json:"targetAudience"`
	BrandPersonality string      `json:"brandPersonality"`
}

// Response is the assistant's reply to one chat message.
type Response struct {
	Type           string          `json:"type"`
	Message        string          `json:"message"`
	StyleguideData *StyleguideData `json:"styleguideData,omitempty"`
	Suggestions    []string        `json:"suggestions,omitempty"`
}

// Respond classifies the message and builds the reply. It is a pure function
// of its inputs: no state, no randomness, no external calls, and it never
// persists anything.
func Respond(message string, onboarding *models.OnboardingData, currentStyleguide models.JSON, templates []models.Template) Response {
	if isCreationRequest(message) && len(templates) > 0 {
		return creationResponse(onboarding, templates[0])
	}
	return conversationResponse()
}

func isCreationRequest(message string) bool {
	lowered := strings.ToLower(message)
	for _, kw := range creationKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// creationResponse narrates the first available template and merges its
// config with the caller's onboarding-derived mission, voice and audience.
func creationResponse(onboarding *models.OnboardingData, template models.Template) Response {
	cfg, _ := template.DecodeConfig()

	mission := FallbackMission
	voice := FallbackVoice
	audience := FallbackAudience
	if onboarding != nil {
		if onboarding.PersonalMission != "" {
			mission = onboarding.PersonalMission
		}
		if onboarding.BrandVoice != "" {
			voice = onboarding.BrandVoice
		}
		if onboarding.TargetAudience != "" {
			audience = onboarding.TargetAudience
		}
	}

	colors := models.JSON(fmt.Sprintf(`{"primary":%q,"secondary":%q,"accent":%q}`,
		cfg.PrimaryColor, cfg.SecondaryColor, cfg.AccentColor))
	typography := models.JSON(fmt.Sprintf(`{"heading":%q,"body":%q}`,
		cfg.HeadingFont, cfg.BodyFont))

	msg := fmt.Sprintf(
		"I've created a styleguide based on the %s template. %s It pairs %s headings with a %s primary color to keep your brand consistent everywhere.",
		template.Name, template.Description, cfg.HeadingFont, cfg.PrimaryColor,
	)

	return Response{
		Type:    TypeStyleguideCreated,
		Message: msg,
		StyleguideData: &StyleguideData{
			TemplateID:       template.ID,
			Name:             template.Name,
			Description:      template.Description,
			Colors:           colors,
			Typography:       typography,
			PersonalMission:  mission,
			BrandVoice:       voice,
			TargetAudience:   audience,
			BrandPersonality: template.Category,
		},
	}
}

func conversationResponse() Response {
	return Response{
		Type:    TypeConversation,
		Message: "I can help you shape your brand's look and voice. Tell me what you'd like to work on, or ask me to create a styleguide for you.",
		Suggestions: []string{
			"Create a styleguide for me",
			"What colors fit a coaching brand?",
			"Show me the available templates",
		},
	}
}
