package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brandforgehq/brandforge/internal/pkg/env"
)

// Provider is the external AI image service boundary. The real provider is an
// out-of-process collaborator; handlers only ever see this interface.
type Provider interface {
	// GenerateImage runs a one-off generation and returns the provider's
	// tracking id plus the resulting image URL.
	GenerateImage(ctx context.Context, prompt, style string) (trackingID string, imageURL string, err error)
	// TrainModel starts training a personal model from the given source
	// images and returns the provider-side model id.
	TrainModel(ctx context.Context, triggerWord string, imageURLs []string) (string, error)
	// GenerateWithModel produces candidate images from a trained model.
	GenerateWithModel(ctx context.Context, providerModelID, triggerWord, prompt string) ([]string, error)
}

// httpProvider talks to the provider's JSON API.
type httpProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider builds a provider client from environment configuration.
func NewHTTPProvider() Provider {
	return &httpProvider{
		baseURL: env.GetEnv("IMAGE_PROVIDER_URL", "https://api.image-provider.test"),
		apiKey:  env.GetEnv("IMAGE_PROVIDER_API_KEY", ""),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *httpProvider) GenerateImage(ctx context.Context, prompt, style string) (string, string, error) {
	var out struct {
		TrackingID string `json:"tracking_id"`
		ImageURL   string `json:"image_url"`
	}
	err := p.post(ctx, "/v1/generations", map[string]string{
		"prompt": prompt,
		"style":  style,
	}, &out)
	if err != nil {
		return "", "", err
	}
	return out.TrackingID, out.ImageURL, nil
}

func (p *httpProvider) TrainModel(ctx context.Context, triggerWord string, imageURLs []string) (string, error) {
	var out struct {
		ModelID string `json:"model_id"`
	}
	err := p.post(ctx, "/v1/models", map[string]interface{}{
		"trigger_word": triggerWord,
		"images":       imageURLs,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.ModelID, nil
}

func (p *httpProvider) GenerateWithModel(ctx context.Context, providerModelID, triggerWord, prompt string) ([]string, error) {
	var out struct {
		ImageURLs []string `json:"image_urls"`
	}
	err := p.post(ctx, "/v1/models/"+providerModelID+"/generations", map[string]string{
		"trigger_word": triggerWord,
		"prompt":       prompt,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.ImageURLs, nil
}

func (p *httpProvider) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("image provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Active provider instance; swapped by tests with a fake.
var activeProvider Provider

// GetProvider returns the configured provider client.
func GetProvider() Provider {
	if activeProvider == nil {
		activeProvider = NewHTTPProvider()
	}
	return activeProvider
}

// SetProvider overrides the provider; used by tests.
func SetProvider(p Provider) {
	activeProvider = p
}
