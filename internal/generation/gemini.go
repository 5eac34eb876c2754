package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// DefaultTimeout bounds one provider round trip.
const DefaultTimeout = 2 * time.Minute

// contentModel is the part of *genai.GenerativeModel the gateway uses.
type contentModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type modelSpec struct {
	Name         string
	SystemPrompt string
	Temperature  float32
}

// GeminiGateway sends requests to Gemini.
type GeminiGateway struct {
	client       *genai.Client
	newModel     func(modelSpec) contentModel
	defaultModel string
	timeout      time.Duration
	log          *logrus.Entry
}

// GeminiOptions configures a GeminiGateway.
type GeminiOptions struct {
	APIKey       string
	DefaultModel string
	Timeout      time.Duration
}

// NewGeminiGateway connects a Gemini client with the given API key.
func NewGeminiGateway(ctx context.Context, opts GeminiOptions) (*GeminiGateway, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create generative client: %w", err)
	}
	g := newGateway(opts)
	g.client = client
	g.newModel = func(spec modelSpec) contentModel {
		model := client.GenerativeModel(spec.Name)
		if spec.SystemPrompt != "" {
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(spec.SystemPrompt)}}
		}
		model.SetTemperature(spec.Temperature)
		return model
	}
	return g, nil
}

func newGateway(opts GeminiOptions) *GeminiGateway {
	g := &GeminiGateway{
		defaultModel: opts.DefaultModel,
		timeout:      opts.Timeout,
		log:          logrus.WithField("component", "generation"),
	}
	if g.defaultModel == "" {
		g.defaultModel = DefaultModel
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	return g
}

// Generate implements Generator.
func (g *GeminiGateway) Generate(ctx context.Context, req Request) (string, error) {
	if req.OriginPrompt == "" {
		g.log.Warn("Rejected generation request without prompt")
		return "", ErrInvalidInput
	}

	spec := modelSpec{
		Name:         req.Model,
		SystemPrompt: req.SystemPrompt,
		Temperature:  DefaultTemperature,
	}
	if spec.Name == "" {
		spec.Name = g.defaultModel
	}
	// Zero means unset, as for the other parameters.
	if req.Temperature != nil && *req.Temperature != 0 {
		spec.Temperature = *req.Temperature
	}
	logCtx := g.log.WithFields(logrus.Fields{"model": spec.Name, "temperature": spec.Temperature})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	started := time.Now()
	resp, err := g.newModel(spec).GenerateContent(ctx, genai.Text(req.OriginPrompt))
	if err != nil {
		logCtx.WithError(err).Error("Generation request failed")
		return "", &ProviderError{Err: err}
	}

	text := responseText(resp)
	if text == "" {
		logCtx.Warn("Provider returned no text")
		return "", ErrEmptyResponse
	}
	logCtx.WithField("latency_ms", time.Since(started).Milliseconds()).Debug("Generation completed")
	return text, nil
}

// Close releases the underlying client.
func (g *GeminiGateway) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
