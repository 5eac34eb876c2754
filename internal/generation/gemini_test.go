package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	resp  *genai.GenerateContentResponse
	err   error
	block bool

	calls int
	parts []genai.Part
}

func (m *fakeModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.parts = parts
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.resp, m.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.Text(p))
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func testGateway(m *fakeModel, opts GeminiOptions) (*GeminiGateway, *[]modelSpec) {
	var specs []modelSpec
	g := newGateway(opts)
	g.newModel = func(spec modelSpec) contentModel {
		specs = append(specs, spec)
		return m
	}
	return g, &specs
}

func TestGenerate_EmptyPromptMakesNoCall(t *testing.T) {
	m := &fakeModel{resp: textResponse("unused")}
	g, specs := testGateway(m, GeminiOptions{})

	_, err := g.Generate(context.Background(), Request{})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, m.calls)
	assert.Empty(t, *specs)
}

func TestGenerate_Defaults(t *testing.T) {
	m := &fakeModel{resp: textResponse("A dragon ", "sneezes.")}
	g, specs := testGateway(m, GeminiOptions{})

	text, err := g.Generate(context.Background(), Request{OriginPrompt: "Describe a dragon."})

	require.NoError(t, err)
	assert.Equal(t, "A dragon sneezes.", text)
	require.Len(t, *specs, 1)
	assert.Equal(t, modelSpec{Name: DefaultModel, Temperature: 1}, (*specs)[0])
	assert.Equal(t, []genai.Part{genai.Text("Describe a dragon.")}, m.parts)
}

func TestGenerate_UsesRequestParameters(t *testing.T) {
	m := &fakeModel{resp: textResponse("ok")}
	g, specs := testGateway(m, GeminiOptions{DefaultModel: "gemini-configured"})

	_, err := g.Generate(context.Background(), Request{
		OriginPrompt: "p",
		Model:        "gemini-2.5-pro",
		SystemPrompt: "You are a Game Master.",
		Temperature:  Temperature(0.4),
	})

	require.NoError(t, err)
	assert.Equal(t, modelSpec{Name: "gemini-2.5-pro", SystemPrompt: "You are a Game Master.", Temperature: 0.4}, (*specs)[0])
}

func TestGenerate_ZeroTemperatureFallsBack(t *testing.T) {
	m := &fakeModel{resp: textResponse("ok")}
	g, specs := testGateway(m, GeminiOptions{})

	_, err := g.Generate(context.Background(), Request{OriginPrompt: "p", Temperature: Temperature(0)})

	require.NoError(t, err)
	assert.Equal(t, DefaultTemperature, (*specs)[0].Temperature)
}

func TestGenerate_ConfiguredDefaultModel(t *testing.T) {
	m := &fakeModel{resp: textResponse("ok")}
	g, specs := testGateway(m, GeminiOptions{DefaultModel: "gemini-configured"})

	_, err := g.Generate(context.Background(), Request{OriginPrompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, "gemini-configured", (*specs)[0].Name)
}

func TestGenerate_EmptyResponse(t *testing.T) {
	for name, resp := range map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"empty text":    textResponse(""),
		"nil content":   {Candidates: []*genai.Candidate{{}}},
	} {
		t.Run(name, func(t *testing.T) {
			g, _ := testGateway(&fakeModel{resp: resp}, GeminiOptions{})
			_, err := g.Generate(context.Background(), Request{OriginPrompt: "p"})
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	cause := errors.New("quota exceeded")
	m := &fakeModel{err: cause}
	g, _ := testGateway(m, GeminiOptions{})

	_, err := g.Generate(context.Background(), Request{OriginPrompt: "p"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 1, m.calls, "a failed call is not retried")
}

func TestGenerate_TimeoutIsProviderError(t *testing.T) {
	m := &fakeModel{block: true}
	g, _ := testGateway(m, GeminiOptions{Timeout: 10 * time.Millisecond})

	_, err := g.Generate(context.Background(), Request{OriginPrompt: "p"})

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
