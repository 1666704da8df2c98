package Gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/AnmolGhill/Halo/ApiErrors"
)

func responseWithParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
		},
	}
}

func TestNormalizeDirectText(t *testing.T) {
	resp := responseWithParts(&genai.Part{Text: "You may have a cold."})

	text, err := Normalize(resp)
	require.NoError(t, err)
	assert.Equal(t, "You may have a cold.", text)
}

func TestNormalizeFallsBackToLaterCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{}}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "nested answer"}}}},
		},
	}

	text, err := Normalize(resp)
	require.NoError(t, err)
	assert.Equal(t, "nested answer", text)
}

func TestNormalizeEmptyResponse(t *testing.T) {
	_, err := Normalize(&genai.GenerateContentResponse{})
	require.Error(t, err)
	assert.Equal(t, ApiErrors.EmptyResponse, ApiErrors.KindOf(err))
}

func TestNormalizeNilResponse(t *testing.T) {
	_, err := Normalize(nil)
	require.Error(t, err)
	assert.Equal(t, ApiErrors.EmptyResponse, ApiErrors.KindOf(err))
}

func TestNormalizeWhitespaceOnly(t *testing.T) {
	resp := responseWithParts(&genai.Part{Text: "  \n\t "})

	_, err := Normalize(resp)
	require.Error(t, err)
	assert.Equal(t, ApiErrors.EmptyResponse, ApiErrors.KindOf(err))
}

func TestNormalizeSkipsNilCandidates(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{Content: nil},
			{Content: &genai.Content{Parts: []*genai.Part{nil, {Text: "ok"}}}},
		},
	}

	text, err := Normalize(resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}
