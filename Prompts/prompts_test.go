package Prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosisPromptContainsSymptoms(t *testing.T) {
	prompt := Diagnosis("fever, cough")
	assert.Contains(t, prompt, "fever, cough")
	assert.Contains(t, prompt, "Respond with only HTML.")
}

func TestDiagnosisPromptSectionOrder(t *testing.T) {
	prompt := Diagnosis("headache")

	sections := []string{
		"<h3>Diagnosis Summary</h3>",
		"<h3>Recommended Medicines</h3>",
		"<h3>Possible Side Effects</h3>",
		"<h3>Things to Avoid</h3>",
		"<h3>Follow-Up Suggestions</h3>",
	}

	last := -1
	for _, section := range sections {
		index := strings.Index(prompt, section)
		require.GreaterOrEqual(t, index, 0, "missing section %s", section)
		assert.Greater(t, index, last, "section %s out of order", section)
		last = index
	}

	assert.Contains(t, prompt, "exactly six")
}

func TestIsEmergencyMatchesKnownPhrases(t *testing.T) {
	for _, message := range []string{
		"I have chest pain",
		"my father had a HEART ATTACK",
		"is this a stroke?",
		"difficulty breathing since this morning",
		"severe bleeding from a cut",
		"she is unconscious",
		"I'm thinking about suicide",
		"possible overdose",
		"severe allergic reaction to peanuts",
		"someone is choking",
		"severe burn on my arm",
	} {
		assert.True(t, IsEmergency(message), "expected emergency for %q", message)
	}
}

func TestIsEmergencyIgnoresOrdinaryMessages(t *testing.T) {
	for _, message := range []string{
		"",
		"I have a mild headache",
		"what should I eat for breakfast?",
		"my chest feels fine now",
	} {
		assert.False(t, IsEmergency(message), "unexpected emergency for %q", message)
	}
}

func TestChatPromptCarriesOpaqueIDWhenAuthenticated(t *testing.T) {
	prompt := Chat("hello", "user-42", true)
	assert.Contains(t, prompt, "User is authenticated (ID: user-42)")
	assert.Contains(t, prompt, "User message: hello")
}

func TestChatPromptOmitsIdentityWhenAnonymous(t *testing.T) {
	prompt := Chat("hello", "", false)
	assert.NotContains(t, prompt, "User is authenticated")
	assert.Contains(t, prompt, "User message: hello")
}

func TestSymptomAnalysisPrompt(t *testing.T) {
	prompt := SymptomAnalysis([]string{"fever", "cough"}, map[string]any{"age": 30})
	assert.Contains(t, prompt, "fever, cough")
	assert.Contains(t, prompt, `"age":30`)
}

func TestSymptomAnalysisPromptWithoutUserInfo(t *testing.T) {
	prompt := SymptomAnalysis([]string{"nausea"}, nil)
	assert.Contains(t, prompt, "nausea")
	assert.Contains(t, prompt, "{}")
}

func TestHealthTipsPrompt(t *testing.T) {
	prompt := HealthTips("sleep")
	assert.Contains(t, prompt, "category: sleep")
}
