package Prompts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// diagnosisTemplate is the canonical single-shot diagnosis prompt. Only the
// symptom string is interpolated; everything else is fixed so the frontend can
// rely on the section structure.
const diagnosisTemplate = `I am experiencing the following symptoms: %s.

Please analyze and return the diagnosis result as HTML with these sections clearly labeled, in this exact order:
<div class='info-card'>
  <h3>Diagnosis Summary</h3>
  <ol>...</ol>
</div>
<div class='info-card'>
  <h3>Recommended Medicines</h3>
  <ol>...</ol>
</div>
<div class='info-card'>
  <h3>Possible Side Effects</h3>
  <ol>...</ol>
</div>
<div class='info-card'>
  <h3>Things to Avoid</h3>
  <ol>...</ol>
</div>
<div class='info-card'>
  <h3>Follow-Up Suggestions</h3>
  <ol>...</ol>
</div>
Each section must contain an ordered list of exactly six bulleted items, and every item must begin with a bold label, like <li><strong>Label:</strong> detail</li>.
Respond with only HTML.`

const chatSystemPrompt = `You are HALO, an AI healthcare assistant. You provide helpful, accurate health information while being empathetic and supportive.

IMPORTANT SAFETY GUIDELINES:
- Always remind users that you're not a replacement for professional medical advice
- For emergencies, immediately direct users to call emergency services
- Be cautious about providing specific medical diagnoses
- Encourage users to consult healthcare professionals for serious concerns
- Provide general health information and wellness tips

Respond in a friendly, professional manner. Keep responses concise but informative.`

// EmergencyMessage is returned verbatim when the emergency gate trips; the
// model is never consulted for it.
const EmergencyMessage = "🚨 **EMERGENCY ALERT** 🚨\n\nI notice you may be describing a medical emergency. Please:\n\n**IMMEDIATE ACTIONS:**\n• Call emergency services immediately (911 in US, 112 in EU, or your local emergency number)\n• If someone is unconscious or not breathing, start CPR if trained\n• Stay calm and follow emergency operator instructions\n\n**DO NOT DELAY:** This AI cannot replace emergency medical care. Professional help is needed immediately for potentially life-threatening situations."

var emergencyKeywords = []string{
	"chest pain", "heart attack", "stroke", "difficulty breathing",
	"severe bleeding", "unconscious", "suicide", "overdose",
	"severe allergic reaction", "choking", "severe burn",
}

// IsEmergency reports whether the message contains any known emergency
// phrase. It must run before every model call on the chat path.
func IsEmergency(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range emergencyKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func Diagnosis(symptoms string) string {
	return fmt.Sprintf(diagnosisTemplate, symptoms)
}

// Chat wraps the user's message with the safety preamble. The auth note only
// ever carries the opaque uid, never other PII.
func Chat(message, uid string, authenticated bool) string {
	userContext := ""
	if authenticated {
		userContext = fmt.Sprintf("\nUser is authenticated (ID: %s)", uid)
	}
	return fmt.Sprintf("%s\n%s\n\nUser message: %s\n\nResponse:", chatSystemPrompt, userContext, message)
}

func SymptomAnalysis(symptoms []string, userInfo map[string]any) string {
	if userInfo == nil {
		userInfo = map[string]any{}
	}
	context, err := json.Marshal(userInfo)
	if err != nil {
		context = []byte("{}")
	}
	return fmt.Sprintf(`As HALO, an AI healthcare assistant, analyze these symptoms: %s

User context: %s

Provide a structured analysis including:
1. Possible conditions (emphasize these are possibilities, not diagnoses)
2. Recommended actions
3. When to seek medical care
4. General wellness tips

IMPORTANT: Always emphasize that this is not a medical diagnosis and professional consultation is recommended for proper evaluation.

Format your response in a clear, structured manner.`, strings.Join(symptoms, ", "), context)
}

func HealthTips(category string) string {
	return fmt.Sprintf(`As HALO, provide 5-7 practical health tips for the category: %s

Make the tips:
- Actionable and specific
- Evidence-based
- Easy to understand
- Suitable for general audiences
- Focused on prevention and wellness

Format as a numbered list with brief explanations.`, category)
}
