package Controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AnmolGhill/Halo/ApiErrors"
	"github.com/AnmolGhill/Halo/Gemini"
	"github.com/AnmolGhill/Halo/Logger"
	"github.com/AnmolGhill/Halo/Middleware"
	"github.com/AnmolGhill/Halo/Models"
	"github.com/AnmolGhill/Halo/Prompts"
)

type ChatbotController struct {
	Model Gemini.Generator
}

func NewChatbotController(model Gemini.Generator) *ChatbotController {
	return &ChatbotController{Model: model}
}

type chatInput struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversationId"`
}

func (cc *ChatbotController) Chat(c *gin.Context) {
	var input chatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrors.Respond(c, ApiErrors.Wrap(ApiErrors.Validation, "message is required", err))
		return
	}

	identity := Middleware.CurrentIdentity(c)

	// The emergency gate runs before anything else touches the model. A match
	// answers with the canned guidance and skips the provider entirely.
	if Prompts.IsEmergency(input.Message) {
		c.JSON(http.StatusOK, gin.H{
			"success":        true,
			"message":        Prompts.EmergencyMessage,
			"conversationId": input.ConversationID,
			"timestamp":      time.Now().Format(time.RFC3339),
			"isEmergency":    true,
		})
		return
	}

	conversationID := input.ConversationID
	if conversationID == "" {
		// Synthesized ids are opaque; without auth nothing backs them and
		// callers must not expect a later lookup to succeed.
		conversationID = "conv_" + uuid.NewString()
	}

	prompt := Prompts.Chat(input.Message, identity.UID, identity.State == Middleware.Authenticated)
	reply, err := cc.Model.Generate(c.Request.Context(), prompt)
	if err != nil {
		Logger.L.Warn("chat generation failed", zap.Error(err))
		ApiErrors.Respond(c, err)
		return
	}

	if identity.State == Middleware.Authenticated {
		cc.persistTurn(identity.UID, conversationID, input.Message, reply)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        reply,
		"conversationId": conversationID,
		"timestamp":      time.Now().Format(time.RFC3339),
	})
}

// persistTurn stores both sides of an exchange. Best effort: the reply is
// already in hand and a storage hiccup must not fail the request.
func (cc *ChatbotController) persistTurn(uid, conversationID, message, reply string) {
	if _, err := Models.EnsureConversation(uid, conversationID, message); err != nil {
		Logger.L.Warn("failed to persist conversation", zap.Error(err))
		return
	}
	if err := Models.AppendMessage(conversationID, "user", message); err != nil {
		Logger.L.Warn("failed to persist user message", zap.Error(err))
		return
	}
	if err := Models.AppendMessage(conversationID, "assistant", reply); err != nil {
		Logger.L.Warn("failed to persist assistant message", zap.Error(err))
	}
}

type symptomAnalysisInput struct {
	Symptoms []string       `json:"symptoms" binding:"required"`
	UserInfo map[string]any `json:"userInfo"`
}

func (cc *ChatbotController) AnalyzeSymptoms(c *gin.Context) {
	var input symptomAnalysisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrors.Respond(c, ApiErrors.Wrap(ApiErrors.Validation, "symptoms are required", err))
		return
	}

	symptoms := make([]string, 0, len(input.Symptoms))
	for _, symptom := range input.Symptoms {
		if trimmed := strings.TrimSpace(symptom); trimmed != "" {
			symptoms = append(symptoms, trimmed)
		}
	}
	if len(symptoms) == 0 {
		ApiErrors.Respond(c, ApiErrors.New(ApiErrors.Validation, "At least one symptom is required"))
		return
	}

	analysis, err := cc.Model.Generate(c.Request.Context(), Prompts.SymptomAnalysis(symptoms, input.UserInfo))
	if err != nil {
		Logger.L.Warn("symptom analysis failed", zap.Error(err))
		ApiErrors.Respond(c, err)
		return
	}

	identity := Middleware.CurrentIdentity(c)
	if identity.State == Middleware.Authenticated {
		if err := Models.SaveSymptomRecord(identity.UID, strings.Join(symptoms, ", "), analysis); err != nil {
			Logger.L.Warn("failed to persist symptom record", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"analysis":  analysis,
		"symptoms":  symptoms,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (cc *ChatbotController) HealthTips(c *gin.Context) {
	var input struct {
		Category string `json:"category"`
	}
	// Body is optional; an empty or absent category means general tips.
	_ = c.ShouldBindJSON(&input)
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "general"
	}

	tips, err := cc.Model.Generate(c.Request.Context(), Prompts.HealthTips(category))
	if err != nil {
		Logger.L.Warn("health tips failed", zap.Error(err))
		ApiErrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"tips":      tips,
		"category":  category,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (cc *ChatbotController) GetConversations(c *gin.Context) {
	identity := Middleware.CurrentIdentity(c)
	if identity.State != Middleware.Authenticated {
		// Nothing is keyed to an anonymous caller, so the empty list is the
		// honest answer, not a stub.
		c.JSON(http.StatusOK, gin.H{"success": true, "conversations": []Models.Conversation{}})
		return
	}

	conversations, err := Models.GetConversationsByUID(identity.UID)
	if err != nil {
		ApiErrors.Respond(c, ApiErrors.Wrap(ApiErrors.Internal, "Failed to load conversations", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "conversations": conversations})
}

func (cc *ChatbotController) GetConversation(c *gin.Context) {
	identity := Middleware.CurrentIdentity(c)
	if identity.State != Middleware.Authenticated {
		ApiErrors.Respond(c, ApiErrors.New(ApiErrors.NotFound, "Conversation not found"))
		return
	}

	conversation, err := Models.GetConversation(identity.UID, c.Param("id"))
	if err != nil {
		ApiErrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "conversation": conversation})
}

func (cc *ChatbotController) DeleteConversation(c *gin.Context) {
	identity := Middleware.CurrentIdentity(c)
	if identity.State != Middleware.Authenticated {
		ApiErrors.Respond(c, ApiErrors.New(ApiErrors.Unauthorized, "Authentication required to delete conversations"))
		return
	}

	if err := Models.DeleteConversation(identity.UID, c.Param("id")); err != nil {
		ApiErrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Conversation deleted successfully"})
}

func (cc *ChatbotController) GetSymptomHistory(c *gin.Context) {
	identity := Middleware.CurrentIdentity(c)
	if identity.State != Middleware.Authenticated {
		c.JSON(http.StatusOK, gin.H{"success": true, "history": []Models.SymptomRecord{}})
		return
	}

	history, err := Models.GetSymptomHistory(identity.UID)
	if err != nil {
		ApiErrors.Respond(c, ApiErrors.Wrap(ApiErrors.Internal, "Failed to load symptom history", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}
