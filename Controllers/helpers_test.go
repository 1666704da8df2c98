package Controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/AnmolGhill/Halo/FirebaseAuth"
	"github.com/AnmolGhill/Halo/Middleware"
)

type stubIdentity struct {
	verifyUID string
	verifyErr error

	registerRec *FirebaseAuth.UserRecord
	registerErr error
	loginRec    *FirebaseAuth.UserRecord
	loginErr    error
	profileRec  *FirebaseAuth.UserRecord
	profileErr  error
	updateErr   error
	deleteErr   error

	registerCalls   int
	deleteCalls     int
	lastDisplayName string
}

func (s *stubIdentity) Register(ctx context.Context, p FirebaseAuth.RegisterParams) (*FirebaseAuth.UserRecord, error) {
	s.registerCalls++
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registerRec, nil
}

func (s *stubIdentity) Login(ctx context.Context, idToken string) (*FirebaseAuth.UserRecord, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginRec, nil
}

func (s *stubIdentity) Verify(ctx context.Context, idToken string) (string, error) {
	if s.verifyErr != nil {
		return "", s.verifyErr
	}
	return s.verifyUID, nil
}

func (s *stubIdentity) Profile(ctx context.Context, uid string) (*FirebaseAuth.UserRecord, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profileRec, nil
}

func (s *stubIdentity) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	s.lastDisplayName = displayName
	return s.updateErr
}

func (s *stubIdentity) Delete(ctx context.Context, uid string) error {
	s.deleteCalls++
	return s.deleteErr
}

type stubGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newAuthRouter(ids *stubIdentity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewAuthController(ids)
	router.POST("/api/auth/register", controller.Register)
	router.POST("/api/auth/login", controller.Login)

	protected := router.Group("", Middleware.RequireAuth(ids))
	protected.GET("/api/auth/profile", controller.GetProfile)
	protected.PUT("/api/auth/profile", controller.UpdateProfile)
	protected.DELETE("/api/auth/account", controller.DeleteAccount)
	return router
}

func newChatbotRouter(ids *stubIdentity, model *stubGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewChatbotController(model)

	group := router.Group("/api/chatbot", Middleware.OptionalAuth(ids))
	group.POST("/chat", controller.Chat)
	group.POST("/analyze-symptoms", controller.AnalyzeSymptoms)
	group.POST("/health-tips", controller.HealthTips)
	group.GET("/conversations", controller.GetConversations)
	group.GET("/conversations/:id", controller.GetConversation)
	group.DELETE("/conversations/:id", controller.DeleteConversation)
	group.GET("/symptom-history", controller.GetSymptomHistory)
	return router
}

func performJSON(router *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
