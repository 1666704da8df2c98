package Controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnmolGhill/Halo/ApiErrors"
	"github.com/AnmolGhill/Halo/FirebaseAuth"
	"github.com/AnmolGhill/Halo/Logger"
	"github.com/AnmolGhill/Halo/Middleware"
	"github.com/AnmolGhill/Halo/Models"
)

type AuthController struct {
	Identity FirebaseAuth.Identity
}

func NewAuthController(ids FirebaseAuth.Identity) *AuthController {
	return &AuthController{Identity: ids}
}

type registerInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

func (a *AuthController) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrors.Respond(c, ApiErrors.Wrap(ApiErrors.Validation, "Invalid registration data", err))
		return
	}

	user, err := a.Identity.Register(c.Request.Context(), FirebaseAuth.RegisterParams{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if err != nil {
		Logger.L.Warn("registration failed", zap.Error(err))
		ApiErrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"uid":         user.UID,
			"email":       user.Email,
			"displayName": user.DisplayName,
		},
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var input struct {
		IDToken string `json:"idToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrors.Respond(c, ApiErrors.Wrap(ApiErrors.Validation, "idToken is required", err))
		return
	}

	user, err := a.Identity.Login(c.Request.Context(), input.IDToken)
	if err != nil {
		ApiErrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"uid":           user.UID,
			"email":         user.Email,
			"displayName":   user.DisplayName,
			"emailVerified": user.EmailVerified,
		},
	})
}

func (a *AuthController) GetProfile(c *gin.Context) {
	identity := Middleware.CurrentIdentity(c)

	user, err := a.Identity.Profile(c.Request.Context(), identity.UID)
	if err != nil {
		Logger.L.Error("profile lookup failed after verified token", zap.String("uid", identity.UID), zap.Error(err))
		ApiErrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"uid":           user.UID,
			"email":         user.Email,
			"displayName":   user.DisplayName,
			"emailVerified": user.EmailVerified,
			"photoURL":      user.PhotoURL,
			"phoneNumber":   user.PhoneNumber,
		},
	})
}

type profileInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	// Accepted but ignored: the identity provider only backs display-name
	// fields, and there is no other profile store.
	Age            *int   `json:"age"`
	Gender         string `json:"gender"`
	MedicalHistory string `json:"medicalHistory"`
}

func (a *AuthController) UpdateProfile(c *gin.Context) {
	identity := Middleware.CurrentIdentity(c)

	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ApiErrors.Respond(c, ApiErrors.Wrap(ApiErrors.Validation, "Invalid profile data", err))
		return
	}

	displayName := strings.TrimSpace(strings.TrimSpace(input.FirstName) + " " + strings.TrimSpace(input.LastName))
	if displayName != "" {
		if err := a.Identity.UpdateDisplayName(c.Request.Context(), identity.UID, displayName); err != nil {
			ApiErrors.Respond(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
	})
}

func (a *AuthController) DeleteAccount(c *gin.Context) {
	identity := Middleware.CurrentIdentity(c)

	if err := a.Identity.Delete(c.Request.Context(), identity.UID); err != nil {
		ApiErrors.Respond(c, err)
		return
	}

	// Local history cleanup is best effort; the provider record is already
	// gone and the request must not fail over it.
	if err := Models.DeleteUserHistory(identity.UID); err != nil {
		Logger.L.Warn("failed to delete local history", zap.String("uid", identity.UID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account deleted successfully",
	})
}
