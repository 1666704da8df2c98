package Controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AnmolGhill/Halo/ApiErrors"
	"github.com/AnmolGhill/Halo/Gemini"
	"github.com/AnmolGhill/Halo/Logger"
	"github.com/AnmolGhill/Halo/Prompts"
)

type DiagnosisController struct {
	Model Gemini.Generator
}

func NewDiagnosisController(model Gemini.Generator) *DiagnosisController {
	return &DiagnosisController{Model: model}
}

// GetDiagnosis is the single-shot symptom-to-diagnosis endpoint. It takes a
// form field rather than JSON because the legacy frontend posts a form.
func (d *DiagnosisController) GetDiagnosis(c *gin.Context) {
	symptoms := strings.TrimSpace(c.PostForm("symptoms"))
	if symptoms == "" {
		ApiErrors.Respond(c, ApiErrors.New(ApiErrors.Validation, "No symptoms provided"))
		return
	}

	response, err := d.Model.Generate(c.Request.Context(), Prompts.Diagnosis(symptoms))
	if err != nil {
		Logger.L.Warn("diagnosis generation failed", zap.Error(err))
		ApiErrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
