package controller

import (
	"net/http"
	"reflect"
	"strings"

	"explainmymistake/internal/dto"
	"explainmymistake/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

func init() {
	// Report validation errors under the JSON field names the caller sent.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

type Controller struct {
	submissionSvc service.SubmissionService
}

func NewController(submissionSvc service.SubmissionService) *Controller {
	return &Controller{submissionSvc: submissionSvc}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/submit", ctrl.SubmitHandler)
		api.GET("/history/:user_id", ctrl.HistoryHandler)
	}
}

// SubmitHandler godoc
// @Summary Submit a question and attempted answer for analysis
// @Description Validates the submission, persists it, has the AI produce an answer-safe critique and returns it
// @Tags submissions
// @Accept json
// @Produce json
// @Param submission body dto.SubmitRequest true "Submission data"
// @Success 200 {object} dto.SubmitResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Field-level validation errors"
// @Failure 500 {object} dto.ErrorResponse "Configuration, AI or storage error"
// @Router /submit [post]
func (ctrl *Controller) SubmitHandler(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitRequest")
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Error: dto.FieldIssuesFromBinding(err)})
		return
	}

	resp, err := ctrl.submissionSvc.Submit(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Str("userId", req.UserID).Msg("Failed to process submission")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HistoryHandler godoc
// @Summary Get all submissions for a user
// @Description Retrieves every stored submission for the user, newest first, including the analysis result when present
// @Tags submissions
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.SubmissionResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /history/{user_id} [get]
func (ctrl *Controller) HistoryHandler(c *gin.Context) {
	userID := c.Param("user_id")

	items, err := ctrl.submissionSvc.History(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("Failed to retrieve history")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve submission history"})
		return
	}
	c.JSON(http.StatusOK, items)
}
