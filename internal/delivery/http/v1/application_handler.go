package v1

import (
	"net/http"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes. writeGuards run before POST /apply only.
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase, writeGuards ...gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	r.POST("/apply", append(writeGuards, handler.Apply)...)
	r.GET("/candidates/:email/applications", handler.ListByCandidate)
	r.GET("/jobs/:id/applications", handler.ListByJob)
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submit an application for an existing candidate. Each candidate may apply to a job once.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      domain.ApplyInput  true  "Job id and candidate email"
// @Success      201          {object}  response.Response{data=IDResponse}
// @Failure      400          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Failure      500          {object}  response.Response
// @Router       /apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req domain.ApplyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.applicationUC.SubmitApplication(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", IDResponse{ID: app.ID})
}

// ListByCandidate godoc
// @Summary      A candidate's applications
// @Tags         applications
// @Produce      json
// @Param        email  path      string  true  "Candidate email"
// @Success      200    {object}  response.Response{data=[]domain.CandidateApplication}
// @Failure      500    {object}  response.Response
// @Router       /candidates/{email}/applications [get]
func (h *ApplicationHandler) ListByCandidate(c *gin.Context) {
	apps, err := h.applicationUC.ListByCandidateEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ListByJob godoc
// @Summary      Applicants for a job
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.JobApplicant}
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	id, ok := pathID(c, "id", "Invalid job ID")
	if !ok {
		return
	}

	applicants, err := h.applicationUC.ListApplicantsByJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants retrieved", applicants)
}
