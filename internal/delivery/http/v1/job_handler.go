package v1

import (
	"net/http"
	"strconv"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := r.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/:id", handler.GetDetails)
		jobs.PUT("/:id", handler.Update)
	}

	r.GET("/locations", handler.Locations)
	r.GET("/sectors", handler.Sectors)
	r.GET("/filters", handler.Filters)
}

// IDResponse carries the id of a created or updated row
type IDResponse struct {
	ID int64 `json:"id"`
}

// List godoc
// @Summary      List jobs
// @Description  List job postings, newest first. Location and sector are exact-match filters.
// @Tags         jobs
// @Produce      json
// @Param        location  query     string  false  "Exact location"
// @Param        sector    query     string  false  "Exact sector"
// @Success      200       {object}  response.Response{data=[]domain.Job}
// @Failure      500       {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	var filter domain.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.BadRequest("Invalid query parameters"))
		return
	}

	jobs, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// Create godoc
// @Summary      Create a job
// @Description  Create a job posting. The posting date defaults to today (UTC).
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      201  {object}  response.Response{data=IDResponse}
// @Failure      400  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created successfully", IDResponse{ID: job.ID})
}

// GetDetails godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, ok := pathID(c, "id", "Invalid job ID")
	if !ok {
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// Update godoc
// @Summary      Update a job
// @Description  Replace every field of an existing job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int              true  "Job ID"
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "Invalid job ID")
	if !ok {
		return
	}

	var req domain.JobInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// Locations godoc
// @Summary      Distinct job locations
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /locations [get]
func (h *JobHandler) Locations(c *gin.Context) {
	locations, err := h.jobUC.ListLocations(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Locations retrieved", locations)
}

// Sectors godoc
// @Summary      Distinct job sectors
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /sectors [get]
func (h *JobHandler) Sectors(c *gin.Context) {
	sectors, err := h.jobUC.ListSectors(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Sectors retrieved", sectors)
}

// Filters godoc
// @Summary      Job filter values
// @Description  Distinct locations and sectors in one call
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.JobFilters}
// @Router       /filters [get]
func (h *JobHandler) Filters(c *gin.Context) {
	filters, err := h.jobUC.ListFilters(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Filters retrieved", filters)
}

// pathID parses a positive int64 path parameter, pushing a 400 on failure.
func pathID(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest(message))
		return 0, false
	}
	return id, true
}
