package v1

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/upload"

	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the text fields and part headers around the resume.
const multipartOverhead int64 = 1 << 20

type CandidateHandler struct {
	candidateUC    domain.CandidateUsecase
	maxResumeBytes int64
}

// NewCandidateHandler mounts the candidate routes. writeGuards run before the upsert only.
func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, maxResumeBytes int64, writeGuards ...gin.HandlerFunc) {
	if maxResumeBytes <= 0 {
		maxResumeBytes = upload.DefaultMaxResumeBytes
	}
	handler := &CandidateHandler{candidateUC: candidateUC, maxResumeBytes: maxResumeBytes}

	candidates := r.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.POST("", append(writeGuards, handler.Upsert)...)
	}

	r.GET("/view-resume/:id", handler.ViewResume)
}

// List godoc
// @Summary      List candidates
// @Description  Candidate summaries without resume bytes
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Candidate}
// @Failure      500  {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.candidateUC.ListCandidates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidates retrieved", candidates)
}

// Upsert godoc
// @Summary      Create or update a candidate
// @Description  Upsert a candidate profile keyed by email. A resume (PDF, 3MB max) is optional; omitting it keeps the stored one.
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        name    formData  string  true   "Full name"
// @Param        email   formData  string  true   "Gmail address"
// @Param        phone   formData  string  false  "Phone number"
// @Param        resume  formData  file    false  "Resume PDF"
// @Success      201     {object}  response.Response{data=IDResponse}
// @Success      200     {object}  response.Response{data=IDResponse}
// @Failure      400     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /candidates [post]
func (h *CandidateHandler) Upsert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxResumeBytes+multipartOverhead)

	var in domain.CandidateInput
	if err := c.ShouldBind(&in); err != nil {
		c.Error(h.bindError(err))
		return
	}

	resume, err := h.readResume(c)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.candidateUC.UpsertCandidate(c.Request.Context(), in, resume)
	if err != nil {
		c.Error(err)
		return
	}

	if result.Created {
		response.Success(c, http.StatusCreated, "Candidate created successfully", IDResponse{ID: result.ID})
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated successfully", IDResponse{ID: result.ID})
}

// readResume returns the optional "resume" part, or nil when none was sent.
func (h *CandidateHandler) readResume(c *gin.Context) (*upload.Resume, error) {
	fh, err := c.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, h.bindError(err)
	}
	if fh.Size > h.maxResumeBytes {
		return nil, apperror.PayloadRejected("Resume file size should not exceed 3MB", upload.ErrTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperror.BadRequest("Could not read the uploaded resume")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxResumeBytes+1))
	if err != nil {
		return nil, apperror.BadRequest("Could not read the uploaded resume")
	}

	return &upload.Resume{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *CandidateHandler) bindError(err error) error {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
		return apperror.PayloadRejected("Resume file size should not exceed 3MB", upload.ErrTooLarge)
	}
	return apperror.BadRequest("Invalid form data")
}

// ViewResume godoc
// @Summary      View a candidate's resume
// @Description  Streams the stored resume PDF inline
// @Tags         candidates
// @Produce      application/pdf
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /view-resume/{id} [get]
func (h *CandidateHandler) ViewResume(c *gin.Context) {
	id, ok := pathID(c, "id", "Invalid candidate ID")
	if !ok {
		return
	}

	data, err := h.candidateUC.GetResume(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="resume.pdf"`)
	c.Data(http.StatusOK, upload.PDFContentType, data)
}
