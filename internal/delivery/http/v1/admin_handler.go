package v1

import (
	"fmt"
	"net/http"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(r *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	tables := r.Group("/tables")
	{
		tables.GET("", handler.ListTables)
		tables.GET("/:name", handler.BrowseTable)
	}

	r.GET("/jobs/:id/applications/export", handler.ExportApplicants)
}

// ListTables godoc
// @Summary      List store tables
// @Description  Browsable tables with their row counts
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.TableInfo}
// @Failure      500  {object}  response.Response
// @Router       /tables [get]
func (h *AdminHandler) ListTables(c *gin.Context) {
	tables, err := h.adminUC.ListTables(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tables retrieved", tables)
}

// BrowseTable godoc
// @Summary      Browse a table
// @Description  Read-only rows of one table, capped at 500. Resume bytes are never included.
// @Tags         admin
// @Produce      json
// @Param        name  path      string  true  "Table name"
// @Success      200   {object}  response.Response{data=domain.TableRows}
// @Failure      404   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /tables/{name} [get]
func (h *AdminHandler) BrowseTable(c *gin.Context) {
	rows, err := h.adminUC.BrowseTable(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Table rows retrieved", rows)
}

// ExportApplicants godoc
// @Summary      Export applicants
// @Description  Applicants for a job as an Excel workbook
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      int  true  "Job ID"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /jobs/{id}/applications/export [get]
func (h *AdminHandler) ExportApplicants(c *gin.Context) {
	id, ok := pathID(c, "id", "Invalid job ID")
	if !ok {
		return
	}

	export, err := h.adminUC.ExportApplicantsByJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
