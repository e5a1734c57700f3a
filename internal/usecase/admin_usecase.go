package usecase

import (
	"context"
	"errors"
	"fmt"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	applicantsSheet = "Applicants"
)

type adminUsecase struct {
	adminRepo       domain.AdminRepository
	jobRepo         domain.JobRepository
	applicationRepo domain.ApplicationRepository
}

func NewAdminUsecase(
	adminRepo domain.AdminRepository,
	jobRepo domain.JobRepository,
	applicationRepo domain.ApplicationRepository,
) domain.AdminUsecase {
	return &adminUsecase{
		adminRepo:       adminRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
	}
}

func (u *adminUsecase) ListTables(ctx context.Context) ([]domain.TableInfo, error) {
	tables, err := u.adminRepo.ListTables(ctx)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return tables, nil
}

func (u *adminUsecase) BrowseTable(ctx context.Context, name string) (*domain.TableRows, error) {
	rows, err := u.adminRepo.BrowseTable(ctx, name, domain.MaxBrowseRows)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(fmt.Sprintf("Table %q not found", name))
		}
		return nil, apperror.Storage(err)
	}
	return rows, nil
}

// ExportApplicantsByJob renders the applicant list of a job as an xlsx workbook.
func (u *adminUsecase) ExportApplicantsByJob(ctx context.Context, jobID int64) (*domain.Export, error) {
	if jobID <= 0 {
		return nil, apperror.BadRequest("Invalid job ID")
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Storage(err)
	}

	applicants, err := u.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	data, err := buildApplicantsWorkbook(job, applicants)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.Export{
		Filename:    fmt.Sprintf("job-%d-applicants.xlsx", jobID),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

func buildApplicantsWorkbook(job *domain.Job, applicants []domain.JobApplicant) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", applicantsSheet); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("%s (%s, %s)", job.Title, job.Location, job.Sector)
	if err := f.SetCellValue(applicantsSheet, "A1", title); err != nil {
		return nil, err
	}

	header := []interface{}{"Application ID", "Applied At (UTC)", "Status", "Name", "Email", "Phone", "Has Resume"}
	if err := f.SetSheetRow(applicantsSheet, "A3", &header); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(applicantsSheet, 1, 1, bold); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(applicantsSheet, 3, 3, bold); err != nil {
		return nil, err
	}

	for i, a := range applicants {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			a.ApplicationID,
			a.ApplicationDate.UTC().Format("2006-01-02 15:04:05"),
			a.Status,
			a.Name,
			a.Email,
			a.Phone,
			a.HasResume,
		}
		if err := f.SetSheetRow(applicantsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(applicantsSheet, "A", "G", 22); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
