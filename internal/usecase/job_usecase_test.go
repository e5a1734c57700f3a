package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-careers-backend/internal/domain"
	"go-careers-backend/internal/usecase"
	"go-careers-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should default the posting date to today", func(t *testing.T) {
		repo := new(MockJobRepo)
		today := time.Now().UTC().Format(domain.DateLayout)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return j.Title == "Welder" && j.Date == today
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Job).ID = 12
		})

		job, err := usecase.NewJobUsecase(repo, newValidator()).CreateJob(ctx, domain.JobInput{Title: "  Welder "})

		require.NoError(t, err)
		assert.Equal(t, int64(12), job.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Should require a title", func(t *testing.T) {
		repo := new(MockJobRepo)
		_, err := usecase.NewJobUsecase(repo, newValidator()).CreateJob(ctx, domain.JobInput{Location: "Osaka"})

		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		assert.Contains(t, err.Error(), "Title is required")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject malformed dates", func(t *testing.T) {
		_, err := usecase.NewJobUsecase(new(MockJobRepo), newValidator()).CreateJob(ctx, domain.JobInput{Title: "Welder", Date: "01/03/2024"})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestUpdateAndGetJob(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJobRepo)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool { return j.ID == 5 })).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool { return j.ID == 6 })).Return(domain.ErrNotFound)
	repo.On("GetByID", mock.Anything, int64(6)).Return(nil, domain.ErrNotFound)
	uc := usecase.NewJobUsecase(repo, newValidator())

	job, err := uc.UpdateJob(ctx, 5, domain.JobInput{Title: "Nurse", Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", job.Date)

	_, err = uc.UpdateJob(ctx, 6, domain.JobInput{Title: "Nurse"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = uc.GetJob(ctx, 6)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = uc.GetJob(ctx, 0)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestListJobs(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJobRepo)
	osaka := []domain.Job{{ID: 2, Location: "Osaka", Date: "2024-03-02"}, {ID: 1, Location: "Osaka", Date: "2024-03-01"}}
	repo.On("Fetch", mock.Anything, domain.JobFilter{Location: "Osaka"}).Return(osaka, nil)
	repo.On("Fetch", mock.Anything, domain.JobFilter{Sector: "IT"}).Return(nil, errors.New("boom"))
	uc := usecase.NewJobUsecase(repo, newValidator())

	jobs, err := uc.ListJobs(ctx, domain.JobFilter{Location: " Osaka "})
	require.NoError(t, err)
	assert.Equal(t, osaka, jobs)

	_, err = uc.ListJobs(ctx, domain.JobFilter{Sector: "IT"})
	assert.True(t, apperror.IsKind(err, apperror.KindStorage))
}

func TestListFilters(t *testing.T) {
	repo := new(MockJobRepo)
	repo.On("DistinctLocations", mock.Anything).Return([]string{"Nagoya", "Osaka"}, nil)
	repo.On("DistinctSectors", mock.Anything).Return([]string{"IT"}, nil)

	filters, err := usecase.NewJobUsecase(repo, newValidator()).ListFilters(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Nagoya", "Osaka"}, filters.Locations)
	assert.Equal(t, []string{"IT"}, filters.Sectors)
}
