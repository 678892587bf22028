package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	v1 "github.com/ddsimoes/optaplanner/api/v1"
	"github.com/ddsimoes/optaplanner/internal/services"
	srverrors "github.com/ddsimoes/optaplanner/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CreateJob submits a new problem and schedules a solve job for it
// (POST /jobs)
func (h *Handler) CreateJob(c *gin.Context) {
	var req v1.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.solverSrv.Submit(c.Request.Context(), req.Problem)
	if err != nil {
		zap.S().Named("job_handler").Errorw("failed to submit job", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit job"})
		return
	}

	status, err := h.solverSrv.Status(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read job status"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "status": status.String()})
}

// GetJobs returns the list of jobs with filtering and pagination
// (GET /jobs)
func (h *Handler) GetJobs(c *gin.Context, params v1.GetJobsParams) {
	// Parse pagination
	page := 1
	if params.Page != nil && *params.Page > 0 {
		page = *params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize != nil && *params.PageSize > 0 {
		pageSize = *params.PageSize
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
	}

	svcParams := services.ListParams{
		Solved: params.Solved,
		Limit:  uint64(pageSize),
		Offset: uint64((page - 1) * pageSize),
	}

	result, err := h.solverSrv.List(c.Request.Context(), svcParams)
	if err != nil {
		zap.S().Named("job_handler").Errorw("failed to list jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}

	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	apiJobs := make([]v1.Job, 0, len(result.Jobs))
	for _, rec := range result.Jobs {
		apiJobs = append(apiJobs, v1.NewJobFromRecord(rec))
	}

	c.JSON(http.StatusOK, v1.JobListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     result.Total,
		Jobs:      apiJobs,
	})
}

// GetJob returns the current status of a job
// (GET /jobs/{id})
func (h *Handler) GetJob(c *gin.Context, id string) {
	status, err := h.solverSrv.Status(c.Request.Context(), id)
	if err != nil {
		if srverrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("job_handler").Errorw("failed to read job status", "problemId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read job status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status.String()})
}

// GetJobSolution blocks until the job terminates and returns its final
// solution. The wait is bounded by the request context.
// (GET /jobs/{id}/solution)
func (h *Handler) GetJobSolution(c *gin.Context, id string) {
	solution, err := h.solverSrv.Solution(c.Request.Context(), id)
	if err != nil {
		switch {
		case srverrors.IsResourceNotFoundError(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case srverrors.IsExecutionError(err):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		case c.Request.Context().Err() != nil:
			// Client went away or timed out while waiting.
			c.JSON(http.StatusRequestTimeout, gin.H{"error": "timed out waiting for solution"})
		default:
			zap.S().Named("job_handler").Errorw("failed to read solution", "problemId", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read solution"})
		}
		return
	}

	c.JSON(http.StatusOK, v1.SolutionResponse{Id: id, Solution: solution})
}

// TerminateJob requests early termination of a running job
// (DELETE /jobs/{id})
func (h *Handler) TerminateJob(c *gin.Context, id string) {
	err := h.solverSrv.Terminate(c.Request.Context(), id)
	if err != nil {
		if srverrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("job_handler").Errorw("failed to terminate job", "problemId", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to terminate job"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": id, "status": "terminated"})
}

// ExportJobs streams all jobs as an xlsx workbook
// (GET /jobs/export)
func (h *Handler) ExportJobs(c *gin.Context) {
	result, err := h.solverSrv.List(c.Request.Context(), services.ListParams{})
	if err != nil {
		zap.S().Named("job_handler").Errorw("failed to list jobs for export", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export jobs"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Jobs"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Status", "Submitted At", "Solved At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export jobs"})
			return
		}
	}

	for row, rec := range result.Jobs {
		solvedAt := ""
		if rec.SolvedAt != nil {
			solvedAt = rec.SolvedAt.Format("2006-01-02 15:04:05")
		}
		values := []any{
			rec.ProblemID,
			rec.Status,
			rec.SubmittedAt.Format("2006-01-02 15:04:05"),
			solvedAt,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export jobs"})
				return
			}
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "jobs.xlsx"))
	if err := f.Write(c.Writer); err != nil {
		zap.S().Named("job_handler").Errorw("failed to write export", "error", err)
	}
}
