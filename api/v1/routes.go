package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServerInterface is implemented by the handlers layer.
type ServerInterface interface {
	// (POST /jobs)
	CreateJob(c *gin.Context)
	// (GET /jobs)
	GetJobs(c *gin.Context, params GetJobsParams)
	// (GET /jobs/export)
	ExportJobs(c *gin.Context)
	// (GET /jobs/{id})
	GetJob(c *gin.Context, id string)
	// (DELETE /jobs/{id})
	TerminateJob(c *gin.Context, id string)
	// (GET /jobs/{id}/solution)
	GetJobSolution(c *gin.Context, id string)
}

// RegisterHandlers wires the API routes onto the given router group.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	router.POST("/jobs", si.CreateJob)
	router.GET("/jobs", func(c *gin.Context) {
		var params GetJobsParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		si.GetJobs(c, params)
	})
	router.GET("/jobs/export", si.ExportJobs)
	router.GET("/jobs/:id", func(c *gin.Context) {
		si.GetJob(c, c.Param("id"))
	})
	router.DELETE("/jobs/:id", func(c *gin.Context) {
		si.TerminateJob(c, c.Param("id"))
	})
	router.GET("/jobs/:id/solution", func(c *gin.Context) {
		si.GetJobSolution(c, c.Param("id"))
	})
}
