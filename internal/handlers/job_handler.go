package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/jobs"
)

type JobHandler struct {
	worker *jobs.Worker
}

func NewJobHandler(worker *jobs.Worker) *JobHandler {
	return &JobHandler{worker: worker}
}

// Stats reports background worker statistics
func (h *JobHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"worker": h.worker.GetStats()})
}
