package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sidompet/sidompet-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

// Monthly returns income/expense totals per calendar month, newest first
func (h *ReportHandler) Monthly(c *gin.Context) {
	buckets, err := h.reportService.Monthly(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": buckets})
}

// CategorySeries returns the per-date classified chart series
func (h *ReportHandler) CategorySeries(c *gin.Context) {
	points, err := h.reportService.CategorySeries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": points})
}

// Export downloads the monthly report as csv, xlsx or pdf
func (h *ReportHandler) Export(c *gin.Context) {
	format := c.Query("format")

	var data []byte
	var filename string
	var err error

	switch format {
	case "csv":
		data, filename, err = h.exportService.MonthlyCSV(c.Request.Context())
	case "xlsx":
		data, filename, err = h.exportService.MonthlyXLSX(c.Request.Context())
	case "pdf":
		var buf *bytes.Buffer
		buf, err = h.reportService.MonthlyReportPDF(c.Request.Context())
		if err == nil {
			data = buf.Bytes()
			filename = fmt.Sprintf("monthly_report_%s.pdf", time.Now().Format("2006-01-02"))
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format tidak valid (csv, xlsx, pdf)"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("gagal membuat %s: %v", format, err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
