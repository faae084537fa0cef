package handlers

import (
	"net/http"

	"tripbook/internal/http/middleware"
	"tripbook/internal/ledger"
	"tripbook/internal/services"

	"github.com/gin-gonic/gin"
)

func exportRequestFromQuery(c *gin.Context) ledger.ExportRequest {
	return ledger.ExportRequest{
		TaxYear:        c.Query("tax_year"),
		StartDate:      c.Query("start_date"),
		EndDate:        c.Query("end_date"),
		Classification: c.Query("classification"),
	}
}

func exportService(c *gin.Context) services.ExportService {
	return services.ExportService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/exports/ledger?tax_year=2024-25
// GET /api/exports/ledger?start_date=2024-01-01&end_date=2024-03-31
func GetLedger(c *gin.Context) {
	req := exportRequestFromQuery(c)
	exp, err := exportService(c).BuildLedger(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, exp)
}

// GET /api/exports/ledger.csv
func GetLedgerCSV(c *gin.Context) {
	req := exportRequestFromQuery(c)
	exp, err := exportService(c).BuildLedger(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	body, filename, err := services.RenderLedgerCSV(exp, services.PeriodLabel(req))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render CSV", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}

// GET /api/exports/ledger.pdf
func GetLedgerPDF(c *gin.Context) {
	req := exportRequestFromQuery(c)
	exp, err := exportService(c).BuildLedger(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	docs := services.DocsService{RequestID: middleware.GetRequestID(c)}
	body, filename, err := docs.GenerateLedgerPDF(exp, services.PeriodLabel(req))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render PDF", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
