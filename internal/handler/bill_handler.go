package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"billscan/internal/domain"
	"billscan/internal/export"
	"billscan/internal/middleware"
	"billscan/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillHandler handles bill upload and retrieval endpoints.
type BillHandler struct {
	bills       service.BillService
	redirectURL string
}

// NewBillHandler creates a new BillHandler. Successful uploads redirect to
// redirectURL.
func NewBillHandler(bills service.BillService, redirectURL string) *BillHandler {
	return &BillHandler{bills: bills, redirectURL: redirectURL}
}

// Upload handles POST /upload and POST /api/v1/bills/upload
// @Summary Upload a bill
// @Description Upload a PDF bill; its details are extracted, stored and the client is redirected
// @Tags bills
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Bill PDF"
// @Param bill_type formData string false "Bill category" Enums(electricity, water) default(electricity)
// @Success 302 "Redirect to the configured success page; X-Bill-ID carries the new record ID"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported bill type or not a PDF"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Extraction or storage failed"
// @Router /bills/upload [post]
func (h *BillHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "No file part in the request")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Filename == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "No file selected")
		return
	}

	rec, err := h.bills.Upload(c.Request.Context(), service.BillUploadInput{
		BillType: c.PostForm("bill_type"),
		File:     file,
		Header:   header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	middleware.GetLogger(c).Info("billHandler.Upload: bill stored",
		zap.String("id", rec.ID().String()), zap.String("category", string(rec.Category())))
	c.Header("X-Bill-ID", rec.ID().String())
	c.Redirect(http.StatusFound, h.redirectURL)
}

// List handles GET /api/v1/bills/:category
// @Summary List bills
// @Description List stored bills of one category, newest first
// @Tags bills
// @Produce json
// @Param category path string true "Bill category" Enums(electricity, water)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]ElectricityBill,meta=PagMeta} "List of bills"
// @Failure 400 {object} ErrorResponseBody "Unsupported bill type"
// @Router /bills/{category} [get]
func (h *BillHandler) List(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	bills, total, err := h.bills.List(c.Request.Context(), category, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if bills == nil {
		bills = []*domain.BillRecord{}
	}

	RespondPaginated(c, bills, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/bills/:category/:id
// @Summary Get bill by ID
// @Description Get a stored bill and, when archiving is enabled, a presigned link to its PDF
// @Tags bills
// @Produce json
// @Param category path string true "Bill category" Enums(electricity, water)
// @Param id path string true "Bill ID (UUID)"
// @Success 200 {object} Response{data=BillWithDocumentURL} "Bill with document URL"
// @Failure 400 {object} ErrorResponseBody "Invalid ID or bill type"
// @Failure 404 {object} ErrorResponseBody "Bill not found"
// @Router /bills/{category}/{id} [get]
func (h *BillHandler) GetByID(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	bill, err := h.bills.GetByID(c.Request.Context(), category, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bill)
}

// ExportXLSX handles GET /api/v1/bills/:category/export.xlsx
// @Summary Export bills as a spreadsheet
// @Description Download every stored bill of one category as an XLSX workbook
// @Tags bills
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param category path string true "Bill category" Enums(electricity, water)
// @Success 200 {file} file "XLSX workbook"
// @Failure 400 {object} ErrorResponseBody "Unsupported bill type"
// @Router /bills/{category}/export.xlsx [get]
func (h *BillHandler) ExportXLSX(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	data, err := h.bills.ExportXLSX(c.Request.Context(), category)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename(category, "xlsx", time.Now())+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ExportCSV handles GET /api/v1/bills/:category/export.csv
// @Summary Export bills as CSV
// @Description Stream every stored bill of one category as UTF-8 CSV with a BOM
// @Tags bills
// @Produce text/csv
// @Param category path string true "Bill category" Enums(electricity, water)
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponseBody "Unsupported bill type"
// @Router /bills/{category}/export.csv [get]
func (h *BillHandler) ExportCSV(c *gin.Context) {
	category, ok := categoryParam(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename(category, "csv", time.Now())+`"`)
	c.Status(http.StatusOK)

	// Headers are already sent; a failure midway can only be logged.
	if err := h.bills.ExportCSV(c.Request.Context(), category, c.Writer); err != nil {
		middleware.GetLogger(c).Error("billHandler.ExportCSV: export interrupted",
			zap.String("category", string(category)), zap.Error(err))
	}
}

// categoryParam parses the :category path segment. An empty segment is
// never routed here, so only known categories pass.
func categoryParam(c *gin.Context) (domain.BillCategory, bool) {
	raw := c.Param("category")
	category, err := domain.ParseBillCategory(raw)
	if err != nil || raw == "" {
		HandleError(c, domain.ErrUnsupportedCategory)
		return "", false
	}
	return category, true
}
