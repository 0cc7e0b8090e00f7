package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/middleware"
	"github.com/domen5/TaskTrail-sub000/internal/models"
	"github.com/domen5/TaskTrail-sub000/internal/store"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ReportHandler exports a month of worked hours as CSV or XLSX.
type ReportHandler struct {
	Store *store.WorkedHoursStore
}

func NewReportHandler(s *store.WorkedHoursStore) *ReportHandler {
	return &ReportHandler{Store: s}
}

func (h *ReportHandler) monthEntries(c *gin.Context) ([]models.WorkedHours, int, int, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, 0, 0, apperr.ErrMissingToken
	}

	year, month, err := monthParams(c)
	if err != nil {
		return nil, 0, 0, err
	}
	if err := util.ValidateYearMonth(year, month); err != nil {
		return nil, 0, 0, apperr.InvalidArg(err.Error())
	}

	entries, err := h.Store.ListMonth(c.Request.Context(), user.ID, year, month)
	if err != nil {
		return nil, 0, 0, err
	}
	return entries, year, month, nil
}

func overtimeText(overtime bool) string {
	if overtime {
		return "yes"
	}
	return "no"
}

// ExportCSV streams the monthly report as CSV.
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	entries, year, month, err := h.monthEntries(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"timesheet_%04d-%02d.csv\"", year, month))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Date", "Project", "Hours", "Overtime", "Description"})

	var total float64
	for _, e := range entries {
		total += e.Hours
		writer.Write([]string{
			e.Date.Format("2006-01-02"),
			e.Project,
			strconv.FormatFloat(e.Hours, 'f', 2, 64),
			overtimeText(e.Overtime),
			e.Description,
		})
	}

	writer.Write([]string{"Total", "", strconv.FormatFloat(total, 'f', 2, 64), "", ""})
}

// ExportXLSX streams the monthly report as an Excel workbook.
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	entries, year, month, err := h.monthEntries(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := fmt.Sprintf("%04d-%02d", year, month)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "create sheet failed", err))
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Project", "Hours", "Overtime", "Description"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	var total float64
	for idx, e := range entries {
		row := idx + 2
		total += e.Hours

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Date.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Project)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Hours)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), overtimeText(e.Overtime))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.Description)
	}

	totalRow := len(entries) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), total)

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 8)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 40)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"timesheet_%04d-%02d.xlsx\"", year, month))

	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
