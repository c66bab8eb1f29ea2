package handler

import (
	"net/http"

	"banking-service/internal/usecase"
	"banking-service/pkg/response"
)

type ReportHandler struct {
	reports *usecase.ReportService
}

func NewReportHandler(reports *usecase.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reports.DashboardStats(r.Context())
	if err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}

func (h *ReportHandler) AccountSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.AccountSummaries(r.Context())
	if err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.DailySummaries(r.Context())
	if err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, rows)
}
