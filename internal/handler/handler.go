// Package handler содержит HTTP-обработчики API сервиса расчёта комиссионных.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mmeshcher/commission-calculator/internal/middleware"
	"github.com/mmeshcher/commission-calculator/internal/model"
	"github.com/mmeshcher/commission-calculator/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	Validate(input model.CalculationInput) model.FormValidation
	Calculate(input model.CalculationInput) (*model.Calculation, error)
	SaveRecord(ctx context.Context, sessionID string, input model.CalculationInput) (*model.CalculationRecord, error)
	ListRecords(ctx context.Context, sessionID string) ([]model.CalculationRecord, error)
	ClearRecords(ctx context.Context, sessionID string) error
	ExportRecords(ctx context.Context, sessionID string, w io.Writer) error
	ExportReport(input model.CalculationInput, w io.Writer) error
}

// Handler реализует HTTP-обработчики API сервиса расчёта комиссионных.
type Handler struct {
	service Service
	logger  *zap.Logger
	session *middleware.SessionMiddleware
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, session *middleware.SessionMiddleware) *Handler {
	return &Handler{
		service: s,
		logger:  logger,
		session: session,
	}
}

type calculationResponse struct {
	EmployeeID   string                    `json:"employee_id"`
	EmployeeName string                    `json:"employee_name"`
	Units        model.UnitCounts          `json:"units"`
	Sales        decimal.Decimal           `json:"sales"`
	Commission   model.CommissionBreakdown `json:"commission"`
}

type recordResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	calculationResponse
}

type validationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

func toRecordResponse(r model.CalculationRecord) recordResponse {
	return recordResponse{
		ID:        r.ID,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		calculationResponse: calculationResponse{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Units:        r.Units,
			Sales:        r.Sales,
			Commission:   r.Commission,
		},
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

func decodeInput(r *http.Request) (model.CalculationInput, error) {
	var input model.CalculationInput
	defer r.Body.Close()
	err := json.NewDecoder(r.Body).Decode(&input)
	return input, err
}

// writeServiceError отвечает 422 на ошибки проверки и 500 на остальные.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, msg string, fields ...zap.Field) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		h.writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{Errors: verr.Fields})
		return
	}
	h.logger.Error(msg, append(fields, zap.Error(err))...)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
	return id, ok
}

// Validate возвращает результат проверки каждого поля формы.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, h.service.Validate(input))
}

// Calculate выполняет расчёт без сохранения.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	calc, err := h.service.Calculate(input)
	if err != nil {
		h.writeServiceError(w, err, "calculate error")
		return
	}

	h.writeJSON(w, http.StatusOK, calculationResponse{
		EmployeeID:   calc.EmployeeID,
		EmployeeName: calc.EmployeeName,
		Units:        calc.Units,
		Sales:        calc.Sales,
		Commission:   calc.Commission,
	})
}

// SaveRecord выполняет расчёт и сохраняет его в истории текущей сессии.
func (h *Handler) SaveRecord(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	input, err := decodeInput(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	rec, err := h.service.SaveRecord(r.Context(), sid, input)
	if err != nil {
		h.writeServiceError(w, err, "save record error", zap.String("session", sid))
		return
	}

	h.writeJSON(w, http.StatusCreated, toRecordResponse(*rec))
}

// GetRecords возвращает историю расчётов текущей сессии, начиная с последнего.
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	records, err := h.service.ListRecords(r.Context(), sid)
	if err != nil {
		h.logger.Error("get records error", zap.Error(err), zap.String("session", sid))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(records) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]recordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toRecordResponse(rec))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ClearRecords удаляет всю историю расчётов текущей сессии.
func (h *Handler) ClearRecords(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearRecords(r.Context(), sid); err != nil {
		h.logger.Error("clear records error", zap.Error(err), zap.String("session", sid))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeAttachment(w http.ResponseWriter, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// ExportRecords отдаёт историю расчётов текущей сессии в виде xlsx-файла.
func (h *Handler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportRecords(r.Context(), sid, &buf); err != nil {
		h.logger.Error("export records error", zap.Error(err), zap.String("session", sid))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	writeAttachment(w, "commission-history.xlsx", &buf)
}

// ExportReport отдаёт отчёт по одному расчёту в виде xlsx-файла.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInput(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportReport(input, &buf); err != nil {
		h.writeServiceError(w, err, "export report error")
		return
	}

	writeAttachment(w, "report.xlsx", &buf)
}
