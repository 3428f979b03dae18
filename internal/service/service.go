// Package service реализует бизнес-логику сервиса расчёта комиссионных.
package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mmeshcher/commission-calculator/internal/commission"
	"github.com/mmeshcher/commission-calculator/internal/export"
	"github.com/mmeshcher/commission-calculator/internal/model"
	"github.com/mmeshcher/commission-calculator/internal/validation"
)

// Подписи полей имени в сообщениях об ошибках.
const (
	FirstNameLabel = "first name"
	LastNameLabel  = "last name"
)

// Repository описывает контракт хранилища расчётов, используемый сервисом.
type Repository interface {
	Close() error
	Append(ctx context.Context, sessionID string, rec model.CalculationRecord) error
	List(ctx context.Context, sessionID string) ([]model.CalculationRecord, error)
	Clear(ctx context.Context, sessionID string) error
}

// ValidationError возвращается, если хотя бы одно поле формы не прошло проверку.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Service содержит бизнес-логику расчёта и хранения комиссионных.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService создаёт новый сервис с указанным хранилищем.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

func normalize(input model.CalculationInput) model.CalculationInput {
	input.EmployeeID = validation.NormalizeEmployeeID(input.EmployeeID)
	return input
}

// Validate проверяет все поля формы независимо друг от друга.
func (s *Service) Validate(input model.CalculationInput) model.FormValidation {
	input = normalize(input)
	return model.FormValidation{
		model.FieldEmployeeID: validation.ValidateEmployeeID(input.EmployeeID),
		model.FieldFirstName:  validation.ValidateNameField(input.FirstName, FirstNameLabel),
		model.FieldLastName:   validation.ValidateNameField(input.LastName, LastNameLabel),
		model.FieldLocks:      validation.ValidateBounded(input.Locks, validation.LocksBounds),
		model.FieldStocks:     validation.ValidateBounded(input.Stocks, validation.StocksBounds),
		model.FieldBarrels:    validation.ValidateBounded(input.Barrels, validation.BarrelsBounds),
	}
}

// Calculate считает продажи и комиссию. Если форма не прошла проверку,
// возвращается *ValidationError, а расчёт не выполняется.
func (s *Service) Calculate(input model.CalculationInput) (*model.Calculation, error) {
	input = normalize(input)

	if v := s.Validate(input); !v.Valid() {
		return nil, &ValidationError{Fields: v.Errors()}
	}

	var units model.UnitCounts
	var err error
	if units.Locks, err = validation.ParseUnitCount(input.Locks); err != nil {
		return nil, err
	}
	if units.Stocks, err = validation.ParseUnitCount(input.Stocks); err != nil {
		return nil, err
	}
	if units.Barrels, err = validation.ParseUnitCount(input.Barrels); err != nil {
		return nil, err
	}

	sales, breakdown := commission.Compute(units)

	return &model.Calculation{
		EmployeeID:   input.EmployeeID,
		EmployeeName: strings.TrimSpace(input.FirstName) + " " + strings.TrimSpace(input.LastName),
		Units:        units,
		Sales:        sales,
		Commission:   breakdown,
	}, nil
}

// SaveRecord выполняет расчёт и сохраняет его в списке сессии.
func (s *Service) SaveRecord(ctx context.Context, sessionID string, input model.CalculationInput) (*model.CalculationRecord, error) {
	calc, err := s.Calculate(input)
	if err != nil {
		return nil, err
	}

	rec := model.CalculationRecord{
		ID:           s.newID(),
		CreatedAt:    s.now(),
		EmployeeID:   calc.EmployeeID,
		EmployeeName: calc.EmployeeName,
		Units:        calc.Units,
		Sales:        calc.Sales,
		Commission:   calc.Commission,
	}

	if err := s.repo.Append(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("append record: %w", err)
	}

	s.logger.Info("calculation saved",
		zap.String("record", rec.ID),
		zap.String("employee", rec.EmployeeID),
		zap.Stringer("commission", rec.Commission.Total),
	)

	return &rec, nil
}

// ListRecords возвращает сохранённые расчёты сессии, начиная с последнего.
func (s *Service) ListRecords(ctx context.Context, sessionID string) ([]model.CalculationRecord, error) {
	return s.repo.List(ctx, sessionID)
}

// ClearRecords удаляет все сохранённые расчёты сессии.
func (s *Service) ClearRecords(ctx context.Context, sessionID string) error {
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// ExportRecords записывает историю расчётов сессии в формате xlsx.
func (s *Service) ExportRecords(ctx context.Context, sessionID string, w io.Writer) error {
	records, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list records: %w", err)
	}
	return export.WriteHistory(w, records)
}

// ExportReport выполняет расчёт и записывает отчёт по нему в формате xlsx.
func (s *Service) ExportReport(input model.CalculationInput, w io.Writer) error {
	calc, err := s.Calculate(input)
	if err != nil {
		return err
	}
	return export.WriteReport(w, *calc, s.now())
}
