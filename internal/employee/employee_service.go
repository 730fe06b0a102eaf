package employee

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-payroll/internal/employee/errors"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const matriculeFormat = "MAT-%06d"

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, req ListEmployeesRequest) ([]EmployeeResponse, response.PaginationMeta, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	gradeID, err := uuid.Parse(req.GradeID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrGradeNotFound
	}
	var workplaceID *uuid.UUID
	if req.WorkplaceID != "" {
		id, err := uuid.Parse(req.WorkplaceID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrWorkplaceNotFound
		}
		workplaceID = &id
	}
	hireDate, err := parseHireDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:          uuid.New(),
		Matricule:   strings.TrimSpace(req.Matricule),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		GradeID:     gradeID,
		WorkplaceID: workplaceID,
		HireDate:    hireDate,
	}
	if err := empl.Validate(); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.checkReferences(ctx, qtx, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if empl.Matricule == "" {
		nextVal, err := s.counter.GetNextValue(ctx, counter.EmployeeMatricule)
		if err != nil {
			log.Error("create employee generate matricule failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		empl.Matricule = fmt.Sprintf(matriculeFormat, nextVal)
	}

	if err := qtx.Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	log.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.String("matricule", empl.Matricule),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, req ListEmployeesRequest) ([]EmployeeResponse, response.PaginationMeta, error) {
	page, pageSize, offset := response.Pagination(req.Page, req.PageSize)

	employees, total, err := s.repo.FindAll(ctx, EmployeeFilter{
		Search:      req.Search,
		WorkplaceID: req.WorkplaceID,
		GradeID:     req.GradeID,
		Limit:       pageSize,
		Offset:      offset,
	})
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res, response.NewPaginationMeta(total, page, pageSize), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	patch, err := req.toPatch()
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := patch.Apply(empl); err != nil {
		return EmployeeResponse{}, err
	}

	if patch.GradeID != nil || patch.WorkplaceID != nil {
		if err := s.checkReferences(ctx, qtx, empl); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payslips, err := qtx.CountPayslips(ctx, id)
	if err != nil {
		return err
	}
	if payslips > 0 {
		return employeeerrors.ErrEmployeeHasPayslips
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee deleted", zap.String("employee_id", id))
	return nil
}

func (s *service) checkReferences(ctx context.Context, repo Repository, empl *Employee) error {
	ok, err := repo.GradeExists(ctx, empl.GradeID.String())
	if err != nil {
		return err
	}
	if !ok {
		return employeeerrors.ErrGradeNotFound
	}

	if empl.WorkplaceID == nil {
		return nil
	}
	ok, err = repo.WorkplaceExists(ctx, empl.WorkplaceID.String())
	if err != nil {
		return err
	}
	if !ok {
		return employeeerrors.ErrWorkplaceNotFound
	}
	return nil
}

func (r UpdateEmployeeRequest) toPatch() (EmployeePatch, error) {
	patch := EmployeePatch{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		ClearWorkplace: r.ClearWorkplace,
	}
	if r.GradeID != nil {
		id, err := uuid.Parse(*r.GradeID)
		if err != nil {
			return EmployeePatch{}, employeeerrors.ErrGradeNotFound
		}
		patch.GradeID = &id
	}
	if r.WorkplaceID != nil && !r.ClearWorkplace {
		id, err := uuid.Parse(*r.WorkplaceID)
		if err != nil {
			return EmployeePatch{}, employeeerrors.ErrWorkplaceNotFound
		}
		patch.WorkplaceID = &id
	}
	if r.HireDate != nil {
		d, err := parseHireDate(*r.HireDate)
		if err != nil {
			return EmployeePatch{}, err
		}
		patch.HireDate = d
	}
	return patch, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        e.ID.String(),
		Matricule: e.Matricule,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		FullName:  e.FullName(),
		Email:     e.Email,
		GradeID:   e.GradeID.String(),
	}
	if e.WorkplaceID != nil {
		resp.WorkplaceID = e.WorkplaceID.String()
	}
	if e.HireDate != nil {
		resp.HireDate = e.HireDate.Format(hireDateLayout)
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
