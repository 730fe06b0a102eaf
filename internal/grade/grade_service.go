package grade

import (
	"context"
	"database/sql"
	"strings"
	"time"

	gradeerrors "go-payroll/internal/grade/errors"
	"go-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateGradeRequest) (GradeResponse, error)
	GetAll(ctx context.Context) ([]GradeResponse, error)
	GetByID(ctx context.Context, id string) (GradeResponse, error)
	Update(ctx context.Context, id string, req UpdateGradeRequest) (GradeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("grade.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("grade.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateGradeRequest) (GradeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	grade := &Grade{
		ID:          uuid.New(),
		Label:       strings.TrimSpace(req.Label),
		Description: req.Description,
	}
	if req.BaseSalary != nil {
		grade.BaseSalary = *req.BaseSalary
	}
	if err := grade.Validate(); err != nil {
		return GradeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create grade begin tx failed", zap.Error(err))
		return GradeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, grade); err != nil {
		log.Warn("create grade persist failed", zap.String("label", grade.Label), zap.Error(err))
		return GradeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create grade commit failed", zap.Error(err))
		return GradeResponse{}, err
	}

	log.Info("grade created", zap.String("grade_id", grade.ID.String()), zap.String("label", grade.Label))
	return mapToResponse(*grade), nil
}

func (s *service) GetAll(ctx context.Context) ([]GradeResponse, error) {
	grades, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(grades), nil
}

func (s *service) GetByID(ctx context.Context, id string) (GradeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return GradeResponse{}, gradeerrors.ErrInvalidGradeID
	}

	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return GradeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*grade), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateGradeRequest) (GradeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(id); err != nil {
		return GradeResponse{}, gradeerrors.ErrInvalidGradeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update grade begin tx failed", zap.Error(err))
		return GradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	grade, err := qtx.FindByID(ctx, id)
	if err != nil {
		return GradeResponse{}, mapRepositoryError(err)
	}

	if err := req.Patch().Apply(grade); err != nil {
		return GradeResponse{}, err
	}

	if err := qtx.Update(ctx, grade); err != nil {
		log.Warn("update grade persist failed", zap.String("grade_id", id), zap.Error(err))
		return GradeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update grade commit failed", zap.Error(err))
		return GradeResponse{}, err
	}

	return mapToResponse(*grade), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(id); err != nil {
		return gradeerrors.ErrInvalidGradeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inUse, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		log.Info("delete grade rejected, still assigned", zap.String("grade_id", id), zap.Int64("employees", inUse))
		return gradeerrors.ErrGradeInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapToResponse(g Grade) GradeResponse {
	return GradeResponse{
		ID:          g.ID.String(),
		Label:       g.Label,
		BaseSalary:  g.BaseSalary,
		Description: g.Description,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(grades []Grade) []GradeResponse {
	res := make([]GradeResponse, len(grades))
	for i, g := range grades {
		res[i] = mapToResponse(g)
	}
	return res
}
