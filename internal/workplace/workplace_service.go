package workplace

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-payroll/internal/paycalc"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/dbutil"
	workplaceerrors "go-payroll/internal/workplace/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateWorkplaceRequest) (WorkplaceResponse, error)
	GetAll(ctx context.Context, zone string) ([]WorkplaceResponse, error)
	GetByID(ctx context.Context, id string) (WorkplaceResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkplaceRequest) (WorkplaceResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workplace.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workplace.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateWorkplaceRequest) (WorkplaceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	zone, err := paycalc.ParseZone(req.Zone)
	if err != nil {
		return WorkplaceResponse{}, workplaceerrors.ErrInvalidZone
	}
	workplace := &Workplace{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Province: strings.TrimSpace(req.Province),
		Zone:     zone,
	}
	if err := workplace.Validate(); err != nil {
		return WorkplaceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create workplace begin tx failed", zap.Error(err))
		return WorkplaceResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, workplace); err != nil {
		log.Error("create workplace persist failed", zap.Error(err))
		return WorkplaceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkplaceResponse{}, err
	}

	log.Info("workplace created",
		zap.String("workplace_id", workplace.ID.String()),
		zap.String("zone", string(workplace.Zone)),
	)
	return mapToResponse(*workplace), nil
}

func (s *service) GetAll(ctx context.Context, zone string) ([]WorkplaceResponse, error) {
	if zone != "" {
		parsed, err := paycalc.ParseZone(zone)
		if err != nil {
			return nil, workplaceerrors.ErrInvalidZone
		}
		zone = string(parsed)
	}

	workplaces, err := s.repo.FindAll(ctx, zone)
	if err != nil {
		return nil, err
	}

	res := make([]WorkplaceResponse, len(workplaces))
	for i, w := range workplaces {
		res[i] = mapToResponse(w)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (WorkplaceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkplaceResponse{}, workplaceerrors.ErrInvalidWorkplaceID
	}

	workplace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WorkplaceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*workplace), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateWorkplaceRequest) (WorkplaceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return WorkplaceResponse{}, workplaceerrors.ErrInvalidWorkplaceID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkplaceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	workplace, err := qtx.FindByID(ctx, id)
	if err != nil {
		return WorkplaceResponse{}, mapRepositoryError(err)
	}

	if err := req.Patch().Apply(workplace); err != nil {
		return WorkplaceResponse{}, err
	}

	if err := qtx.Update(ctx, workplace); err != nil {
		return WorkplaceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkplaceResponse{}, err
	}

	return mapToResponse(*workplace), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return workplaceerrors.ErrInvalidWorkplaceID
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
		return workplaceerrors.ErrWorkplaceInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit()
}

func mapRepositoryError(err error) error {
	if dbutil.IsNotFound(err) {
		return workplaceerrors.ErrWorkplaceNotFound
	}
	return err
}

func mapToResponse(w Workplace) WorkplaceResponse {
	return WorkplaceResponse{
		ID:        w.ID.String(),
		Name:      w.Name,
		Province:  w.Province,
		Zone:      string(w.Zone),
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
		UpdatedAt: w.UpdatedAt.Format(time.RFC3339),
	}
}
