package element

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	elementerrors "go-payroll/internal/element/errors"
	"go-payroll/internal/paycalc"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/dbutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ElementCatalogueKeyPrefix = "elements:all:"
	catalogueTTL              = 30 * time.Minute
)

// GetCatalogueKey returns the cache key of the list filtered by kind; an empty kind means the full list.
func GetCatalogueKey(kind string) string {
	if kind == "" {
		return ElementCatalogueKeyPrefix + "ALL"
	}
	return ElementCatalogueKeyPrefix + kind
}

func catalogueKeys() []string {
	return []string{
		GetCatalogueKey(""),
		GetCatalogueKey(string(paycalc.KindGain)),
		GetCatalogueKey(string(paycalc.KindDeduction)),
	}
}

type Service interface {
	Create(ctx context.Context, req CreateElementRequest) (ElementResponse, error)
	GetAll(ctx context.Context, kind string) ([]ElementResponse, error)
	GetByID(ctx context.Context, id string) (ElementResponse, error)
	Update(ctx context.Context, id string, req UpdateElementRequest) (ElementResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("element.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("element.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateElementRequest) (ElementResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	element := &Element{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Kind:          paycalc.ElementKind(strings.ToUpper(strings.TrimSpace(req.Kind))),
		Amount:        req.Amount,
		Description:   req.Description,
		ZoneSensitive: req.ZoneSensitive,
	}
	if err := element.Validate(); err != nil {
		return ElementResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create element begin tx failed", zap.Error(err))
		return ElementResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, element); err != nil {
		return ElementResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ElementResponse{}, err
	}

	s.invalidateCatalogue(ctx)

	log.Info("compensation element created",
		zap.String("element_id", element.ID.String()),
		zap.String("kind", string(element.Kind)),
	)
	return mapToResponse(*element), nil
}

func (s *service) GetAll(ctx context.Context, kind string) ([]ElementResponse, error) {
	kind = strings.ToUpper(strings.TrimSpace(kind))
	if kind != "" && !paycalc.ElementKind(kind).Valid() {
		return nil, elementerrors.ErrInvalidKind
	}

	cacheKey := GetCatalogueKey(kind)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []ElementResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		elements, err := s.repo.FindAll(ctx, kind)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(elements)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, catalogueTTL).Err(); err != nil {
					s.logger.Warn("cache element catalogue failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ElementResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ElementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ElementResponse{}, elementerrors.ErrInvalidElementID
	}

	element, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ElementResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*element), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateElementRequest) (ElementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ElementResponse{}, elementerrors.ErrInvalidElementID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ElementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	element, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ElementResponse{}, mapRepositoryError(err)
	}

	if err := req.Patch().Apply(element); err != nil {
		return ElementResponse{}, err
	}

	if err := qtx.Update(ctx, element); err != nil {
		return ElementResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ElementResponse{}, err
	}

	s.invalidateCatalogue(ctx)

	return mapToResponse(*element), nil
}

// Delete removes the catalogue entry. Payslip lines keep their copied amount and description.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return elementerrors.ErrInvalidElementID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCatalogue(ctx)
	return nil
}

func (s *service) invalidateCatalogue(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	keys := catalogueKeys()
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("invalidate element catalogue failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	switch {
	case dbutil.IsNotFound(err):
		return elementerrors.ErrElementNotFound
	case dbutil.IsUniqueViolation(err, NameConstraint):
		return elementerrors.ErrElementNameExists.WithCause(err)
	}
	return err
}

func mapToResponse(e Element) ElementResponse {
	resp := ElementResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		Kind:          string(e.Kind),
		Amount:        e.Amount,
		Description:   e.Description,
		ZoneSensitive: e.ZoneSensitive,
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.Format(time.RFC3339)
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(elements []Element) []ElementResponse {
	res := make([]ElementResponse, len(elements))
	for i, e := range elements {
		res[i] = mapToResponse(e)
	}
	return res
}
