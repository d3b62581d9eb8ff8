package service

import (
	"context"
	"errors"

	"protest-tracker/internal/cache"
	"protest-tracker/internal/metrics"
	"protest-tracker/internal/model"
	"protest-tracker/internal/repository"
	apperrors "protest-tracker/pkg/app_errors"
	"protest-tracker/pkg/logger"

	"go.uber.org/zap"
)

type ProtestService interface {
	List(ctx context.Context, upcoming bool) ([]*model.Protest, error)
	GetByID(ctx context.Context, id int64) (*model.Protest, error)
	Create(ctx context.Context, callerID int64, params model.ProtestParams) (*model.Protest, error)
	// Update and Delete fail with ErrProtestNotFound or ErrNotOwner without touching the row.
	Update(ctx context.Context, callerID, id int64, params model.ProtestParams) (*model.Protest, error)
	Delete(ctx context.Context, callerID, id int64) error
	ListByOrganizer(ctx context.Context, callerID, organizerID int64) ([]*model.Protest, error)
	// SetLike moves the like count of protest id by one, never below zero.
	SetLike(ctx context.Context, id int64, liked bool) (int, error)
}

type ProtestServiceImpl struct {
	repo  repository.ProtestRepository
	cache cache.ProtestListCache
}

func NewProtestService(repo repository.ProtestRepository, listCache cache.ProtestListCache) ProtestService {
	if listCache == nil {
		listCache = cache.NoopProtestListCache{}
	}
	return &ProtestServiceImpl{repo: repo, cache: listCache}
}

func (s *ProtestServiceImpl) List(ctx context.Context, upcoming bool) ([]*model.Protest, error) {
	log := logger.WithComponent("service").With(zap.String("operation", "List"))

	listing, cacheErr := s.cache.Get(ctx, upcoming)
	switch {
	case cacheErr != nil:
		metrics.ListCacheLookups.WithLabelValues("error").Inc()
		log.Warn("Protest list cache read failed", zap.Error(cacheErr))
	case listing.Hit:
		metrics.ListCacheLookups.WithLabelValues("hit").Inc()
		return listing.Protests, nil
	default:
		metrics.ListCacheLookups.WithLabelValues("miss").Inc()
	}

	protests, err := s.repo.List(ctx, upcoming)
	if err != nil {
		return nil, err
	}

	// 版本未知時不回寫
	if cacheErr == nil {
		if _, err := s.cache.Set(ctx, upcoming, listing.Version, protests); err != nil {
			log.Warn("Protest list cache write failed", zap.Error(err))
		}
	}
	return protests, nil
}

func (s *ProtestServiceImpl) GetByID(ctx context.Context, id int64) (*model.Protest, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProtestServiceImpl) Create(ctx context.Context, callerID int64, params model.ProtestParams) (*model.Protest, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	params = withTags(params)

	created, err := s.repo.Create(ctx, callerID, params)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, "Create")
	return created, nil
}

func (s *ProtestServiceImpl) Update(ctx context.Context, callerID, id int64, params model.ProtestParams) (*model.Protest, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	params = withTags(params)

	updated, err := s.repo.UpdateOwned(ctx, id, callerID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrProtestNotFound) {
			return nil, s.classifyMiss(ctx, id, callerID)
		}
		return nil, err
	}
	s.invalidate(ctx, "Update")
	return updated, nil
}

func (s *ProtestServiceImpl) Delete(ctx context.Context, callerID, id int64) error {
	err := s.repo.DeleteOwned(ctx, id, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProtestNotFound) {
			return s.classifyMiss(ctx, id, callerID)
		}
		return err
	}
	s.invalidate(ctx, "Delete")
	return nil
}

// classifyMiss explains why an owner-scoped write matched no row. It only reads;
// the write itself was already refused atomically.
func (s *ProtestServiceImpl) classifyMiss(ctx context.Context, id, callerID int64) error {
	owner, err := s.repo.OwnerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != callerID {
		return apperrors.ErrNotOwner
	}
	// deleted or re-owned between the write and this read
	return apperrors.ErrProtestNotFound
}

func (s *ProtestServiceImpl) ListByOrganizer(ctx context.Context, callerID, organizerID int64) ([]*model.Protest, error) {
	if callerID != organizerID {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.ListByOrganizer(ctx, organizerID)
}

func (s *ProtestServiceImpl) SetLike(ctx context.Context, id int64, liked bool) (int, error) {
	likes, err := s.repo.AdjustLikes(ctx, id, direction(liked))
	if err != nil {
		return 0, err
	}
	metrics.EngagementTotal.WithLabelValues("like", directionLabel(liked)).Inc()
	s.invalidate(ctx, "SetLike")
	return likes, nil
}

func (s *ProtestServiceImpl) invalidate(ctx context.Context, operation string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.WithComponent("service").Warn("Protest list cache invalidation failed",
			zap.String("operation", operation), zap.Error(err))
	}
}

func validateParams(params model.ProtestParams) error {
	if params.Name == "" || params.Date == "" || params.Time == "" {
		return apperrors.ErrInvalidInput
	}
	return nil
}

func withTags(params model.ProtestParams) model.ProtestParams {
	if params.Tags == nil {
		params.Tags = []string{}
	}
	return params
}
