package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"protest-tracker/internal/auth"
	"protest-tracker/internal/metrics"
	"protest-tracker/internal/model"
	"protest-tracker/internal/repository"
	apperrors "protest-tracker/pkg/app_errors"
)

type OrganizerService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id int64) (*model.PublicOrganizer, error)
	// SetFollow moves the follower count of organizer id by one, never below zero.
	SetFollow(ctx context.Context, id int64, following bool) (int, error)
	// Analytics is only available to the organizer themselves.
	Analytics(ctx context.Context, callerID, id int64) (*model.Analytics, error)
}

type OrganizerServiceImpl struct {
	repo   repository.OrganizerRepository
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
}

func NewOrganizerService(repo repository.OrganizerRepository, hasher auth.PasswordHasher, tokens auth.TokenIssuer) OrganizerService {
	return &OrganizerServiceImpl{repo: repo, hasher: hasher, tokens: tokens}
}

func (s *OrganizerServiceImpl) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidInput
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &model.Organizer{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Bio:          req.Bio,
	})
	if err != nil {
		return nil, err
	}

	return s.issue(created)
}

func (s *OrganizerServiceImpl) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	organizer, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrOrganizerNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Compare(req.Password, organizer.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(organizer)
}

func (s *OrganizerServiceImpl) issue(organizer *model.Organizer) (*model.AuthResponse, error) {
	token, err := s.tokens.Sign(organizer.ID, organizer.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &model.AuthResponse{
		Token:       token,
		OrganizerID: organizer.ID,
		Organizer:   organizer.Public(),
	}, nil
}

func (s *OrganizerServiceImpl) GetByID(ctx context.Context, id int64) (*model.PublicOrganizer, error) {
	organizer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return organizer.Public(), nil
}

func (s *OrganizerServiceImpl) SetFollow(ctx context.Context, id int64, following bool) (int, error) {
	followers, err := s.repo.AdjustFollowers(ctx, id, direction(following))
	if err != nil {
		return 0, err
	}
	metrics.EngagementTotal.WithLabelValues("follow", directionLabel(following)).Inc()
	return followers, nil
}

func (s *OrganizerServiceImpl) Analytics(ctx context.Context, callerID, id int64) (*model.Analytics, error) {
	if callerID != id {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.Analytics(ctx, id)
}

func direction(up bool) int {
	if up {
		return 1
	}
	return -1
}

func directionLabel(up bool) string {
	if up {
		return "up"
	}
	return "down"
}
