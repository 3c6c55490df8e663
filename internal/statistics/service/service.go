// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/querydsl_study/internal/statistics/model"
	"github.com/festy23/querydsl_study/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetMemberStatistics returns aggregates over member ages.
	GetMemberStatistics(ctx context.Context) (*model.MemberStatisticsResponse, error)

	// GetTeamStatistics returns the average member age per team.
	GetTeamStatistics(ctx context.Context) (*model.TeamStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetMemberStatistics returns aggregates over member ages.
func (s *service) GetMemberStatistics(ctx context.Context) (*model.MemberStatisticsResponse, error) {
	s.logger.Debugw("GetMemberStatistics called")

	stats, err := s.repo.MemberStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetMemberStatistics failed", "error", err)
		return nil, err
	}

	s.logger.Infow("GetMemberStatistics completed", "count", stats.Count)
	return &model.MemberStatisticsResponse{Statistics: *stats}, nil
}

// GetTeamStatistics returns the average member age per team.
func (s *service) GetTeamStatistics(ctx context.Context) (*model.TeamStatisticsResponse, error) {
	s.logger.Debugw("GetTeamStatistics called")

	teams, err := s.repo.AverageAgeByTeam(ctx)
	if err != nil {
		s.logger.Errorw("GetTeamStatistics failed", "error", err)
		return nil, err
	}

	if teams == nil {
		teams = []model.TeamAgeStatistics{}
	}

	s.logger.Infow("GetTeamStatistics completed", "count", len(teams))
	return &model.TeamStatisticsResponse{
		Teams: teams,
		Total: len(teams),
	}, nil
}
