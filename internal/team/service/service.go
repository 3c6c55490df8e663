// Package service provides business logic layer for team module.
package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/festy23/querydsl_study/internal/team/model"
	"github.com/festy23/querydsl_study/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// AddTeam creates a new team with optional initial members.
	AddTeam(ctx context.Context, req *teamModel.AddTeamRequest) (*teamModel.TeamResponse, error)

	// GetTeam returns a team with its members.
	GetTeam(ctx context.Context, name string) (*teamModel.TeamResponse, error)
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

// AddTeam creates a new team and its members in a transaction.
func (s *service) AddTeam(ctx context.Context, req *teamModel.AddTeamRequest) (*teamModel.TeamResponse, error) {
	s.logger.Debugw("AddTeam called", "team_name", req.TeamName, "members", len(req.Members))

	if strings.TrimSpace(req.TeamName) == "" {
		return nil, teamModel.ErrInvalidTeamName
	}

	var result *teamModel.TeamResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		team, err := txRepo.Create(ctx, req.TeamName)
		if err != nil {
			return err
		}

		if err := txRepo.AddMembers(ctx, team.ID, req.Members); err != nil {
			return err
		}

		members, err := txRepo.GetMembers(ctx, team.ID)
		if err != nil {
			return err
		}

		result = &teamModel.TeamResponse{
			TeamID:   team.ID,
			TeamName: team.Name,
			Members:  members,
		}
		return nil
	})

	if err != nil {
		s.logger.Debugw("AddTeam failed", "team_name", req.TeamName, "error", err)
		return nil, err
	}

	s.logger.Infow("AddTeam completed", "team_id", result.TeamID, "members", len(result.Members))
	return result, nil
}

// GetTeam returns a team with its members.
func (s *service) GetTeam(ctx context.Context, name string) (*teamModel.TeamResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, teamModel.ErrInvalidTeamName
	}

	team, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.GetMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	return &teamModel.TeamResponse{
		TeamID:   team.ID,
		TeamName: team.Name,
		Members:  members,
	}, nil
}
