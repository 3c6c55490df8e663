// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	memberModel "github.com/festy23/querydsl_study/internal/member/model"
	"github.com/festy23/querydsl_study/internal/query"
	"github.com/festy23/querydsl_study/internal/schema"
	teamModel "github.com/festy23/querydsl_study/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// WithTx returns a repository bound to the transaction tx.
	WithTx(tx *gorm.DB) Repository

	// Create creates a new team.
	Create(ctx context.Context, name string) (*teamModel.Team, error)

	// GetByName finds team by name.
	GetByName(ctx context.Context, name string) (*teamModel.Team, error)

	// AddMembers inserts members into the team.
	AddMembers(ctx context.Context, teamID int64, members []teamModel.NewTeamMember) error

	// GetMembers returns all members of a team in insertion order.
	GetMembers(ctx context.Context, teamID int64) ([]teamModel.TeamMember, error)
}

type repository struct {
	db     *gorm.DB
	exec   *query.Executor
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger, recorder query.Recorder) Repository {
	return &repository{
		db:     db,
		exec:   query.NewExecutor(db, logger, recorder),
		logger: logger,
	}
}

// WithTx returns a repository bound to the transaction tx.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx, exec: r.exec.WithDB(tx), logger: r.logger}
}

var teamMemberProjection = query.Projection[teamModel.TeamMember]{
	Fields: []query.Field{
		query.As(schema.MemberID, "member_id"),
		query.As(schema.MemberUsername, "username"),
		query.As(schema.MemberAge, "age"),
	},
	Build: func(r query.Row) (teamModel.TeamMember, error) {
		rd := r.Reader()
		m := teamModel.TeamMember{
			MemberID: rd.Int64("member_id"),
			Username: rd.NullString("username"),
			Age:      rd.Int("age"),
		}
		return m, rd.Err()
	},
}

// Create creates a new team.
func (r *repository) Create(ctx context.Context, name string) (*teamModel.Team, error) {
	r.logger.Debugw("Create called", "team_name", name)

	team := &teamModel.Team{Name: name}
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		if isDuplicateError(err) {
			r.logger.Debugw("Create team already exists", "team_name", name)
			return nil, teamModel.ErrTeamExists
		}
		r.logger.Errorw("Create database error", "team_name", name, "error", err)
		return nil, err
	}

	r.logger.Infow("Create completed", "team_id", team.ID, "team_name", name)
	return team, nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// GetByName finds team by name.
func (r *repository) GetByName(ctx context.Context, name string) (*teamModel.Team, error) {
	r.logger.Debugw("GetByName called", "team_name", name)

	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where(schema.TeamName.String()+" = ?", name).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debugw("GetByName team not found", "team_name", name)
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw("GetByName database error", "team_name", name, "error", err)
		return nil, err
	}

	return &team, nil
}

// AddMembers inserts members into the team.
func (r *repository) AddMembers(ctx context.Context, teamID int64, members []teamModel.NewTeamMember) error {
	if len(members) == 0 {
		return nil
	}
	r.logger.Debugw("AddMembers called", "team_id", teamID, "count", len(members))

	rows := lo.Map(members, func(m teamModel.NewTeamMember, _ int) memberModel.Member {
		var username *string
		if m.Username != "" {
			username = lo.ToPtr(m.Username)
		}
		return memberModel.Member{Username: username, Age: m.Age, TeamID: lo.ToPtr(teamID)}
	})

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		r.logger.Errorw("AddMembers database error", "team_id", teamID, "error", err)
		return err
	}

	r.logger.Infow("AddMembers completed", "team_id", teamID, "count", len(rows))
	return nil
}

// GetMembers returns all members of a team in insertion order.
func (r *repository) GetMembers(ctx context.Context, teamID int64) ([]teamModel.TeamMember, error) {
	r.logger.Debugw("GetMembers called", "team_id", teamID)

	return query.Find(ctx, r.exec, "team_members", schema.Members, teamMemberProjection,
		query.Eq(schema.MemberTeamID, teamID), []query.Order{query.OrderAsc(schema.MemberID)}, 0)
}
