// Package repository provides data access layer for statistics module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/query"
	"github.com/festy23/querydsl_study/internal/schema"
	"github.com/festy23/querydsl_study/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// MemberStatistics returns count, sum, average, maximum and minimum of member ages.
	MemberStatistics(ctx context.Context) (*model.MemberStatistics, error)

	// AverageAgeByTeam returns the average member age per team ordered by team name.
	// Members without a team are not counted.
	AverageAgeByTeam(ctx context.Context) ([]model.TeamAgeStatistics, error)
}

type repository struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	recorder query.Recorder
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger, recorder query.Recorder) Repository {
	return &repository{
		db:       db,
		logger:   logger,
		recorder: recorder,
	}
}

func (r *repository) observe(operation string, start time.Time, err error) {
	if r.recorder != nil {
		r.recorder.ObserveQuery(operation, time.Since(start), err)
	}
}

// MemberStatistics returns aggregates over all member ages.
func (r *repository) MemberStatistics(ctx context.Context) (*model.MemberStatistics, error) {
	r.logger.Debugw("MemberStatistics called")

	var result struct {
		Count int64   `gorm:"column:member_count"`
		Sum   int64   `gorm:"column:age_sum"`
		Avg   float64 `gorm:"column:age_avg"`
		Max   int     `gorm:"column:age_max"`
		Min   int     `gorm:"column:age_min"`
	}

	age := schema.MemberAge.String()
	start := time.Now()
	err := schema.Members.From(r.db.WithContext(ctx)).
		Select(`
			COUNT(*) AS member_count,
			COALESCE(SUM(` + age + `), 0) AS age_sum,
			COALESCE(AVG(` + age + `), 0) AS age_avg,
			COALESCE(MAX(` + age + `), 0) AS age_max,
			COALESCE(MIN(` + age + `), 0) AS age_min
		`).
		Scan(&result).Error
	r.observe("member_statistics", start, err)

	if err != nil {
		r.logger.Errorw("MemberStatistics database error", "error", err)
		return nil, err
	}

	stats := &model.MemberStatistics{
		Count: result.Count,
		Sum:   result.Sum,
		Avg:   result.Avg,
		Max:   result.Max,
		Min:   result.Min,
	}

	r.logger.Debugw("MemberStatistics completed", "count", stats.Count)
	return stats, nil
}

// AverageAgeByTeam returns the average member age per team ordered by team name.
func (r *repository) AverageAgeByTeam(ctx context.Context) ([]model.TeamAgeStatistics, error) {
	r.logger.Debugw("AverageAgeByTeam called")

	var stats []model.TeamAgeStatistics

	teamName := schema.TeamName.String()
	start := time.Now()
	err := schema.MembersInTeam.From(r.db.WithContext(ctx)).
		Select(teamName + " AS team_name, AVG(" + schema.MemberAge.String() + ") AS average_age").
		Group(teamName).
		Order(teamName + " ASC").
		Scan(&stats).Error
	r.observe("team_average_age", start, err)

	if err != nil {
		r.logger.Errorw("AverageAgeByTeam database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.TeamAgeStatistics{}
	}

	r.logger.Debugw("AverageAgeByTeam completed", "count", len(stats))
	return stats, nil
}
