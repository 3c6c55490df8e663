// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/query"
	"github.com/festy23/querydsl_study/internal/statistics/handler"
	"github.com/festy23/querydsl_study/internal/statistics/repository"
	"github.com/festy23/querydsl_study/internal/statistics/service"
)

// RegisterRoutes registers statistics module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger, recorder query.Recorder) {
	repo := repository.New(db, logger, recorder)
	svc := service.New(repo, logger)
	h := handler.New(svc, logger)

	r.GET("/statistics/members", h.GetMemberStatistics)
	r.GET("/statistics/teams", h.GetTeamStatistics)
}
