// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/query"
	"github.com/festy23/querydsl_study/internal/team/handler"
	"github.com/festy23/querydsl_study/internal/team/repository"
	"github.com/festy23/querydsl_study/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger, recorder query.Recorder) {
	repo := repository.New(db, logger, recorder)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.POST("/teams", h.AddTeam)
	r.GET("/teams/:name", h.GetTeam)
}
