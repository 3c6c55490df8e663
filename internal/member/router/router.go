// Package router provides member module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/querydsl_study/internal/config"
	"github.com/festy23/querydsl_study/internal/member/handler"
	"github.com/festy23/querydsl_study/internal/member/repository"
	"github.com/festy23/querydsl_study/internal/member/service"
	"github.com/festy23/querydsl_study/internal/query"
)

// RegisterRoutes registers member module routes.
func RegisterRoutes(
	r gin.IRouter,
	db *gorm.DB,
	logger *zap.SugaredLogger,
	recorder query.Recorder,
	pagination config.PaginationConfig,
) {
	repo := repository.New(db, logger, recorder)
	svc := service.New(repo, logger, pagination)
	h := handler.New(svc, logger)

	members := r.Group("/members")
	members.POST("", h.Create)
	members.GET("/search", h.Search)
	members.GET("/projections/members", h.MemberDtos)
	members.GET("/projections/users", h.UserDtos)
	members.POST("/bulk/rename", h.BulkRename)
	members.POST("/bulk/add-age", h.BulkAddAge)
	members.POST("/bulk/delete", h.BulkDelete)
	members.GET("/:id", h.Get)
}
