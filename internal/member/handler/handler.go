// Package handler provides HTTP handlers for member endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/querydsl_study/internal/member/model"
	"github.com/festy23/querydsl_study/internal/member/service"
)

// Handler handles HTTP requests for member endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new member handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /members.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}

	member, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidMember) {
			invalidRequest(c, err.Error())
			return
		}
		internalError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// Get handles GET /members/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		invalidRequest(c, "id must be an integer")
		return
	}

	member, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrMemberNotFound) {
			errorResponse(c, "NOT_FOUND", "member not found", http.StatusNotFound)
			return
		}
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

// Search handles GET /members/search.
// Query: username, teamName, ageGoe, ageLoe, offset, limit, sort, countMode.
func (h *Handler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		invalidRequest(c, "invalid query parameters")
		return
	}

	resp, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidSearch) {
			invalidRequest(c, err.Error())
			return
		}
		h.logger.Errorw("Search request failed", "error", err)
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// MemberDtos handles GET /members/projections/members.
func (h *Handler) MemberDtos(c *gin.Context) {
	dtos, err := h.service.MemberDtos(c.Request.Context())
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": dtos})
}

// UserDtos handles GET /members/projections/users.
func (h *Handler) UserDtos(c *gin.Context) {
	dtos, err := h.service.UserDtos(c.Request.Context())
	if err != nil {
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": dtos})
}

// BulkRename handles POST /members/bulk/rename.
func (h *Handler) BulkRename(c *gin.Context) {
	var req model.BulkRenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	h.bulkResult(c, func() (*model.BulkResponse, error) {
		return h.service.BulkRename(c.Request.Context(), &req)
	})
}

// BulkAddAge handles POST /members/bulk/add-age.
func (h *Handler) BulkAddAge(c *gin.Context) {
	var req model.BulkAddAgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	h.bulkResult(c, func() (*model.BulkResponse, error) {
		return h.service.BulkAddAge(c.Request.Context(), &req)
	})
}

// BulkDelete handles POST /members/bulk/delete.
func (h *Handler) BulkDelete(c *gin.Context) {
	var req model.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	h.bulkResult(c, func() (*model.BulkResponse, error) {
		return h.service.BulkDelete(c.Request.Context(), &req)
	})
}

func (h *Handler) bulkResult(c *gin.Context, run func() (*model.BulkResponse, error)) {
	resp, err := run()
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, resp)
}
