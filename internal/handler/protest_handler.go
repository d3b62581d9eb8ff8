package handler

import (
	"net/http"

	"protest-tracker/internal/middleware"
	"protest-tracker/internal/model"
	"protest-tracker/internal/service"
	apperrors "protest-tracker/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type ProtestHandler struct {
	service service.ProtestService
}

func NewProtestHandler(service service.ProtestService) *ProtestHandler {
	return &ProtestHandler{service: service}
}

// RegisterRoutes mounts the protest routes; authed carries the bearer middleware.
func (h *ProtestHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("protests", h.List)
	public.GET("protests/:id", h.GetByID)
	public.POST("protests/:id/like", h.Like)

	authed.POST("protests", h.Create)
	authed.PUT("protests/:id", h.Update)
	authed.DELETE("protests/:id", h.Delete)
	authed.GET("organizers/:id/protests", h.ListByOrganizer)
}

func (h *ProtestHandler) List(c *gin.Context) {
	var query model.ProtestListQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	protests, err := h.service.List(c, query.Upcoming)
	if err != nil {
		handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, gin.H{"protests": protests})
}

func (h *ProtestHandler) GetByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	protest, err := h.service.GetByID(c, id)
	if err != nil {
		handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, protest)
}

func (h *ProtestHandler) Create(c *gin.Context) {
	callerID, ok := requireCaller(c, "Create")
	if !ok {
		return
	}
	var req model.ProtestRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, callerID, req.Params())
	if err != nil {
		handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProtestHandler) Update(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	callerID, ok := requireCaller(c, "Update")
	if !ok {
		return
	}
	var req model.ProtestRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	updated, err := h.service.Update(c, callerID, id, req.Params())
	if err != nil {
		handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProtestHandler) Delete(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	callerID, ok := requireCaller(c, "Delete")
	if !ok {
		return
	}

	if err := h.service.Delete(c, callerID, id); err != nil {
		handleError(c, err, "Delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Protest deleted", "id": id})
}

func (h *ProtestHandler) ListByOrganizer(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	callerID, ok := requireCaller(c, "ListByOrganizer")
	if !ok {
		return
	}

	protests, err := h.service.ListByOrganizer(c, callerID, id)
	if err != nil {
		handleError(c, err, "ListByOrganizer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"protests": protests})
}

func (h *ProtestHandler) Like(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req model.LikeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	likes, err := h.service.SetLike(c, id, *req.Liked)
	if err != nil {
		handleError(c, err, "Like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func requireCaller(c *gin.Context, operation string) (int64, bool) {
	id, ok := middleware.OrganizerID(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, operation)
	}
	return id, ok
}
