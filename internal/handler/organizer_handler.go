package handler

import (
	"net/http"

	"protest-tracker/internal/middleware"
	"protest-tracker/internal/model"
	"protest-tracker/internal/service"
	apperrors "protest-tracker/pkg/app_errors"

	"github.com/gin-gonic/gin"
)

type OrganizerHandler struct {
	service service.OrganizerService
}

func NewOrganizerHandler(service service.OrganizerService) *OrganizerHandler {
	return &OrganizerHandler{service: service}
}

// RegisterRoutes mounts the organizer routes; authed carries the bearer middleware.
func (h *OrganizerHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.POST("organizers/register", h.Register)
	public.POST("register", h.Register)
	public.POST("organizers/login", h.Login)
	public.POST("login", h.Login)
	public.GET("organizers/:id", h.GetByID)
	public.POST("organizers/:id/follow", h.Follow)

	authed.GET("organizers/:id/analytics", h.Analytics)
}

func (h *OrganizerHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.Register(c, req)
	if err != nil {
		handleError(c, err, "Register")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"organizer": resp.Organizer,
		"token":     resp.Token,
	})
}

func (h *OrganizerHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.Login(c, req)
	if err != nil {
		handleError(c, err, "Login")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrganizerHandler) GetByID(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	organizer, err := h.service.GetByID(c, id)
	if err != nil {
		handleError(c, err, "GetByID")
		return
	}
	c.JSON(http.StatusOK, organizer)
}

func (h *OrganizerHandler) Follow(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req model.FollowRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	followers, err := h.service.SetFollow(c, id, *req.Following)
	if err != nil {
		handleError(c, err, "Follow")
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": followers})
}

func (h *OrganizerHandler) Analytics(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}
	callerID, ok := middleware.OrganizerID(c)
	if !ok {
		handleError(c, apperrors.ErrMissingToken, "Analytics")
		return
	}

	analytics, err := h.service.Analytics(c, callerID, id)
	if err != nil {
		handleError(c, err, "Analytics")
		return
	}
	c.JSON(http.StatusOK, analytics)
}
