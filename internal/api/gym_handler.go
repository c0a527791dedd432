package api

import (
	"errors"
	"net/http"

	"gymhub/gym-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GymHandler serves gym registration.
type GymHandler struct {
	gymService service.GymService
}

// NewGymHandler creates a new GymHandler.
func NewGymHandler(gymService service.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

// --- Request Structs ---

type CreateGymRequest struct {
	Gym struct {
		Name string `json:"name" binding:"required"`
	} `json:"gym" binding:"required"`
	Manager struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	} `json:"manager" binding:"required"`
}

// CreateGym registers a gym together with its first manager. The pair is
// created as a unit: a failed manager insert rolls the gym back.
func (h *GymHandler) CreateGym(c *gin.Context) {
	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	gym, manager, err := h.gymService.Register(
		c.Request.Context(),
		req.Gym.Name,
		req.Manager.Name,
		req.Manager.Email,
		req.Manager.Password,
	)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			abortWithError(c, http.StatusConflict, err.Error())
			return
		}
		abortWithServerError(c, "Failed to create gym", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Gym created successfully",
		"gym":     gym,
		"manager": manager,
	})
}
