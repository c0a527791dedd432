package api

import (
	"errors"
	"net/http"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler serves the manager-facing trainer CRUD and the
// trainer-facing self views.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request Structs ---

type CreateTrainerRequest struct {
	Name        string `json:"name" binding:"required"`
	Age         int    `json:"age" binding:"required,gt=0"`
	ContactInfo string `json:"contactInfo" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type UpdateTrainerRequest struct {
	Name        *string `json:"name"`
	Age         *int    `json:"age" binding:"omitempty,gt=0"`
	ContactInfo *string `json:"contactInfo"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Password    *string `json:"password" binding:"omitempty,min=8"`
}

// --- Manager-facing handlers ---

// CreateTrainer adds a trainer to the authenticated manager's gym.
func (h *TrainerHandler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	trainer, err := h.trainerService.Create(c.Request.Context(), managerID, service.TrainerInput{
		Name:        req.Name,
		Age:         req.Age,
		ContactInfo: req.ContactInfo,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrManagerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithServerError(c, "Failed to create trainer", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Trainer created successfully", "trainer": trainer})
}

// ListTrainers returns the gym's trainers, optionally filtered by the `name`
// query parameter (case-insensitive substring).
func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	trainers, err := h.trainerService.List(c.Request.Context(), managerID, c.Query("name"))
	if err != nil {
		if errors.Is(err, service.ErrManagerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to list trainers", err)
		return
	}

	if trainers == nil {
		trainers = []domain.Trainer{}
	}
	c.JSON(http.StatusOK, trainers)
}

// UpdateTrainer patches a trainer of the manager's gym.
func (h *TrainerHandler) UpdateTrainer(c *gin.Context) {
	var req UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	trainerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	trainer, err := h.trainerService.Update(c.Request.Context(), managerID, trainerID, service.TrainerUpdate{
		Name:        req.Name,
		Age:         req.Age,
		ContactInfo: req.ContactInfo,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrManagerNotFound), errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithServerError(c, "Failed to update trainer", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer updated successfully", "trainer": trainer})
}

// DeleteTrainer removes a trainer of the manager's gym.
func (h *TrainerHandler) DeleteTrainer(c *gin.Context) {
	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	trainerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	if err := h.trainerService.Delete(c.Request.Context(), managerID, trainerID); err != nil {
		if errors.Is(err, service.ErrManagerNotFound) || errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to delete trainer", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer deleted successfully"})
}

// --- Trainer-facing handlers ---

// AssignedMembers returns the members assigned to the authenticated trainer.
func (h *TrainerHandler) AssignedMembers(c *gin.Context) {
	trainerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	members, err := h.trainerService.AssignedMembers(c.Request.Context(), trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to list assigned members", err)
		return
	}

	if members == nil {
		members = []domain.Member{}
	}
	c.JSON(http.StatusOK, members)
}

// Schedules returns the authenticated trainer's schedules sorted ascending
// by date.
func (h *TrainerHandler) Schedules(c *gin.Context) {
	trainerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	schedules, err := h.trainerService.Schedules(c.Request.Context(), trainerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to list schedules", err)
		return
	}

	if schedules == nil {
		schedules = []service.ScheduleDetail{}
	}
	c.JSON(http.StatusOK, schedules)
}
