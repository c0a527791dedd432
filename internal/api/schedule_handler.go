package api

import (
	"errors"
	"net/http"
	"time"

	"gymhub/gym-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleHandler serves the manager-facing schedule routes.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- Request Structs ---

type CreateScheduleRequest struct {
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	TrainerID string `json:"trainerId" binding:"required"`
}

type AddMemberRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

// parseScheduleDate accepts a full timestamp or a bare calendar day.
func parseScheduleDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// --- Handlers ---

// CreateSchedule creates a class session for the manager's gym. The trainer
// must resolve within the gym.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}
	date, err := parseScheduleDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format")
		return
	}

	schedule, err := h.scheduleService.Create(c.Request.Context(), managerID, service.ScheduleInput{
		Title:     req.Title,
		Date:      date,
		Time:      req.Time,
		TrainerID: trainerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrManagerNotFound), errors.Is(err, service.ErrTrainerNotInGym):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithServerError(c, "Failed to create schedule", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Schedule created successfully", "schedule": schedule})
}

// ListSchedules returns the gym's schedules. With a `date` query parameter
// (YYYY-MM-DD) only schedules within that calendar day are returned.
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		day = &d
	}

	schedules, err := h.scheduleService.List(c.Request.Context(), managerID, day)
	if err != nil {
		if errors.Is(err, service.ErrManagerNotFound) {
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

// AddMember enrolls a member of the same gym into a schedule. The insert has
// set semantics: re-adding an enrolled member succeeds without duplicating.
func (h *ScheduleHandler) AddMember(c *gin.Context) {
	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "memberId is required")
		return
	}

	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid schedule ID")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID")
		return
	}

	schedule, err := h.scheduleService.AddMember(c.Request.Context(), managerID, scheduleID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrManagerNotFound),
			errors.Is(err, service.ErrMemberNotInGym),
			errors.Is(err, service.ErrScheduleNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithServerError(c, "Failed to add member to schedule", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member added to schedule", "schedule": schedule})
}

// DeleteSchedule removes a schedule of the manager's gym.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	scheduleID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid schedule ID")
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), managerID, scheduleID); err != nil {
		if errors.Is(err, service.ErrManagerNotFound) || errors.Is(err, service.ErrScheduleNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to delete schedule", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
