package api

import (
	"errors"
	"net/http"

	"gymhub/gym-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberHandler serves the manager-facing member CRUD plus trainer
// assignment, and the member-facing self views.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// --- Request Structs ---

type CreateMemberRequest struct {
	Name           string `json:"name" binding:"required"`
	Age            int    `json:"age" binding:"required,gt=0"`
	MembershipType string `json:"membershipType" binding:"required"`
	ContactInfo    string `json:"contactInfo" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
}

type UpdateMemberRequest struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age" binding:"omitempty,gt=0"`
	MembershipType *string `json:"membershipType"`
	ContactInfo    *string `json:"contactInfo"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Password       *string `json:"password" binding:"omitempty,min=8"`
}

type AssignTrainerRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
}

// --- Manager-facing handlers ---

// CreateMember adds a member to the authenticated manager's gym.
func (h *MemberHandler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), managerID, service.MemberInput{
		Name:           req.Name,
		Age:            req.Age,
		MembershipType: req.MembershipType,
		ContactInfo:    req.ContactInfo,
		Email:          req.Email,
		Password:       req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrManagerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithServerError(c, "Failed to create member", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Member created successfully", "member": member})
}

// ListMembers returns the gym's members with assigned trainers joined in,
// optionally filtered by the `name` query parameter.
func (h *MemberHandler) ListMembers(c *gin.Context) {
	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	members, err := h.memberService.List(c.Request.Context(), managerID, c.Query("name"))
	if err != nil {
		if errors.Is(err, service.ErrManagerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to list members", err)
		return
	}

	if members == nil {
		members = []service.MemberDetail{}
	}
	c.JSON(http.StatusOK, members)
}

// UpdateMember patches a member of the manager's gym.
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID")
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), managerID, memberID, service.MemberUpdate{
		Name:           req.Name,
		Age:            req.Age,
		MembershipType: req.MembershipType,
		ContactInfo:    req.ContactInfo,
		Email:          req.Email,
		Password:       req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrManagerNotFound), errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithServerError(c, "Failed to update member", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member updated successfully", "member": member})
}

// DeleteMember removes a member of the manager's gym.
func (h *MemberHandler) DeleteMember(c *gin.Context) {
	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID")
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), managerID, memberID); err != nil {
		if errors.Is(err, service.ErrManagerNotFound) || errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to delete member", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully"})
}

// AssignTrainer assigns a trainer of the same gym to a member. A trainer
// from another gym is indistinguishable from a missing one.
func (h *MemberHandler) AssignTrainer(c *gin.Context) {
	var req AssignTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "trainerId is required")
		return
	}

	managerID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}
	memberID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid member ID")
		return
	}
	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	member, err := h.memberService.AssignTrainer(c.Request.Context(), managerID, memberID, trainerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrManagerNotFound),
			errors.Is(err, service.ErrTrainerNotInGym),
			errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithServerError(c, "Failed to assign trainer", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Trainer assigned successfully", "member": member})
}

// --- Member-facing handlers ---

// Me returns the authenticated member's own record.
func (h *MemberHandler) Me(c *gin.Context) {
	memberID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	member, err := h.memberService.Me(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to load member", err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// AssignedTrainer returns the member's assigned trainer.
func (h *MemberHandler) AssignedTrainer(c *gin.Context) {
	memberID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	trainer, err := h.memberService.AssignedTrainer(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) || errors.Is(err, service.ErrNoAssignedTrainer) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithServerError(c, "Failed to load assigned trainer", err)
		return
	}

	c.JSON(http.StatusOK, trainer)
}

// Schedules returns the schedules the authenticated member is enrolled in,
// sorted ascending by date.
func (h *MemberHandler) Schedules(c *gin.Context) {
	memberID, err := callerID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token")
		return
	}

	schedules, err := h.memberService.Schedules(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
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
