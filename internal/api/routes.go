package api

import (
	"net/http"

	"gymhub/gym-api/internal/domain"
	"gymhub/gym-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the full route table. Every route except gym
// registration and the login endpoints sits behind the bearer-token guard
// plus the role check for its resource.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	gymService service.GymService,
	trainerService service.TrainerService,
	memberService service.MemberService,
	scheduleService service.ScheduleService,
	reportService service.ReportService,
) {
	authHandler := NewAuthHandler(authService)
	gymHandler := NewGymHandler(gymService)
	trainerHandler := NewTrainerHandler(trainerService)
	memberHandler := NewMemberHandler(memberService)
	scheduleHandler := NewScheduleHandler(scheduleService)
	reportHandler := NewReportHandler(reportService)

	authn := Authenticate(jwtSecret)
	managerOnly := RequireRole(domain.RoleManager)
	trainerOnly := RequireRole(domain.RoleTrainer)
	memberOnly := RequireRole(domain.RoleMember)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	gyms := router.Group("/gyms")
	{
		gyms.POST("/create", gymHandler.CreateGym)
	}

	managers := router.Group("/managers")
	{
		managers.POST("/login", authHandler.Login(domain.RoleManager))
	}

	trainers := router.Group("/trainers")
	{
		trainers.POST("/login", authHandler.Login(domain.RoleTrainer))

		trainers.POST("/create", authn, managerOnly, trainerHandler.CreateTrainer)
		trainers.GET("", authn, managerOnly, trainerHandler.ListTrainers)
		trainers.PUT("/:id", authn, managerOnly, trainerHandler.UpdateTrainer)
		trainers.DELETE("/:id", authn, managerOnly, trainerHandler.DeleteTrainer)

		trainers.GET("/assigned-members", authn, trainerOnly, trainerHandler.AssignedMembers)
		trainers.GET("/schedules", authn, trainerOnly, trainerHandler.Schedules)
	}

	members := router.Group("/members")
	{
		members.POST("/login", authHandler.Login(domain.RoleMember))

		members.POST("/create", authn, managerOnly, memberHandler.CreateMember)
		members.GET("", authn, managerOnly, memberHandler.ListMembers)
		members.PUT("/:id", authn, managerOnly, memberHandler.UpdateMember)
		members.DELETE("/:id", authn, managerOnly, memberHandler.DeleteMember)
		members.PUT("/:id/assign-trainer", authn, managerOnly, memberHandler.AssignTrainer)

		members.GET("/me", authn, memberOnly, memberHandler.Me)
		members.GET("/assigned-trainer", authn, memberOnly, memberHandler.AssignedTrainer)
		members.GET("/schedules", authn, memberOnly, memberHandler.Schedules)
	}

	schedules := router.Group("/schedules")
	schedules.Use(authn, managerOnly)
	{
		schedules.POST("/create", scheduleHandler.CreateSchedule)
		schedules.GET("", scheduleHandler.ListSchedules)
		schedules.PUT("/:id/add-member", scheduleHandler.AddMember)
		schedules.DELETE("/:id", scheduleHandler.DeleteSchedule)
	}

	reports := router.Group("/reports")
	reports.Use(authn, managerOnly)
	{
		reports.GET("/dashboard", reportHandler.Dashboard)
	}
}
