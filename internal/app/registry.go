package app

import (
	"database/sql"
	"net/http"

	"go-teamdesk/internal/calendar"
	"go-teamdesk/internal/dashboard"
	"go-teamdesk/internal/domain"
	"go-teamdesk/internal/leave"
	"go-teamdesk/internal/messaging/kafka"
	"go-teamdesk/internal/middleware"
	"go-teamdesk/internal/notification"
	"go-teamdesk/internal/profile"
	"go-teamdesk/internal/rbac"
	"go-teamdesk/internal/rbac/infra"
	"go-teamdesk/internal/shared/config"
	"go-teamdesk/internal/shared/counter"
	"go-teamdesk/internal/shared/response"
	"go-teamdesk/internal/team"
	"go-teamdesk/internal/ticket"
	"go-teamdesk/internal/tickettype"
	"go-teamdesk/internal/user"
	"go-teamdesk/internal/userrole"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	userRoleRepo := userrole.NewRepository(gormDB)
	profileRepo := profile.NewRepository(gormDB)
	teamRepo := team.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	calendarRepo := calendar.NewRepository(gormDB)
	ticketTypeRepo := tickettype.NewRepository(gormDB)
	ticketRepo := ticket.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	userService := user.NewService(db, userRepo)
	userRoleService := userrole.NewService(db, userRoleRepo)
	profileService := profile.NewService(db, profileRepo, userRepo, userRoleRepo)
	teamService := team.NewService(db, teamRepo, userRoleService, team.Options{
		LeaderRolePolicy: cfg.Policy.LeaderRole,
	})
	leaveService := leave.NewService(db, leaveRepo, outboxRepo, teamService, leave.Options{
		RequireMembership: cfg.Policy.LeaveRequireMembership,
	})
	notificationService := notification.NewService(db, notificationRepo)
	calendarService := calendar.NewService(db, calendarRepo, teamService)
	ticketTypeService := tickettype.NewService(db, ticketTypeRepo, rdb)
	ticketService := ticket.NewService(db, ticketRepo, counterRepo, outboxRepo, teamService, ticketTypeService)
	dashboardService := dashboard.NewService(dashboard.Sources{
		Profiles:      profileService,
		Roles:         userRoleService,
		Teams:         teamService,
		Leaves:        leaveService,
		Notifications: notificationService,
		Tickets:       ticketService,
	})

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath)
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(userRoleService, enforcer)
	if err != nil {
		return err
	}

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	userRoleHandler := userrole.NewHandler(userRoleService)
	profileHandler := profile.NewHandler(profileService)
	teamHandler := team.NewHandler(teamService)
	leaveHandler := leave.NewHandler(leaveService)
	notificationHandler := notification.NewHandler(notificationService)
	calendarHandler := calendar.NewHandler(calendarService)
	ticketTypeHandler := tickettype.NewHandler(ticketTypeService)
	ticketHandler := ticket.NewHandler(ticketService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	authed := router.Group("")
	authed.Use(
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ContextLogger(zap.L().Named("http")),
		middleware.RateLimitByUser(rate.Limit(20), 40),
	)
	if rdb != nil {
		authed.Use(middleware.Idempotency(rdb))
	}

	dashboard.RegisterRoutes(authed, dashboardHandler, rbacService)
	profile.RegisterSetupRoute(authed, profileHandler, rbacService)

	api := authed.Group("/api/v1")
	{
		api.GET("/choices", listChoices)
		user.RegisterRoutes(api, userHandler, rbacService)
		userrole.RegisterRoutes(api, userRoleHandler, rbacService)
		profile.RegisterRoutes(api, profileHandler, rbacService)
		team.RegisterRoutes(api, teamHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		calendar.RegisterRoutes(api, calendarHandler, rbacService)
		tickettype.RegisterRoutes(api, ticketTypeHandler, rbacService)
		ticket.RegisterRoutes(api, ticketHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}

// listChoices exposes the value/label sets of every choice field.
func listChoices(c *gin.Context) {
	response.Success(c, http.StatusOK, domain.Choices(), nil)
}
