package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/activity"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/auth"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/booking"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/cache"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/checkin"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/class"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/clock"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/config"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/member"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, clk clock.Clock, statsCache *cache.Cache) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	activityLog := activity.NewLog(activity.DefaultCapacity)

	classRepo := class.NewRepository(db)
	memberRepo := member.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	checkinRepo := checkin.NewRepository(db)

	classService := class.NewService(classRepo, clk, activityLog)
	memberService := member.NewService(memberRepo, activityLog, cfg.JWTSecret)
	bookingService := booking.NewService(bookingRepo, classRepo, memberRepo, checkinRepo, activityLog, clk)
	checkinService := checkin.NewService(checkinRepo, memberRepo, activityLog, clk, statsCache)

	classHandler := class.NewHandler(classService)
	memberHandler := member.NewHandler(memberService)
	bookingHandler := booking.NewHandler(bookingService)
	checkinHandler := checkin.NewHandler(checkinService)
	activityHandler := activity.NewHandler(activityLog)

	public := router.Group("/auth")
	{
		public.POST("/register", memberHandler.Register)
		public.POST("/login", memberHandler.Login)
		public.POST("/refresh", memberHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", memberHandler.GetMe)
		protected.GET("/me/stats", checkinHandler.MyStats)
		protected.GET("/classes", classHandler.ListClasses)
		protected.GET("/classes/:classID", classHandler.GetClass)
		protected.GET("/schedule/upcoming", classHandler.Upcoming)
		protected.POST("/classes/:classID/enroll", bookingHandler.Enroll)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
		protected.POST("/checkins", checkinHandler.CheckIn)
		protected.POST("/checkins/:checkinID/checkout", checkinHandler.CheckOut)
	}

	staffMiddleware := auth.RequireRole(auth.RoleStaff, auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, staffMiddleware)
	{
		admin.POST("/classes", classHandler.CreateClass)
		admin.PATCH("/classes/:classID/status", classHandler.UpdateStatus)
		admin.POST("/classes/:classID/slots", classHandler.AddSlot)
		admin.GET("/classes/:classID/roster", bookingHandler.GetRoster)
		admin.POST("/bookings/:bookingID/attend", bookingHandler.Attend)
		admin.GET("/stats", checkinHandler.Stats)
		admin.GET("/activity", activityHandler.Recent)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the underlying engine for handler-level tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
