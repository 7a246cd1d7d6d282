package main

import (
	"adminbase/internal/api"
	"adminbase/internal/cache"
	"adminbase/internal/config"
	"adminbase/internal/model"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	// 初始化logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	// Redis 缓存镜像；连不上也允许启动，读穿会直接回源数据库
	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logrus.WithError(err).Warn("redis unreachable, cache mirror degraded")
	}
	cancel()
	coordinator := cache.NewCoordinator(cache.NewRedisStore(redisClient))

	httpHandler, err := api.NewHTTPHandler(cfg, repo, coordinator)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// 添加中间件
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", httpHandler.Register)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.POST("/refresh", httpHandler.Refresh)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)

	protected := apiGroup.Group("")
	protected.Use(httpHandler.AuthMiddleware())
	protected.Use(httpHandler.PermGuard())

	userGroup := protected.Group("/user")
	userGroup.GET("/list", httpHandler.ListUsers)
	userGroup.GET("/one/:id", httpHandler.GetUser)
	userGroup.GET("/:id/role", httpHandler.GetUserRoles)
	userGroup.PUT("/:id", httpHandler.UpdateUser)
	userGroup.PUT("/:id/role", httpHandler.BindUserRoles)
	userGroup.DELETE("/:id", httpHandler.DeleteUser)

	menuGroup := protected.Group("/menu")
	menuGroup.GET("/all", httpHandler.AllMenus)
	menuGroup.GET("/one/:id/menu-perm", httpHandler.GetMenuPerms)
	menuGroup.POST("", httpHandler.CreateMenu)
	menuGroup.PUT("/:id", httpHandler.UpdateMenu)
	menuGroup.PUT("/menu-perm", httpHandler.UpdateMenuPerms)
	menuGroup.DELETE("/:id", httpHandler.DeleteMenu)

	roleGroup := protected.Group("/role")
	roleGroup.GET("/list", httpHandler.ListRoles)
	roleGroup.GET("/one/:id", httpHandler.GetRole)
	roleGroup.POST("", httpHandler.CreateRole)
	roleGroup.PUT("/:id", httpHandler.UpdateRole)
	roleGroup.PUT("/:id/menu", httpHandler.BindRoleMenus)
	roleGroup.DELETE("/:id", httpHandler.DeleteRole)

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("服务器启动")
	// 创建HTTP服务器
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("服务器启动失败")
	}
}

// CORSMiddleware CORS跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware 日志记录中间件
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// 处理请求
		c.Next()
		// 记录请求结束
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
