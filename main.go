package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"homeroom/config"
	"homeroom/core"
	"homeroom/handlers"
	"homeroom/logger"
	"homeroom/middleware"
	"homeroom/store"
	"homeroom/store/memory"
	"homeroom/store/mysql"
	"homeroom/websocket"
)

func main() {
	config.Load()
	lg := logger.New(config.Cfg.LogEnabled)

	var stores store.Stores
	switch config.Cfg.Backend {
	case "memory":
		stores = memory.New().Stores()
		lg.Info("using in-memory backend; data will not survive a restart")
	default:
		backend, err := mysql.Open(config.Cfg.MysqlDSN)
		if err != nil {
			lg.Fatal("failed to connect to database", err)
		}
		defer backend.Close()
		if err := backend.CreateTables(); err != nil {
			lg.Fatal("failed to create tables", err)
		}
		stores = backend.Stores()
		lg.Info("database connected")
	}

	if err := os.MkdirAll(config.Cfg.UploadDir, 0755); err != nil {
		lg.Fatal("failed to create upload directory", err)
	}

	// the hub is both the delivery collaborator and the presence source
	websocket.InitHub(lg)
	hub := websocket.HubInstance

	messageSvc := core.NewMessageService(stores, hub)
	hub.Bind(messageSvc)

	identitySvc := core.NewIdentityService(stores, hub)
	friendSvc := core.NewFriendService(stores, hub)
	groupSvc := core.NewGroupService(stores)
	indexSvc := core.NewIndexService(stores)
	taskSvc := core.NewTaskService(stores)

	h := handlers.New(identitySvc, friendSvc, groupSvc, messageSvc, indexSvc, taskSvc)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.AuthMiddleware(), h.Logout)
		auth.POST("/refresh", middleware.AuthMiddleware(), h.RefreshToken)
	}

	users := r.Group("/api/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", h.GetAllUsers)
		users.GET("/me", h.GetCurrentUser)
		users.PUT("/me", h.UpdateCurrentUser)
		users.GET("/search", h.SearchUsers)
		users.GET("/:user_id/summary", h.GetUserSummary)
	}

	friends := r.Group("/api/friends")
	friends.Use(middleware.AuthMiddleware())
	{
		friends.GET("", h.GetFriends)
		friends.GET("/requests", h.GetFriendRequests)
		friends.GET("/requests/outgoing", h.GetOutgoingRequests)
		friends.POST("/request", h.SendFriendRequest)
		friends.POST("/requests/:id/respond", h.RespondToRequest)
		friends.POST("/block", h.BlockUser)
		friends.DELETE("/:id", h.DeleteFriendship)
	}

	groups := r.Group("/api/groups")
	groups.Use(middleware.AuthMiddleware())
	{
		groups.GET("", h.GetGroups)
		groups.POST("", h.CreateGroup)
		groups.POST("/join", h.JoinGroup)
		groups.GET("/:id", h.GetGroup)
		groups.PUT("/:id", h.UpdateGroup)
		groups.DELETE("/:id", h.DeleteGroup)
		groups.POST("/:id/members", h.AddGroupMembers)
		groups.DELETE("/:id/members/:user_id", h.RemoveGroupMember)
		groups.PUT("/:id/members/:user_id", h.UpdateGroupMember)
		groups.POST("/:id/invite-code", h.RegenerateInviteCode)
		groups.POST("/:id/transfer", h.TransferGroupOwnership)
		groups.GET("/:id/messages", h.GetGroupMessages)
	}

	messages := r.Group("/api/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.POST("", h.SendMessage)
		messages.GET("/direct/:user_id", h.GetDirectMessages)
		messages.PUT("/:id", h.EditMessage)
		messages.DELETE("/:id", h.DeleteMessage)
		messages.POST("/:id/read", h.MarkMessageRead)
	}

	conversations := r.Group("/api/conversations")
	conversations.Use(middleware.AuthMiddleware())
	{
		conversations.GET("", h.GetConversations)
		conversations.GET("/unread", h.GetUnreadCounts)
	}

	tasks := r.Group("/api/tasks")
	tasks.Use(middleware.AuthMiddleware())
	{
		tasks.GET("", h.GetTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.POST("/:id/submit", h.SubmitTask)
		tasks.POST("/:id/grade", h.GradeTask)
	}

	files := r.Group("/api/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("/upload", h.UploadFile)
	}
	r.GET("/files/:filename", h.ServeFile)

	r.GET("/ws", websocket.HandleWebSocket)

	lg.Info("server starting", config.Cfg.ServerAddr)
	if err := r.Run(config.Cfg.ServerAddr); err != nil {
		lg.Fatal("failed to start server", err)
	}
}
