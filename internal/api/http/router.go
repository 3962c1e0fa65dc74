package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/talkline/talkline/internal/auth"
)

type Controllers struct {
	Auth          *AuthController
	Users         *UserController
	Friends       *FriendController
	Chats         *ChatController
	Groups        *GroupController
	Statuses      *StatusController
	Calls         *CallController
	Notifications *NotificationController
	Admin         *AdminController
}

func SetupRouter(tokens *auth.JWTService, allowOrigins []string, c Controllers) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Authorization", "Content-Type", "Origin", "Accept"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))
	router.Use(PrometheusMiddleware())

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", c.Auth.Register)
	authGroup.POST("/login", c.Auth.Login)
	authGroup.POST("/logout", AuthMiddleware(tokens), c.Auth.Logout)

	authed := api.Group("")
	authed.Use(AuthMiddleware(tokens))

	users := authed.Group("/users")
	users.GET("", c.Users.List)
	users.GET("/search", c.Users.Search)
	users.GET("/:userID", c.Users.Get)
	users.PUT("/me", c.Users.UpdateProfile)

	friends := authed.Group("/friends")
	friends.GET("", c.Friends.List)
	friends.POST("/requests", c.Friends.SendRequest)
	friends.GET("/requests", c.Friends.PendingRequests)
	friends.GET("/requests/count", c.Friends.PendingCount)
	friends.POST("/requests/:requestID/respond", c.Friends.Respond)
	friends.GET("/relationship/:userID", c.Friends.Relationship)
	friends.DELETE("/:userID", c.Friends.Unfriend)

	chats := authed.Group("/chats")
	chats.POST("/:userID/messages", c.Chats.Send)
	chats.GET("/:userID/messages", c.Chats.History)
	chats.POST("/:userID/open", c.Chats.Open)
	chats.GET("/:userID/unread", c.Chats.UnreadCount)
	chats.GET("/unread", c.Chats.UnreadTotal)
	chats.POST("/messages/:messageID/read", c.Chats.MarkRead)

	groups := authed.Group("/groups")
	groups.POST("", c.Groups.Create)
	groups.GET("", c.Groups.List)
	groups.GET("/:groupID", c.Groups.Get)
	groups.POST("/:groupID/members", c.Groups.AddMember)
	groups.DELETE("/:groupID/members/:userID", c.Groups.RemoveMember)
	groups.POST("/:groupID/messages", c.Groups.SendMessage)
	groups.GET("/:groupID/messages", c.Groups.Messages)
	groups.DELETE("/:groupID", c.Groups.Deactivate)

	statuses := authed.Group("/statuses")
	statuses.POST("", c.Statuses.Create)
	statuses.GET("/feed", c.Statuses.Feed)
	statuses.GET("/mine", c.Statuses.Own)
	statuses.POST("/:statusID/view", c.Statuses.View)
	statuses.GET("/:statusID/viewers", c.Statuses.Viewers)

	calls := authed.Group("/calls")
	calls.POST("/start", c.Calls.Start)
	calls.POST("/answer", c.Calls.Answer)
	calls.POST("/decline", c.Calls.Decline)
	calls.POST("/end", c.Calls.End)
	calls.GET("/active", c.Calls.Active)
	calls.GET("/history", c.Calls.History)
	calls.GET("/ws", c.Calls.Events)

	notifications := authed.Group("/notifications")
	notifications.GET("", c.Notifications.List)
	notifications.GET("/unread", c.Notifications.UnreadCount)
	notifications.POST("/:notificationID/read", c.Notifications.MarkRead)

	admin := authed.Group("/admin")
	admin.Use(AdminOnly())
	admin.GET("/users", c.Admin.ListUsers)
	admin.POST("/users/:userID/block", c.Admin.Block)
	admin.POST("/users/:userID/unblock", c.Admin.Unblock)
	admin.POST("/users/:userID/promote", c.Admin.Promote)
	admin.DELETE("/users/:userID", c.Admin.DeleteUser)
	admin.POST("/notifications/broadcast", c.Admin.Broadcast)
	admin.POST("/statuses/cleanup", c.Admin.CleanupStatuses)
	admin.GET("/totals", c.Admin.Totals)

	return router
}
