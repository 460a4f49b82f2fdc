package ws

import (
	notificationhandler "campus-jobs-backend/lib/notification"
	authutils "campus-jobs-backend/lib/utils/auth-utils"
	wsclient "campus-jobs-backend/lib/ws/client"
	connectionhub "campus-jobs-backend/lib/ws/hub/connection-hub"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(router fiber.Router) {
	router.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("userID", authutils.GetUserID(ctx))
		return ctx.Next()
	})
	router.Get("/", websocket.New(notificationHandler))
}

// @Summary In-app notifications
// @Tags Websocket
// @Description Pushes in-app notifications, unread ones are replayed on connect
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /api/v1/ws [get]
func notificationHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		return
	}
	client := wsclient.NewClient(userID, c, func(userID, notificationID string) error {
		return notificationhandler.Instance.MarkRead(userID, notificationID)
	})
	connectionhub.Instance.AddClient(userID, c)
	defer connectionhub.Instance.DeleteClient(userID, c)
	client.Dispatch()
}
