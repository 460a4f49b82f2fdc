package apiv1

import (
	"campus-jobs-backend/controllers"
	messaginghandler "campus-jobs-backend/lib/messaging"
	"campus-jobs-backend/middleware"
	apimodels "campus-jobs-backend/models/api"
	messageapimodels "campus-jobs-backend/models/api/message"
	"github.com/gofiber/fiber/v2"
)

type messageApiController struct {
	controllers.BaseAPIController
}

func InitMessageApiRouters(app *fiber.App) {
	controller := messageApiController{}
	app.Route("message", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Get("metrics", controller.metrics)
		router.Get("attachment/:id", controller.attachment)
		router.Route("conversation", func(convRoute fiber.Router) {
			convRoute.Post("list", controller.conversationList)
			convRoute.Post("", controller.start)
			convRoute.Route(":id", func(idRoute fiber.Router) {
				idRoute.Post("", controller.send)
				idRoute.Get("messages", controller.messages)
				idRoute.Put("archive", controller.archive)
			})
		})
	})
}

// attachmentOf converts the optional "attachment" form file, the caller closes it
func attachmentOf(c *controllers.BaseAPIController, ctx *fiber.Ctx) (*controllers.UploadedFile, *messaginghandler.AttachmentFile, error) {
	file, err := c.OpenFormFile(ctx, "attachment")
	if err != nil || file == nil {
		return nil, nil, err
	}
	return file, &messaginghandler.AttachmentFile{
		Name:        file.Name,
		Reader:      file.File,
		Size:        file.Size,
		ContentType: file.ContentType,
	}, nil
}

// @Summary Conversations
// @Tags Message
// @Description Conversations of the current user with unread counters
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 messageapimodels.ConversationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]messageapimodels.ConversationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/message/conversation/list [post]
func (c *messageApiController) conversationList(ctx *fiber.Ctx) error {
	return conversationList(&c.BaseAPIController, ctx)
}

func conversationList(c *controllers.BaseAPIController, ctx *fiber.Ctx) error {
	var payload messageapimodels.ConversationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	list, rowCount, err := messaginghandler.Instance.ListConversations(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load conversations")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Start conversation
// @Tags Message
// @Description Start a conversation with a candidate (JSON or multipart with "attachment")
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 messageapimodels.StartRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/message/conversation [post]
func (c *messageApiController) start(ctx *fiber.Ctx) error {
	var payload messageapimodels.StartRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	file, attachment, err := attachmentOf(&c.BaseAPIController, ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if file != nil {
		defer file.File.Close()
	}
	id, err := messaginghandler.Instance.StartConversation(ctx.UserContext(), middleware.GetUserID(ctx), payload, attachment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to start conversation")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Message sent successfully.", id))
}

// @Summary Send
// @Tags Message
// @Description Send a message in an own conversation, the candidate is notified
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "conversation ID"
// @Param	body body	 messageapimodels.SendRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/message/conversation/{id} [post]
func (c *messageApiController) send(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload messageapimodels.SendRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	file, attachment, err := attachmentOf(&c.BaseAPIController, ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if file != nil {
		defer file.File.Close()
	}
	msgID, err := messaginghandler.Instance.Send(ctx.UserContext(), middleware.GetUserID(ctx), id, payload.Body, attachment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to send message")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Message sent successfully.", msgID))
}

// @Summary Messages
// @Tags Message
// @Description Thread of the conversation, incoming messages are marked read
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "conversation ID"
// @Success 200 {object} apimodels.Response{data=[]messageapimodels.MessageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/message/conversation/{id}/messages [get]
func (c *messageApiController) messages(ctx *fiber.Ctx) error {
	return conversationMessages(&c.BaseAPIController, ctx)
}

func conversationMessages(c *controllers.BaseAPIController, ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	list, err := messaginghandler.Instance.Messages(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load messages")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Archive
// @Tags Message
// @Description Archive or restore a conversation
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "conversation ID"
// @Param	body body	 messageapimodels.ArchiveRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/message/conversation/{id}/archive [put]
func (c *messageApiController) archive(ctx *fiber.Ctx) error {
	return archiveConversation(&c.BaseAPIController, ctx)
}

func archiveConversation(c *controllers.BaseAPIController, ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload messageapimodels.ArchiveRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = messaginghandler.Instance.Archive(middleware.GetUserID(ctx), id, payload.Archived); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to archive conversation")
	}
	message := "Conversation restored."
	if payload.Archived {
		message = "Conversation archived."
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess(message, nil))
}

// @Summary Response metrics
// @Tags Message
// @Description Response time statistics of the current manager
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=messageapimodels.ResponseMetrics}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/message/metrics [get]
func (c *messageApiController) metrics(ctx *fiber.Ctx) error {
	result, err := messaginghandler.Instance.ResponseMetrics(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to calculate response metrics")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Attachment
// @Tags Message
// @Description Download a message attachment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "message ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/message/attachment/{id} [get]
func (c *messageApiController) attachment(ctx *fiber.Ctx) error {
	return messageAttachment(&c.BaseAPIController, ctx)
}

func messageAttachment(c *controllers.BaseAPIController, ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	body, fileName, err := messaginghandler.Instance.Attachment(ctx.UserContext(), middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load attachment")
	}
	return c.SendFile(ctx, body, fileName, "", false)
}
