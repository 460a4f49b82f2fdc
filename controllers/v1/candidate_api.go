package apiv1

import (
	"campus-jobs-backend/controllers"
	applicationhandler "campus-jobs-backend/lib/application"
	jobhandler "campus-jobs-backend/lib/job"
	messaginghandler "campus-jobs-backend/lib/messaging"
	"campus-jobs-backend/middleware"
	apimodels "campus-jobs-backend/models/api"
	applicationapimodels "campus-jobs-backend/models/api/application"
	jobapimodels "campus-jobs-backend/models/api/job"
	messageapimodels "campus-jobs-backend/models/api/message"
	"github.com/gofiber/fiber/v2"
)

type candidateApiController struct {
	controllers.BaseAPIController
}

func InitCandidateApiRouters(app *fiber.App) {
	controller := candidateApiController{}
	app.Route("candidate", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Route("job", func(jobRoute fiber.Router) {
			jobRoute.Post("list", controller.jobList)
			jobRoute.Get(":id", controller.jobGet)
			jobRoute.Post(":id/apply", controller.apply)
		})
		router.Post("application/list", controller.applicationList)
		router.Route("message", func(msgRoute fiber.Router) {
			msgRoute.Get("attachment/:id", controller.attachment)
			msgRoute.Post("conversation/list", controller.conversationList)
			msgRoute.Route("conversation/:id", func(idRoute fiber.Router) {
				idRoute.Post("", controller.reply)
				idRoute.Get("messages", controller.messages)
				idRoute.Put("archive", controller.archive)
			})
		})
	})
}

// @Summary Open jobs
// @Tags Candidate
// @Description Active jobs, salary shown only when the company allows it
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/job/list [post]
func (c *candidateApiController) jobList(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	list, rowCount, err := jobhandler.Instance.PublicList(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load jobs")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Job
// @Tags Candidate
// @Description Active job details
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/job/{id} [get]
func (c *candidateApiController) jobGet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	item, err := jobhandler.Instance.PublicGet(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Apply
// @Tags Candidate
// @Description Apply to an active job (multipart: cover_letter, optional resume pdf/doc/docx up to 5MB)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Param   cover_letter		formData	string	false	"cover letter"
// @Param   resume				formData	file	false	"resume"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/job/{id}/apply [post]
func (c *candidateApiController) apply(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload applicationapimodels.SubmitRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	file, err := c.OpenFormFile(ctx, "resume")
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var resume *applicationhandler.ResumeFile
	if file != nil {
		defer file.File.Close()
		resume = &applicationhandler.ResumeFile{
			Name:        file.Name,
			Reader:      file.File,
			Size:        file.Size,
			ContentType: file.ContentType,
		}
	}
	id, err := applicationhandler.Instance.Submit(ctx.UserContext(), middleware.GetUserID(ctx), jobID, payload, resume)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to submit application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Application submitted successfully.", id))
}

// @Summary My applications
// @Tags Candidate
// @Description Applications of the current candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ApplicationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/application/list [post]
func (c *candidateApiController) applicationList(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	list, rowCount, err := applicationhandler.Instance.CandidateList(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Conversations
// @Tags Candidate
// @Description Conversations of the current candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 messageapimodels.ConversationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]messageapimodels.ConversationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/message/conversation/list [post]
func (c *candidateApiController) conversationList(ctx *fiber.Ctx) error {
	return conversationList(&c.BaseAPIController, ctx)
}

// @Summary Reply
// @Tags Candidate
// @Description Reply in an own conversation, the manager is notified
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "conversation ID"
// @Param	body body	 messageapimodels.SendRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/message/conversation/{id} [post]
func (c *candidateApiController) reply(ctx *fiber.Ctx) error {
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
	msgID, err := messaginghandler.Instance.Reply(ctx.UserContext(), middleware.GetUserID(ctx), id, payload.Body, attachment)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to send reply")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Reply sent successfully.", msgID))
}

// @Summary Messages
// @Tags Candidate
// @Description Thread of the conversation, incoming messages are marked read
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "conversation ID"
// @Success 200 {object} apimodels.Response{data=[]messageapimodels.MessageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/message/conversation/{id}/messages [get]
func (c *candidateApiController) messages(ctx *fiber.Ctx) error {
	return conversationMessages(&c.BaseAPIController, ctx)
}

// @Summary Archive
// @Tags Candidate
// @Description Archive or restore a conversation
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "conversation ID"
// @Param	body body	 messageapimodels.ArchiveRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/message/conversation/{id}/archive [put]
func (c *candidateApiController) archive(ctx *fiber.Ctx) error {
	return archiveConversation(&c.BaseAPIController, ctx)
}

// @Summary Attachment
// @Tags Candidate
// @Description Download a message attachment
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "message ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidate/message/attachment/{id} [get]
func (c *candidateApiController) attachment(ctx *fiber.Ctx) error {
	return messageAttachment(&c.BaseAPIController, ctx)
}
