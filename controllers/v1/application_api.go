package apiv1

import (
	"fmt"
	"time"

	"campus-jobs-backend/controllers"
	applicationhandler "campus-jobs-backend/lib/application"
	"campus-jobs-backend/middleware"
	apimodels "campus-jobs-backend/models/api"
	applicationapimodels "campus-jobs-backend/models/api/application"
	"github.com/gofiber/fiber/v2"
)

const degradedStageMessage = "Stage updated, but the candidate could not be notified."

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Post("list", controller.list)
		router.Post("export_xls", controller.exportXls)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("status", controller.updateStatus)
			idRoute.Put("stage", controller.updateStage)
			idRoute.Put("accept", controller.accept)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("favorite", controller.favorite)
			idRoute.Put("note", controller.note)
			idRoute.Get("pdf", controller.pdf)
			idRoute.Get("resume", controller.resume)
		})
	})
}

// @Summary List
// @Tags Application
// @Description Applications to jobs of the managed companies
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ApplicationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/list [post]
func (c *applicationApiController) list(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	list, rowCount, err := applicationhandler.Instance.List(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Export to Excel
// @Tags Application
// @Description Filtered application list as xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 applicationapimodels.ApplicationFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/export_xls [post]
func (c *applicationApiController) exportXls(ctx *fiber.Ctx) error {
	var payload applicationapimodels.ApplicationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	data, err := applicationhandler.Instance.ExportXls(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export applications")
	}
	fileName := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("2006_01_02"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Get by ID
// @Tags Application
// @Description Application with stage history and events
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationViewExt}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	item, err := applicationhandler.Instance.Get(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Update status
// @Tags Application
// @Description Change the application status and notify the candidate
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 applicationapimodels.StatusRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/status [put]
func (c *applicationApiController) updateStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload applicationapimodels.StatusRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = applicationhandler.Instance.UpdateStatus(middleware.GetUserID(ctx), id, payload.StatusID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update application status")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Application status updated successfully.", nil))
}

// @Summary Update stage
// @Tags Application
// @Description Move the application to a hiring stage, a history row is always written
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 applicationapimodels.StageRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/stage [put]
func (c *applicationApiController) updateStage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload applicationapimodels.StageRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendFail(ctx, err)
	}
	notified, err := applicationhandler.Instance.UpdateStage(middleware.GetUserID(ctx), id, payload.StageID, payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update application stage")
	}
	if !notified {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess(degradedStageMessage, nil))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Application stage updated successfully.", nil))
}

// @Summary Accept
// @Tags Application
// @Description Accept the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/accept [put]
func (c *applicationApiController) accept(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = applicationhandler.Instance.Accept(ctx.UserContext(), middleware.GetUserID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to accept application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Application accepted successfully.", nil))
}

// @Summary Reject
// @Tags Application
// @Description Reject the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/reject [put]
func (c *applicationApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = applicationhandler.Instance.Reject(ctx.UserContext(), middleware.GetUserID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to reject application")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Application rejected successfully.", nil))
}

// @Summary Toggle favorite
// @Tags Application
// @Description Mark or unmark the application as favorite
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=bool}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/favorite [put]
func (c *applicationApiController) favorite(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	isFavorite, err := applicationhandler.Instance.ToggleFavorite(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update favorite flag")
	}
	message := "Application removed from favorites."
	if isFavorite {
		message = "Application added to favorites."
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess(message, isFavorite))
}

// @Summary Update notes
// @Tags Application
// @Description Manager notes of the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 applicationapimodels.NotesRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/note [put]
func (c *applicationApiController) note(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload applicationapimodels.NotesRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = applicationhandler.Instance.UpdateNotes(middleware.GetUserID(ctx), id, payload.Notes); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update notes")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Notes updated successfully.", nil))
}

// @Summary Export to PDF
// @Tags Application
// @Description Application summary with stage history
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/pdf [get]
func (c *applicationApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	body, err := applicationhandler.Instance.ExportPdf(ctx.UserContext(), middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build application summary")
	}
	return c.SendFile(ctx, body, fmt.Sprintf("application_%s.pdf", id), "application/pdf", false)
}

// @Summary Resume
// @Tags Application
// @Description Download the resume attached to the application
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/resume [get]
func (c *applicationApiController) resume(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	body, fileName, err := applicationhandler.Instance.GetResume(ctx.UserContext(), middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load resume")
	}
	return c.SendFile(ctx, body, fileName, "", false)
}
