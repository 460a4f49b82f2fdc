package apiv1

import (
	"campus-jobs-backend/controllers"
	jobhandler "campus-jobs-backend/lib/job"
	"campus-jobs-backend/middleware"
	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	jobapimodels "campus-jobs-backend/models/api/job"
	"github.com/gofiber/fiber/v2"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app *fiber.App) {
	controller := jobApiController{}
	app.Route("job", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Put("toggle_active", controller.toggleActive)
			idRoute.Route("stage", func(stageRoute fiber.Router) {
				stageRoute.Get("list", controller.stageList)
				stageRoute.Put("", controller.stageSet)
				stageRoute.Put("change_order", controller.stageChangeOrder)
			})
		})
	})
}

// @Summary List
// @Tags Job
// @Description Jobs of the companies managed by the current user
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/list [post]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	list, rowCount, err := jobhandler.Instance.List(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load jobs")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create
// @Tags Job
// @Description Create a job, active jobs notify candidates
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	id, err := jobhandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Job created successfully.", id))
}

// @Summary Get by ID
// @Tags Job
// @Description Job with its hiring pipeline
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	item, err := jobhandler.Instance.Get(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Update
// @Tags Job
// @Description Update a job, activation notifies candidates
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 jobapimodels.JobData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id} [put]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload jobapimodels.JobData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = jobhandler.Instance.Update(middleware.GetUserID(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Job updated successfully.", nil))
}

// @Summary Delete
// @Tags Job
// @Description Delete a job without applications
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id} [delete]
func (c *jobApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = jobhandler.Instance.Delete(middleware.GetUserID(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete job")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Job deleted successfully.", nil))
}

// @Summary Toggle active
// @Tags Job
// @Description Switch the job between active and closed
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id}/toggle_active [put]
func (c *jobApiController) toggleActive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	status, err := jobhandler.Instance.ToggleActive(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to change job status")
	}
	message := "Job closed successfully."
	if status == models.JobStatusActive {
		message = "Job activated successfully."
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess(message, status))
}

// @Summary Hiring stages
// @Tags Job
// @Description Ordered hiring pipeline of the job
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.HiringStageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id}/stage/list [get]
func (c *jobApiController) stageList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	list, err := jobhandler.Instance.StageList(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load hiring stages")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Set hiring stages
// @Tags Job
// @Description Replace the hiring pipeline of the job
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 jobapimodels.StageSetRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id}/stage [put]
func (c *jobApiController) stageSet(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload jobapimodels.StageSetRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = jobhandler.Instance.StageSet(middleware.GetUserID(ctx), id, payload.StageIDs); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update hiring stages")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Hiring stages updated.", nil))
}

// @Summary Reorder hiring stage
// @Tags Job
// @Description Move one stage to a new position
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 jobapimodels.StageOrderRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/job/{id}/stage/change_order [put]
func (c *jobApiController) stageChangeOrder(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload jobapimodels.StageOrderRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendFail(ctx, err)
	}
	err = jobhandler.Instance.StageChangeOrder(middleware.GetUserID(ctx), id, payload.StageID, payload.NewOrder)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to reorder hiring stages")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Hiring stages reordered.", nil))
}
