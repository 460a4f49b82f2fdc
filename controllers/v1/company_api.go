package apiv1

import (
	"net/http"

	"campus-jobs-backend/controllers"
	companyhandler "campus-jobs-backend/lib/company"
	"campus-jobs-backend/middleware"
	apimodels "campus-jobs-backend/models/api"
	companyapimodels "campus-jobs-backend/models/api/company"
	"github.com/gofiber/fiber/v2"
)

type companyApiController struct {
	controllers.BaseAPIController
}

func InitCompanyApiRouters(app *fiber.App) {
	controller := companyApiController{}
	app.Route("company", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
		router.Get("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Post("logo", controller.uploadLogo)
			idRoute.Get("logo", controller.getLogo)
			idRoute.Route("manager", func(managerRoute fiber.Router) {
				managerRoute.Post("", controller.addManager)
				managerRoute.Delete(":user_id", controller.removeManager)
				managerRoute.Put(":user_id/primary", controller.setPrimary)
			})
		})
	})
}

// @Summary Managed companies
// @Tags Company
// @Description Companies managed by the current user
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]companyapimodels.CompanyView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/list [get]
func (c *companyApiController) list(ctx *fiber.Ctx) error {
	list, err := companyhandler.Instance.List(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load companies")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Get by ID
// @Tags Company
// @Description Company with its managers
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=companyapimodels.CompanyView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/{id} [get]
func (c *companyApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	item, err := companyhandler.Instance.Get(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load company")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(item))
}

// @Summary Update
// @Tags Company
// @Description Update company profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 companyapimodels.CompanyData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/{id} [put]
func (c *companyApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload companyapimodels.CompanyData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = companyhandler.Instance.Update(middleware.GetUserID(ctx), id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update company")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Company updated successfully.", nil))
}

// @Summary Add manager
// @Tags Company
// @Description Link a manager to the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param	body body	 companyapimodels.ManagerRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/{id}/manager [post]
func (c *companyApiController) addManager(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	var payload companyapimodels.ManagerRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendFail(ctx, err)
	}
	if err = companyhandler.Instance.AddManager(middleware.GetUserID(ctx), id, payload.UserID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to add manager")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Manager added successfully.", nil))
}

// @Summary Remove manager
// @Tags Company
// @Description Unlink a manager from the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   user_id        		path    string  				    	true         "manager ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/{id}/manager/{user_id} [delete]
func (c *companyApiController) removeManager(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	userID, err := c.GetParam(ctx, "user_id")
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = companyhandler.Instance.RemoveManager(middleware.GetUserID(ctx), id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to remove manager")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Manager removed successfully.", nil))
}

// @Summary Set primary manager
// @Tags Company
// @Description Make the manager the primary contact of the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   user_id        		path    string  				    	true         "manager ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/{id}/manager/{user_id}/primary [put]
func (c *companyApiController) setPrimary(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	userID, err := c.GetParam(ctx, "user_id")
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if err = companyhandler.Instance.SetPrimaryManager(middleware.GetUserID(ctx), id, userID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to set primary manager")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Primary manager updated.", nil))
}

// @Summary Upload logo
// @Tags Company
// @Description Upload company logo (multipart field "logo")
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   logo				formData	file	true	"logo image"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/{id}/logo [post]
func (c *companyApiController) uploadLogo(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	file, err := c.OpenFormFile(ctx, "logo")
	if err != nil {
		return c.SendFail(ctx, err)
	}
	if file == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewFieldError("logo", "logo file is required"))
	}
	defer file.File.Close()

	err = companyhandler.Instance.UploadLogo(ctx.UserContext(), middleware.GetUserID(ctx), id, file.Name, file.File, file.Size, file.ContentType)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to upload logo")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewSuccess("Logo uploaded successfully.", nil))
}

// @Summary Get logo
// @Tags Company
// @Description Company logo image
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {file} file
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/company/{id}/logo [get]
func (c *companyApiController) getLogo(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendFail(ctx, err)
	}
	body, err := companyhandler.Instance.GetLogo(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to load logo")
	}
	return c.SendFile(ctx, body, "logo", http.DetectContentType(body), true)
}
