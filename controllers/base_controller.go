package controllers

import (
	"mime"
	"mime/multipart"
	"strings"

	"campus-jobs-backend/middleware"
	"campus-jobs-backend/models"
	apimodels "campus-jobs-backend/models/api"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("request parsing failed")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetParam(ctx, "id")
}

func (c *BaseAPIController) GetParam(ctx *fiber.Ctx, name string) (string, error) {
	value := ctx.Params(name)
	if value == "" {
		return "", errors.Errorf("%s is not specified", name)
	}
	return value, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendFail writes a validation failure, field errors carry the field name in data
func (c *BaseAPIController) SendFail(ctx *fiber.Ctx, err error) error {
	var validationErr models.ValidationError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewFieldError(validationErr.Field, validationErr.Message))
	}
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
}

// SendError maps a handler error to the response. Unexpected errors are logged and
// answered with the generic message.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	var validationErr models.ValidationError
	var policyErr models.PolicyError
	switch {
	case errors.Is(err, models.ErrAccessDenied):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.As(err, &validationErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewFieldError(validationErr.Field, validationErr.Message))
	case errors.As(err, &policyErr):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(policyErr.Message))
	}
	logger.WithError(err).Error(message)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(message))
}

type UploadedFile struct {
	Name        string
	File        multipart.File
	Size        int64
	ContentType string
}

// OpenFormFile opens an optional multipart file, nil when the request carries none.
// The caller closes the returned file.
func (c *BaseAPIController) OpenFormFile(ctx *fiber.Ctx, name string) (*UploadedFile, error) {
	if !strings.HasPrefix(string(ctx.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	header, err := ctx.FormFile(name)
	if err != nil {
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}
	return &UploadedFile{
		Name:        header.Filename,
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get(fiber.HeaderContentType),
	}, nil
}

// SendFile writes a downloadable body
func (c *BaseAPIController) SendFile(ctx *fiber.Ctx, body []byte, fileName, contentType string, inline bool) error {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	if contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	header := mime.FormatMediaType(disposition, map[string]string{"filename": fileName})
	if header == "" {
		header = disposition
	}
	ctx.Set(fiber.HeaderContentDisposition, header)
	return ctx.Status(fiber.StatusOK).Send(body)
}
