package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/rs/zerolog"
)

var validate = newValidator()

// newValidator reporta los campos con el nombre del tag json para que details coincida con el body.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindBody parsea el JSON del request en out y corre las validaciones de struct.
// Retorna nil si el body es válido; si no, la respuesta 400 a devolver.
func bindBody(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	return validateStruct(out)
}

// bindParams exige que los parámetros de ruta sean UUID; así un id mal formado no llega a la base.
func bindParams(c *fiber.Ctx, names ...string) *dto.ErrorResponse {
	var details map[string]string
	for _, n := range names {
		if err := validate.Var(c.Params(n), "required,uuid"); err != nil {
			if details == nil {
				details = make(map[string]string, len(names))
			}
			details[n] = "uuid"
		}
	}
	if details == nil {
		return nil
	}
	return &dto.ErrorResponse{Code: "VALIDATION", Message: "parámetro de ruta inválido", Details: details}
}

// bindPage lee limit/offset del query string.
func bindPage(c *fiber.Ctx) (dto.PageRequest, *dto.ErrorResponse) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, &dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"}
	}
	page.DefaultPage()
	return page, validateStruct(&page)
}

func validateStruct(out any) *dto.ErrorResponse {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fieldPath(fe)] = fe.Tag()
	}
	return &dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: details}
}

// fieldPath quita el nombre del struct raíz: "StockMovementRequest.lines[0].quantity" → "lines[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// writeError traduce errores de dominio al código HTTP y cuerpo de error del API.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, body := errorResponse(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusUnprocessableEntity, "VALIDATION"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrNotReady):
		status, code = fiber.StatusServiceUnavailable, "NOT_READY"
	}
	if status == fiber.StatusInternalServerError {
		return status, dto.ErrorResponse{Code: code, Message: "error interno"}
	}

	body := dto.ErrorResponse{Code: code, Message: err.Error()}
	var rule *domain.RuleError
	if errors.As(err, &rule) {
		body.Message = rule.Message
		if rule.Field != "" {
			body.Details = map[string]string{rule.Field: rule.Message}
		}
	}
	return status, body
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: what + " no encontrado"})
}
