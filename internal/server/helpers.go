package server

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"retroexchange/internal/models"
)

var validate = validator.New()

// parseID extracts and validates a numeric path parameter. On failure it has
// already written the error response; callers just return nil.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respErr := models.NewValidationError("Invalid ID in path", map[string]any{param: "must be a positive integer"})
		_ = models.RespondWithError(c, fiber.StatusBadRequest, respErr)
		return 0, respErr
	}
	return uint(id), nil
}

// parseBody decodes and validates a JSON request body. On failure it has
// already written the error response.
func (s *Server) parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		respErr := models.NewValidationError("Invalid request body", nil)
		_ = models.RespondWithError(c, fiber.StatusBadRequest, respErr)
		return respErr
	}
	if err := validate.Struct(dst); err != nil {
		respErr := models.NewValidationError("Request validation failed", validationDetails(err))
		_ = models.RespondWithError(c, fiber.StatusUnprocessableEntity, respErr)
		return respErr
	}
	return nil
}

// validationDetails converts validator errors into a field -> constraint map
// for the error envelope.
func validationDetails(err error) map[string]any {
	details := map[string]any{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			constraint := fe.Tag()
			if fe.Param() != "" {
				constraint += "=" + fe.Param()
			}
			details[fe.Field()] = "failed constraint: " + constraint
		}
	}
	return details
}

// respondRepoError maps repository errors onto HTTP statuses.
func respondRepoError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "EMAIL_IN_USE":
			return models.RespondWithError(c, fiber.StatusConflict, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// queryInt parses an optional integer query parameter. The bool reports
// whether the parameter was supplied; a supplied non-integer is an error.
func queryInt(c *fiber.Ctx, name string) (int, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, errors.New(name + " must be an integer")
	}
	return v, true, nil
}
