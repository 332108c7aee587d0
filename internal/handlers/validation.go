package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// messages holds the form error texts keyed by "field.tag".
var messages = map[string]string{
	"name.notblank":      "Product name is required",
	"thumbnail.required": "Thumbnail is required",
	"price.gt":           "Price must be greater than 0",
	"quantity.gte":       "Quantity cannot be negative",
	"salePrice.gte":      "Sale price cannot be negative",
	"salePrice.ltfield":  "Sale price must be less than regular price",
	"gallery.max":        "Gallery can hold at most 5 images",
	"email.required":     "Email is required",
	"email.email":        "Please enter a valid email",
	"password.required":  "Password is required",
	"password.min":       "Password must be at least 6 characters",
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validationErrors maps each failing field to a readable message.
func validationErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["general"] = err.Error()
		return out
	}
	for _, e := range verrs {
		if msg, ok := messages[e.Field()+"."+e.Tag()]; ok {
			out[e.Field()] = msg
			continue
		}
		out[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return out
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  validationErrors(err),
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
