package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/trivima/assetstore/internal/domain/model"
)

var registerOnce sync.Once

// RegisterValidators adds the domain enum validators to gin's validator
// engine and reports fields by their JSON names. It is safe to call more
// than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("discounttype", func(fl validator.FieldLevel) bool {
			return model.DiscountType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return model.OrderStatus(fl.Field().String()).Valid()
		})
	})
}

// BindingMessage turns a bind error into a message fit for the client.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please enter a valid email"
	case "min":
		if fe.Field() == "password" {
			return "Please enter a strong password"
		}
	}
	return fe.Field() + " is invalid"
}
