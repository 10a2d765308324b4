package api

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/service"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string               `json:"message"`
	Errors  []service.FieldError `json:"errors,omitempty"`
	Error   string               `json:"error,omitempty"` // debug mode only
}

var kindStatus = map[service.Kind]int{
	service.KindValidation: http.StatusBadRequest,
	service.KindAuth:       http.StatusUnauthorized,
	service.KindAuthz:      http.StatusForbidden,
	service.KindNotFound:   http.StatusNotFound,
	service.KindConflict:   http.StatusConflict,
	service.KindInternal:   http.StatusInternalServerError,
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Message: message})
}

// respondError maps a service error onto its HTTP status. Anything that is not
// a *service.Error is logged and reported as a 500; its text is only exposed
// outside release mode.
func respondError(c *gin.Context, err error) {
	var se *service.Error
	if errors.As(err, &se) && se.Kind != service.KindInternal {
		c.AbortWithStatusJSON(kindStatus[se.Kind], ErrorResponse{Message: se.Message, Errors: se.Fields})
		return
	}

	log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	resp := ErrorResponse{Message: "Server error"}
	if se != nil {
		resp.Message = se.Message
	}
	if gin.Mode() != gin.ReleaseMode {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}

// bindJSON binds the body into obj and writes a 400 with per-field details on
// failure. It reports whether the handler may continue.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	respondBindError(c, err)
	return false
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respondBindError(c, err)
	return false
}

func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]service.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, service.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: "Validation failed", Errors: fields})
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Errors:  []service.FieldError{{Field: typeErr.Field, Message: "has the wrong type"}},
		})
		return
	}
	abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "weekday":
		return "must be a weekday name"
	case "gt", "gte", "lt", "lte":
		return "is out of range"
	}
	return "is invalid"
}

// RegisterValidators installs the JSON field naming and custom tags on gin's
// validator engine. Safe to call more than once.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return domain.Weekday(fl.Field().String()).Valid()
	})
}
