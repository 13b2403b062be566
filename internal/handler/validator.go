package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/flight-booking/internal/service"
	"github.com/iliyamo/flight-booking/internal/utils"
)

// Validator adapts go-playground/validator to echo.Validator.  Failures
// come back as a service validation error keyed by JSON field path.
// Calendar rules (future_date, past_date) compare dates in loc.
type Validator struct {
	v   *validator.Validate
	loc *time.Location
	now func() time.Time
}

// NewValidator builds the request validator.  loc is the search time
// zone; nil means UTC.
func NewValidator(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	cv := &Validator{v: validator.New(), loc: loc, now: time.Now}

	cv.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	cv.v.RegisterCustomTypeFunc(func(v reflect.Value) any {
		return v.Interface().(service.Date).Time
	}, service.Date{})
	cv.v.RegisterCustomTypeFunc(func(v reflect.Value) any {
		return v.Interface().(decimal.Decimal).InexactFloat64()
	}, decimal.Decimal{})

	// Registration only fails for empty tags or nil functions.
	_ = cv.v.RegisterValidation("notblank", validators.NotBlank)
	_ = cv.v.RegisterValidation("future_date", cv.futureDate)
	_ = cv.v.RegisterValidation("past_date", cv.pastDate)
	_ = cv.v.RegisterValidation("booking_reference", func(fl validator.FieldLevel) bool {
		return utils.IsBookingReference(fl.Field().String())
	})
	return cv
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return service.Validation(fields)
}

// today is the current calendar date in the validator's zone, expressed
// as midnight UTC like decoded service.Date values.
func (cv *Validator) today() time.Time {
	y, m, d := cv.now().In(cv.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (cv *Validator) futureDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && service.NewDate(t).After(cv.today())
}

func (cv *Validator) pastDate(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && service.NewDate(t).Before(cv.today())
}

// fieldPath drops the root struct name from the namespace, so nested
// fields read "passengerDetails.email".
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
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "future_date":
		return "must be a future date"
	case "past_date":
		return "must be a date in the past"
	case "booking_reference":
		return "must be 6 uppercase letters or digits"
	}
	return "is invalid"
}

// bind decodes the request body into dst and validates it.  Malformed
// bodies are reported as a validation error on "body".
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		msg := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg = fmt.Sprint(he.Message)
		}
		return service.Validation(map[string]string{"body": msg})
	}
	return c.Validate(dst)
}
