package person

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	domain "github.com/mohammadpnp/person-service/internal/domain/person"
	"github.com/shopspring/decimal"
)

var peselPattern = regexp.MustCompile(`^\d{11}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("pesel", func(fl validator.FieldLevel) bool {
		return peselPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("lettersonly", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, r := range value {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		return value != ""
	})

	v.RegisterStructValidation(validateCreatePersonVariant, CreatePersonCommand{})
	v.RegisterStructValidation(validateAddPositionSalary, AddPositionInput{})
	return v
}

// validateCreatePersonVariant checks the fields only one person type carries.
func validateCreatePersonVariant(sl validator.StructLevel) {
	cmd := sl.Current().Interface().(CreatePersonCommand)

	kind, err := domain.ParseKind(cmd.Type)
	if err != nil {
		if strings.TrimSpace(cmd.Type) != "" {
			sl.ReportError(cmd.Type, "type", "Type", "oneof", "student employee retiree")
		}
		return
	}

	switch kind {
	case domain.KindEmployee:
		if strings.TrimSpace(cmd.EmploymentStartDate) == "" {
			sl.ReportError(cmd.EmploymentStartDate, "employmentStartDate", "EmploymentStartDate", "required", "")
		} else if _, err := domain.ParseDate(cmd.EmploymentStartDate); err != nil {
			sl.ReportError(cmd.EmploymentStartDate, "employmentStartDate", "EmploymentStartDate", "datetime", domain.DateLayout)
		}
		if cmd.CurrentPositionID <= 0 {
			sl.ReportError(cmd.CurrentPositionID, "currentPositionId", "CurrentPositionID", "gt", "0")
		}
		reportNegativeAmount(sl, cmd.CurrentSalary, "currentSalary", "CurrentSalary")
	case domain.KindStudent:
		if cmd.UniversityNameID <= 0 {
			sl.ReportError(cmd.UniversityNameID, "universityNameId", "UniversityNameID", "gt", "0")
		}
		if cmd.EnrollmentYear <= 0 {
			sl.ReportError(cmd.EnrollmentYear, "enrollmentYear", "EnrollmentYear", "gt", "0")
		}
		if cmd.FieldOfStudyID <= 0 {
			sl.ReportError(cmd.FieldOfStudyID, "fieldOfStudyId", "FieldOfStudyID", "gt", "0")
		}
		reportNegativeAmount(sl, cmd.Scholarship, "scholarship", "Scholarship")
	case domain.KindRetiree:
		reportNegativeAmount(sl, cmd.Pension, "pension", "Pension")
		if cmd.YearsOfWork < 0 {
			sl.ReportError(cmd.YearsOfWork, "yearsOfWork", "YearsOfWork", "gte", "0")
		}
	}
}

func validateAddPositionSalary(sl validator.StructLevel) {
	in := sl.Current().Interface().(AddPositionInput)
	reportNegativeAmount(sl, in.Salary, "salary", "Salary")
}

func reportNegativeAmount(sl validator.StructLevel, amount *decimal.Decimal, field, structField string) {
	if amount == nil {
		sl.ReportError(amount, field, structField, "required", "")
		return
	}
	if amount.IsNegative() {
		sl.ReportError(amount.String(), field, structField, "gte", "0")
	}
}

func validateStruct(value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fmt.Sprintf("field: %s / rejectedValue: '%v' / message: %s",
			fe.Field(), rejectedValue(fe.Value()), describeRule(fe)))
	}
	return &ValidationError{Messages: messages}
}

func rejectedValue(value any) any {
	if value == nil {
		return "null"
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "null"
		}
		return rv.Elem().Interface()
	}
	return value
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "email":
		return "must be a well-formed email address"
	case "pesel":
		return "must consist of 11 digits"
	case "lettersonly":
		return "must contain letters only"
	case "datetime":
		return "must be a date in format " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
