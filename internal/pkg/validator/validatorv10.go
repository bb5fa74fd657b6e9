package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/otpbridge/internal/pkg/strcase"
)

const (
	minPhoneDigits = 3
	maxPhoneDigits = 20
)

var (
	// optional leading +, digits with common separators, starting and ending on a digit
	rePhone = regexp.MustCompile(`^\+?[0-9](?:[0-9 .()\-]*[0-9])?$`)
	reOTP   = regexp.MustCompile(`^[0-9]{6}$`)
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are field names in snake_case to match the JSON request bodies.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerCustomRules(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	errV10 := make(V10ValidationError, len(validateErrs))
	for _, fe := range validateErrs {
		errV10[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
	}

	return errV10
}

func isPhone(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if !rePhone.MatchString(p) {
		return false
	}

	digits := 0
	for _, r := range p {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}

func isOTP(fl validator.FieldLevel) bool {
	return reOTP.MatchString(fl.Field().String())
}

func registerCustomRules(validate *validator.Validate, enTrans ut.Translator) error {
	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{tag: "phone", fn: isPhone, message: "{0} must be a valid phone number"},
		{tag: "otp", fn: isOTP, message: "{0} must be exactly 6 digits"},
	}

	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return err
		}

		message := rule.message
		if err := validate.RegisterTranslation(rule.tag, enTrans,
			func(t ut.Translator) error {
				return t.Add(rule.tag, message, false)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(fe.Tag(), fe.Field())
				if err != nil {
					slog.Warn("warning: error translating", "tag", fe.Tag(), "error", err)
					return fe.Error()
				}
				return msg
			},
		); err != nil {
			return err
		}
	}

	return nil
}
