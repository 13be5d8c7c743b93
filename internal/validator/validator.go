package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/stemsi/quizxmentor-backend/internal/model"
)

// tagPasswordBytes caps a password at the bcrypt input limit. Multibyte
// characters count once per byte.
const tagPasswordBytes = "password_bytes"

var (
	// trans is the singleton English translator for validation errors.
	trans ut.Translator
	once  sync.Once
)

// Setup registers the validator with English translations on Gin's binding
// engine. Safe to call more than once.
func Setup() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		// Use JSON tag name for field names in error messages.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation(tagPasswordBytes, func(fl govalidator.FieldLevel) bool {
			return len(fl.Field().String()) <= model.MaxPasswordBytes
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		_ = v.RegisterTranslation(tagPasswordBytes, trans,
			func(ut ut.Translator) error {
				return ut.Add(tagPasswordBytes, "{0} must be at most {1} bytes long", true)
			},
			func(ut ut.Translator, fe govalidator.FieldError) string {
				msg, _ := ut.T(tagPasswordBytes, fe.Field(), strconv.Itoa(model.MaxPasswordBytes))
				return msg
			},
		)
	})
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name to human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(trans)
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// Credentials checks an email/password pair against the rules of the
// registration endpoint, for callers outside HTTP.
func Credentials(email, password string) map[string]string {
	Setup()
	req := model.CredentialsRequest{Email: email, Password: password}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
