// Package validate provides the shared struct validator. Messages are in
// English and name fields by their json tags.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Service holds the validator singleton and its translator.
type Service struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Service
)

// Get returns the validator singleton, initializing on first use.
func Get() *Service {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		svc = &Service{Validator: v, Translator: trans}
	})
	return svc
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every field that failed validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Struct validates v. Rule failures come back as *Error with translated
// messages; anything else, such as a non-struct argument, is returned as is.
func Struct(v interface{}) error {
	s := Get()
	err := s.Validator.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, len(verrs))}
	for i, fe := range verrs {
		out.Fields[i] = FieldError{Field: fe.Field(), Message: fe.Translate(s.Translator)}
	}
	return out
}

// RegisterStructRule adds a cross-field rule for the given struct types. fn
// reports failures through sl.ReportError with tag, and message is the English
// text for tag with {0} standing for the reported field. Call it from an init
// function, before any validation runs.
func RegisterStructRule(tag, message string, fn validator.StructLevelFunc, types ...interface{}) {
	s := Get()
	s.Validator.RegisterStructValidation(fn, types...)
	_ = s.Validator.RegisterTranslation(tag, s.Translator,
		func(trans ut.Translator) error {
			return trans.Add(tag, message, true)
		},
		func(trans ut.Translator, fe validator.FieldError) string {
			msg, err := trans.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		})
}
