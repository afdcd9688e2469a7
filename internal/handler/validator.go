package handler

import (
	"fmt"
	"reflect"
	"strings"

	"mindful_server/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// Trans renders request binding errors for clients.
var Trans ut.Translator

// modelTrans renders errors raised by the model hooks. A translator holds one
// text per tag, so each validator gets its own.
var modelTrans ut.Translator

// InitTrans installs json field names and locale messages on gin's binding
// validator and on the validator used by the model hooks, so request and
// persistence errors read the same. locale is "en" or "zh"; anything else
// falls back to English.
func InitTrans(locale string) error {
	if binding.Validator == nil {
		binding.Validator = &defaultValidator{validator: validator.New()}
	}
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	engine.RegisterTagNameFunc(jsonTagName)

	bindTrans, err := registerTranslations(engine, locale)
	if err != nil {
		return err
	}
	hookTrans, err := registerTranslations(model.Validator(), locale)
	if err != nil {
		return err
	}
	Trans, modelTrans = bindTrans, hookTrans
	return nil
}

func registerTranslations(v *validator.Validate, locale string) (ut.Translator, error) {
	enT := en.New()
	uni := ut.New(enT, enT, zh.New())
	trans, ok := uni.GetTranslator(locale)
	if !ok {
		trans, _ = uni.GetTranslator("en")
		locale = "en"
	}

	var err error
	if locale == "zh" {
		err = zh_translations.RegisterDefaultTranslations(v, trans)
	} else {
		err = en_translations.RegisterDefaultTranslations(v, trans)
	}
	if err != nil {
		return nil, fmt.Errorf("register %s translations: %w", locale, err)
	}
	return trans, nil
}

func jsonTagName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "" {
		tag = fld.Tag.Get("form")
	}
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// translate turns validation errors into field -> message, keyed by the
// field path without the top-level struct name.
func translate(errs validator.ValidationErrors, trans ut.Translator) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		ns := fe.Namespace()
		key := ns[strings.Index(ns, ".")+1:]
		if trans != nil {
			details[key] = fe.Translate(trans)
		} else {
			details[key] = fe.Error()
		}
	}
	return details
}

// defaultValidator lets InitTrans run when gin has no validator configured.
type defaultValidator struct {
	validator *validator.Validate
}

func (v *defaultValidator) ValidateStruct(obj any) error {
	if kindOfData(obj) != reflect.Struct {
		return nil
	}
	return v.validator.Struct(obj)
}

func (v *defaultValidator) Engine() any {
	return v.validator
}

func kindOfData(data any) reflect.Kind {
	value := reflect.ValueOf(data)
	kind := value.Kind()
	if kind == reflect.Ptr {
		kind = value.Elem().Kind()
	}
	return kind
}
