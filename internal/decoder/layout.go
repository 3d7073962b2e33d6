package decoder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var ErrInvalidLayout = errors.New("invalid frame layout")

// Layout holds the byte offset of every field inside the 8-byte frame.
// Multi-byte fields start at their offset and run little-endian upwards.
type Layout struct {
	Status      int `name:"status" validate:"min=0,max=7"`
	Battery     int `name:"battery" validate:"min=0,max=7"`
	Temperature int `name:"temperature" validate:"min=0,max=7"`
	Time        int `name:"time" validate:"min=0,max=6"`   // 2 bytes
	EventCount  int `name:"events" validate:"min=0,max=5"` // 3 bytes
}

// DefaultLayout is the layout emitted by the stock sensor firmware:
// status 0, battery 1, temperature 2, time 3-4, event count 5-7.
func DefaultLayout() Layout {
	return Layout{
		Status:      0,
		Battery:     1,
		Temperature: 2,
		Time:        3,
		EventCount:  5,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

func layoutValidator() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		translator, _ = uni.GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("name"); name != "" {
				return name
			}
			return fld.Name
		})
		_ = en_translations.RegisterDefaultTranslations(validate, translator)
	})
	return validate, translator
}

// Validate checks that every field fits inside the frame.
func (l Layout) Validate() error {
	v, trans := layoutValidator()
	err := v.Struct(l)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(trans))
	}
	return fmt.Errorf("%w: %s", ErrInvalidLayout, strings.Join(msgs, "; "))
}
