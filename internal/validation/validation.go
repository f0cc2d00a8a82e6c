package validation

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/fhuszti/resizer-ms-go/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// decodable lists the image types the optimiser can read.
var decodable = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
	"image/bmp":  {},
	"image/tiff": {},
}

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("preset", func(fl validator.FieldLevel) bool {
		_, ok := model.FindPreset(fl.Field().String())
		return ok
	})
	_ = validate.RegisterValidation("imagemime", func(fl validator.FieldLevel) bool {
		return IsDecodableImage(fl.Field().String())
	})
}

// IsDecodableImage reports whether mimeType (parameters allowed) names a
// supported image type.
func IsDecodableImage(mimeType string) bool {
	base := strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
	_, ok := decodable[strings.ToLower(base)]
	return ok
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsMap := make(map[string]string)
	for _, fieldErr := range validationErrs.(validator.ValidationErrors) {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
