// Package options reads and validates player options files.
package options

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nathoo/apworld/types"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance reporting yaml key names.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// Default returns the default options for a game.
func Default(game string) types.Options {
	return types.Options{
		Game:       game,
		Objective:  types.ObjectiveCampaign,
		GoalZone:   types.GoalRandom,
		ZoneQuests: true,
		Wayshrines: true,
		SkillSize:  5,
	}
}

// Load reads a YAML options file layered over the defaults.
func Load(path string) (types.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Options{}, fmt.Errorf("reading options: %w", err)
	}
	opts, err := Parse(data)
	if err != nil {
		return types.Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Parse decodes YAML options layered over the defaults and validates them.
// Unknown keys are rejected.
func Parse(data []byte) (types.Options, error) {
	opts := Default("")
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return types.Options{}, fmt.Errorf("parsing options: %w", err)
	}
	if err := Validate(opts); err != nil {
		return types.Options{}, err
	}
	return opts, nil
}

// Validate checks options against their struct tags.
func Validate(opts types.Options) error {
	return formatValidationError(validate.Struct(opts))
}

// formatValidationError turns validator errors into one message per field.
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: field is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, param))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: must not exceed %s", field, param))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s], got %q", field, param, fmt.Sprint(e.Value())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: validation failed (%s)", field, e.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
