// Package validation provides input validation for module identifiers and
// configuration structs.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type AppConfig struct {
//	    Listen string `validate:"required"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New().
//	    Identifier("module", name).
//	    OneOf("environment", env, []string{"development", "production"})
//	err := v.Validate()
package validation
