package http

import "github.com/go-playground/validator/v10"

// validate aplica las etiquetas `validate:` de los DTOs en el borde HTTP.
var validate = validator.New(validator.WithRequiredStructEnabled())
