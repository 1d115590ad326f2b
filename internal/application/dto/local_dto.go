package dto

import "time"

// CreateLocalRequest entrada para registrar una sede.
type CreateLocalRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=1,max=200"`
	Direccion string `json:"direccion" validate:"required,max=300"`
	Telefono  string `json:"telefono" validate:"omitempty,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// LocalResponse salida de un local.
type LocalResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LocalListResponse listado paginado de locales.
type LocalListResponse struct {
	Locales    []LocalResponse `json:"locales"`
	Pagination Pagination      `json:"pagination"`
}
