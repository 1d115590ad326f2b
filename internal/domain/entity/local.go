package entity

import "time"

// Local representa una sede de negocio. Los usuarios lo referencian por ID
// (relación débil): borrar un usuario nunca borra un local ni al revés.
type Local struct {
	ID        string
	Nombre    string
	Direccion string
	Telefono  string
	Email     string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
