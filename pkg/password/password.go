// Package password encapsula el almacenamiento de credenciales. El núcleo
// recibe contraseñas en texto y delega aquí el hash; el algoritmo concreto
// (bcrypt) es opaco para los casos de uso.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher contrato mínimo del colaborador de credenciales.
type Hasher interface {
	Hash(plano string) (string, error)
	Compare(hash, plano string) error
}

// BcryptHasher implementación sobre golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	Cost int // 0 = bcrypt.DefaultCost
}

// NewBcryptHasher construye el hasher con el coste por defecto.
func NewBcryptHasher() BcryptHasher { return BcryptHasher{} }

// Hash genera el hash bcrypt de la contraseña en texto.
func (h BcryptHasher) Hash(plano string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plano), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Compare devuelve error si la contraseña no corresponde al hash.
func (h BcryptHasher) Compare(hash, plano string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plano))
}
