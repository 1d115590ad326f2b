package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/admin-locales/pkg/password"
)

func TestBcryptHasher_HashYCompare(t *testing.T) {
	h := password.NewBcryptHasher()

	hash, err := h.Hash("mi-contraseña-segura")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "mi-contraseña-segura", hash, "el hash nunca debe ser el texto plano")

	assert.NoError(t, h.Compare(hash, "mi-contraseña-segura"))
	assert.Error(t, h.Compare(hash, "otra-contraseña"), "contraseña incorrecta debe fallar")
}

func TestBcryptHasher_HashesDistintosPorSalt(t *testing.T) {
	h := password.NewBcryptHasher()

	h1, err := h.Hash("misma-contraseña")
	require.NoError(t, err)
	h2, err := h.Hash("misma-contraseña")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "cada hash lleva su propio salt")
}
