package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "Genero", StripAccents("Género"))
	assert.Equal(t, "Ano nino", StripAccents("Año niño"))
	assert.Equal(t, "RECEPCION", StripAccents("RECEPCIÓN"))
	assert.Equal(t, "¿que?", StripAccents("¿qué?"))
}

func TestCleanQuestion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1. ¿Cómo  te SIENTES?:", "¿como te sientes?"},
		{"12) Mi jefe me escucha.", "mi jefe me escucha"},
		{"3- Tengo las herramientas;", "tengo las herramientas"},
		{"  Trabajo en equipo  ", "trabajo en equipo"},
		{"2024 es un buen año", "2024 es un buen ano"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanQuestion(tt.input))
		})
	}
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, "ama de llaves", foldName("  Ama  de LLAVES "))
	assert.Equal(t, foldName("Recepción"), foldName("RECEPCION"))
}
