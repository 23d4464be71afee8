package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"¡Átame!", "atame"},
		{"Amélie", "amelie"},
		{"  Cerrar   los ojos ", "cerrar los ojos"},
		{"Anatomie d'une chute", "anatomie d une chute"},
		{"2001: A Space Odyssey", "2001 a space odyssey"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitle(tt.in), "NormalizeTitle(%q)", tt.in)
	}
}

func TestMatchTitle(t *testing.T) {
	assert.True(t, MatchTitle("", "anything"), "empty query matches")
	assert.True(t, MatchTitle("ojos", "Cerrar los ojos"))
	assert.True(t, MatchTitle("AMÉLIE", "Amelie"))
	assert.True(t, MatchTitle("destin", "Amélie", "Le Fabuleux Destin d'Amélie Poulain"))
	assert.True(t, MatchTitle("perfect dayz", "Perfect Days"), "close typos match")
	assert.False(t, MatchTitle("oppenheimer", "Perfect Days"))
	assert.False(t, MatchTitle("ojos", "", ""))
}
