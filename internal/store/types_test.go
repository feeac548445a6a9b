package store

import "testing"

func TestParseMovementType(t *testing.T) {
	tests := []struct {
		input string
		want  MovementType
	}{
		{"sortie", MovementOut},
		{"Sortie", MovementOut},
		{"out", MovementOut},
		{"OUT", MovementOut},
		{"entrée", MovementIn},
		{"in", MovementIn},
		{"", MovementIn},
		{"n'importe quoi", MovementIn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseMovementType(tt.input); got != tt.want {
				t.Errorf("ParseMovementType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
