package validation

import "testing"

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice", true},
		{"bob.smith", true},
		{"carol_99", true},
		{"dave-x", true},
		{"", false},
		{"has space", false},
		{"semi;colon", false},
		{"ümlaut", false},
	}

	for _, tt := range tests {
		if got := IsValidUsername(tt.in); got != tt.want {
			t.Errorf("IsValidUsername(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRegisterBindingRulesIsIdempotent(t *testing.T) {
	if err := RegisterBindingRules(); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := RegisterBindingRules(); err != nil {
		t.Fatalf("second registration failed: %v", err)
	}
}
