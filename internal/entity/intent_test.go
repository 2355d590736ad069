package entity

import "testing"

func TestIntentHasSignal(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		want   bool
	}{
		{"location only", Intent{Location: "Rome"}, true},
		{"interest only", Intent{Interests: []string{"museums"}}, true},
		{"whitespace location", Intent{Location: "   "}, false},
		{"whitespace interests", Intent{Interests: []string{" ", ""}}, false},
		{"empty", Intent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.intent.HasSignal(); got != tt.want {
				t.Fatalf("HasSignal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntentNormalize(t *testing.T) {
	budget := 50.0
	in := Intent{
		Location:  "  Lisbon ",
		Interests: []string{" hotels ", "", "restaurants"},
		Budget:    &budget,
	}

	got := in.Normalize()

	if got.Location != "Lisbon" {
		t.Fatalf("expected trimmed location, got %q", got.Location)
	}
	if len(got.Interests) != 2 || got.Interests[0] != "hotels" || got.Interests[1] != "restaurants" {
		t.Fatalf("unexpected interests: %v", got.Interests)
	}
	if got.Budget == nil || *got.Budget != budget {
		t.Fatalf("expected budget to be preserved")
	}
}
