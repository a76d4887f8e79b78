package triage

import "testing"

func TestMatchAnswer(t *testing.T) {
	tests := []struct {
		name       string
		oracleText string
		candidates []string
		want       string
		ok         bool
	}{
		{
			name:       "containment is case-insensitive",
			oracleText: "It sounds like a common cold to me",
			candidates: []string{"Flu", "Cold", "Allergy"},
			want:       "Cold",
			ok:         true,
		},
		{
			name:       "literal candidate",
			oracleText: "Migraine",
			candidates: []string{"Tension", "Migraine"},
			want:       "Migraine",
			ok:         true,
		},
		{
			name:       "first match wins in catalog order",
			oracleText: "could be flu or a cold",
			candidates: []string{"Flu", "Cold"},
			want:       "Flu",
			ok:         true,
		},
		{
			name:       "no candidate substring present",
			oracleText: "I cannot tell from these answers",
			candidates: []string{"Flu", "Cold", "Allergy"},
			want:       "",
			ok:         false,
		},
		{
			name:       "empty candidates never match",
			oracleText: "anything",
			candidates: []string{"", "Flu"},
			want:       "",
			ok:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchAnswer(tt.oracleText, tt.candidates)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("MatchAnswer(%q, %v) = (%q, %v), want (%q, %v)",
					tt.oracleText, tt.candidates, got, ok, tt.want, tt.ok)
			}
		})
	}
}
