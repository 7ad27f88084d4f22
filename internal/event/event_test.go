package event

import "testing"

func TestNew(t *testing.T) {
	ev := New("3456", "UFC 319: Du Plessis vs Chimaev", "2025-08-16",
		"https://fightodds.io/mma-events/3456/ufc-319-du-plessis-vs-chimaev")

	if ev.CardURL != "https://fightodds.io/mma-events/3456/ufc-319-du-plessis-vs-chimaev/fights" {
		t.Errorf("unexpected card URL: %s", ev.CardURL)
	}
	if ev.OddsURL != "https://fightodds.io/mma-events/3456/ufc-319-du-plessis-vs-chimaev/odds" {
		t.Errorf("unexpected odds URL: %s", ev.OddsURL)
	}
}

func TestNewTrailingSlash(t *testing.T) {
	ev := New("1", "UFC 300: Pereira vs Hill", "",
		"https://fightodds.io/mma-events/1/ufc-300/")
	if ev.CardURL != "https://fightodds.io/mma-events/1/ufc-300/fights" {
		t.Errorf("trailing slash not trimmed: %s", ev.CardURL)
	}
}

func TestToken(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"UFC 319: Du Plessis vs Chimaev", "UFC 319"},
		{"ufc 300 something", "ufc 300"},
		{"UFC Fight Night: Lewis vs Teixeira", "UFC Fight Night: Lewis vs Teixeira"},
	}
	for _, tt := range tests {
		ev := &Event{Name: tt.name}
		if got := ev.Token("UFC"); got != tt.want {
			t.Errorf("Token(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"UFC 319: Du Plessis vs Chimaev", "UFC 319: Du Plessis vs Chimaev", true},
		{"UFC 319: Du Plessis vs ChimaevFightersBetOnlineBovadaBetMGM", "UFC 319: Du Plessis vs Chimaev", true},
		{"  UFC   Fight Night:  Lewis  vs Teixeira ", "UFC Fight Night: Lewis vs Teixeira", true},
		{"UFC 320: Ankalaev vs PereiraEVENT INFOFIGHT CARDODDS", "UFC 320: Ankalaev vs Pereira", true},
		{"PFL 10: Playoffs", "", false}, // wrong league
		{"UFC 319", "", false},          // too short after cleaning
		{"More Events UFC listings", "", false},
	}
	for _, tt := range tests {
		got, ok := CleanName(tt.raw, "UFC")
		if got != tt.want || ok != tt.ok {
			t.Errorf("CleanName(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"UFC 319: Du Plessis vs Chimaev", "ufc-319-du-plessis-vs-chimaev"},
		{"UFC Fight Night: Lewis vs. Teixeira", "ufc-fight-night-lewis-vs-teixeira"},
	}
	for _, tt := range tests {
		if got := Slug(tt.name); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
