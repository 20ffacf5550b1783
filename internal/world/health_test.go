package world

import "testing"

func TestFixedConversion(t *testing.T) {
	if FromFloat(0.1) != 100 {
		t.Errorf("FromFloat(0.1) = %d, expected 100", FromFloat(0.1))
	}
	if FromInt(30) != 30000 {
		t.Errorf("FromInt(30) = %d, expected 30000", FromInt(30))
	}
	if FromFloat(29.9).String() != "29.900" {
		t.Errorf("String() = %q, expected %q", FromFloat(29.9).String(), "29.900")
	}
}

func TestHealthDamage(t *testing.T) {
	h := NewHealth(FromInt(30))
	for i := 0; i < 300; i++ {
		h.Damage(FromFloat(0.1))
	}
	if h.Current != 0 {
		t.Errorf("Current = %v after 300 x 0.1, expected 0", h.Current)
	}
	if !h.IsDead() {
		t.Error("IsDead() = false at zero health")
	}

	// Not floored
	h.Damage(FromInt(5))
	if h.Current != FromInt(-5) {
		t.Errorf("Current = %v, expected -5", h.Current)
	}
}

func TestTowerStateTransitions(t *testing.T) {
	h := *NewHealth(FromInt(100))

	steps := []struct {
		current  int
		expected string
	}{
		{100, TowerInitial},
		{67, TowerInitial},
		{50, TowerDamaged},
		{34, TowerDamaged},
		{20, TowerRuined},
		{0, TowerRuined},
		{90, TowerInitial},
	}
	for _, s := range steps {
		h.Set(FromInt(s.current))
		if got := TowerState(h); got != s.expected {
			t.Errorf("TowerState(%d/100) = %q, expected %q", s.current, got, s.expected)
		}
	}

	// Exact thirds fall into the lower band.
	third := Health{Current: 1, Maximum: 3}
	if TowerState(third) != TowerRuined {
		t.Errorf("TowerState(1/3) = %q, expected %q", TowerState(third), TowerRuined)
	}
	twoThirds := Health{Current: 2, Maximum: 3}
	if TowerState(twoThirds) != TowerDamaged {
		t.Errorf("TowerState(2/3) = %q, expected %q", TowerState(twoThirds), TowerDamaged)
	}
}

func TestLayoutHearts(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		maximum  float64
		expected HeartLayout
	}{
		{"full tower", 100, 100, HeartLayout{Slots: 10, Full: 10}},
		{"half heart", 25, 30, HeartLayout{Slots: 3, Full: 2, PartialPx: 8}},
		{"sliver", 0.5, 30, HeartLayout{Slots: 3, Full: 0, PartialPx: 0}},
		{"dead", -2, 30, HeartLayout{Slots: 3}},
		{"fraction", 12.5, 30, HeartLayout{Slots: 3, Full: 1, PartialPx: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := Health{Current: FromFloat(tc.current), Maximum: FromFloat(tc.maximum)}
			got := LayoutHearts(h, 16)
			if got != tc.expected {
				t.Errorf("LayoutHearts() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{75, "01:15"},
		{3599, "59:59"},
	}
	for _, tc := range tests {
		if got := FormatTime(tc.seconds); got != tc.expected {
			t.Errorf("FormatTime(%d) = %q, expected %q", tc.seconds, got, tc.expected)
		}
	}
}
