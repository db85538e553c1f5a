package weather

import "testing"

func TestNeutralConditionsHaveNoBonus(t *testing.T) {
	n := Neutral()
	if got := HomerunBonus(n); got != 0 {
		t.Fatalf("HomerunBonus(neutral) = %v, want 0", got)
	}
	if got := HitBonus(n); got != 0 {
		t.Fatalf("HitBonus(neutral) = %v, want 0", got)
	}
}

func TestWindOutHelpsHomeruns(t *testing.T) {
	c := Conditions{TemperatureF: 70, WindSpeedMPH: 15, WindDir: WindOut, HumidityPct: 50}
	if got := HomerunBonus(c); got <= 0 {
		t.Fatalf("HomerunBonus(wind out) = %v, want > 0", got)
	}
}

func TestWindInHurtsHomeruns(t *testing.T) {
	c := Conditions{TemperatureF: 70, WindSpeedMPH: 15, WindDir: WindIn, HumidityPct: 50}
	if got := HomerunBonus(c); got >= 0 {
		t.Fatalf("HomerunBonus(wind in) = %v, want < 0", got)
	}
}

func TestColdWeatherHurtsOffense(t *testing.T) {
	cold := Conditions{TemperatureF: 35, WindDir: WindCross, HumidityPct: 50}
	if got := HomerunBonus(cold); got >= 0 {
		t.Fatalf("HomerunBonus(cold) = %v, want < 0", got)
	}
	if got := HitBonus(cold); got >= 0 {
		t.Fatalf("HitBonus(cold) = %v, want < 0", got)
	}
}

func TestHotWeatherHelpsOffense(t *testing.T) {
	hot := Conditions{TemperatureF: 95, WindDir: WindCross, HumidityPct: 50}
	if got := HomerunBonus(hot); got <= 0 {
		t.Fatalf("HomerunBonus(hot) = %v, want > 0", got)
	}
}

func TestIsDomeClassification(t *testing.T) {
	for _, rt := range []string{"dome", "indoor", "fixed_roof", "closed"} {
		if !IsDome(rt) {
			t.Fatalf("IsDome(%q) = false, want true", rt)
		}
	}
	for _, rt := range []string{"outdoor", "retractable", ""} {
		if IsDome(rt) {
			t.Fatalf("IsDome(%q) = true, want false", rt)
		}
	}
}
