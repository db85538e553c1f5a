// Package weather models game-time conditions as pure, deterministic
// modifiers on at-bat outcome chances, computed as side-effect-free
// math over a caller-supplied Conditions value. The engine performs no
// network I/O; conditions are an input, never fetched.
package weather

// WindDirection is relative to the batter: "out" helps fly balls carry,
// "in" holds them up, "cross" is roughly neutral.
type WindDirection string

const (
	WindOut   WindDirection = "out"
	WindIn    WindDirection = "in"
	WindCross WindDirection = "cross"
)

// Conditions describes one game's weather.
type Conditions struct {
	TemperatureF int
	WindSpeedMPH int
	WindDir      WindDirection
	HumidityPct  int
}

// Neutral returns controlled, dome-like conditions with no effect.
func Neutral() Conditions {
	return Conditions{TemperatureF: 70, WindSpeedMPH: 0, WindDir: WindCross, HumidityPct: 50}
}

// HomerunBonus returns the additive homerun-outcome-chance bonus this
// weather contributes, on the same small-additive scale the at-bat
// resolver's other extra bonus sources use.
func HomerunBonus(c Conditions) float64 {
	bonus := 0.0
	switch c.WindDir {
	case WindOut:
		bonus += float64(c.WindSpeedMPH) * 0.08
	case WindIn:
		bonus -= float64(c.WindSpeedMPH) * 0.08
	}
	if c.TemperatureF < 50 {
		bonus -= 0.8
	} else if c.TemperatureF > 80 {
		bonus += 0.4
	}
	if c.HumidityPct > 80 {
		bonus -= 0.3
	}
	return bonus
}

// HitBonus returns the additive ball-in-play hit-chance bonus weather
// contributes, folded into the at-bat resolver's netScore term.
func HitBonus(c Conditions) float64 {
	bonus := 0.0
	switch c.WindDir {
	case WindOut:
		bonus += float64(c.WindSpeedMPH) * 0.03
	case WindIn:
		bonus -= float64(c.WindSpeedMPH) * 0.03
	}
	if c.TemperatureF < 50 {
		bonus -= 0.5
	} else if c.TemperatureF > 80 {
		bonus += 0.2
	}
	return bonus
}

// IsDome reports whether roofType describes a controlled-conditions
// venue.
func IsDome(roofType string) bool {
	switch roofType {
	case "dome", "indoor", "fixed_roof", "closed":
		return true
	default:
		return false
	}
}
