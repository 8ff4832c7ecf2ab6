package hours

import "fmt"

// Duration is the whole-unit decomposition of a fractional hour total.
// Fractions below one second are truncated.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Decompose converts fractional hours into hours, minutes and seconds.
// Negative inputs are clamped to zero.
func Decompose(fractionalHours float64) Duration {
	if fractionalHours < 0 {
		fractionalHours = 0
	}
	total := int(fractionalHours * 3600)
	return Duration{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

func (d Duration) TotalSeconds() int {
	return d.Hours*3600 + d.Minutes*60 + d.Seconds
}

// Clock renders the zero-padded HH:mm:ss form.
func (d Duration) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Hours, d.Minutes, d.Seconds)
}

// Human renders the Xh Ym Zs form.
func (d Duration) Human() string {
	return fmt.Sprintf("%dh %dm %ds", d.Hours, d.Minutes, d.Seconds)
}
