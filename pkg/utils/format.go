package utils

import (
	"fmt"
	"math"
)

// FormatDMS renders a longitude as degrees, minutes, and seconds of arc,
// e.g. 212.2799 → "212°16′48″".
func FormatDMS(deg float64) string {
	d := Norm360(deg)
	whole := math.Floor(d)
	minf := (d - whole) * 60
	min := math.Floor(minf)
	sec := math.Round((minf - min) * 60)
	if sec >= 60 {
		sec = 0
		min++
	}
	if min >= 60 {
		min = 0
		whole++
	}
	return fmt.Sprintf("%.0f°%02.0f′%02.0f″", whole, min, sec)
}

// FormatSignDMS renders a longitude as an in-sign offset, e.g.
// 212.2799 → "2°16′48″ Scorpio" style "02°16′ Sco". Callers pass the
// sign name separately to avoid an import cycle with models.
func FormatSignDMS(deg float64, signName string) string {
	d := Norm360(deg)
	inSign := d - math.Floor(d/30)*30
	whole := math.Floor(inSign)
	min := math.Floor((inSign - whole) * 60)
	return fmt.Sprintf("%.0f°%02.0f′ %s", whole, min, signName)
}
