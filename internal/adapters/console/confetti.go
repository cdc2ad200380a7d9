package console

import (
	"strings"
	"time"
)

// burst is one confetti shot: particle count, spread in degrees, horizontal
// origin in [0,1] and delay from the first shot.
type burst struct {
	particles int
	spread    int
	origin    float64
	delay     time.Duration
}

var bursts = []burst{
	{particles: 100, spread: 70, origin: 0.5},
	{particles: 50, spread: 55, origin: 0, delay: 250 * time.Millisecond},
	{particles: 50, spread: 55, origin: 1, delay: 400 * time.Millisecond},
}

const (
	confettiWidth = 60
	confettiRows  = 4
)

var confettiGlyphs = []rune("*+o.~•")

// renderBurst scatters b.particles glyphs over a small grid around the origin.
// Colliding particles overwrite each other.
func (v *View) renderBurst(b burst) string {
	grid := make([][]string, confettiRows)
	for r := range grid {
		grid[r] = make([]string, confettiWidth)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	half := b.spread * confettiWidth / 180
	if half < 1 {
		half = 1
	}
	center := int(b.origin * float64(confettiWidth-1))
	for i := 0; i < b.particles; i++ {
		col := center + v.rnd.Intn(2*half+1) - half
		if col < 0 || col >= confettiWidth {
			col = center
			if col >= confettiWidth {
				col = confettiWidth - 1
			}
		}
		row := v.rnd.Intn(confettiRows)
		glyph := string(confettiGlyphs[v.rnd.Intn(len(confettiGlyphs))])
		if v.color {
			glyph = confettiColors[v.rnd.Intn(len(confettiColors))] + glyph + ansiReset
		}
		grid[row][col] = glyph
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.TrimRight(strings.Join(row, ""), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
