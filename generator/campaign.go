package generator

// Engagement simulates the outcome of sending to recipients: 35-65% open,
// and 15-35% of openers click. Both counts are rounded down.
func (g *Generator) Engagement(recipients int) (opened, clicked int) {
	if recipients <= 0 {
		return 0, 0
	}
	opened = recipients * g.rnd.Int(35, 65) / 100
	clicked = opened * g.rnd.Int(15, 35) / 100
	return opened, clicked
}
