package game

// advantageOver maps each archetype to the archetype it beats.
var advantageOver = map[Archetype]Archetype{
	ArchetypeAI:      ArchetypeQuantum,
	ArchetypeQuantum: ArchetypeBiotech,
	ArchetypeBiotech: ArchetypeAI,
}

// Beats reports whether attacker has the type advantage over defender.
// Mirror matchups never carry an advantage.
func Beats(attacker, defender Archetype) bool {
	return advantageOver[attacker] == defender
}

// AdvantageDamage applies the x1.15 type-advantage multiplier (rounded
// down) when the attacker beats the defender, otherwise returns the base
// value unchanged. Integer arithmetic keeps the floor exact.
func AdvantageDamage(base int, attacker, defender Archetype) int {
	if Beats(attacker, defender) {
		return base * 115 / 100
	}
	return base
}
