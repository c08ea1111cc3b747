package game

import "testing"

func TestBeatsCycle(t *testing.T) {
	cases := []struct {
		attacker, defender Archetype
		want               bool
	}{
		{ArchetypeAI, ArchetypeQuantum, true},
		{ArchetypeQuantum, ArchetypeBiotech, true},
		{ArchetypeBiotech, ArchetypeAI, true},
		{ArchetypeAI, ArchetypeBiotech, false},
		{ArchetypeQuantum, ArchetypeAI, false},
		{ArchetypeBiotech, ArchetypeQuantum, false},
		{ArchetypeAI, ArchetypeAI, false},
		{ArchetypeQuantum, ArchetypeQuantum, false},
		{ArchetypeBiotech, ArchetypeBiotech, false},
	}
	for _, c := range cases {
		if got := Beats(c.attacker, c.defender); got != c.want {
			t.Errorf("Beats(%s, %s) = %v, want %v", c.attacker, c.defender, got, c.want)
		}
	}
}

func TestAdvantageDamage(t *testing.T) {
	// floor(15 * 1.15) = 17 with the advantage, 15 without
	if got := AdvantageDamage(15, ArchetypeAI, ArchetypeQuantum); got != 17 {
		t.Errorf("expected 17 with advantage, got %d", got)
	}
	if got := AdvantageDamage(15, ArchetypeAI, ArchetypeBiotech); got != 15 {
		t.Errorf("expected 15 without advantage, got %d", got)
	}
	if got := AdvantageDamage(20, ArchetypeQuantum, ArchetypeBiotech); got != 23 {
		t.Errorf("expected floor(20*1.15)=23, got %d", got)
	}
	// mirror matchup never gets the bonus
	if got := AdvantageDamage(15, ArchetypeAI, ArchetypeAI); got != 15 {
		t.Errorf("expected 15 in mirror matchup, got %d", got)
	}
}
