package engine

import "github.com/Bright-Bots-Initiative/brightboost-sub001/internal/game"

// ResolveEffect turns an ability effect into the damage/heal numbers that
// get written to the turn log. Attacks receive the type-advantage
// multiplier against a disadvantaged defender; heals never do.
func ResolveEffect(effect game.AbilityEffect, actor, opponent game.Archetype) (damage, heal int) {
	switch effect.Kind {
	case game.EffectAttack:
		damage = game.AdvantageDamage(effect.Value, actor, opponent)
	case game.EffectHeal:
		heal = effect.Value
	}
	return damage, heal
}
