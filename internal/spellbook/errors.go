package spellbook

import "errors"

const CooldownMessage = "You cannot cast this spell yet."

var (
	ErrOnCooldown   = errors.New("spell on cooldown")
	ErrUnknownSpell = errors.New("spell not in spellbook")
)
