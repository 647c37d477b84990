package rules

// DefaultRaces returns the built-in race table.
func DefaultRaces() []*Race {
	return []*Race{
		{
			ID:          "human",
			Name:        "Human",
			Description: "Versatile and adaptable; +1 to all ability scores.",
			Bonuses: map[string]int{
				AbilityStr: 1, AbilityDex: 1, AbilityCon: 1,
				AbilityInt: 1, AbilityWis: 1, AbilityCha: 1,
			},
			StartingWeapon: "longsword",
		},
		{
			ID:             "elf",
			Name:           "Elf",
			Description:    "Graceful and quick; +2 DEX.",
			Bonuses:        map[string]int{AbilityDex: 2},
			StartingWeapon: "shortsword",
		},
		{
			ID:             "dwarf",
			Name:           "Dwarf",
			Description:    "Hardy and resilient; +2 CON.",
			Bonuses:        map[string]int{AbilityCon: 2},
			StartingWeapon: "battleaxe",
		},
		{
			ID:             "halfling",
			Name:           "Halfling",
			Description:    "Small and lucky; +2 DEX, +1 CHA.",
			Bonuses:        map[string]int{AbilityDex: 2, AbilityCha: 1},
			StartingWeapon: "dagger",
		},
	}
}

// DefaultWeapons returns the built-in weapon catalog.
func DefaultWeapons() []*Weapon {
	return []*Weapon{
		{ID: "unarmed", Name: "Unarmed Strike", DamageDice: "1d4", DamageType: "bludgeoning", BonusStat: AbilityStr},
		{ID: "dagger", Name: "Dagger", DamageDice: "1d4", DamageType: "piercing", BonusStat: AbilityDex},
		{ID: "shortsword", Name: "Shortsword", DamageDice: "1d6", DamageType: "piercing", BonusStat: AbilityDex},
		{ID: "mace", Name: "Mace", DamageDice: "1d6", DamageType: "bludgeoning", BonusStat: AbilityStr},
		{ID: "longsword", Name: "Longsword", DamageDice: "1d8", DamageType: "slashing", BonusStat: AbilityStr},
		{ID: "battleaxe", Name: "Battleaxe", DamageDice: "1d8", DamageType: "slashing", BonusStat: AbilityStr},
		{ID: "rapier", Name: "Rapier", DamageDice: "1d8", DamageType: "piercing", BonusStat: AbilityDex},
		{ID: "warhammer", Name: "Warhammer", DamageDice: "1d8", DamageType: "bludgeoning", BonusStat: AbilityStr},
		{ID: "greatsword", Name: "Greatsword", DamageDice: "2d6", DamageType: "slashing", BonusStat: AbilityStr},
		{ID: "greataxe", Name: "Greataxe", DamageDice: "1d12", DamageType: "slashing", BonusStat: AbilityStr},
	}
}

// DefaultSpells returns the built-in spell table. Two of these are granted
// at character creation (one damage, one heal).
func DefaultSpells() []*Spell {
	return []*Spell{
		{ID: "fire_bolt", Name: "Fire Bolt", Level: 0, Kind: SpellDamage, EffectDice: "1d10", School: "Evocation"},
		{ID: "magic_missile", Name: "Magic Missile", Level: 1, Kind: SpellDamage, EffectDice: "3d4+3", School: "Evocation"},
		{ID: "burning_hands", Name: "Burning Hands", Level: 1, Kind: SpellDamage, EffectDice: "3d6", School: "Evocation"},
		{ID: "cure_wounds", Name: "Cure Wounds", Level: 1, Kind: SpellHeal, EffectDice: "1d8+3", School: "Abjuration"},
	}
}

// DefaultEnemyTemplates returns the built-in enemy stat blocks.
func DefaultEnemyTemplates() []*EnemyTemplate {
	return []*EnemyTemplate{
		{
			ID:          "goblin",
			Name:        "Goblin",
			Description: "A nimble but weak creature in scavenged leather.",
			MaxHP:       7,
			AC:          13,
			AttackBonus: 2,
			DamageDice:  "1d6",
			Abilities: map[string]int{
				AbilityStr: 8, AbilityDex: 14, AbilityCon: 10,
				AbilityInt: 10, AbilityWis: 8, AbilityCha: 8,
			},
			XPReward:        50,
			ChallengeRating: 0.25,
		},
		{
			ID:          "orc",
			Name:        "Orc",
			Description: "A brutish raider swinging a crude greataxe.",
			MaxHP:       15,
			AC:          13,
			AttackBonus: 5,
			DamageDice:  "1d12+3",
			Abilities: map[string]int{
				AbilityStr: 16, AbilityDex: 12, AbilityCon: 16,
				AbilityInt: 7, AbilityWis: 11, AbilityCha: 10,
			},
			XPReward:        100,
			ChallengeRating: 0.5,
		},
		{
			ID:          "skeleton",
			Name:        "Skeleton",
			Description: "Animated bones held together by old malice.",
			MaxHP:       13,
			AC:          13,
			AttackBonus: 4,
			DamageDice:  "1d6+2",
			Abilities: map[string]int{
				AbilityStr: 10, AbilityDex: 14, AbilityCon: 15,
				AbilityInt: 6, AbilityWis: 8, AbilityCha: 5,
			},
			XPReward:        75,
			ChallengeRating: 0.25,
		},
	}
}

// DefaultTables builds the compiled-in table set used when no content
// directory is supplied.
//
// Postcondition: Returns a valid Tables; panics only if the built-in data is
// internally inconsistent, which is a programming error.
func DefaultTables() *Tables {
	t, err := NewTables(DefaultRaces(), DefaultWeapons(), DefaultSpells(), DefaultEnemyTemplates())
	if err != nil {
		panic("rules: invalid built-in tables: " + err.Error())
	}
	return t
}
