package systems

import (
	"testing"

	"rogue-server/internal/core/types/enums"
	"rogue-server/internal/domain"
)

// Монстр (5,5) бьет игрока (5,6): power 5 против defense 2.
func TestCombat_MonsterHitsPlayer(t *testing.T) {
	w := newTestWorld(10, 10)
	player := spawnPlayer(w, domain.Position{X: 5, Y: 6}, domain.CombatStats{MaxHP: 30, HP: 30, Defense: 2, Power: 5})
	orc := spawnMonster(w, "Orc", domain.Position{X: 5, Y: 5}, domain.CombatStats{MaxHP: 10, HP: 10, Defense: 1, Power: 5})
	prepare(w)
	w.State = domain.StateMonsterTurn

	DecisionPhase(w)
	CombatResolutionPhase(w)

	acc, ok := w.SufferDamage.Get(player)
	if !ok || len(acc.Amounts) != 1 || acc.Amounts[0] != 3 {
		t.Fatalf("queued damage = %+v, want [3]", acc)
	}
	if w.WantsToMelee.Len() != 0 {
		t.Errorf("melee intents must be drained")
	}

	DamageApplicationPhase(w)
	if hp := hpOf(t, w, player); hp != 27 {
		t.Errorf("player hp = %d, want 27", hp)
	}
	_ = orc
}

func TestCombat_DamageFormula(t *testing.T) {
	tests := []struct {
		name        string
		power       int
		defense     int
		weaponBonus int
		shieldBonus int
		want        int // 0 - урон не ставится в очередь
	}{
		{"Plain hit", 5, 2, 0, 0, 3},
		{"Weapon adds power", 5, 2, 2, 0, 5},
		{"Shield adds defense", 5, 2, 0, 1, 2},
		{"Never negative", 1, 5, 0, 0, 0},
		{"Exact block", 4, 2, 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(10, 10)
			attacker := spawnMonster(w, "Attacker", domain.Position{X: 2, Y: 2}, domain.CombatStats{MaxHP: 10, HP: 10, Power: tt.power})
			defender := spawnMonster(w, "Defender", domain.Position{X: 3, Y: 2}, domain.CombatStats{MaxHP: 10, HP: 10, Defense: tt.defense})

			if tt.weaponBonus > 0 {
				sword := spawnItem(w, "Sword")
				w.Equipped.Insert(sword, domain.Equipped{Owner: attacker, Slot: enums.SlotMelee})
				w.MeleePowerBonus.Insert(sword, domain.MeleePowerBonus{Power: tt.weaponBonus})
			}
			if tt.shieldBonus > 0 {
				shield := spawnItem(w, "Shield")
				w.Equipped.Insert(shield, domain.Equipped{Owner: defender, Slot: enums.SlotShield})
				w.DefenseBonus.Insert(shield, domain.DefenseBonus{Defense: tt.shieldBonus})
			}

			w.WantsToMelee.Insert(attacker, domain.WantsToMelee{Target: defender})
			CombatResolutionPhase(w)

			acc, ok := w.SufferDamage.Get(defender)
			if tt.want == 0 {
				if ok {
					t.Fatalf("zero damage must not be queued, got %+v", acc)
				}
				return
			}
			if !ok || acc.Total() != tt.want {
				t.Fatalf("queued damage = %+v, want %d", acc, tt.want)
			}
		})
	}
}

func TestCombat_SkipsInvalidCombatants(t *testing.T) {
	w := newTestWorld(10, 10)
	ghost := w.CreateEntity() // без CombatStats
	orc := spawnMonster(w, "Orc", domain.Position{X: 2, Y: 2}, domain.CombatStats{MaxHP: 10, HP: 10, Power: 5})
	corpse := spawnMonster(w, "Corpse", domain.Position{X: 3, Y: 2}, domain.CombatStats{MaxHP: 10, HP: 0})
	victim := spawnMonster(w, "Victim", domain.Position{X: 4, Y: 2}, domain.CombatStats{MaxHP: 10, HP: 10})

	w.WantsToMelee.Insert(ghost, domain.WantsToMelee{Target: orc})
	w.WantsToMelee.Insert(orc, domain.WantsToMelee{Target: corpse})
	w.WantsToMelee.Insert(corpse, domain.WantsToMelee{Target: victim})

	CombatResolutionPhase(w)

	if w.SufferDamage.Len() != 0 {
		t.Errorf("no damage expected, got %d accumulators", w.SufferDamage.Len())
	}
	if w.WantsToMelee.Len() != 0 {
		t.Errorf("intents must be drained even when skipped")
	}
}
