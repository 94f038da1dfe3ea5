package domain

import "rogue-server/internal/core/types"

// --- НАМЕРЕНИЯ ---
// Намерение живет не дольше одного тика: его читает и очищает ровно одна фаза.
// Хранилища намерений ключуются по действующей сущности.

// WantsToMelee - атака в ближнем бою
type WantsToMelee struct {
	Target types.EntityID
}

// SufferDamage - накопитель урона за тик. Очищается DamageApplicationPhase.
type SufferDamage struct {
	Amounts []int
}

// Total суммирует накопленный урон.
func (s *SufferDamage) Total() int {
	sum := 0
	for _, a := range s.Amounts {
		sum += a
	}
	return sum
}

type WantsToPickupItem struct {
	CollectedBy types.EntityID
	Item        types.EntityID
}

// WantsToUseItem - применение предмета. Target == nil означает "на себя".
type WantsToUseItem struct {
	Item   types.EntityID
	Target *Position
}

type WantsToDropItem struct {
	Item types.EntityID
}

type WantsToRemoveItem struct {
	Item types.EntityID
}

// TeleportsSymmetrically - отложенный телепорт. Origin фиксирует позицию
// From в момент создания намерения.
type TeleportsSymmetrically struct {
	From   types.EntityID
	Origin Position
}
