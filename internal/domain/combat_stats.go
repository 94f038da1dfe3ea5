package domain

// CombatStats - боевые характеристики
type CombatStats struct {
	MaxHP   int `json:"maxHp"`
	HP      int `json:"hp"`
	Defense int `json:"defense"`
	Power   int `json:"power"`
}

// TakeDamage наносит урон. HP не опускается ниже нуля.
// Возвращает true, если цель погибла.
func (s *CombatStats) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}

	s.HP -= amount
	if s.HP <= 0 {
		s.HP = 0
		return true
	}
	return false
}

// Heal лечит не выше MaxHP. Возвращает фактически восстановленное значение.
func (s *CombatStats) Heal(amount int) int {
	if s.IsDead() || amount <= 0 {
		return 0 // Не лечим трупы! Нет некромантии!
	}
	before := s.HP
	s.HP += amount
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	return s.HP - before
}

func (s *CombatStats) IsDead() bool {
	return s.HP <= 0
}
