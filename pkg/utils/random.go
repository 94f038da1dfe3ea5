package utils

import (
	"math/rand"
)

// Dice - детерминированный генератор случайных чисел.
// Один и тот же сид всегда дает одну и ту же последовательность бросков.
type Dice struct {
	rng *rand.Rand
}

func NewDice(seed int64) *Dice {
	return &Dice{rng: rand.New(rand.NewSource(seed))}
}

// Roll бросает n костей с sides гранями и возвращает сумму (nDsides).
func (d *Dice) Roll(n, sides int) int {
	if n <= 0 || sides <= 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += d.rng.Intn(sides) + 1
	}
	return total
}

// Range возвращает число из полуинтервала [min, max).
func (d *Dice) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + d.rng.Intn(max-min)
}

// Chance возвращает true с вероятностью percent/100.
func (d *Dice) Chance(percent int) bool {
	return d.rng.Intn(100) < percent
}
