package domain

// GameLog - упорядоченная лента сообщений для игрока. Только дополняется.
type GameLog struct {
	Entries []string
}

func (l *GameLog) Add(msg string) {
	l.Entries = append(l.Entries, msg)
}

// Since возвращает записи, появившиеся после позиции from.
func (l *GameLog) Since(from int) []string {
	if from < 0 {
		from = 0
	}
	if from >= len(l.Entries) {
		return nil
	}
	out := make([]string, len(l.Entries)-from)
	copy(out, l.Entries[from:])
	return out
}

func (l *GameLog) Len() int {
	return len(l.Entries)
}

// Reset начинает новую ленту (новая партия).
func (l *GameLog) Reset(first string) {
	l.Entries = []string{first}
}
