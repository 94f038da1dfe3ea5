package types

import (
	"fmt"
	"strconv"
)

// EntityID - 64-битный идентификатор сущности.
//
// Формат битов (от старших к младшим):
//
//	[ Generation (32) | Index (32) ]
//
// Где:
//   - Generation - версия слота (защита от устаревших ссылок после удаления)
//   - Index - индекс слота в реестре
//
// Компоненты хранятся по полному EntityID, поэтому ссылка на удалённую
// сущность никогда не найдёт компоненты новой сущности в том же слоте.
type EntityID uint64

// NilEntityID - нулевой идентификатор. Реестр никогда его не выдаёт:
// поколение живого слота всегда >= 1.
const NilEntityID EntityID = 0

const (
	bitsIndex = 32
	bitsGen   = 32

	shiftGen = bitsIndex

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
)

// PackEntityID собирает EntityID из поколения и индекса слота.
func PackEntityID(gen uint32, index uint32) EntityID {
	return EntityID(uint64(gen)<<shiftGen | uint64(index))
}

// Index возвращает индекс слота в реестре.
func (id EntityID) Index() uint32 {
	return uint32(id & maskIndex)
}

// Generation возвращает поколение слота.
func (id EntityID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String возвращает представление для логов.
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("[gen=%d idx=%d]", id.Generation(), id.Index())
}

// ParseEntityID разбирает десятичное представление, которое отдает клиенту MarshalJSON.
func ParseEntityID(s string) (EntityID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return NilEntityID, fmt.Errorf("invalid entity id %q: %w", s, err)
	}
	return EntityID(v), nil
}

// MarshalJSON сериализует EntityID строкой, чтобы JS-клиент не терял точность.
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает как строку, так и число.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*id = NilEntityID
		return nil
	}

	v, err := ParseEntityID(s)
	if err != nil {
		return err
	}

	*id = v
	return nil
}
