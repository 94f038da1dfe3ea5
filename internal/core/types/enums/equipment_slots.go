package enums

import "strings"

// EquipmentSlot - слот экипировки. В одном слоте у владельца может быть
// только один предмет.
type EquipmentSlot uint8

const (
	SlotUnknown EquipmentSlot = iota // 0
	SlotMelee                        // 1
	SlotShield                       // 2
)

var equipmentSlotToString = map[EquipmentSlot]string{
	SlotMelee:  "MELEE",
	SlotShield: "SHIELD",
}

var equipmentSlotStringToType = map[string]EquipmentSlot{
	"MELEE":  SlotMelee,
	"SHIELD": SlotShield,
}

func (s EquipmentSlot) String() string {
	if val, ok := equipmentSlotToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEquipmentSlot конвертирует строку в Enum (нужно для загрузки шаблонов)
func ParseEquipmentSlot(s string) EquipmentSlot {
	upper := strings.ToUpper(s)
	if val, ok := equipmentSlotStringToType[upper]; ok {
		return val
	}
	return SlotUnknown
}

// MarshalText позволяет использовать слот в JSON и YAML как строку.
func (s EquipmentSlot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *EquipmentSlot) UnmarshalText(data []byte) error {
	*s = ParseEquipmentSlot(string(data))
	return nil
}
