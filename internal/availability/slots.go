package availability

import (
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// GenerateSlots генерирует сетку начал слотов внутри окна с шагом stepMinutes.
// Начало окна включается, конец нет: слот, начинающийся ровно в window.End, не выдается.
// Для некорректного окна, неположительного шага или окна короче шага возвращается пустой список.
func GenerateSlots(window Window, stepMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	if stepMinutes <= 0 {
		return slots
	}

	start, end, err := window.Bounds()
	if err != nil || end-start < stepMinutes {
		return slots
	}

	for m := start; m < end; m += stepMinutes {
		slot, err := types.FromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}
