package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// filterByNotice убирает слоты, до начала которых осталось меньше minBookingNoticeMinutes.
// Фильтр применяется только к сегодняшней дате.
func filterByNotice(slots []types.TimeString, date types.Date, now time.Time, minBookingNoticeMinutes int) []types.TimeString {
	if !date.Equal(types.NewDate(now)) {
		return slots
	}

	minAllowed := now.Hour()*60 + now.Minute() + minBookingNoticeMinutes

	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		start, err := slot.Minutes()
		if err != nil {
			continue
		}
		if start >= minAllowed {
			result = append(result, slot)
		}
	}
	return result
}
