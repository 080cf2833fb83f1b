package offer

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeSlot is one "HH-HH:Fn" entry of a day schedule.
type TimeSlot struct {
	From int
	To   int
	Band string
}

// ScheduleError reports a slot that does not follow the "HH-HH:Fn" shape.
type ScheduleError struct {
	Slot string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("offer: malformed slot %q", e.Slot)
}

// ParseDaySchedule splits a day value such as "00-08:F3;08-19:F1;19-24:F2".
// Hours range 0..24 and bands F1..F6.
func ParseDaySchedule(raw string) ([]TimeSlot, error) {
	parts := strings.Split(strings.TrimSpace(raw), ";")
	slots := make([]TimeSlot, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		hours, band, ok := strings.Cut(part, ":")
		if !ok {
			return nil, &ScheduleError{Slot: part}
		}
		fromRaw, toRaw, ok := strings.Cut(hours, "-")
		if !ok {
			return nil, &ScheduleError{Slot: part}
		}
		from, errFrom := parseHour(fromRaw)
		to, errTo := parseHour(toRaw)
		if errFrom != nil || errTo != nil || !validBand(band) {
			return nil, &ScheduleError{Slot: part}
		}
		slots = append(slots, TimeSlot{From: from, To: to, Band: band})
	}
	return slots, nil
}

func parseHour(raw string) (int, error) {
	if len(raw) != 2 {
		return 0, fmt.Errorf("offer: hour %q must have two digits", raw)
	}
	h, err := strconv.Atoi(raw)
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("offer: hour %q out of range", raw)
	}
	return h, nil
}

func validBand(band string) bool {
	return len(band) == 2 && band[0] == 'F' && band[1] >= '1' && band[1] <= '6'
}
