package availability

// HourGroup slots of one hour bucket, in generator order
type HourGroup struct {
	Hour           int
	Slots          []EvaluatedSlot
	AvailableCount int // available-or-limited slots in this hour
}

// Grouping the presented slot set for a picker. Counts are always computed
// from the full evaluated set, independent of filtering.
type Grouping struct {
	Slots          []EvaluatedSlot // flat filtered sequence, generator order
	Groups         []HourGroup     // nil когда группировка по часам выключена
	TotalSlots     int
	AvailableSlots int
}

// Group arranges evaluated slots for presentation.
//
// With groupByHour, slots are partitioned by hour bucket preserving
// generator order within each bucket. With showUnavailable == false, past
// and unavailable slots are omitted from Slots/Groups but still counted in
// the TotalSlots summary. Group is pure and idempotent: it never mutates
// its input and identical inputs produce identical output.
func Group(slots []EvaluatedSlot, groupByHour, showUnavailable bool) *Grouping {
	grouping := &Grouping{
		Slots:      make([]EvaluatedSlot, 0, len(slots)),
		TotalSlots: len(slots),
	}

	for _, s := range slots {
		if s.Status.IsSelectable() {
			grouping.AvailableSlots++
		}

		if !showUnavailable && !s.Status.IsSelectable() {
			continue
		}
		grouping.Slots = append(grouping.Slots, s)
	}

	if !groupByHour {
		return grouping
	}

	grouping.Groups = make([]HourGroup, 0)
	for _, s := range grouping.Slots {
		hour := s.Slot.HourBucket()

		// Слоты отсортированы по времени, поэтому новый час - всегда новая группа в конце
		if n := len(grouping.Groups); n == 0 || grouping.Groups[n-1].Hour != hour {
			grouping.Groups = append(grouping.Groups, HourGroup{Hour: hour})
		}

		group := &grouping.Groups[len(grouping.Groups)-1]
		group.Slots = append(group.Slots, s)
		if s.Status.IsSelectable() {
			group.AvailableCount++
		}
	}

	return grouping
}
