package crmservice

// Office модель офиса из CRM
type Office struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	City         string       `json:"city"`
	WorkingHours WeekSchedule `json:"workingHours"`
}

// WeekSchedule расписание работы офиса по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание офиса на один день недели
// BreakStart/BreakEnd задают ежедневный перерыв (опционально)
type DaySchedule struct {
	IsOpen     bool    `json:"isOpen"`
	OpenTime   *string `json:"openTime,omitempty"`  // "HH:MM"
	CloseTime  *string `json:"closeTime,omitempty"` // "HH:MM"
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// HasBreak returns true if the day defines a break window
func (d DaySchedule) HasBreak() bool {
	return d.BreakStart != nil && d.BreakEnd != nil
}

// Consultant модель консультанта из CRM
type Consultant struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	OfficeIDs []int64 `json:"officeIds"`
	IsActive  bool    `json:"isActive"`
}

// Lead модель лида (потенциального студента) из CRM
type Lead struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}
