package constants

// AlarmStatus is the display status derived for a medication alarm
type AlarmStatus string

const (
	AlarmStatusPendingToday     AlarmStatus = "Pendiente hoy"
	AlarmStatusPendingTodayPast AlarmStatus = "Pendiente hoy (pasada)"
	AlarmStatusPast             AlarmStatus = "Pasada"
	AlarmStatusUpcoming         AlarmStatus = "Próxima"
	AlarmStatusError            AlarmStatus = "Error"

	// Sentinel display values for unresolvable alarm times
	InvalidDateLabel = "Fecha inválida"
	NotAvailable     = "N/A"

	// strftime layouts for alarm rendering
	AlarmClockFormat     = "%I:%M %p"
	AlarmDayMonthFormat  = "%d/%m"
	AlarmShortClockFmt   = "%-I:%M %p"
	AlarmStartTimeSuffix = ":00.000Z"

	MinFrequencyHours = 1
	MaxFrequencyHours = 24
)
