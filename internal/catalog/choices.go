package catalog

import "fmt"

// Instrument is an instrument a student can ask lessons for.
type Instrument string

// Instrument values.
const (
	Piano     Instrument = "piano"
	Guitar    Instrument = "guitar"
	Bass      Instrument = "bass"
	Singing   Instrument = "singing"
	Harmonica Instrument = "harmonica"
	Drums     Instrument = "drums"
)

var instruments = []Instrument{Piano, Guitar, Bass, Singing, Harmonica, Drums}

var instrumentLabels = map[Instrument]string{
	Piano:     "Piano",
	Guitar:    "Guitarra o Ukelele",
	Bass:      "Bajo",
	Singing:   "Canto",
	Harmonica: "Armónica",
	Drums:     "Batería",
}

// Selection-screen labels carry an icon and a shorter guitar label.
var instrumentOptionLabels = map[Instrument]string{
	Piano:     "🎹 Piano",
	Guitar:    "🎸 Guitarra",
	Bass:      "🎸 Bajo",
	Singing:   "🎤 Canto",
	Harmonica: "🎵 Armónica",
	Drums:     "🥁 Batería",
}

// Instruments returns every instrument in display order.
func Instruments() []Instrument {
	return append([]Instrument(nil), instruments...)
}

// Label returns the text used in the composed message.
func (i Instrument) Label() string { return instrumentLabels[i] }

// OptionLabel returns the text shown on the selection screen.
func (i Instrument) OptionLabel() string { return instrumentOptionLabels[i] }

// Valid reports whether i is a known instrument.
func (i Instrument) Valid() bool {
	_, ok := instrumentLabels[i]
	return ok
}

// ParseInstrument converts an identifier such as "piano" into an Instrument.
func ParseInstrument(s string) (Instrument, error) {
	i := Instrument(s)
	if !i.Valid() {
		return "", fmt.Errorf("unknown instrument %q", s)
	}
	return i, nil
}

// TimePreference is a preferred time band for lessons.
type TimePreference string

// TimePreference values.
const (
	Morning   TimePreference = "morning"
	Afternoon TimePreference = "afternoon"
	Evening   TimePreference = "evening"
)

var timePreferences = []TimePreference{Morning, Afternoon, Evening}

var timeLabels = map[TimePreference]string{
	Morning:   "Mañana (10 a 13hs)",
	Afternoon: "Siesta (15 a 16hs)",
	Evening:   "Tarde (17 a 21hs)",
}

var timeOptionLabels = map[TimePreference]string{
	Morning:   "🌞 Mañana (10 a 13hs)",
	Afternoon: "🌤️ Siesta (15 a 16hs)",
	Evening:   "🌆 Tarde (17 a 21hs)",
}

// TimePreferences returns every time band in display order.
func TimePreferences() []TimePreference {
	return append([]TimePreference(nil), timePreferences...)
}

// Label returns the text used in the composed message.
func (t TimePreference) Label() string { return timeLabels[t] }

// OptionLabel returns the text shown on the selection screen.
func (t TimePreference) OptionLabel() string { return timeOptionLabels[t] }

// Valid reports whether t is a known time band.
func (t TimePreference) Valid() bool {
	_, ok := timeLabels[t]
	return ok
}

// ParseTimePreference converts an identifier such as "morning" into a TimePreference.
func ParseTimePreference(s string) (TimePreference, error) {
	t := TimePreference(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown time preference %q", s)
	}
	return t, nil
}

// Weekday is a school day. The school opens Monday to Friday.
type Weekday string

// Weekday values.
const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayLabels = map[Weekday]string{
	Monday:    "Lunes",
	Tuesday:   "Martes",
	Wednesday: "Miércoles",
	Thursday:  "Jueves",
	Friday:    "Viernes",
}

// Weekdays returns every school day in calendar order.
func Weekdays() []Weekday {
	return append([]Weekday(nil), weekdays...)
}

// Label returns the Spanish day name.
func (d Weekday) Label() string { return weekdayLabels[d] }

// OptionLabel returns the text shown on the selection screen.
func (d Weekday) OptionLabel() string { return weekdayLabels[d] }

// Valid reports whether d is a school day.
func (d Weekday) Valid() bool {
	_, ok := weekdayLabels[d]
	return ok
}

// ParseWeekday converts an identifier such as "monday" into a Weekday.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

// Labeled is implemented by every choice type in this package.
type Labeled interface {
	~string
	Label() string
	OptionLabel() string
}

// Labels maps choices to their message labels, preserving order.
func Labels[T Labeled](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label())
	}
	return out
}
