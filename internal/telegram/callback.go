package telegram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/intake"
)

// ErrUnknownCallback reports callback data no button produces.
var ErrUnknownCallback = errors.New("unknown callback data")

// Callback data prefixes. Values follow the colon.
const (
	prefixClass     = "class"
	prefixRecipient = "recipient"
	prefixInst      = "inst"
	prefixTime      = "time"
	prefixDay       = "day"
	prefixNav       = "nav"
	prefixAdd       = "add"

	dataFinish = "finish"
	dataReset  = "reset"
	dataInfo   = "info"
)

// CallbackData encodes e for an inline button. Events without a button
// encode to "".
func CallbackData(e intake.Event) string {
	switch e := e.(type) {
	case intake.SelectClassType:
		return prefixClass + ":" + string(e.Type)
	case intake.SelectRecipient:
		if e.ForSelf {
			return prefixRecipient + ":self"
		}
		return prefixRecipient + ":other"
	case intake.ToggleInstrument:
		return prefixInst + ":" + string(e.Instrument)
	case intake.ToggleTime:
		return prefixTime + ":" + string(e.Time)
	case intake.ToggleWeekday:
		return prefixDay + ":" + string(e.Weekday)
	case intake.Advance:
		return prefixNav + ":next"
	case intake.Retreat:
		return prefixNav + ":back"
	case intake.AddSameGroup:
		return prefixAdd + ":same"
	case intake.AddDifferentGroup:
		return prefixAdd + ":different"
	case intake.AddAnother:
		return prefixAdd + ":another"
	case intake.DeclineAdd:
		return prefixAdd + ":decline"
	case intake.Finish:
		return dataFinish
	case intake.Reset:
		return dataReset
	case intake.ToggleInfo:
		return dataInfo
	}
	return ""
}

// ParseCallback decodes callback data into the event it stands for.
func ParseCallback(data string) (intake.Event, error) {
	switch data {
	case dataFinish:
		return intake.Finish{}, nil
	case dataReset:
		return intake.Reset{}, nil
	case dataInfo:
		return intake.ToggleInfo{}, nil
	}

	prefix, value, ok := strings.Cut(data, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCallback, data)
	}

	var e intake.Event
	var err error
	switch prefix {
	case prefixClass:
		var t catalog.ClassType
		if t, err = catalog.ParseClassType(value); err == nil {
			e = intake.SelectClassType{Type: t}
		}
	case prefixRecipient:
		switch value {
		case "self":
			e = intake.SelectRecipient{ForSelf: true}
		case "other":
			e = intake.SelectRecipient{ForSelf: false}
		}
	case prefixInst:
		var v catalog.Instrument
		if v, err = catalog.ParseInstrument(value); err == nil {
			e = intake.ToggleInstrument{Instrument: v}
		}
	case prefixTime:
		var v catalog.TimePreference
		if v, err = catalog.ParseTimePreference(value); err == nil {
			e = intake.ToggleTime{Time: v}
		}
	case prefixDay:
		var v catalog.Weekday
		if v, err = catalog.ParseWeekday(value); err == nil {
			e = intake.ToggleWeekday{Weekday: v}
		}
	case prefixNav:
		switch value {
		case "next":
			e = intake.Advance{}
		case "back":
			e = intake.Retreat{}
		}
	case prefixAdd:
		switch value {
		case "same":
			e = intake.AddSameGroup{}
		case "different":
			e = intake.AddDifferentGroup{}
		case "another":
			e = intake.AddAnother{}
		case "decline":
			e = intake.DeclineAdd{}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCallback, err)
	}
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCallback, data)
	}
	return e, nil
}
