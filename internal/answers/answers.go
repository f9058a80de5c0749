// Package answers reads a YAML answers file and replays it through an intake
// flow, so the message can be produced without the interactive front ends.
//
// Example:
//
//	class_type: group
//	main_name: Luz
//	for_self: true
//	participants:
//	  - age: "30"
//	    instruments: [guitar]
//	    times: [evening]
//	    weekdays: [tuesday, thursday]
//	  - name: Juan
//	    age: "28"
//	    same_group: true
//
// Same-group participants inherit the first participant's preferences; any
// preferences listed for them are ignored. Guardian classes take the child
// from the guardian block and preferences from the first participant.
package answers

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/underground-music/intake/internal/intake"
)

var (
	// ErrInvalid reports answers that name unknown values or cannot fit the
	// chosen class.
	ErrInvalid = errors.New("invalid answers")
	// ErrIncomplete reports answers missing a required field.
	ErrIncomplete = errors.New("incomplete answers")
)

// IncompleteError names the step the replay stopped at.
type IncompleteError struct {
	Step    string
	Missing []intake.Field
}

func (e *IncompleteError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("answers stop at step %s", e.Step)
	}
	fields := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		fields[i] = string(f)
	}
	return fmt.Sprintf("answers stop at step %s: missing %s", e.Step, strings.Join(fields, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// Answers is the file format.
type Answers struct {
	ClassType    string        `yaml:"class_type"`
	MainName     string        `yaml:"main_name,omitempty"`
	ForSelf      *bool         `yaml:"for_self,omitempty"`
	Guardian     *Guardian     `yaml:"guardian,omitempty"`
	Participants []Participant `yaml:"participants"`
}

// Guardian is the guardian block of a kids enrollment.
type Guardian struct {
	Name      string `yaml:"name"`
	ChildName string `yaml:"child_name"`
	ChildAge  string `yaml:"child_age"`
}

// Participant is one person. SameGroup applies from the second participant
// on.
type Participant struct {
	Name        string   `yaml:"name,omitempty"`
	Age         string   `yaml:"age,omitempty"`
	Instruments []string `yaml:"instruments,omitempty"`
	Times       []string `yaml:"times,omitempty"`
	Weekdays    []string `yaml:"weekdays,omitempty"`
	SameGroup   bool     `yaml:"same_group,omitempty"`
}

// Load reads answers from path.
func Load(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers: %w", err)
	}
	return Parse(data)
}

// Parse decodes answers from YAML.
func Parse(data []byte) (*Answers, error) {
	var a Answers
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	return &a, nil
}

// Marshal encodes a as YAML.
func Marshal(a *Answers) ([]byte, error) {
	data, err := yaml.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshalling answers: %w", err)
	}
	return data, nil
}

// forSelf resolves an omitted for_self: the contact enrolls themselves when
// the first participant has no name of its own.
func (a *Answers) forSelf() bool {
	if a.ForSelf != nil {
		return *a.ForSelf
	}
	if len(a.Participants) == 0 {
		return true
	}
	name := strings.TrimSpace(a.Participants[0].Name)
	return name == "" || name == strings.TrimSpace(a.MainName)
}
