package meter

import (
	"errors"
	"fmt"
	"strings"
)

// Class identifies one of the closed set of meter kinds. Each class maps
// to an immutable Profile describing its energy behavior.
type Class string

const (
	// ClassSolar is a rooftop photovoltaic array (producer, green energy).
	ClassSolar Class = "SOLAR"

	// ClassHostel is a residential hostel block (consumer).
	ClassHostel Class = "HOSTEL"

	// ClassLab is a laboratory building (consumer).
	ClassLab Class = "LAB"
)

// ErrInvalidClass is returned when a meter class is not one of the closed
// enumeration.
var ErrInvalidClass = errors.New("invalid meter class")

// ParseClass converts a string to a meter class, case-insensitively.
func ParseClass(s string) (Class, error) {
	c := Class(strings.ToUpper(s))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that the class belongs to the closed enumeration.
func (c Class) Validate() error {
	switch c {
	case ClassSolar, ClassHostel, ClassLab:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidClass, string(c))
	}
}

// String returns the class tag as a string.
func (c Class) String() string {
	return string(c)
}

// CarbonTag classifies the energy a meter handles as renewable-sourced
// (GREEN) or not (NORMAL).
type CarbonTag string

const (
	CarbonGreen  CarbonTag = "GREEN"
	CarbonNormal CarbonTag = "NORMAL"
)

// String returns the carbon tag as a string.
func (t CarbonTag) String() string {
	return string(t)
}
