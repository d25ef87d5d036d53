package miditrack

import "fmt"

type (
	// ValidationError is returned by the Validate methods when a numeric field
	// of an event is outside of its valid range.
	ValidationError struct {
		Field string  // e.g. "controller number", "program number" or "value"
		Value float64 // the offending value
		Min   float64
		Max   float64
		Ticks int // position of the offending event
	}

	// PreconditionError is returned by InsertChecked when the sequence it was
	// given is not sorted ascending by the key.
	PreconditionError struct {
		// Index is the index of the first element that is smaller than its
		// predecessor.
		Index int
	}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %v at tick %d out of range [%v, %v]", e.Field, e.Value, e.Ticks, e.Min, e.Max)
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("sequence not sorted: element %d is smaller than its predecessor", e.Index)
}

func checkRange(field string, value, lo, hi float64, ticks int) error {
	if value < lo || value > hi {
		return &ValidationError{Field: field, Value: value, Min: lo, Max: hi, Ticks: ticks}
	}
	return nil
}
