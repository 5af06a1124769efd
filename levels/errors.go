package levels

import "fmt"

// NotFoundError is returned when no file exists for a room id.
type NotFoundError struct {
	Room RoomID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("levels: room %d not found", e.Room)
}

// ParseError is returned when a room file exists but cannot be read or
// decoded.
type ParseError struct {
	Room RoomID
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("levels: parse room %d: %v", e.Room, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when a room file decodes but violates the level
// format contract.
type ValidationError struct {
	Room   RoomID
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("levels: invalid room %d: %s", e.Room, e.Reason)
}
