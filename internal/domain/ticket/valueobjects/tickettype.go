package valueobjects

import "fmt"

// TicketType classifies the kind of equipment work a ticket tracks.
type TicketType string

const (
	TypeFault       TicketType = "fault"
	TypeMaintenance TicketType = "maintenance"
	TypeInspection  TicketType = "inspection"
	TypeUpgrade     TicketType = "upgrade"
)

var validTicketTypes = map[TicketType]bool{
	TypeFault:       true,
	TypeMaintenance: true,
	TypeInspection:  true,
	TypeUpgrade:     true,
}

func (t TicketType) String() string {
	return string(t)
}

func (t TicketType) IsValid() bool {
	return validTicketTypes[t]
}

func NewTicketType(s string) (TicketType, error) {
	t := TicketType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return t, nil
}
