package enums

type EventStatus string

const (
	EventStatusInquiry   EventStatus = "inquiry"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusInquiry, EventStatusConfirmed, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}
