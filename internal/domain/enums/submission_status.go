package enums

type SubmissionStatus string

const (
	SubmissionStatusNew       SubmissionStatus = "new"
	SubmissionStatusContacted SubmissionStatus = "contacted"
	SubmissionStatusBooked    SubmissionStatus = "booked"
	SubmissionStatusArchived  SubmissionStatus = "archived"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusNew, SubmissionStatusContacted, SubmissionStatusBooked, SubmissionStatusArchived:
		return true
	}
	return false
}
