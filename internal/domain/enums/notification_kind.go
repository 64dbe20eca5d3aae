package enums

type NotificationKind string

const (
	NotificationKindFormSubmission NotificationKind = "form_submission"
	NotificationKindEventReminder  NotificationKind = "event_reminder"
	NotificationKindSystem         NotificationKind = "system"
)
