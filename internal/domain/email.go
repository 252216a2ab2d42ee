package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ResponseReceivedEmailData holds data for the "new RSVP" email sent to the couple.
type ResponseReceivedEmailData struct {
	FullName   string
	Phone      string
	Attendance bool
	Message    string
	EventTitle string
}

// ResponseNotifier is told about every new guest response.
type ResponseNotifier interface {
	ResponseReceived(ctx context.Context, data *ResponseReceivedEmailData) error
}

// SubmissionRecorder observes accepted guest submissions (metrics).
type SubmissionRecorder interface {
	ObserveSubmission(attendance bool)
}
