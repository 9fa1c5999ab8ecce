package email

import (
	"fmt"
	"html"
)

// BookingApproved builds the notification sent when staff approve a
// counselling booking. meetLink may be empty for in-person sessions.
func BookingApproved(studentName, date, displayTime, meetLink, staffNotes string) (subject, body string) {
	subject = "Your counselling session is confirmed"
	body = fmt.Sprintf(
		"<p>Hi %s,</p><p>Your counselling session on <strong>%s</strong> at <strong>%s</strong> has been confirmed.</p>",
		html.EscapeString(studentName), html.EscapeString(date), html.EscapeString(displayTime))
	if meetLink != "" {
		body += fmt.Sprintf(`<p>Join online: <a href="%s">%s</a></p>`,
			html.EscapeString(meetLink), html.EscapeString(meetLink))
	}
	if staffNotes != "" {
		body += fmt.Sprintf("<p>Note from the wellness team: %s</p>", html.EscapeString(staffNotes))
	}
	body += "<p>MindBridge Wellness</p>"
	return subject, body
}

// BookingRejected builds the notification sent when staff decline a
// counselling booking.
func BookingRejected(studentName, date, displayTime, staffNotes string) (subject, body string) {
	subject = "Update on your counselling booking"
	body = fmt.Sprintf(
		"<p>Hi %s,</p><p>We could not confirm your counselling session requested for <strong>%s</strong> at <strong>%s</strong>.</p>",
		html.EscapeString(studentName), html.EscapeString(date), html.EscapeString(displayTime))
	if staffNotes != "" {
		body += fmt.Sprintf("<p>Reason: %s</p>", html.EscapeString(staffNotes))
	}
	body += "<p>Please book another time, or reach out to the wellness team directly.</p><p>MindBridge Wellness</p>"
	return subject, body
}
