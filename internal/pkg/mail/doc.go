// Package mail sends outbound messages through SMTP, Postmark or AWS SES.
//
// Callers build a Message and hand it to a Mail; the driver is chosen once
// at startup by NewFromDriver. Bodies are rendered as multipart MIME when a
// message carries both text and HTML or has attachments.
package mail
