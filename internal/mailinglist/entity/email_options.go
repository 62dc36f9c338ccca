package entity

// Attachment references a file sent along with an email.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// EmailOptions carries the transport parameters and the content of one email.
type EmailOptions struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment
}
