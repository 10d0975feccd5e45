package domain

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email is a message handed to the mail transport.
type Email struct {
	To          []string
	CC          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}
