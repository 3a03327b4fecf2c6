package domain

// Mail is a plain-text message handed to the mail transport.
type Mail struct {
	From    string
	To      string
	Subject string
	Body    string
}
