// Package queue defines message payloads exchanged over the message broker.
package queue

// ContactReceivedQueue is the durable queue contact events are routed to.
const ContactReceivedQueue = "contact.received"

// ContactReceivedEvent is published after a contact form submission has been
// stored.  It carries enough for a CRM sync or analytics consumer to act
// without reading the primary database.
type ContactReceivedEvent struct {
	ContactID  string `json:"contact_id"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Brandname  string `json:"brandname"`
	MetaAds    string `json:"meta_ads"`
	Budget     string `json:"monthly_budget"`
	Source     string `json:"source"`
	ReceivedAt string `json:"received_at"`
}
