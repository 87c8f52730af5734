// Package mail renders and delivers the notification sent to the site
// owner when a contact form is submitted.
package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/wizonweb/wizon-server/internal/model"
)

// ContactSubject is the subject line of contact notifications.
const ContactSubject = "New Brand Consultation Form Submission"

var contactTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>New Brand Consultation Request</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Name</strong></td><td>{{.Firstname}} {{.Lastname}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>
    <tr><td><strong>Brand</strong></td><td>{{.Brandname}}</td></tr>
    <tr><td><strong>Running Meta ads</strong></td><td>{{.MetaAds}}</td></tr>
    <tr><td><strong>Monthly budget</strong></td><td>{{.MonthlyBudget}}</td></tr>
    <tr><td><strong>Submitted</strong></td><td>{{.Submitted}}</td></tr>
  </table>
  <h3>About the brand</h3>
  <p style="white-space: pre-wrap;">{{.Description}}</p>
</body>
</html>
`))

// RenderContactMessage returns the HTML body for c.  Every user-supplied
// field is escaped.
func RenderContactMessage(c *model.Contact) (string, error) {
	data := struct {
		*model.Contact
		Submitted string
	}{c, c.CreatedAt.UTC().Format("2006-01-02 15:04 MST")}

	var buf bytes.Buffer
	if err := contactTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render contact message: %w", err)
	}
	return buf.String(), nil
}
