package model

import "time"

// Meta ads answers accepted on the contact form.
const (
	MetaAdsYes = "yes"
	MetaAdsNo  = "no"
)

// ContactSourceForm tags contacts created by the public form.
const ContactSourceForm = "contacts-form"

// Contact is a brand consultation request submitted through the public
// form.  IsSeen is the only field that changes after creation.
type Contact struct {
	ID            string    `json:"id"`
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Brandname     string    `json:"brandname"`
	MetaAds       string    `json:"metaAds"`
	MonthlyBudget string    `json:"monthlyBudget"`
	Description   string    `json:"description"`
	IsSeen        bool      `json:"isSeen"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ContactStats summarises the inbox for the dashboard badge.
type ContactStats struct {
	Total  int64 `json:"total"`
	Seen   int64 `json:"seen"`
	Unseen int64 `json:"unseen"`
}
