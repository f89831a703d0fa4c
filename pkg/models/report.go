package models

import "time"

// Section is one titled block of a report. Body is pre-formatted text
// whose line breaks must be preserved by renderers.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Report is an ordered list of sections. Section order is display order.
type Report struct {
	Language    string    `json:"language"`
	Hostname    string    `json:"hostname,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Fatal       bool      `json:"fatal,omitempty"` // Set when the report is a single diagnostic section
	Sections    []Section `json:"sections"`
}

// Add appends a section.
func (r *Report) Add(title, body string) {
	r.Sections = append(r.Sections, Section{Title: title, Body: body})
}

// Len returns the number of sections.
func (r *Report) Len() int {
	return len(r.Sections)
}

// Titles returns section titles in order.
func (r *Report) Titles() []string {
	titles := make([]string, len(r.Sections))
	for i, section := range r.Sections {
		titles[i] = section.Title
	}
	return titles
}

// Body returns the body of the first section with the given title.
func (r *Report) Body(title string) (string, bool) {
	for _, section := range r.Sections {
		if section.Title == title {
			return section.Body, true
		}
	}
	return "", false
}

// ReportPayload is what the exporter posts to a collection endpoint.
// Authentication is done via token in Authorization header.
type ReportPayload struct {
	ReportID  string    `json:"report_id"`
	Hostname  string    `json:"hostname"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"` // "complete" or "diagnostic"
	Report    *Report   `json:"report"`
}

// ServerResponse is the collection endpoint's receipt for a stored report.
type ServerResponse struct {
	ID      string `json:"id,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
