package notify

import (
	"time"

	"github.com/switchgames/site/store"
)

// Discord embed colors: cyan for contact messages, blue for applications.
const (
	contactColor     = 65535
	applicationColor = 3447003
)

// fieldValueLimit is Discord's per-field value cap; longer values are
// truncated to 1021 characters plus an ellipsis.
const fieldValueLimit = 1024

type message struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Title     string  `json:"title"`
	Color     int     `json:"color"`
	Fields    []field `json:"fields"`
	Timestamp string  `json:"timestamp"`
	Footer    footer  `json:"footer"`
}

type field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type footer struct {
	Text string `json:"text"`
}

// ContactReceived enqueues a contact-form summary.
func (d *Dispatcher) ContactReceived(c store.Contact) {
	d.enqueue(message{Embeds: []embed{{
		Title: "\U0001F4E7 New Contact Form Submission",
		Color: contactColor,
		Fields: []field{
			{Name: "Name", Value: c.Name, Inline: true},
			{Name: "Email", Value: c.Email, Inline: true},
			{Name: "Subject", Value: c.Subject},
			{Name: "Message", Value: truncate(c.Message)},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    footer{Text: "Switch Games Contact Form"},
	}}})
}

// ApplicationReceived enqueues a job-application summary, including the
// per-question answers.
func (d *Dispatcher) ApplicationReceived(a store.Application) {
	fields := []field{
		{Name: "Position", Value: a.Position},
		{Name: "Name", Value: a.Name, Inline: true},
		{Name: "Email", Value: a.Email, Inline: true},
		{Name: "Discord", Value: orNotProvided(a.Discord), Inline: true},
		{Name: "Portfolio", Value: orNotProvided(a.Portfolio)},
		{Name: "Experience & Why They're a Good Fit", Value: truncate(a.Experience)},
	}
	for _, ans := range a.Answers {
		if ans.Question == "" || ans.Answer == "" {
			continue
		}
		fields = append(fields, field{Name: ans.Question, Value: truncate(ans.Answer)})
	}

	d.enqueue(message{Embeds: []embed{{
		Title:     "\U0001F4BC New Job Application",
		Color:     applicationColor,
		Fields:    fields,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer:    footer{Text: "Switch Games Job Application"},
	}}})
}

func truncate(s string) string {
	if len(s) > fieldValueLimit {
		return s[:fieldValueLimit-3] + "..."
	}
	return s
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
