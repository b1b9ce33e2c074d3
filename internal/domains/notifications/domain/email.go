// Package domain holds the outbound notification message.
package domain

import (
	"errors"
	"strings"
)

var (
	ErrMissingRecipient = errors.New("email recipient is required")
	ErrMissingSubject   = errors.New("email subject is required")
)

// Email is a plain-text message. Reference ties the message to the event that caused it
// and takes part in deduplication.
type Email struct {
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Reference string `json:"reference,omitempty"`
}

// Validate trims the addressing fields and checks they are present.
func (e *Email) Validate() error {
	e.To = strings.TrimSpace(e.To)
	e.Subject = strings.TrimSpace(e.Subject)
	if e.To == "" || !strings.Contains(e.To, "@") {
		return ErrMissingRecipient
	}
	if e.Subject == "" {
		return ErrMissingSubject
	}
	return nil
}
