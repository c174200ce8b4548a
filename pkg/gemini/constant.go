package gemini

import "time"

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultAPIURL  = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout = 30 * time.Second

	// MIMETypeJSON constrains the model to answer with JSON.
	MIMETypeJSON = "application/json"
)
