package deepseek

import "time"

const (
	// DefaultBaseURL is the DeepSeek API endpoint
	DefaultBaseURL = "https://api.deepseek.com/v1"

	// DefaultModel is the default model to use
	DefaultModel = "deepseek-chat"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)

// Response format types
const (
	ResponseFormatText = "text"
	ResponseFormatJSON = "json_object"
)
