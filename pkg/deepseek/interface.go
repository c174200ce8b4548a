package deepseek

import "context"

// IDeepSeek is a chat completions client for DeepSeek and other
// OpenAI-compatible endpoints (DashScope compatible mode for Qwen).
type IDeepSeek interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the default model of the client
	Model() string
}
