package llm

// Log prefixes
const (
	LogPrefixProcess = "internal.engine.llm.Process"
	LogPrefixTrain   = "internal.engine.llm.Train"
)

// Classifier prompts
const (
	PromptSystem = `You are an intent classifier for a chat bot.
Classify the user's message into exactly one of the intents below, or "None" when no intent fits.

Intents (name: example utterances):
%s
Return JSON with format:
{
  "intent": "<intent name or None>",
  "score": 0.0-1.0,
  "reasoning": "short explanation"
}`

	PromptIntentLine = "- %s: %s\n"
)

// Classifier configuration
const (
	Temperature     = 0.1
	MaxTokens       = 256
	DefaultExamples = 5
)

// Warning messages
const (
	WarnMsgJSONParseFailed = "Failed to parse JSON, falling back to None"
	WarnMsgEmptyResponse   = "Empty LLM response, falling back to None"
	WarnMsgUnknownIntent   = "LLM answered an unknown intent, falling back to None"
)
