package domain

import "time"

// Message roles understood by every adapter.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// StreamRequest is what an adapter needs to open one token stream.
type StreamRequest struct {
	Model     string
	Messages  []Message
	MaxTokens int
}

// ItemKind discriminates the items an adapter yields.
type ItemKind int

const (
	// ItemDelta carries an incremental text fragment.
	ItemDelta ItemKind = iota
	// ItemUsage is the terminal usage record of a successful stream.
	ItemUsage
	// ItemError is the terminal error of a failed stream.
	ItemError
)

// StreamItem is one value yielded by a ProviderAdapter stream.
type StreamItem struct {
	Kind  ItemKind
	Text  string
	Usage Usage
	Err   error
}

// DeltaItem builds a text delta item.
func DeltaItem(text string) StreamItem {
	return StreamItem{Kind: ItemDelta, Text: text}
}

// UsageItem builds the terminal usage item.
func UsageItem(usage Usage) StreamItem {
	return StreamItem{Kind: ItemUsage, Usage: usage}
}

// ErrorItem builds the terminal error item.
func ErrorItem(err error) StreamItem {
	return StreamItem{Kind: ItemError, Err: err}
}

// Usage tracks token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NewUsage builds a Usage whose total is the sum of its parts.
func NewUsage(promptTokens, completionTokens int) Usage {
	if promptTokens < 0 {
		promptTokens = 0
	}
	if completionTokens < 0 {
		completionTokens = 0
	}
	return Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}

// UsageSummary is the accounting attached to a target's Final event.
type UsageSummary struct {
	Usage
	LatencySeconds float64   `json:"latency"`
	Cost           float64   `json:"cost"`
	CreatedAt      time.Time `json:"created_at"`
}

// ComparisonRequest asks for one prompt to be streamed against several targets.
type ComparisonRequest struct {
	Prompt         string            `json:"prompt"`
	ProviderModels map[string]string `json:"provider_models"`
	MaxTokens      int               `json:"max_tokens"`
}

// ComparisonRecord is a comparison the caller chose to keep.
type ComparisonRecord struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	Prompt    string               `json:"prompt"`
	Responses []ComparisonResponse `json:"responses"`
	CreatedAt time.Time            `json:"created_at"`
}

// ComparisonResponse is one target's outcome within a ComparisonRecord.
type ComparisonResponse struct {
	Provider         string  `json:"provider_name"`
	Model            string  `json:"model_name"`
	Content          string  `json:"content"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	Cost             float64 `json:"cost"`
	LatencySeconds   float64 `json:"latency"`
}
