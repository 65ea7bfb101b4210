package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DoneFrame terminates every event stream.
const DoneFrame = "data: [DONE]\n\n"

// EventKind discriminates StreamEvent values.
type EventKind int

const (
	// EventDelta carries a text fragment for one target.
	EventDelta EventKind = iota
	// EventFinal is a target's successful terminal event.
	EventFinal
	// EventFailure is a target's failed terminal event.
	EventFailure
	// EventError aborts the whole stream; it is always followed by EventDone.
	EventError
	// EventDone is the completion sentinel.
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventDelta:
		return "delta"
	case EventFinal:
		return "final"
	case EventFailure:
		return "failure"
	case EventError:
		return "error"
	case EventDone:
		return "done"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// StreamEvent is one unit of the merged output stream.
type StreamEvent struct {
	Kind     EventKind
	TargetID string
	Provider ProviderKind
	Model    string
	Content  string
	Summary  *UsageSummary
	Err      error
}

// IsTerminal reports whether the event ends its target.
func (e StreamEvent) IsTerminal() bool {
	return e.Kind == EventFinal || e.Kind == EventFailure
}

type deltaPayload struct {
	Provider string `json:"provider_name"`
	Model    string `json:"model_name"`
	Content  string `json:"content"`
	IsFinal  bool   `json:"is_final"`
}

type finalPayload struct {
	Provider         string    `json:"provider_name"`
	Model            string    `json:"model_name"`
	Content          string    `json:"content"`
	IsFinal          bool      `json:"is_final"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	Cost             float64   `json:"cost"`
	Latency          float64   `json:"latency"`
	CreatedAt        time.Time `json:"created_at"`
}

type failurePayload struct {
	Provider string `json:"provider_name"`
	Model    string `json:"model_name"`
	Error    string `json:"error"`
	IsFinal  bool   `json:"is_final"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// MarshalJSON renders the event in its wire shape.
func (e StreamEvent) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EventDelta:
		return json.Marshal(deltaPayload{
			Provider: string(e.Provider),
			Model:    e.Model,
			Content:  e.Content,
			IsFinal:  false,
		})
	case EventFinal:
		if e.Summary == nil {
			return nil, errors.New("final event without usage summary")
		}
		return json.Marshal(finalPayload{
			Provider:         string(e.Provider),
			Model:            e.Model,
			Content:          "",
			IsFinal:          true,
			PromptTokens:     e.Summary.PromptTokens,
			CompletionTokens: e.Summary.CompletionTokens,
			TotalTokens:      e.Summary.TotalTokens,
			Cost:             e.Summary.Cost,
			Latency:          e.Summary.LatencySeconds,
			CreatedAt:        e.Summary.CreatedAt,
		})
	case EventFailure:
		return json.Marshal(failurePayload{
			Provider: string(e.Provider),
			Model:    e.Model,
			Error:    errorMessage(e.Err),
			IsFinal:  true,
		})
	case EventError:
		return json.Marshal(errorPayload{Error: errorMessage(e.Err)})
	default:
		return nil, fmt.Errorf("event kind %s has no JSON form", e.Kind)
	}
}

// Frame renders the event as one server-sent-event frame.
func (e StreamEvent) Frame() ([]byte, error) {
	if e.Kind == EventDone {
		return []byte(DoneFrame), nil
	}

	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s event: %w", e.Kind, err)
	}

	frame := make([]byte, 0, len(data)+len("data: \n\n"))
	frame = append(frame, "data: "...)
	frame = append(frame, data...)
	frame = append(frame, "\n\n"...)
	return frame, nil
}

func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
