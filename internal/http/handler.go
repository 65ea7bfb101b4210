package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/davidbz/llmcompare/internal/catalog"
	"github.com/davidbz/llmcompare/internal/domain"
	"github.com/davidbz/llmcompare/internal/observability"
)

// UserIDHeader carries the caller identity set by the upstream auth layer.
const UserIDHeader = "X-User-Id"

const maxBodyBytes = 1 << 20

// Handler handles HTTP requests.
type Handler struct {
	comparisons *domain.ComparisonService
	chat        *domain.ChatService
	history     *domain.HistoryService
	catalog     *catalog.Catalog
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	comparisons *domain.ComparisonService,
	chat *domain.ChatService,
	history *domain.HistoryService,
	models *catalog.Catalog,
) *Handler {
	return &Handler{
		comparisons: comparisons,
		chat:        chat,
		history:     history,
		catalog:     models,
	}
}

// HandleCompareStream streams a multi-target comparison as server-sent events.
func (h *Handler) HandleCompareStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.ComparisonRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, domain.NewRequestError(err))
		return
	}

	observability.FromContext(ctx).Info("comparison request received",
		observability.Int("targets", len(req.ProviderModels)),
		observability.Int("max_tokens", req.MaxTokens),
	)

	events, err := h.comparisons.Compare(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	streamEvents(ctx, w, events)
}

// HandleChatTurn streams one chat turn of a session as server-sent events.
func (h *Handler) HandleChatTurn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req domain.ChatTurnRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, domain.NewRequestError(err))
		return
	}
	req.UserID = userID
	req.SessionID = r.PathValue("id")

	ctx = observability.WithProvider(ctx, req.Provider)
	ctx = observability.WithModel(ctx, req.Model)
	observability.FromContext(ctx).Info("chat turn received",
		observability.String("session_id", req.SessionID),
	)

	events, err := h.chat.Turn(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	streamEvents(ctx, w, events)
}

// HandleCreateSession creates a chat session for the caller.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req domain.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, domain.NewRequestError(err))
		return
	}
	req.UserID = userID

	session, err := h.chat.CreateSession(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, session)
}

// HandleListSessions lists one page of the caller's sessions. The optional
// provider, skip and limit query parameters narrow the page.
func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	skip, err := intParam(query.Get("skip"))
	if err != nil {
		writeError(ctx, w, domain.RequestErrorf("invalid skip: %w", err))
		return
	}
	limit, err := intParam(query.Get("limit"))
	if err != nil {
		writeError(ctx, w, domain.RequestErrorf("invalid limit: %w", err))
		return
	}
	if query.Has("limit") && limit == 0 {
		writeError(ctx, w, domain.RequestErrorf("limit must be between 1 and %d", domain.MaxSessionPageSize))
		return
	}

	page, err := h.chat.ListSessions(ctx, &domain.ListSessionsRequest{
		UserID:   userID,
		Provider: query.Get("provider"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if page.Sessions == nil {
		page.Sessions = []*domain.ChatSession{}
	}

	writeJSON(ctx, w, http.StatusOK, page)
}

// HandleUpdateSession changes the metadata of one of the caller's sessions.
func (h *Handler) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req domain.UpdateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, domain.NewRequestError(err))
		return
	}
	req.UserID = userID
	req.SessionID = r.PathValue("id")

	session, err := h.chat.UpdateSession(ctx, &req)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, session)
}

// HandleGetSession returns one session together with its messages.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	session, messages, err := h.chat.GetSession(ctx, userID, r.PathValue("id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if messages == nil {
		messages = []*domain.ChatMessage{}
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"session":  session,
		"messages": messages,
	})
}

// HandleDeleteSession deletes one of the caller's sessions.
func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.chat.DeleteSession(ctx, userID, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSaveComparison persists an already computed comparison.
func (h *Handler) HandleSaveComparison(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var record domain.ComparisonRecord
	if err := decodeBody(r, &record); err != nil {
		writeError(ctx, w, domain.NewRequestError(err))
		return
	}
	record.UserID = userID

	saved, err := h.history.Save(ctx, &record)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, saved)
}

// HandleListComparisons lists the caller's saved comparisons.
func (h *Handler) HandleListComparisons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	records, err := h.history.List(ctx, userID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if records == nil {
		records = []*domain.ComparisonRecord{}
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"comparisons": records})
}

// HandleDeleteComparison deletes one of the caller's saved comparisons.
func (h *Handler) HandleDeleteComparison(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.history.Delete(ctx, userID, r.PathValue("id")); err != nil {
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListModels lists every priced model in the catalog.
func (h *Handler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"models":       h.catalog.Models(ctx),
		"refreshed_at": h.catalog.RefreshedAt(),
	})
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// streamEvents writes every event as one SSE frame until the channel closes.
func streamEvents(ctx context.Context, w http.ResponseWriter, events <-chan domain.StreamEvent) {
	logger := observability.FromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("streaming not supported")
		writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Error: "streaming not supported"})
		return
	}

	// Streams outlive the server write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil &&
		!errors.Is(err, http.ErrNotSupported) {
		logger.Warn("failed to clear write deadline", observability.Error(err))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	frames := 0
	for event := range events {
		frame, err := event.Frame()
		if err != nil {
			logger.Error("failed to encode event", observability.Error(err))
			continue
		}

		if _, err := w.Write(frame); err != nil {
			// The client went away; the producer stops on context cancellation.
			logger.Warn("stream write failed", observability.Error(err))
			return
		}
		flusher.Flush()
		frames++
	}

	logger.Info("stream completed", observability.Int("frames", frames))
}

type errorBody struct {
	Error string `json:"error"`
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case domain.IsRequestError(err):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrComparisonNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)

	logger := observability.FromContext(ctx)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", observability.Int("status", status), observability.Error(err))
		writeJSON(ctx, w, status, errorBody{Error: http.StatusText(status)})
		return
	}

	logger.Info("request rejected", observability.Int("status", status), observability.Error(err))
	writeJSON(ctx, w, status, errorBody{Error: err.Error()})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status already written, just log.
		observability.FromContext(ctx).Error("failed to encode response", observability.Error(err))
	}
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if userID == "" {
		writeJSON(r.Context(), w, http.StatusUnauthorized, errorBody{Error: "missing " + UserIDHeader + " header"})
		return "", false
	}
	return userID, true
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// intParam parses an optional integer query parameter; empty means zero.
func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
