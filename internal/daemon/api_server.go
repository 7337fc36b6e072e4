package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"minutes/internal/api"
	"minutes/internal/config"
	"minutes/internal/extraction"
	"minutes/internal/export"
	"minutes/internal/logging"
	"minutes/internal/store"
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("api bind address required")
	}

	srv := &apiServer{
		bind:   bind,
		logger: logging.NewComponentLogger(logger, "api-server"),
		daemon: d,
	}

	token := cfg.Paths.APIToken
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", authMiddleware(token, srv.handleStatus))
	mux.HandleFunc("/api/transcripts", authMiddleware(token, srv.handleTranscripts))
	mux.HandleFunc("/api/transcripts/", authMiddleware(token, srv.handleTranscript))
	mux.HandleFunc("/api/items", authMiddleware(token, srv.handleItems))
	mux.HandleFunc("/api/items/", authMiddleware(token, srv.handleItem))
	mux.HandleFunc("/api/export", authMiddleware(token, srv.handleExport))
	mux.HandleFunc("/api/stats", authMiddleware(token, srv.handleStats))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listener address, useful when binding to port 0.
func (s *apiServer) addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	s.writeJSON(w, http.StatusOK, api.StatusPayload{
		Running:      status.Running,
		PID:          status.PID,
		DatabasePath: status.DatabasePath,
		LockFilePath: status.LockFilePath,
		DBConnected:  status.DBConnected,
		LLMConnected: status.LLMConnected,
		Model:        status.Model,
	})
}

func (s *apiServer) handleTranscripts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		transcripts, err := s.daemon.store.ListTranscripts(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		payloads := make([]api.TranscriptPayload, 0, len(transcripts))
		for _, transcript := range transcripts {
			payloads = append(payloads, api.FromTranscript(transcript))
		}
		s.writeJSON(w, http.StatusOK, api.TranscriptListResponse{Transcripts: payloads})
	case http.MethodPost:
		var req api.ProcessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		result := s.daemon.processor.Process(r.Context(), req.Text)
		if !result.Success {
			s.writeJSON(w, http.StatusUnprocessableEntity, api.ProcessResponse{Error: result.Error})
			return
		}
		payload := api.FromTranscript(result.Transcript)
		s.writeJSON(w, http.StatusCreated, api.ProcessResponse{Success: true, Transcript: &payload})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/transcripts/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "transcript not found")
		return
	}
	transcript, err := s.daemon.store.GetTranscript(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "transcript not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromTranscript(transcript))
}

func (s *apiServer) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()

		var items []store.ActionItem
		var err error
		if transcriptID := strings.TrimSpace(query.Get("transcript")); transcriptID != "" {
			items, err = s.daemon.store.ListActionItemsByTranscript(r.Context(), transcriptID)
		} else {
			items, err = s.daemon.store.SearchActionItems(r.Context(), query.Get("q"))
		}
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		items, err = filterItems(items, query.Get("done"), query.Get("priority"))
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.ItemListResponse{Items: api.FromActionItems(items)})
	case http.MethodPost:
		var req api.CreateItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		input := extraction.ActionItemInput{
			Description: strings.TrimSpace(req.Description),
			Owner:       req.Owner,
			Priority:    extraction.NormalizePriority(req.Priority),
			Tags:        req.Tags,
		}
		if input.Description == "" {
			s.writeItemError(w, http.StatusBadRequest, "description is required")
			return
		}
		if req.DueDate != nil && *req.DueDate != "" {
			parsed, err := time.Parse("2006-01-02", *req.DueDate)
			if err != nil {
				s.writeItemError(w, http.StatusBadRequest, "dueDate must be YYYY-MM-DD")
				return
			}
			input.DueDate = &parsed
		}
		item, err := s.daemon.store.CreateActionItem(r.Context(), req.TranscriptID, input)
		if errors.Is(err, store.ErrNotFound) {
			s.writeItemError(w, http.StatusNotFound, "transcript not found")
			return
		}
		if err != nil {
			s.writeItemError(w, http.StatusInternalServerError, err.Error())
			return
		}
		payload := api.FromActionItem(*item)
		s.writeJSON(w, http.StatusCreated, api.ItemResponse{Success: true, Item: &payload})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/items/")
	if rest == "" {
		s.writeError(w, http.StatusNotFound, "action item not found")
		return
	}

	if id, ok := strings.CutSuffix(rest, "/toggle"); ok {
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.toggleItem(w, r, id)
		return
	}
	if strings.Contains(rest, "/") {
		s.writeError(w, http.StatusNotFound, "action item not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := s.daemon.store.GetActionItem(r.Context(), rest)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "action item not found")
			return
		}
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.FromActionItem(*item))
	case http.MethodPatch, http.MethodPut:
		s.updateItem(w, r, rest)
	case http.MethodDelete:
		err := s.daemon.store.DeleteActionItem(r.Context(), rest)
		if errors.Is(err, store.ErrNotFound) {
			s.writeItemError(w, http.StatusNotFound, "action item not found")
			return
		}
		if err != nil {
			s.writeItemError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.ItemResponse{Success: true})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// filterItems applies the optional done and priority query filters.
func filterItems(items []store.ActionItem, doneParam, priorityParam string) ([]store.ActionItem, error) {
	filterDone := false
	var wantDone bool
	if doneParam != "" {
		parsed, err := strconv.ParseBool(doneParam)
		if err != nil {
			return nil, errors.New("done must be true or false")
		}
		filterDone = true
		wantDone = parsed
	}

	var wantPriority extraction.Priority
	if priorityParam != "" {
		candidate := extraction.Priority(strings.ToLower(strings.TrimSpace(priorityParam)))
		switch candidate {
		case extraction.PriorityHigh, extraction.PriorityMedium, extraction.PriorityLow:
			wantPriority = candidate
		default:
			return nil, errors.New("priority must be high, medium, or low")
		}
	}

	if !filterDone && wantPriority == "" {
		return items, nil
	}
	filtered := make([]store.ActionItem, 0, len(items))
	for _, item := range items {
		if filterDone && item.IsDone != wantDone {
			continue
		}
		if wantPriority != "" && item.Priority != wantPriority {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered, nil
}

func (s *apiServer) updateItem(w http.ResponseWriter, r *http.Request, id string) {
	var req api.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeItemError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := store.ActionItemUpdate{Description: req.Description}
	if req.Priority != nil {
		priority := extraction.NormalizePriority(*req.Priority)
		update.Priority = &priority
	}
	if req.Tags != nil {
		update.Tags = *req.Tags
		update.TagsSet = true
	}
	if len(req.Owner) > 0 {
		update.OwnerSet = true
		if string(req.Owner) != "null" {
			var owner string
			if err := json.Unmarshal(req.Owner, &owner); err != nil {
				s.writeItemError(w, http.StatusBadRequest, "owner must be a string or null")
				return
			}
			if owner != "" {
				update.Owner = &owner
			}
		}
	}
	if len(req.DueDate) > 0 {
		update.DueDateSet = true
		if string(req.DueDate) != "null" {
			var due string
			if err := json.Unmarshal(req.DueDate, &due); err != nil {
				s.writeItemError(w, http.StatusBadRequest, "dueDate must be a string or null")
				return
			}
			parsed, err := time.Parse("2006-01-02", due)
			if err != nil {
				s.writeItemError(w, http.StatusBadRequest, "dueDate must be YYYY-MM-DD")
				return
			}
			update.DueDate = &parsed
		}
	}

	item, err := s.daemon.store.UpdateActionItem(r.Context(), id, update)
	if errors.Is(err, store.ErrNotFound) {
		s.writeItemError(w, http.StatusNotFound, "action item not found")
		return
	}
	if err != nil {
		s.writeItemError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := api.FromActionItem(*item)
	s.writeJSON(w, http.StatusOK, api.ItemResponse{Success: true, Item: &payload})
}

func (s *apiServer) toggleItem(w http.ResponseWriter, r *http.Request, id string) {
	item, err := s.daemon.store.ToggleActionItemDone(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeItemError(w, http.StatusNotFound, "action item not found")
		return
	}
	if err != nil {
		s.writeItemError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := api.FromActionItem(*item)
	s.writeJSON(w, http.StatusOK, api.ItemResponse{Success: true, Item: &payload})
}

func (s *apiServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var transcripts []*store.Transcript
	if id := strings.TrimSpace(r.URL.Query().Get("transcriptId")); id != "" {
		transcript, err := s.daemon.store.GetTranscript(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "transcript not found")
			return
		}
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		transcripts = []*store.Transcript{transcript}
	} else {
		all, err := s.daemon.store.ListTranscripts(r.Context())
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		transcripts = all
	}

	filename := export.Filename(time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteCSV(w, transcripts); err != nil {
		s.logger.Error("write csv export", logging.Error(err))
	}
}

func (s *apiServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	stats, err := s.daemon.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromStats(stats))
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) writeItemError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ItemResponse{Error: message})
}
