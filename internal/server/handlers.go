package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scorecard/internal/analysis"
	"github.com/sells-group/scorecard/internal/model"
	"github.com/sells-group/scorecard/internal/render"
	"github.com/sells-group/scorecard/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req model.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.SubcomponentID) == "" {
		writeError(w, http.StatusBadRequest, "subcomponent_id is required")
		return
	}

	res, err := s.svc.Analyze(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type subcomponentResponse struct {
	model.Subcomponent
	Defaulted bool `json:"defaulted"`
}

func (s *Server) handleSubcomponent(w http.ResponseWriter, r *http.Request) {
	sub, defaulted, err := s.svc.Subcomponent(chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subcomponentResponse{Subcomponent: sub, Defaulted: defaulted})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Get(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "session"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.opts.DefaultFormat
	}

	doc, err := s.svc.Report(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "session"), format)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		zap.L().Warn("server: write report", zap.Error(err))
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.HistoryFilter{SubcomponentID: q.Get("subcomponent")}

	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	recs, err := s.svc.History(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if recs == nil {
		recs = []model.HistoryRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := model.Schema(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown schema; expected one of "+strings.Join(model.SchemaNames(), ", "))
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, analysis.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, render.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "report rendering timed out")
	default:
		zap.L().Error("server: request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, eris.Errorf("invalid integer %q", v)
	}
	return n, nil
}
