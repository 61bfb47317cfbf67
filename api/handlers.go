package api

import (
	"io"
	"net/http"

	"github.com/cwren/asmopt/lexer"
	"github.com/cwren/asmopt/optimizer"
	"github.com/cwren/asmopt/service"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionCreateRequest
	// A missing or empty body is fine: it just takes the architecture default.
	_ = readJSON(r, &req)

	sess := s.sessions.Create(req.Architecture)
	writeJSON(w, http.StatusCreated, SessionCreateResponse{ID: sess.ID()})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SessionListResponse{IDs: s.sessions.List()})
}

func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, id string) {
	if sess := s.sessions.Get(id); sess != nil {
		sess.Close()
	}
	s.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	original, optimized, replacements, removals := sess.Stats()
	writeJSON(w, http.StatusOK, SessionStatusResponse{
		ID:             sess.ID(),
		OriginalLines:  original,
		OptimizedLines: optimized,
		Replacements:   replacements,
		Removals:       removals,
	})
}

func (s *Server) handleLoadSource(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 8*1024*1024))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body: "+err.Error())
		return
	}
	sess.LoadSource(string(body))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req OptimizeRequest
	_ = readJSON(r, &req)

	sess.Configure(func(ctx *optimizer.Context) {
		if req.OptimizationLevel != nil {
			ctx.SetOptimizationLevel(*req.OptimizationLevel)
		}
		if req.TargetCPU != "" {
			ctx.SetTargetCPU(req.TargetCPU)
		}
		if req.Format != "" {
			ctx.SetFormat(lexer.ParseSyntax(req.Format))
		}
		for _, name := range req.Enable {
			ctx.EnableOptimization(name)
		}
		for _, name := range req.Disable {
			ctx.DisableOptimization(name)
		}
		if req.HotAlign {
			ctx.SetOption("hot_align", "1")
		}
	})

	if err := sess.Optimize(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	events := sess.Events()
	resp := make([]EventResponse, len(events))
	for i, e := range events {
		resp[i] = EventResponse{
			LineNo:        e.LineNo,
			Pattern:       e.Pattern,
			OriginalText:  e.OriginalText,
			OptimizedText: e.OptimizedText,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssembly(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	writeText(w, sess.Assembly())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	writeText(w, sess.Report())
}

func (s *Server) handleIR(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	writeText(w, sess.IRDump())
}

func (s *Server) handleCFG(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	writeText(w, sess.CFGDump())
}

func (s *Server) handleCFGDot(w http.ResponseWriter, r *http.Request, sess *service.Session) {
	writeText(w, sess.CFGDot())
}
