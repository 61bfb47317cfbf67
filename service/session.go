// Package service provides a thread-safe wrapper around an optimizer
// session, shared by the CLI, the HTTP API, the TUI browser, and the
// desktop viewer so none of them juggle their own locking.
//
// Lock Ordering:
// Session guards all field access, including the optimizer.Context,
// with its own sync.RWMutex (s.mu). Context itself is not safe for
// concurrent mutation, so every access goes through s.mu; there is no
// second, inner lock to order against.
package service

import (
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/cwren/asmopt/lexer"
	"github.com/cwren/asmopt/optimizer"
	"github.com/cwren/asmopt/pattern"
	"github.com/cwren/asmopt/report"
)

var sessionLog *log.Logger

func init() {
	if os.Getenv("ASMOPT_DEBUG") != "" {
		logPath := filepath.Join(os.TempDir(), "asmopt-service-debug.log")
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600) // #nosec G304 -- fixed filename in temp dir
		if err != nil {
			sessionLog = log.New(os.Stderr, "SERVICE: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
		} else {
			sessionLog = log.New(f, "SERVICE: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
		}
	} else {
		sessionLog = log.New(io.Discard, "", 0)
	}
}

// Session is a single named optimization session: one optimizer.Context
// plus the identifying metadata the HTTP API and browsers need.
type Session struct {
	mu  sync.RWMutex
	id  string
	ctx *optimizer.Context
}

// Registry tracks live sessions by ID. The zero value is ready to use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create starts a new session for the given architecture and returns it.
func (r *Registry) Create(architecture string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions == nil {
		r.sessions = make(map[string]*Session)
	}

	id := newSessionID()
	s := &Session{id: id, ctx: optimizer.New(architecture)}
	r.sessions[id] = s
	sessionLog.Printf("Create: id=%s architecture=%s", id, architecture)
	return s
}

// Get returns the session with the given ID, or nil if it doesn't exist.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Delete removes a session from the registry.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	sessionLog.Printf("Delete: id=%s", id)
}

// List returns the IDs of all live sessions.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

func newSessionID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))] // #nosec G404 -- session IDs are identifiers, not secrets
	}
	return string(b)
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// LoadSource parses text into the session, discarding any prior parse.
func (s *Session) LoadSource(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.ParseString(text)
	sessionLog.Printf("LoadSource: id=%s bytes=%d", s.id, len(text))
}

// Configure applies CLI/config-style settings to the session's context.
// architecture is intentionally excluded: it is fixed at Create time.
func (s *Session) Configure(fn func(*optimizer.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ctx)
}

// Optimize runs the peephole pass and returns any parse-state error.
func (s *Session) Optimize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.ctx.Optimize()
	sessionLog.Printf("Optimize: id=%s err=%v events=%d", s.id, err, len(s.ctx.Events))
	return err
}

// Assembly returns the current optimized (or original, if unoptimized) text.
func (s *Session) Assembly() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.GenerateAssembly(s.ctx)
}

// OriginalSource returns the unmodified text that was last loaded.
func (s *Session) OriginalSource() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lexer.JoinLines(s.ctx.OriginalLines, s.ctx.TrailingNewline)
}

// Report returns the plain-text optimization report.
func (s *Session) Report() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.GenerateReport(s.ctx)
}

// IRDump returns the text IR dump.
func (s *Session) IRDump() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.DumpIRText(s.ctx)
}

// CFGDump returns the text CFG dump.
func (s *Session) CFGDump() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.DumpCFGText(s.ctx)
}

// CFGDot returns the Graphviz DOT rendering of the CFG.
func (s *Session) CFGDot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return report.DumpCFGDot(s.ctx)
}

// Stats returns the original/optimized/replacements/removals tuple.
func (s *Session) Stats() (original, optimized, replacements, removals int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx.GetStats()
}

// Events returns a copy of the events recorded by the last Optimize call.
func (s *Session) Events() []pattern.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]pattern.Event(nil), s.ctx.Events...)
}

// Close releases the session's buffers.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx.Destroy()
}
