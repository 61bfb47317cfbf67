// Package optimizer ties the lexer, IR builder, CFG builder, and pattern
// engine together behind a single Context type: the process-local handle
// for one optimization session, mirroring the reference implementation's
// create/parse/optimize/generate/destroy lifecycle.
package optimizer

import (
	"os"

	"github.com/cwren/asmopt/cfg"
	"github.com/cwren/asmopt/ir"
	"github.com/cwren/asmopt/lexer"
	"github.com/cwren/asmopt/pattern"
)

// Context is a single optimization session. It is not safe for concurrent
// mutation; callers driving multiple contexts in parallel must keep them
// disjoint (see service.Session for a mutex-guarded wrapper).
type Context struct {
	Architecture      string
	TargetCPU         string
	Format            lexer.Syntax
	OptimizationLevel int
	NoOptimize        bool
	PreserveAll       bool
	AMDOptimizations  bool
	EnabledOpts       map[string]bool
	DisabledOpts      map[string]bool
	Options           map[string]string

	OriginalLines   []string
	TrailingNewline bool
	OptimizedLines  []string

	IR   []ir.Line
	CFG  []cfg.Block
	Edges []cfg.Edge

	Events []pattern.Event

	parsed bool
}

// New creates a Context with the documented defaults: architecture
// defaults to "x86-64", optimization level 2, AMD optimizations on, the
// peephole optimization enabled.
func New(architecture string) *Context {
	if architecture == "" {
		architecture = "x86-64"
	}
	return &Context{
		Architecture:      architecture,
		TargetCPU:         "generic",
		OptimizationLevel: 2,
		AMDOptimizations:  true,
		EnabledOpts:       map[string]bool{"peephole": true},
		DisabledOpts:      map[string]bool{},
		Options:           map[string]string{},
	}
}

// SetOption sets a generic key=value option. The only key the engine reads
// is "hot_align" ("1" enables); every other key, including "march" and
// "mtune", is only retained verbatim for inspection.
func (c *Context) SetOption(key, value string) {
	c.Options[key] = value
}

// SetOptimizationLevel clamps L to [0,4].
func (c *Context) SetOptimizationLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > 4 {
		level = 4
	}
	c.OptimizationLevel = level
}

func (c *Context) SetTargetCPU(name string) {
	if name == "" {
		name = "generic"
	}
	c.TargetCPU = name
}

// SetFormat overrides syntax detection; pass lexer.SyntaxUnset to restore
// autodetection.
func (c *Context) SetFormat(format lexer.Syntax) {
	c.Format = format
}

func (c *Context) SetNoOptimize(v bool)       { c.NoOptimize = v }
func (c *Context) SetPreserveAll(v bool)      { c.PreserveAll = v }
func (c *Context) SetAMDOptimizations(v bool) { c.AMDOptimizations = v }

// EnableOptimization marks name enabled and clears it from the disabled set.
func (c *Context) EnableOptimization(name string) {
	c.EnabledOpts[name] = true
	delete(c.DisabledOpts, name)
}

// DisableOptimization marks name disabled. The special name "all" disables
// everything and wipes the enabled set.
func (c *Context) DisableOptimization(name string) {
	if name == "all" {
		c.EnabledOpts = map[string]bool{}
		c.DisabledOpts["all"] = true
		return
	}
	c.DisabledOpts[name] = true
	delete(c.EnabledOpts, name)
}

func (c *Context) reset() {
	c.OptimizedLines = nil
	c.IR = nil
	c.CFG = nil
	c.Edges = nil
	c.Events = nil
}

// ParseString (re)initializes the session's buffers from in-memory text.
func (c *Context) ParseString(text string) {
	c.reset()
	c.OriginalLines, c.TrailingNewline = lexer.SplitLines(text)
	c.IR = ir.Build(c.OriginalLines)
	c.CFG, c.Edges = cfg.Build(c.IR)
	c.parsed = true
}

// ParseFile reads path and parses it as ParseString would.
func (c *Context) ParseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewError(Position{Filename: path}, ErrorInput, err.Error())
	}
	c.ParseString(string(data))
	return nil
}

func (c *Context) peepholeActive() bool {
	if c.DisabledOpts["all"] {
		return false
	}
	if c.DisabledOpts["peephole"] {
		return false
	}
	return c.EnabledOpts["peephole"]
}

// shouldOptimize reports whether the scan runs at all, per the guard in
// §4.4: optimization_level > 0, no_optimize false, peephole enabled.
func (c *Context) shouldOptimize() bool {
	return c.OptimizationLevel > 0 && !c.NoOptimize && c.peepholeActive()
}

// Optimize drives the pattern-engine scan. It returns an error iff no input
// has been parsed yet; suppression (level 0 / no_optimize / peephole off)
// is not an error, it just copies OriginalLines into OptimizedLines.
func (c *Context) Optimize() error {
	if !c.parsed {
		return NewError(Position{}, ErrorInput, "no input has been parsed")
	}
	if !c.shouldOptimize() {
		c.OptimizedLines = append([]string(nil), c.OriginalLines...)
		c.Events = nil
		return nil
	}

	settings := pattern.Settings{
		Syntax:           lexer.Detect(c.Format, c.OriginalLines),
		TargetCPU:        c.TargetCPU,
		AMDOptimizations: c.AMDOptimizations,
		HotAlign:         c.Options["hot_align"] == "1",
	}
	c.OptimizedLines, c.Events = pattern.Run(c.OriginalLines, settings)
	if c.OptimizedLines == nil {
		// Every line was removed; keep this distinct from "not optimized".
		c.OptimizedLines = []string{}
	}
	return nil
}

// GetStats returns the §3 Stats tuple.
func (c *Context) GetStats() (original, optimized, replacements, removals int) {
	s := pattern.ComputeStats(c.Events)
	return len(c.OriginalLines), len(c.OptimizedLines), s.Replacements, s.Removals
}

// Destroy releases every owned buffer. Go's GC makes this advisory, but it
// is kept to mirror the reference lifecycle and to make reuse-after-destroy
// bugs visible in tests (OriginalLines becomes nil, so the next read panics
// or returns zero values rather than stale data).
func (c *Context) Destroy() {
	c.OriginalLines = nil
	c.TrailingNewline = false
	c.reset()
	c.parsed = false
}
