package component

import (
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator generates unique session tokens.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so tokens sort
// by session creation time, which helps when correlating log output from
// several consecutive sessions.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens for testing.
//
// Tests can provide a known sequence of tokens and verify exact output.
//
// Thread-safety: FixedGenerator is safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
//
// Panics when all tokens are consumed; this is a fail-fast guard against
// test misconfiguration.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}

// Session is the current measurement session.
//
// It replaces the process-wide "default station" lookup of older rig
// tooling with an explicit object: code that needs the live registry is
// handed a *Session instead of consulting a global. The session's
// lifecycle (created at setup, dropped at teardown) is owned by the
// caller; the core packages only read from it.
type Session struct {
	token    string
	registry *Registry
}

// SessionOption configures a Session at construction.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	gen TokenGenerator
}

// WithTokenGenerator overrides the session token source.
// Use component.NewFixedGenerator in tests for deterministic tokens.
func WithTokenGenerator(gen TokenGenerator) SessionOption {
	return func(c *sessionConfig) {
		c.gen = gen
	}
}

// NewSession creates a session with an empty registry and a fresh token.
func NewSession(opts ...SessionOption) *Session {
	cfg := sessionConfig{gen: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		token:    cfg.gen.Generate(),
		registry: NewRegistry(),
	}
}

// Token returns the session token.
func (s *Session) Token() string { return s.token }

// Registry returns the session's live registry.
func (s *Session) Registry() *Registry { return s.registry }
