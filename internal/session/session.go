package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alecthomas/participle/v2"
	"go.uber.org/zap"

	"github.com/dpaq7/forge-steel-summoner-sub001/internal/command"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/engine"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/parser"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/persistence"
	"github.com/dpaq7/forge-steel-summoner-sub001/internal/rules"
)

// Store defines the dependency required by Session to persist events
type Store interface {
	Append(evt engine.Event) error
	Load() ([]engine.Event, error)
	Close() error
}

// Snapshots checkpoints projected state so a long log need not be replayed from the start.
type Snapshots interface {
	Save(ctx context.Context, heroID string, eventCount int, label string, state *engine.GameState) (persistence.Snapshot, error)
	Latest(ctx context.Context, heroID string) (persistence.Snapshot, bool, error)
}

// Session manages the cohesive loop of taking commands, executing them,
// persisting events, and projecting GameState. Every command runs under one
// lock, so a summon is validated and paid for as a single step.
type Session struct {
	mu sync.Mutex

	heroID    string
	catalog   engine.Catalog
	store     Store
	state     *engine.GameState
	registry  *rules.Registry
	parser    *participle.Parser[parser.Command]
	logger    *zap.Logger
	snapshots Snapshots
	every     int
	count     int
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithRules sets the registry used for unlock gates and `eval`.
func WithRules(reg *rules.Registry) Option {
	return func(s *Session) { s.registry = reg }
}

// WithSnapshots restores from the latest snapshot and writes a new one every n events.
func WithSnapshots(snaps Snapshots, every int) Option {
	return func(s *Session) {
		s.snapshots = snaps
		s.every = every
	}
}

// NewSession bootstraps a hero session pipeline relying on an injected store
func NewSession(heroID string, catalog engine.Catalog, store Store, opts ...Option) (*Session, error) {
	s := &Session{
		heroID:  heroID,
		catalog: catalog,
		store:   store,
		parser:  parser.Build(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.RebuildState(); err != nil {
		return nil, err
	}
	return s, nil
}

// RebuildState reads the event log from the store and projects the latest
// GameState, starting from the newest usable snapshot when one exists.
func (s *Session) RebuildState() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuild()
}

func (s *Session) rebuild() error {
	events, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load event log: %w", err)
	}

	proj := engine.NewProjector(s.catalog)
	state, from := s.restore(len(events))
	if state == nil {
		state, err = proj.Build(events)
	} else {
		state, err = proj.BuildFrom(state, events[from:])
	}
	if err != nil {
		return fmt.Errorf("failed to project game state: %w", err)
	}

	state.NewID = command.NewID
	s.state = state
	s.count = len(events)
	s.logger.Debug("state rebuilt",
		zap.String("hero", s.heroID),
		zap.Int("events", len(events)),
		zap.Int("from_snapshot", from))
	return nil
}

// restore returns the newest snapshot state that does not run past the log.
func (s *Session) restore(logLen int) (*engine.GameState, int) {
	if s.snapshots == nil {
		return nil, 0
	}
	snap, ok, err := s.snapshots.Latest(context.Background(), s.heroID)
	if err != nil {
		s.logger.Warn("snapshot lookup failed", zap.String("hero", s.heroID), zap.Error(err))
		return nil, 0
	}
	if !ok || snap.EventCount > logLen {
		return nil, 0
	}
	state, err := engine.RestoreState(s.catalog, snap.State)
	if err != nil {
		s.logger.Warn("snapshot unreadable", zap.String("hero", s.heroID), zap.Error(err))
		return nil, 0
	}
	return state, snap.EventCount
}

// State returns the current projected GameState. Callers must not mutate it,
// and must use View instead when other goroutines execute commands.
func (s *Session) State() *engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View runs fn with the current state while commands are held off. fn must
// not keep the pointer or call back into the session.
func (s *Session) View(fn func(state *engine.GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Registry returns the rule registry, which may be nil.
func (s *Session) Registry() *rules.Registry {
	return s.registry
}

// Execute takes a raw command string from a UI client, coordinates
// execution, appends the result, and returns the descriptive Event
func (s *Session) Execute(input string) (engine.Event, error) {
	astCmd, err := s.parser.ParseString("", input)
	if err != nil {
		return nil, parser.MapError(input, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := command.Execute(astCmd, s.state, s.registry)
	if err != nil {
		return nil, s.refused(input, err)
	}
	if command.IsQuery(events) {
		return events[0], nil
	}

	for _, evt := range events {
		if err := s.apply(evt); err != nil {
			return nil, s.refused(input, err)
		}
		s.logger.Info("command applied",
			zap.String("hero", s.heroID),
			zap.String("input", input),
			zap.String("event", string(evt.Type())))
	}
	return events[0], nil
}

// ApplyAndAppend applies a finalized event to memory and commits it to the store
func (s *Session) ApplyAndAppend(evt engine.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(evt)
}

func (s *Session) apply(evt engine.Event) error {
	if err := evt.Apply(s.state); err != nil {
		return err
	}

	if err := s.store.Append(evt); err != nil {
		s.logger.Error("event not persisted", zap.String("hero", s.heroID), zap.Error(err))
		if rerr := s.rebuild(); rerr != nil {
			s.logger.Error("state rebuild failed", zap.String("hero", s.heroID), zap.Error(rerr))
		}
		return fmt.Errorf("failed to persist event log: %w", err)
	}
	s.count++

	if s.snapshots != nil && s.every > 0 && s.count%s.every == 0 {
		if _, err := s.snapshots.Save(context.Background(), s.heroID, s.count, "auto", s.state); err != nil {
			s.logger.Warn("snapshot failed", zap.String("hero", s.heroID), zap.Error(err))
		}
	}
	return nil
}

// Snapshot checkpoints the current state under a label.
func (s *Session) Snapshot(ctx context.Context, label string) (persistence.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshots == nil {
		return persistence.Snapshot{}, fmt.Errorf("snapshot storage is not configured")
	}
	return s.snapshots.Save(ctx, s.heroID, s.count, label, s.state)
}

// refused logs a failed command and passes the error through. Silent
// ignores become nil.
func (s *Session) refused(input string, err error) error {
	if errors.Is(err, engine.ErrSilentIgnore) {
		return nil
	}
	var rej *engine.RejectionError
	if errors.As(err, &rej) {
		s.logger.Warn("command rejected",
			zap.String("hero", s.heroID),
			zap.String("input", input),
			zap.String("code", string(rej.Code)))
		return err
	}
	s.logger.Error("command failed", zap.String("hero", s.heroID), zap.String("input", input), zap.Error(err))
	return err
}

// Close releases the event store.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Close()
}
