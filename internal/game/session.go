// Package game hosts engine games for interactive clients. The engine is a
// pure state machine; this package adds identity, move history, event
// fan-out and persistence hooks around it.
package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"patience/engine"
	"patience/engine/codec"
)

// EventType labels an event pushed to session subscribers.
type EventType string

const (
	EventStateSync    EventType = "state_sync"
	EventMoveApplied  EventType = "move_applied"
	EventMoveRejected EventType = "move_rejected"
	EventAutoMove     EventType = "auto_move"
	EventGameWon      EventType = "game_won"
	EventHint         EventType = "hint"
)

// Event is the envelope broadcast to session subscribers.
type Event struct {
	Type    EventType  `json:"type"`
	State   *StateView `json:"state,omitempty"`
	Move    *MoveView  `json:"move,omitempty"`
	Hints   []string   `json:"hints,omitempty"`
	Message string     `json:"message,omitempty"`
}

// MoveRecord is the durable trace of one applied move.
type MoveRecord struct {
	GameID    uuid.UUID `json:"gameId"`
	Index     uint32    `json:"index"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Encoded   string    `json:"encoded"`
	Timestamp int64     `json:"timestamp"`
}

// Recorder receives move records as they happen. Implementations must be
// safe for concurrent use.
type Recorder interface {
	RecordMove(ctx context.Context, rec MoveRecord) error
}

// maxHistory bounds the undo stack. Old snapshots are discarded from the
// bottom once the limit is hit.
const maxHistory = 256

// Session is one hosted game. All exported methods are safe for concurrent
// use.
type Session struct {
	ID      uuid.UUID
	Variant engine.Variant

	mu        sync.Mutex
	state     engine.GameState
	history   []engine.Snapshot
	future    []engine.Snapshot
	startedAt time.Time
	finished  bool

	log       *logrus.Entry
	broadcast func(Event)
	recorder  Recorder
}

// NewSession deals a fresh game from seed and wraps it in a session.
func NewSession(seed int64, v engine.Variant, logger *logrus.Logger) (*Session, error) {
	g, err := engine.NewGame(seed, v)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	return &Session{
		ID:        id,
		Variant:   v,
		state:     g,
		startedAt: time.Now(),
		log: logger.WithFields(logrus.Fields{
			"game_id": id,
			"variant": v.String(),
			"seed":    seed,
		}),
	}, nil
}

// SetBroadcast installs the event sink. Pass nil to silence the session.
func (s *Session) SetBroadcast(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcast = fn
}

// SetRecorder installs the move recorder. Pass nil to disable recording.
func (s *Session) SetRecorder(r Recorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

func (s *Session) emit(ev Event) {
	if s.broadcast != nil {
		s.broadcast(ev)
	}
}

func (s *Session) view() *StateView {
	encoded, err := codec.Encode(s.state)
	if err != nil {
		s.log.WithError(err).Warn("state encode failed")
		encoded = ""
	}
	v := buildStateView(s.ID.String(), &s.state, encoded)
	return &v
}

func (s *Session) pushHistory(snap engine.Snapshot) {
	if len(s.history) >= maxHistory {
		copy(s.history, s.history[1:])
		s.history = s.history[:maxHistory-1]
	}
	s.history = append(s.history, snap)
	s.future = s.future[:0]
}

func (s *Session) record(from, to engine.Location, encoded string) {
	if s.recorder == nil {
		return
	}
	rec := MoveRecord{
		GameID:    s.ID,
		Index:     s.state.MoveCount,
		From:      from.Kind.String(),
		To:        to.Kind.String(),
		Encoded:   encoded,
		Timestamp: time.Now().UnixMilli(),
	}
	r := s.recorder
	log := s.log
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := r.RecordMove(ctx, rec); err != nil {
			log.WithError(err).Warn("move record failed")
		}
	}()
}

// applyLocked applies one validated-or-rejected move under the held lock and
// handles history, events and recording. eventType distinguishes player moves
// from auto-moves.
func (s *Session) applyLocked(from, to engine.Location, eventType EventType) error {
	prev := s.state.Save()
	next, err := s.state.ApplyMove(from, to)
	if err != nil {
		var moveErr *engine.MoveError
		msg := err.Error()
		if errors.As(err, &moveErr) {
			msg = moveErr.Reason
		}
		s.emit(Event{Type: EventMoveRejected, Message: msg, Move: &MoveView{
			From: locationView(from),
			To:   locationView(to),
		}})
		return err
	}

	s.pushHistory(prev)
	s.state = next

	view := s.view()
	mv := &MoveView{From: locationView(from), To: locationView(to)}
	s.emit(Event{Type: eventType, State: view, Move: mv})
	s.record(from, to, view.Encoded)

	if s.state.IsWon() && !s.finished {
		s.finished = true
		s.log.WithField("moves", s.state.MoveCount).Info("game won")
		s.emit(Event{Type: EventGameWon, State: view})
	}
	return nil
}

// Move applies one player move. On rejection the engine error is returned
// and an EventMoveRejected is broadcast; the state is unchanged.
func (s *Session) Move(from, to engine.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(from, to, EventMoveApplied)
}

// AutoMoveAll repeatedly promotes safe cards to the foundations until no
// safe move remains, returning how many moves were applied. Each move is a
// distinct history entry so undo steps back through them one at a time.
func (s *Session) AutoMoveAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for {
		mv, ok := s.state.FindSafeAutoMove()
		if !ok {
			return n
		}
		if err := s.applyLocked(mv.From, mv.To, EventAutoMove); err != nil {
			s.log.WithError(err).Error("auto-move rejected by executor")
			return n
		}
		n++
	}
}

// Undo steps back one move. Returns false when there is nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return false
	}
	s.future = append(s.future, s.state.Save())
	snap := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.state.Restore(snap)
	s.emit(Event{Type: EventStateSync, State: s.view()})
	return true
}

// Redo reapplies the most recently undone move. Returns false when there is
// nothing to redo.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.future) == 0 {
		return false
	}
	s.history = append(s.history, s.state.Save())
	snap := s.future[len(s.future)-1]
	s.future = s.future[:len(s.future)-1]
	s.state.Restore(snap)
	s.emit(Event{Type: EventStateSync, State: s.view()})
	return true
}

// Restart re-deals the same seed and variant, discarding all history.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := engine.NewGame(s.state.Seed, s.Variant)
	if err != nil {
		return err
	}
	s.state = g
	s.history = s.history[:0]
	s.future = s.future[:0]
	s.finished = false
	s.startedAt = time.Now()
	s.log.Info("game restarted")
	s.emit(Event{Type: EventStateSync, State: s.view()})
	return nil
}

// Hint returns the ids of the lowest cards each unfinished foundation still
// needs, and broadcasts them.
func (s *Session) Hint() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	cards := s.state.LowestPlayableCards()
	hints := make([]string, len(cards))
	for i, c := range cards {
		hints[i] = c.String()
	}
	s.emit(Event{Type: EventHint, Hints: hints})
	return hints
}

// Share returns the compact encoded form of the current state.
func (s *Session) Share() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return codec.Encode(s.state)
}

// State returns a copy of the current engine state.
func (s *Session) State() engine.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns the client-facing projection of the current state.
func (s *Session) View() StateView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.view()
}

// Won reports whether the game has been won.
func (s *Session) Won() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsWon()
}

// Seed returns the deal seed.
func (s *Session) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Seed
}

// Duration returns how long the current deal has been running.
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.startedAt)
}

// SyncState rebroadcasts the full state, for clients that just connected.
func (s *Session) SyncState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emit(Event{Type: EventStateSync, State: s.view()})
}
