package main

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// -- game state

type GameMode int

const (
	ModeWelcome GameMode = iota
	ModePlaying
	ModeLevelComplete
	ModeGameOver
	ModeVictory
)

type EventKind int

const (
	EventKeyPickup EventKind = iota
	EventAllKeys
	EventCheckpoint
	EventExtraLife
	EventLivesFull
	EventTrap
	EventLifeLost
	EventExitBlocked
	EventExitUnlocked
	EventLevelComplete
	EventGameOver
)

// Event is one discrete gameplay occurrence produced by a session step.
// Pos carries the source position where it matters (trap knockback).
type Event struct {
	Kind    EventKind
	Pos     Vec2
	Message string
}

// Session is the mutable state of one level attempt. It works on a deep copy
// of the pristine parsed level, so restarts and level transitions never
// re-parse and never see consumed objects.
type Session struct {
	Level   *Level
	Sprites *SpriteManager

	Lives         int
	LivesCap      int
	KeysCollected int
	Visited       map[TilePos]bool

	// exitNotified latches the blocked-exit notification while the player
	// stays on the exit tile; leaving the tile re-arms it.
	exitNotified bool

	complete bool
	dead     bool
}

// NewSession starts a fresh attempt at pristine with the given lives.
func NewSession(pristine *Level, lives, livesCap int) (*Session, error) {
	live := &Level{}
	if err := copier.CopyWithOption(live, pristine, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copying level %d: %w", pristine.Index, err)
	}
	return &Session{
		Level:    live,
		Sprites:  NewSpriteManager(live.Spawns),
		Lives:    lives,
		LivesCap: livesCap,
		Visited:  make(map[TilePos]bool),
	}, nil
}

// ExitUnlocked reports whether the exit door accepts the player.
func (s *Session) ExitUnlocked() bool {
	return s.KeysCollected >= s.Level.RequiredKeys &&
		len(s.Visited) >= s.Level.RequiredCheckpoints
}

// Complete reports whether this attempt ended in a level clear.
func (s *Session) Complete() bool { return s.complete }

// Dead reports whether this attempt ended with the last life lost.
func (s *Session) Dead() bool { return s.dead }

// Step consumes object contacts at the player's position and evaluates the
// exit, returning the events of this frame in occurrence order. Trap deaths
// are resolved before the exit so losing the last life on the exit tile is a
// game over, not a level clear. After complete or dead, Step is inert.
func (s *Session) Step(playerPos Vec2) []Event {
	if s.complete || s.dead {
		return nil
	}

	var events []Event
	unlockedBefore := s.ExitUnlocked()

	for _, hit := range s.Sprites.QueryCollisions(playerPos) {
		switch hit.Kind {
		case ObjectKey:
			if !s.Sprites.Consume(hit) {
				continue
			}
			if s.KeysCollected >= s.Level.RequiredKeys {
				// surplus key: consumed but the count stays capped
				events = append(events, Event{Kind: EventKeyPickup, Message: "Spare key collected"})
				continue
			}
			s.KeysCollected++
			if s.KeysCollected >= s.Level.RequiredKeys {
				events = append(events, Event{
					Kind:    EventAllKeys,
					Message: "All keys collected!",
				})
			} else {
				events = append(events, Event{
					Kind: EventKeyPickup,
					Message: fmt.Sprintf("Key collected (%d/%d)",
						s.KeysCollected, s.Level.RequiredKeys),
				})
			}

		case ObjectCheckpoint:
			if !s.Sprites.Consume(hit) {
				continue
			}
			pos := TilePos{X: int(hit.Pos.X), Y: int(hit.Pos.Y)}
			s.Visited[pos] = true
			events = append(events, Event{
				Kind: EventCheckpoint,
				Message: fmt.Sprintf("Checkpoint reached (%d/%d)",
					len(s.Visited), s.Level.RequiredCheckpoints),
			})

		case ObjectExtraLife:
			if !s.Sprites.Consume(hit) {
				continue
			}
			if s.Lives < s.LivesCap {
				s.Lives++
				events = append(events, Event{Kind: EventExtraLife, Message: "Extra life!"})
			} else {
				events = append(events, Event{Kind: EventLivesFull, Message: "Lives already full"})
			}

		case ObjectTrap:
			if !s.Sprites.Consume(hit) {
				continue
			}
			s.Lives--
			events = append(events,
				Event{Kind: EventTrap, Pos: hit.Pos, Message: "Trap activated!"},
				Event{Kind: EventLifeLost, Message: fmt.Sprintf("Life lost (%d left)", s.Lives)},
			)
			if s.Lives <= 0 {
				s.dead = true
				events = append(events, Event{Kind: EventGameOver})
				return events
			}
		}
	}

	if !unlockedBefore && s.ExitUnlocked() {
		events = append(events, Event{Kind: EventExitUnlocked, Message: "The exit hums open..."})
	}

	onExit := s.Level.Grid.AtWorld(playerPos.X, playerPos.Y) == TileExitDoor
	if onExit {
		if s.ExitUnlocked() {
			s.complete = true
			events = append(events, Event{Kind: EventLevelComplete})
		} else if !s.exitNotified {
			s.exitNotified = true
			events = append(events, Event{
				Kind:    EventExitBlocked,
				Message: s.blockedReason(),
			})
		}
	} else {
		s.exitNotified = false
	}

	return events
}

func (s *Session) blockedReason() string {
	needKeys := s.KeysCollected < s.Level.RequiredKeys
	needChecks := len(s.Visited) < s.Level.RequiredCheckpoints
	switch {
	case needKeys && needChecks:
		return fmt.Sprintf("Need %d more keys and %d more checkpoints",
			s.Level.RequiredKeys-s.KeysCollected,
			s.Level.RequiredCheckpoints-len(s.Visited))
	case needKeys:
		return fmt.Sprintf("Need %d more keys",
			s.Level.RequiredKeys-s.KeysCollected)
	default:
		return fmt.Sprintf("Need %d more checkpoints",
			s.Level.RequiredCheckpoints-len(s.Visited))
	}
}
