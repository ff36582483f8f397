package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/klondike/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Apply(ctx context.Context, sessionID string, req IntentRequest) (*MoveResult, error)
	Undo(ctx context.Context, sessionID string) (*MoveResult, error)
	PressKey(ctx context.Context, sessionID, key string) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*GameView, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*GameView, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session. Engine and Keys are only
// touched while the session lock is held; intents on one session are applied
// one at a time.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	Keys           *engine.DoublePress
	CreatedAt      time.Time
	LastAccessedAt time.Time

	// Version counts state changes; every view carries the value it was built at
	Version uint64

	mu sync.Mutex
}

// Lock serializes access to the session's engine
func (s *Session) Lock() {
	s.mu.Lock()
}

// Unlock releases the session lock
func (s *Session) Unlock() {
	s.mu.Unlock()
}
