package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/klondike/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	now      func() time.Time
}

// Option customizes a game service
type Option func(*gameServiceImpl)

// WithClock replaces the clock used for key timing and event timestamps
func WithClock(now func() time.Time) Option {
	return func(s *gameServiceImpl) {
		s.now = now
	}
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: config '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: config '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	sess.Lock()
	defer sess.Unlock()
	info := s.sessionInfo(sess)
	info.ConfigName = configID
	return info, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		sess.Lock()
		result = append(result, s.sessionInfo(sess))
		sess.Unlock()
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Apply decodes and dispatches one intent through the oracle and reducer
func (s *gameServiceImpl) Apply(ctx context.Context, sessionID string, req IntentRequest) (*MoveResult, error) {
	in, err := req.ToIntent()
	if err != nil {
		return nil, err
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return s.apply(sess, in), nil
}

// Undo reverts the last applied intent of a session
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*MoveResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return s.apply(sess, engine.Undo{}), nil
}

// PressKey maps a keyboard key to an intent. Space draws, z undoes, and two
// Enter presses inside the config's window send the hovered pile's top card
// (or the open stock's top card) to its foundation.
func (s *gameServiceImpl) PressKey(ctx context.Context, sessionID, key string) (*MoveResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	switch {
	case key == KeySpace || strings.EqualFold(key, "space"):
		return s.apply(sess, engine.DrawStockCard{}), nil
	case strings.EqualFold(key, KeyUndo):
		return s.apply(sess, engine.Undo{}), nil
	case strings.EqualFold(key, KeyEnter):
		if sess.Keys == nil {
			sess.Keys = &engine.DoublePress{Window: sess.Engine.GetConfig().DoublePressWindow()}
		}
		if !sess.Keys.Press(s.now()) {
			return &MoveResult{
				Success:   false,
				GameState: s.view(sess),
				Message:   "Press Enter again to send a card to its foundation",
			}, nil
		}

		card, ok := engine.AutoFoundationTarget(sess.Engine.GetState())
		if !ok {
			return &MoveResult{
				Success:   false,
				Intent:    engine.IntentMoveToFoundation,
				GameState: s.view(sess),
				Message:   sess.Engine.GetConfig().Messages.IllegalMove,
			}, nil
		}
		return s.apply(sess, engine.MoveToFoundation{Card: card}), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Reset deals a new game for a session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*GameView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Engine.Reset()
	if sess.Keys != nil {
		sess.Keys.Reset()
	}
	sess.Version++
	return s.view(sess), nil
}

// GetGameState retrieves the current game view
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*GameView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return s.view(sess), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	history := sess.Engine.GetMoveHistory()
	sess.Unlock()

	return paginate(history, opts), nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// session looks up a session and refreshes its access time. The session
// lock must not be held by the caller.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSessionNotFound, sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// apply runs one intent against a locked session
func (s *gameServiceImpl) apply(sess *Session, in engine.Intent) *MoveResult {
	eng := sess.Engine
	before := eng.GetState()
	totalBefore := eng.TotalMoves()

	success := eng.Apply(in)
	if success {
		sess.Version++
	}

	result := &MoveResult{
		Success:   success,
		Intent:    in.Name(),
		GameState: s.view(sess),
		Message:   eng.Message(),
	}
	if !success {
		return result
	}

	if engine.IsUIOnly(in) {
		return result
	}

	now := s.now()
	event := GameEvent{
		Type:      in.Name(),
		Message:   eng.Message(),
		Timestamp: now,
	}
	if last := eng.GetLastMove(); last != nil && eng.TotalMoves() > totalBefore {
		if last.Card != nil {
			event.Card = last.Card.Code()
		}
		event.From = last.From
		event.To = last.To
	}
	result.Events = append(result.Events, event)

	if recycled(before, eng.GetState(), in) {
		result.Events = append(result.Events, GameEvent{
			Type:      "stock_recycled",
			Message:   eng.GetConfig().Messages.StockRecycled,
			Timestamp: now,
		})
	}
	if eng.IsWon() {
		result.Events = append(result.Events, GameEvent{
			Type:      "victory",
			Message:   eng.GetConfig().Messages.Victory,
			Timestamp: now,
		})
	}
	return result
}

// view builds the renderable snapshot of a locked session
func (s *gameServiceImpl) view(sess *Session) *GameView {
	eng := sess.Engine
	state := eng.GetState()

	counts := make([]int, engine.FoundationCount)
	for i := range counts {
		counts[i] = state.Count(engine.Foundation, i)
	}

	return &GameView{
		SessionID:        sess.ID,
		ConfigName:       eng.GetConfig().Name,
		Status:           eng.Status(),
		Won:              eng.IsWon(),
		Message:          eng.Message(),
		Board:            eng.Board(),
		FoundationCounts: counts,
		StockClosedCount: state.Count(engine.StockClosed, 0),
		StockOpenCount:   state.Count(engine.StockOpen, 0),
		CanDraw:          eng.CanApply(engine.DrawStockCard{}),
		CanUndo:          eng.CanUndo(),
		UndoDepth:        eng.UndoDepth(),
		TotalMoves:       eng.TotalMoves(),
		Version:          sess.Version,
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Status:         sess.Engine.Status(),
		GameState:      s.view(sess),
		GameConfig:     sess.Config,
	}
}

func recycled(before, after engine.GameState, in engine.Intent) bool {
	switch in.(type) {
	case engine.RecycleStock, engine.DrawStockCard:
		return before.Count(engine.StockOpen, 0) > 0 && after.Count(engine.StockOpen, 0) == 0
	}
	return false
}

func paginate(history []engine.MoveHistoryEntry, opts HistoryOptions) *HistoryResponse {
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}
}
