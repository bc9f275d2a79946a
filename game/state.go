package game

import (
	"coup/meta"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Config is supplied by the host at game start. Starting coins and influence are fixed.
type Config struct {
	ID            string   // Generated when empty
	Players       []string // Seat names, in turn order
	Roles         []Role   // Defaults to StandardRoles
	CopiesPerRole int      // Defaults to meta.COPIES_PER_ROLE
	Seed          uint64
}

// Game is the whole mutable table: players, court deck and the pending resolution.
// Players and Pool are created once and mutated in place for the game's duration.
type Game struct {
	ID        string
	Players   []*Player
	Pool      *CardPool
	Roles     []Role
	Copies    int
	current   PlayerID
	turn      int
	pending   *Resolution
	last      Outcome
	rng       *rand.Rand
	providers []DecisionProvider
	logger    zerolog.Logger
}

// NewGame deals a fresh game. providers are indexed by seat and may be nil when the
// game is only driven through Apply.
func NewGame(cfg Config, providers []DecisionProvider) (*Game, error) {
	if len(cfg.Players) < 2 {
		return nil, fmt.Errorf("need at least two players, got %d", len(cfg.Players))
	}
	if providers != nil && len(providers) != len(cfg.Players) {
		return nil, fmt.Errorf("number of providers %d does not match number of players %d", len(providers), len(cfg.Players))
	}
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	if len(cfg.Roles) == 0 {
		cfg.Roles = StandardRoles
	}
	if cfg.CopiesPerRole <= 0 {
		cfg.CopiesPerRole = meta.COPIES_PER_ROLE
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var cards []Card
	for _, role := range cfg.Roles {
		for i := 0; i < cfg.CopiesPerRole; i++ {
			cards = append(cards, Card{ID: len(cards) + 1, Role: role})
		}
	}
	if len(cards) < len(cfg.Players)*meta.STARTING_INFLUENCE {
		return nil, fmt.Errorf("deck of %d cards cannot deal %d players", len(cards), len(cfg.Players))
	}

	g := &Game{
		ID:        cfg.ID,
		Pool:      NewCardPool(cards, rng),
		Roles:     append([]Role(nil), cfg.Roles...),
		Copies:    cfg.CopiesPerRole,
		rng:       rng,
		providers: providers,
		logger:    log.With().Str("game", cfg.ID).Logger(),
	}
	for i, name := range cfg.Players {
		p := &Player{ID: PlayerID(i), Name: name, Coins: meta.STARTING_COINS}
		for j := 0; j < meta.STARTING_INFLUENCE; j++ {
			card, err := g.Pool.Draw()
			if err != nil {
				return nil, fmt.Errorf("failed to deal player %s: %w", name, err)
			}
			p.Hand = append(p.Hand, card)
		}
		g.Players = append(g.Players, p)
	}
	g.logger.Debug().Msgf("dealt %d players from a deck of %d cards", len(g.Players), len(cards))
	return g, nil
}

// Clone copies the game onto its own generator without providers or logging,
// so simulations never touch the real table.
func (g *Game) Clone(rng *rand.Rand) *Game {
	players := make([]*Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = p.Clone()
	}
	return &Game{
		ID:      g.ID,
		Players: players,
		Pool:    g.Pool.Clone(rng),
		Roles:   g.Roles,
		Copies:  g.Copies,
		current: g.current,
		turn:    g.turn,
		pending: g.pending.clone(),
		last:    g.last,
		rng:     rng,
		logger:  zerolog.Nop(),
	}
}

// SetLogger replaces the per-game logger.
func (g *Game) SetLogger(logger zerolog.Logger) {
	g.logger = logger
}

// TotalCards is the configured deck size.
func (g *Game) TotalCards() int {
	return len(g.Roles) * g.Copies
}

// RevealedCount is the number of cards lost by all players so far.
func (g *Game) RevealedCount() int {
	n := 0
	for _, p := range g.Players {
		n += len(p.Revealed)
	}
	return n
}

// ConcealedCount is the number of cards in all hands.
func (g *Game) ConcealedCount() int {
	n := 0
	for _, p := range g.Players {
		n += len(p.Hand)
	}
	return n
}

// Pending returns the active resolution, nil between actions.
func (g *Game) Pending() *Resolution {
	return g.pending
}

// LastOutcome is the outcome of the most recently completed resolution.
func (g *Game) LastOutcome() Outcome {
	return g.last
}

func (g *Game) player(id PlayerID) *Player {
	if id < 0 || int(id) >= len(g.Players) {
		return nil
	}
	return g.Players[id]
}
