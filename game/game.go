package game

import (
	"time"

	"snake-classic/game/entity"
	"snake-classic/game/manager"
	"snake-classic/game/types"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Game holds the whole simulation state. It is not safe for concurrent use;
// the Loop is its only caller once play starts.
type Game struct {
	UUID      string
	Grid      types.Grid
	StartTime time.Time

	snake        *entity.Snake
	food         types.Point
	hasFood      bool
	pending      types.Direction
	score        int
	level        int
	tickInterval time.Duration
	phase        Phase

	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	stateMgr     *manager.StateManager
}

// NewGame creates an idle game with food already placed. stateMgr may be nil,
// in which case no high score is tracked.
func NewGame(grid types.Grid, rng *rand.Rand, stateMgr *manager.StateManager) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	collisionMgr := manager.NewCollisionManager(grid)

	g := &Game{
		Grid:         grid,
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(grid, rng, collisionMgr),
		stateMgr:     stateMgr,
	}
	g.reset()
	g.phase = Idle
	return g
}

func (g *Game) reset() {
	g.UUID = uuid.New().String()
	g.StartTime = time.Now()
	g.snake = entity.NewSnake(types.StartPosition)
	g.pending = types.None
	g.score = 0
	g.level = 1
	g.tickInterval = types.InitialTickInterval
	g.phase = Idle
	if g.stateMgr != nil {
		g.stateMgr.BeginGame()
	}
	g.PlaceFood()
}

// PlaceFood moves the food to a free cell. Returns false when no cell is free.
func (g *Game) PlaceFood() bool {
	food, ok := g.foodMgr.GenerateFood(g.snake)
	g.food = food
	g.hasFood = ok
	return ok
}

// SetPendingDirection buffers a direction for the next tick. The exact opposite
// of the current direction is refused, so the head can never turn back into
// the second segment. Of several requests between two ticks only the last
// accepted one is applied.
func (g *Game) SetPendingDirection(d types.Direction) bool {
	if d == types.None {
		return false
	}
	if d == g.snake.Direction.Opposite() && g.snake.Direction != types.None {
		return false
	}
	g.pending = d
	return true
}

// Start leaves Idle with the given first direction
func (g *Game) Start(d types.Direction) (bool, []Event) {
	if g.phase != Idle {
		return false, nil
	}
	if !g.SetPendingDirection(d) {
		return false, nil
	}
	g.StartTime = time.Now()
	return true, []Event{g.setPhase(Running)}
}

// TogglePause switches between Running and Paused; other phases ignore it
func (g *Game) TogglePause() (bool, []Event) {
	switch g.phase {
	case Running:
		return true, []Event{g.setPhase(Paused)}
	case Paused:
		return true, []Event{g.setPhase(Running)}
	default:
		return false, nil
	}
}

// Restart throws the current game away and begins a new one straight away
func (g *Game) Restart() []Event {
	from := g.phase
	g.reset()
	g.phase = Running
	return []Event{PhaseChanged{From: from, To: Running}}
}

func (g *Game) setPhase(p Phase) Event {
	e := PhaseChanged{From: g.phase, To: p}
	g.phase = p
	return e
}

// Tick advances the simulation by one cell
func (g *Game) Tick() TickResult {
	if g.phase != Running {
		return TickResult{Outcome: Continued}
	}

	// Direction changes only ever land here, between two moves
	g.snake.Direction = g.pending
	if g.snake.Direction == types.None {
		// Restarted but not steered yet: the snake waits in place
		return TickResult{Outcome: Continued}
	}

	newHead := g.snake.GetHead().Add(g.snake.Direction.Delta())

	if collision := g.collisionMgr.CheckCollision(newHead, g.snake); collision != manager.NoCollision {
		events := []Event{
			g.setPhase(GameOver),
			g.endEvent(GameOver),
		}
		return TickResult{Outcome: Collided, Collision: collision.String(), Events: events}
	}

	g.snake.Move(newHead)

	if !g.hasFood || !g.collisionMgr.IsFoodCollision(newHead, g.food) {
		g.snake.RemoveTail()
		return TickResult{Outcome: Continued}
	}

	g.score += types.PointsPerFood * g.level
	if g.stateMgr != nil {
		g.stateMgr.UpdateScore(g.score)
	}
	events := []Event{FoodEaten{Score: g.score}}

	placed := g.PlaceFood()

	if g.score%types.LevelScoreStep == 0 {
		g.level++
		g.tickInterval -= types.TickIntervalStep
		if g.tickInterval < types.MinTickInterval {
			g.tickInterval = types.MinTickInterval
		}
		events = append(events, LevelUp{Level: g.level})
	}

	if !placed {
		events = append(events,
			g.setPhase(BoardFull),
			g.endEvent(BoardFull),
		)
		return TickResult{Outcome: Filled, Events: events}
	}

	return TickResult{Outcome: Ate, Events: events}
}

func (g *Game) endEvent(p Phase) Event {
	newHigh := g.isNewHighScore()
	if p == BoardFull {
		return BoardFullEvent{GameID: g.UUID, FinalScore: g.score, Level: g.level, NewHighScore: newHigh}
	}
	return GameOverEvent{GameID: g.UUID, FinalScore: g.score, Level: g.level, NewHighScore: newHigh}
}

func (g *Game) isNewHighScore() bool {
	if g.stateMgr == nil {
		return false
	}
	return g.stateMgr.IsNewHighScore(g.score)
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) TickInterval() time.Duration {
	return g.tickInterval
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Level() int {
	return g.level
}

func (g *Game) GetFood() types.Point {
	return g.food
}

func (g *Game) Direction() types.Direction {
	return g.snake.Direction
}

func (g *Game) PendingDirection() types.Direction {
	return g.pending
}

// Body returns a copy of the snake, head first
func (g *Game) Body() []types.Point {
	return g.snake.Clone()
}

// Snapshot copies the state for a renderer
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Grid:         g.Grid,
		Snake:        g.snake.Clone(),
		Food:         g.food,
		HasFood:      g.hasFood,
		Direction:    g.snake.Direction,
		Pending:      g.pending,
		Score:        g.score,
		Level:        g.level,
		TickInterval: g.tickInterval,
		Phase:        g.phase,
	}
	if g.stateMgr != nil {
		s.HighScore = g.stateMgr.GetHighScore()
		s.NewHighScore = g.phase.Ended() && g.stateMgr.IsNewHighScore(g.score)
	}
	return s
}
