package game

// Event is a notification emitted by the engine. Listeners observe events,
// they never steer the game.
type Event interface {
	isEvent()
}

// LevelUp fires when the score reaches a multiple of the level step
type LevelUp struct {
	Level int
}

// FoodEaten fires on every eaten food
type FoodEaten struct {
	Score int
}

// GameOverEvent fires when the snake hits a wall or itself
type GameOverEvent struct {
	GameID       string
	FinalScore   int
	Level        int
	NewHighScore bool
}

// BoardFullEvent fires when the snake covers the whole board
type BoardFullEvent struct {
	GameID       string
	FinalScore   int
	Level        int
	NewHighScore bool
}

// PhaseChanged fires on every lifecycle transition
type PhaseChanged struct {
	From, To Phase
}

func (LevelUp) isEvent()        {}
func (FoodEaten) isEvent()      {}
func (GameOverEvent) isEvent()  {}
func (BoardFullEvent) isEvent() {}
func (PhaseChanged) isEvent()   {}

// Listener receives engine events on the loop goroutine. Implementations
// must return quickly.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }
