package sim

type EventType int

const (
	EventShot EventType = iota
	EventEnemySpawned
	EventWaveStarted
	EventEnemyHit
	EventEnemyKilled
	EventPlayerHit
	EventDash
	EventPowerUpSpawned
	EventPowerUpCollected
	EventGameOver
	EventNewHighScore
	EventModeChanged
)

// Event is published synchronously from inside Session.Tick.
type Event struct {
	Type EventType
	X, Y float64
	Data int // Generic payload: enemy/power-up kind, wave, mode, absorbed flag.
}

type EventHandler func(Event)

type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every listed type.
func (eb *EventBus) SubscribeAll(fn EventHandler, types ...EventType) {
	for _, t := range types {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
