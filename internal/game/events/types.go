package events

import "time"

// Event is anything published on the bus. Every mancala event carries the
// id of the game it happened in.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent holds the fields shared by all mancala events.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

// EventHandler handles events delivered through SubscribeFunc.
type EventHandler func(Event)

// Subscriber receives every published event it reports interest in.
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is the write side of a bus; game.Engine only needs this.
type Publisher interface {
	Publish(Event)
}

// Bus routes published events to subscribers and func handlers.
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
