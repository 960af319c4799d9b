package tui

const (
	EventRepositoryPicked = "RepositoryPicker:Picked"
	EventEntityCreated    = "CreateModal:Created"
	EventStatusMessage    = "Status:Message"
)

// EventBus is used from the UI goroutine only.
type EventBus struct {
	subscribers map[string][]EventBusEventCallback
}

type EventBusEventCallback func(data interface{})

func (bus *EventBus) Publish(name string, data interface{}) {
	for _, v := range bus.subscribers[name] {
		v(data)
	}
}

func (bus *EventBus) Subscribe(name string, callback EventBusEventCallback) {
	bus.subscribers[name] = append(bus.subscribers[name], callback)
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]EventBusEventCallback),
	}
}
