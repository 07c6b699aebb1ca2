package appevents

// AppEvent is a marker interface for messages sent from the UI to the application's
// control logic. It uses an unexported method so that only types from this package
// (by embedding Event) can satisfy the interface.
type AppEvent interface {
	isAppEvent()
	// Type returns the wire tag of the message, e.g. "startServer".
	Type() string
}

// Event is embedded in every inbound message type to satisfy the AppEvent interface.
type Event struct{}

func (Event) isAppEvent() {}

// AppUIMessage is a marker interface for notifications sent from the application to the UI.
type AppUIMessage interface {
	isUIMessage()
}

// UIMessage is a base struct that can be embedded in other types to implement the AppUIMessage interface.
type UIMessage struct{}

func (UIMessage) isUIMessage() {}
