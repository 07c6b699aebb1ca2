// Package protocol defines the wire format shared by every UI backend: the outbound
// tags carried by Invoke, the {"type","data"} envelope, the script call evaluated by
// script-hosted pages, and the JSON encoding of inbound messages.
package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageType is the tag of an outbound (App -> UI) notification.
type MessageType string

const (
	TypeError           MessageType = "error"
	TypeAttempt         MessageType = "attempt"
	TypeConnected       MessageType = "connected"
	TypeServerFail      MessageType = "server_fail"
	TypeClientFail      MessageType = "client_fail"
	TypeGainControl     MessageType = "control"
	TypeLoseControl     MessageType = "lostcontrol"
	TypeServerStarted   MessageType = "server"
	TypeSessionCode     MessageType = "session"
	TypeHost            MessageType = "host"
	TypeNewConnection   MessageType = "newconnection"
	TypeLostConnection  MessageType = "lostconnection"
	TypeObserving       MessageType = "observing"
	TypeStopObserving   MessageType = "stop_observing"
	TypeSetObserving    MessageType = "set_observing"
	TypeSetNotObserving MessageType = "set_not_observing"
	TypeSetInControl    MessageType = "set_incontrol"
	TypeAddAircraft     MessageType = "add_aircraft"
	TypeVersion         MessageType = "version"
	TypeUpdateFailed    MessageType = "update_failed"
	TypeConfig          MessageType = "config_msg"
	TypeMetrics         MessageType = "metrics"
)

// ScriptEntryPoint is the page function receiving every outbound envelope.
const ScriptEntryPoint = "MessageReceived"

// Data returns a pointer to s, for use as the optional payload of an envelope.
func Data(s string) *string {
	return &s
}

// Envelope is the generic outbound message: a type tag and an optional string payload.
type Envelope struct {
	Type MessageType
	Data *string
}

type jsonEnvelope struct {
	Type MessageType `json:"type"`
	Data string      `json:"data"`
}

// MarshalJSON always emits both fields; an absent payload is encoded as "".
func (e Envelope) MarshalJSON() ([]byte, error) {
	var data string
	if e.Data != nil {
		data = *e.Data
	}
	return json.Marshal(jsonEnvelope{Type: e.Type, Data: data})
}

// ScriptCall renders the call expression a script-hosted page evaluates to receive an envelope.
func ScriptCall(env Envelope) (string, error) {
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return fmt.Sprintf("%s(%s)", ScriptEntryPoint, raw), nil
}
