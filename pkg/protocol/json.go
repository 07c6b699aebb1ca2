package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
)

// ErrUnknownMessage is returned when an inbound payload carries an unrecognized type tag.
var ErrUnknownMessage = errors.New("unknown message type")

// MessageSerializer converts inbound messages to and from their wire form.
type MessageSerializer interface {
	Marshal(msg appevents.AppEvent) ([]byte, error)
	Unmarshal(data []byte) (appevents.AppEvent, error)
	Name() string
}

type JSONSerializer struct{}

func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

var _ MessageSerializer = (*JSONSerializer)(nil)

type decodeFunc func(data []byte) (appevents.AppEvent, error)

func decodeAs[T appevents.AppEvent](data []byte) (appevents.AppEvent, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return msg, nil
}

var decoders = map[string]decodeFunc{
	appevents.StartServerMsg{}.Type():      decodeAs[appevents.StartServerMsg],
	appevents.ConnectMsg{}.Type():          decodeAs[appevents.ConnectMsg],
	appevents.TransferControlMsg{}.Type():  decodeAs[appevents.TransferControlMsg],
	appevents.SetObserverMsg{}.Type():      decodeAs[appevents.SetObserverMsg],
	appevents.LoadAircraftMsg{}.Type():     decodeAs[appevents.LoadAircraftMsg],
	appevents.DisconnectMsg{}.Type():       decodeAs[appevents.DisconnectMsg],
	appevents.StartupMsg{}.Type():          decodeAs[appevents.StartupMsg],
	appevents.RunUpdaterMsg{}.Type():       decodeAs[appevents.RunUpdaterMsg],
	appevents.ForceTakeControlMsg{}.Type(): decodeAs[appevents.ForceTakeControlMsg],
	appevents.UpdateConfigMsg{}.Type():     decodeAs[appevents.UpdateConfigMsg],
	appevents.GoObserverMsg{}.Type():       decodeAs[appevents.GoObserverMsg],
}

// Marshal encodes msg as a JSON object whose "type" field holds the variant tag.
func (j *JSONSerializer) Marshal(msg appevents.AppEvent) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("nil message")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Type(), err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Type(), err)
	}
	tag, _ := json.Marshal(msg.Type())
	fields["type"] = tag
	return json.Marshal(fields)
}

// Unmarshal decodes a tagged JSON object into its concrete inbound message.
func (j *JSONSerializer) Unmarshal(data []byte) (appevents.AppEvent, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode message tag: %w", err)
	}
	decode, ok := decoders[head.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, head.Type)
	}
	msg, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.Type, err)
	}
	return msg, nil
}

func (j *JSONSerializer) Name() string {
	return "json"
}
