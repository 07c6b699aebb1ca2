package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	appevents "github.com/rescp17/yourcontrols/internal/app_events"
)

// LinkStats is a snapshot from the networking layer. RTT is the measured round trip.
type LinkStats struct {
	SentPackets     uint64
	ReceivedPackets uint64
	SentKbps        float32
	ReceiveKbps     float32
	PacketLoss      float32
	RTT             time.Duration
}

// MetricsFromStats converts link statistics into the UI snapshot, halving the
// round trip to approximate one-way ping in milliseconds.
func MetricsFromStats(s LinkStats) appevents.NetworkMetrics {
	rttMillis := float64(s.RTT) / float64(time.Millisecond)
	return appevents.NetworkMetrics{
		SentPackets:     s.SentPackets,
		ReceivedPackets: s.ReceivedPackets,
		SentKbps:        s.SentKbps,
		ReceiveKbps:     s.ReceiveKbps,
		PacketLoss:      s.PacketLoss,
		Ping:            float32(rttMillis / 2),
	}
}

// EncodeMetrics renders the metrics payload carried by a "metrics" envelope.
func EncodeMetrics(m appevents.NetworkMetrics) (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode metrics: %w", err)
	}
	return string(raw), nil
}

// DecodeMetrics parses a metrics payload. Only a payload that is not a single JSON
// object is an error; missing or mistyped keys are read as zero.
func DecodeMetrics(data string) (appevents.NetworkMetrics, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return appevents.NetworkMetrics{}, fmt.Errorf("decode metrics: %w", err)
	}
	sent, _ := uintField(obj, "sentPackets")
	received, _ := uintField(obj, "receivePackets")
	sentKbps, _ := floatField(obj, "sentBandwidth")
	receiveKbps, _ := floatField(obj, "receiveBandwidth")
	loss, _ := floatField(obj, "packetLoss")
	ping, _ := floatField(obj, "ping")
	return appevents.NetworkMetrics{
		SentPackets:     sent,
		ReceivedPackets: received,
		SentKbps:        float32(sentKbps),
		ReceiveKbps:     float32(receiveKbps),
		PacketLoss:      float32(loss),
		Ping:            float32(ping),
	}, nil
}

// decodeObject reads a loosely-typed JSON object, keeping numbers as json.Number so
// integer fields can be told apart from fractional ones.
func decodeObject(data string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return obj, nil
}

func uintField(obj map[string]any, key string) (uint64, bool) {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatField(obj map[string]any, key string) (float64, bool) {
	n, ok := obj[key].(json.Number)
	if !ok {
		return 0, false
	}
	v, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return v, true
}

func stringField(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	return s, ok
}

func boolField(obj map[string]any, key string) (bool, bool) {
	b, ok := obj[key].(bool)
	return b, ok
}
