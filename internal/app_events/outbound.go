package appevents

// --- UI Messages (from App to UI) ---

type ErrorMsg struct {
	UIMessage
	Text string
}

type AttemptMsg struct{ UIMessage }

type ConnectedMsg struct{ UIMessage }

type ServerFailMsg struct {
	UIMessage
	Reason string
}

type ClientFailMsg struct {
	UIMessage
	Reason string
}

// GainControlMsg tells the UI the local user now controls the aircraft.
type GainControlMsg struct{ UIMessage }

type LoseControlMsg struct{ UIMessage }

type ServerStartedMsg struct{ UIMessage }

type SessionCodeMsg struct {
	UIMessage
	Code string
}

// SetHostMsg tells the UI the local user became the host of a relayed session.
type SetHostMsg struct{ UIMessage }

type NewConnectionMsg struct {
	UIMessage
	Name string
}

type LostConnectionMsg struct {
	UIMessage
	Name string
}

// ObservingMsg reports the local user's own observer state.
type ObservingMsg struct {
	UIMessage
	Observing bool
}

// SetObservingMsg reports a peer's observer state.
type SetObservingMsg struct {
	UIMessage
	Name      string
	Observing bool
}

type SetInControlMsg struct {
	UIMessage
	Name string
}

type AddAircraftMsg struct {
	UIMessage
	Name string
}

type VersionMsg struct {
	UIMessage
	Version string
}

type UpdateFailedMsg struct{ UIMessage }

// SendConfigMsg carries a JSON configuration blob pushed by the application.
type SendConfigMsg struct {
	UIMessage
	JSON string
}

// NetworkMetrics is a snapshot of link statistics as shown to the user.
// Ping is the one-way estimate, i.e. half the round-trip time.
type NetworkMetrics struct {
	SentPackets     uint64  `json:"sentPackets"`
	ReceivedPackets uint64  `json:"receivePackets"`
	SentKbps        float32 `json:"sentBandwidth"`
	ReceiveKbps     float32 `json:"receiveBandwidth"`
	PacketLoss      float32 `json:"packetLoss"`
	Ping            float32 `json:"ping"`
}

type MetricsMsg struct {
	UIMessage
	Metrics NetworkMetrics
}
