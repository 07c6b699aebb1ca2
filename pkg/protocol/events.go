package protocol

import (
	appevents "github.com/rescp17/yourcontrols/internal/app_events"
)

func orDefault(data *string, fallback string) string {
	if data == nil {
		return fallback
	}
	return *data
}

// ParseEvent maps an outbound tag and its optional payload to the typed UI message.
// It reports false for unknown tags and for metrics payloads that are absent or not
// a JSON object; such notifications are dropped.
func ParseEvent(tag MessageType, data *string) (appevents.AppUIMessage, bool) {
	switch tag {
	case TypeError:
		return appevents.ErrorMsg{Text: orDefault(data, "Unknown error")}, true
	case TypeAttempt:
		return appevents.AttemptMsg{}, true
	case TypeConnected:
		return appevents.ConnectedMsg{}, true
	case TypeServerFail:
		return appevents.ServerFailMsg{Reason: orDefault(data, "Unknown reason")}, true
	case TypeClientFail:
		return appevents.ClientFailMsg{Reason: orDefault(data, "Unknown reason")}, true
	case TypeGainControl:
		return appevents.GainControlMsg{}, true
	case TypeLoseControl:
		return appevents.LoseControlMsg{}, true
	case TypeServerStarted:
		return appevents.ServerStartedMsg{}, true
	case TypeSessionCode:
		return appevents.SessionCodeMsg{Code: orDefault(data, "")}, true
	case TypeHost:
		return appevents.SetHostMsg{}, true
	case TypeNewConnection:
		return appevents.NewConnectionMsg{Name: orDefault(data, "")}, true
	case TypeLostConnection:
		return appevents.LostConnectionMsg{Name: orDefault(data, "")}, true
	case TypeObserving:
		return appevents.ObservingMsg{Observing: true}, true
	case TypeStopObserving:
		return appevents.ObservingMsg{Observing: false}, true
	case TypeSetObserving:
		return appevents.SetObservingMsg{Name: orDefault(data, ""), Observing: true}, true
	case TypeSetNotObserving:
		return appevents.SetObservingMsg{Name: orDefault(data, ""), Observing: false}, true
	case TypeSetInControl:
		return appevents.SetInControlMsg{Name: orDefault(data, "")}, true
	case TypeAddAircraft:
		return appevents.AddAircraftMsg{Name: orDefault(data, "")}, true
	case TypeVersion:
		return appevents.VersionMsg{Version: orDefault(data, "")}, true
	case TypeUpdateFailed:
		return appevents.UpdateFailedMsg{}, true
	case TypeConfig:
		return appevents.SendConfigMsg{JSON: orDefault(data, "{}")}, true
	case TypeMetrics:
		if data == nil {
			return nil, false
		}
		metrics, err := DecodeMetrics(*data)
		if err != nil {
			return nil, false
		}
		return appevents.MetricsMsg{Metrics: metrics}, true
	}
	return nil, false
}
