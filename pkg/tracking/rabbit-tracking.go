package tracking

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wanderio/trek-finder/pkg/messaging"
	"github.com/wanderio/trek-finder/pkg/types"
)

type RabbitTracking struct {
	market     string
	instance   string
	connection *amqp.Connection
}

const trackingTopic = messaging.Topic("tracking")

func NewRabbitTracking(url, market, instance string) (*RabbitTracking, error) {
	ret := RabbitTracking{
		connection: nil,
		market:     market,
		instance:   instance,
	}
	err := ret.connect(url)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	t.connection = conn
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, "trek", trackingTopic)
}

func (t *RabbitTracking) Close() error {
	return t.connection.Close()
}

func (t *RabbitTracking) send(data any) error {
	return messaging.SendEvent(t.connection, "trek", trackingTopic, data)
}

type BaseEvent struct {
	SessionId int    `json:"session_id"`
	Market    string `json:"market,omitempty"`
	Instance  string `json:"instance,omitempty"`
	RequestId string `json:"request_id,omitempty"`
	Event     uint16 `json:"event"`
}

// baseEvent stamps every event with the process instance id and a fresh
// correlation id so downstream consumers can tie events together.
func (rt *RabbitTracking) baseEvent(event uint16, sessionId int) *BaseEvent {
	return &BaseEvent{
		Event:     event,
		SessionId: sessionId,
		Market:    rt.market,
		Instance:  rt.instance,
		RequestId: uuid.NewString(),
	}
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

func (rt *RabbitTracking) TrackSession(sessionId int, r *http.Request) {
	ip := r.Header.Get("X-Real-Ip")

	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}

	err := rt.send(Session{
		BaseEvent:    rt.baseEvent(0, sessionId),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           ip,
		PragmaHeader: r.Header.Get("Pragma"),
	})
	if err != nil {
		log.Println("Error sending session event: ", err)
	}
}

type SearchEventData struct {
	*types.Filters
	*BaseEvent
	NumberOfResults int    `json:"noi"`
	Query           string `json:"query"`
	Page            int    `json:"page"`
	Mode            string `json:"mode"`
}

func (rt *RabbitTracking) TrackSearch(sessionId int, filters *types.Filters, resultLen int, query string, page int, mode string) {
	err := rt.send(&SearchEventData{
		BaseEvent:       rt.baseEvent(1, sessionId),
		Filters:         filters,
		Query:           query,
		NumberOfResults: resultLen,
		Page:            page,
		Mode:            mode,
	})
	if err != nil {
		log.Println("Error sending search event: ", err)
	}
}

type FallbackEvent struct {
	*BaseEvent
	Reason string `json:"reason"`
}

// TrackFallback records a one-way transition into fallback mode, these are
// the events worth alerting on.
func (rt *RabbitTracking) TrackFallback(sessionId int, reason string) {
	err := rt.send(&FallbackEvent{
		BaseEvent: rt.baseEvent(2, sessionId),
		Reason:    reason,
	})
	if err != nil {
		log.Println("Error sending fallback event: ", err)
	}
}

type CompareEvent struct {
	*BaseEvent
	Ids []string `json:"ids"`
}

func (rt *RabbitTracking) TrackCompare(sessionId int, ids []string) {
	err := rt.send(&CompareEvent{
		BaseEvent: rt.baseEvent(3, sessionId),
		Ids:       ids,
	})
	if err != nil {
		log.Println("Error sending compare event: ", err)
	}
}
