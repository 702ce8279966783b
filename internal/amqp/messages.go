package amqp

import (
	"encoding/json"
	"time"
)

// Mutation operations carried by change events.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Entity kinds carried by change events.
const (
	EntityMember      = "member"
	EntityCategory    = "category"
	EntityAccount     = "account"
	EntityCard        = "card"
	EntityTransaction = "transaction"
	EntityGoal        = "goal"
)

// EntityChangeMessage is a lightweight notification that a store mutation
// happened. It carries only the entity kind, id and operation; consumers
// that need the record fetch it from the read surface.
type EntityChangeMessage struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntityChangeMessage(entity, id, op string) *EntityChangeMessage {
	return &EntityChangeMessage{
		Entity:    entity,
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *EntityChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntityChangeMessageFromJSON creates a message from JSON bytes.
func EntityChangeMessageFromJSON(data []byte) (*EntityChangeMessage, error) {
	var msg EntityChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
