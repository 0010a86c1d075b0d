package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sync operations carried on the queue. The worker fetches the full
// transaction from the database, so messages stay id-and-version only.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// TransactionSyncMessage asks the worker to reconcile one transaction
// with the spreadsheet.
type TransactionSyncMessage struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionSyncMessage builds an upsert message for a transaction.
func NewTransactionSyncMessage(id string, version int64) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		ID:        id,
		Version:   version,
		Op:        OpUpsert,
		Timestamp: time.Now(),
	}
}

// NewTransactionDeleteMessage builds a deletion message for a
// transaction whose local row is already soft-deleted.
func NewTransactionDeleteMessage(id string, version int64) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		ID:        id,
		Version:   version,
		Op:        OpDelete,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionSyncMessageFromJSON parses a queue payload.
func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Op != OpUpsert && msg.Op != OpDelete {
		return nil, fmt.Errorf("unknown sync op %q", msg.Op)
	}
	return &msg, nil
}
