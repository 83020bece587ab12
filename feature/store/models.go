package store

import (
	"encoding/json"
	"time"
)

// TimestampFormat renders times as ISO 8601 with milliseconds in UTC.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Entry is a stored value with its bookkeeping timestamps.
type Entry struct {
	Namespace string
	Key       string
	Value     json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Namespace summarises one namespace holding at least one key.
type Namespace struct {
	Name      string
	CreatedAt time.Time
}

// entryRecord is the SQL row of an Entry.
type entryRecord struct {
	Namespace string    `gorm:"column:namespace;primaryKey;size:50"`
	Key       string    `gorm:"column:key;primaryKey;size:255"`
	Value     string    `gorm:"column:value;type:mediumtext;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (entryRecord) TableName() string {
	return "kv_entries"
}

func (r entryRecord) toEntry() Entry {
	return Entry{
		Namespace: r.Namespace,
		Key:       r.Key,
		Value:     json.RawMessage(r.Value),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// keyView is the list representation of an Entry.
type keyView struct {
	Key       string `json:"key"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// namespaceView is the list representation of a Namespace.
type namespaceView struct {
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// valueResponse is the body of a successful get.
type valueResponse struct {
	Value json.RawMessage `json:"value"`
}

// messageResponse is the body of a successful put.
type messageResponse struct {
	Message string `json:"message"`
}

// keysResponse is the body of a successful list.
type keysResponse struct {
	Keys []keyView `json:"keys"`
}

// namespacesResponse is the body of a successful namespace listing.
type namespacesResponse struct {
	Namespaces []namespaceView `json:"namespaces"`
}
