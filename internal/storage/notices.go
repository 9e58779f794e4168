package storage

import "fmt"

const noticesKey = "notices"

// Level is the severity of a notice
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient message shown once on the next rendered page
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notices queues toast notifications across redirects
type Notices struct {
	storage Storage
}

// NewNotices creates a notice queue on top of storage
func NewNotices(storage Storage) *Notices {
	return &Notices{storage: storage}
}

// Add queues a notice
func (n *Notices) Add(level Level, message string) error {
	var queued []Notice
	if _, err := n.storage.Load(noticesKey, &queued); err != nil {
		queued = nil
	}
	queued = append(queued, Notice{Level: level, Message: message})
	if err := n.storage.Save(noticesKey, queued); err != nil {
		return fmt.Errorf("failed to queue notice: %w", err)
	}
	return nil
}

// Error queues an error notice
func (n *Notices) Error(message string) error {
	return n.Add(LevelError, message)
}

// Success queues a success notice
func (n *Notices) Success(message string) error {
	return n.Add(LevelSuccess, message)
}

// Pop returns and removes all queued notices
func (n *Notices) Pop() ([]Notice, error) {
	var queued []Notice
	found, err := n.storage.Load(noticesKey, &queued)
	if !found {
		return nil, nil
	}
	if delErr := n.storage.Delete(noticesKey); delErr != nil {
		return nil, delErr
	}
	if err != nil {
		// a corrupt queue is dropped
		return nil, nil
	}
	return queued, nil
}
