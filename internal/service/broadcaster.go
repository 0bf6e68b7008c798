package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToIdea(ideaID string, msgType string, payload interface{})
}
