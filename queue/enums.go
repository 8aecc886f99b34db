package queue

type QueueType string

const (
	QueueTypeClassic QueueType = "classic"
	QueueTypeQuorum  QueueType = "quorum"
	QueueTypeStream  QueueType = "stream"
)

const (
	ContentTypeJSON = "application/json"

	// DefaultRoutingKey prefixes the event name, e.g. session.login.
	DefaultRoutingKey = "session"
)
