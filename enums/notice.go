package enums

type NoticePriority string

const (
	NoticePriorityLow    NoticePriority = "LOW"
	NoticePriorityNormal NoticePriority = "NORMAL"
	NoticePriorityHigh   NoticePriority = "HIGH"
)

func (p NoticePriority) Valid() bool {
	switch p {
	case NoticePriorityLow, NoticePriorityNormal, NoticePriorityHigh:
		return true
	}
	return false
}
