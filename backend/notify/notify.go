package notify

import "log"

// LogNotifier is the default notification sink: it writes notifications to
// the application log. Delivery is best effort by contract, so this is a
// valid sink, not a stub.
type LogNotifier struct {
	Logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Notify(title, message string) {
	if n.Logger != nil {
		n.Logger.Printf("notification: %s - %s", title, message)
		return
	}
	log.Printf("notification: %s - %s", title, message)
}
