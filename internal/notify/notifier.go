package notify

import "log"

// Notifier is the delivery edge (push provider, email, console).
type Notifier interface {
	Deliver(n Notification) error
}

// ConsoleNotifier logs deliveries; the default until a push provider is
// configured.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Deliver(n Notification) error {
	log.Printf("[notify] %s -> %s :: %s | %s", n.Type, n.UserID, n.Title, n.Body)
	return nil
}
