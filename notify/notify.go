package notify

import (
	"log"

	"github.com/holistichub/practitioner-hub/utils"
)

// Notification is a pending email produced by a core operation. The operation
// that produced it has already succeeded by the time it is dispatched.
type Notification struct {
	To      string
	Subject string
	HTML    string
}

// send is swapped out in tests.
var send = utils.SendEmail

// Dispatch fires the notification best-effort. Delivery failures are logged
// and swallowed; they must never fail the request that produced the
// notification.
func Dispatch(n Notification) {
	if n.To == "" {
		return
	}
	go func() {
		if err := send(n.To, n.Subject, n.HTML); err != nil {
			log.Printf("notify: failed to send %q to %s: %v", n.Subject, n.To, err)
		}
	}()
}
