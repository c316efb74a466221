package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatchDeliversInBackground(t *testing.T) {
	delivered := make(chan Notification, 1)
	orig := send
	send = func(to, subject, html string) error {
		delivered <- Notification{To: to, Subject: subject, HTML: html}
		return nil
	}
	defer func() { send = orig }()

	Dispatch(Notification{To: "a@example.com", Subject: "Hi", HTML: "<p>hello</p>"})

	select {
	case got := <-delivered:
		assert.Equal(t, "a@example.com", got.To)
		assert.Equal(t, "Hi", got.Subject)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never delivered")
	}
}

func TestDispatchSwallowsSendFailure(t *testing.T) {
	called := make(chan struct{}, 1)
	orig := send
	send = func(to, subject, html string) error {
		called <- struct{}{}
		return errors.New("smtp down")
	}
	defer func() { send = orig }()

	// must not panic or surface the error
	Dispatch(Notification{To: "a@example.com", Subject: "Hi", HTML: "x"})

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("send was never attempted")
	}
}

func TestDispatchSkipsEmptyRecipient(t *testing.T) {
	orig := send
	send = func(to, subject, html string) error {
		t.Error("send should not be called for an empty recipient")
		return nil
	}
	defer func() { send = orig }()

	Dispatch(Notification{Subject: "orphan"})
	time.Sleep(50 * time.Millisecond)
}
