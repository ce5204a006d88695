package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireCallsListenersInOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Listen(CartUpdated, func(p interface{}) { got = append(got, "a:"+p.(string)) })
	bus.Listen(CartUpdated, func(p interface{}) { got = append(got, "b:"+p.(string)) })
	bus.Listen(OrderPlaced, func(interface{}) { got = append(got, "wrong") })

	bus.Fire(CartUpdated, "x")

	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestListenerAddedLaterOnlySeesLaterEvents(t *testing.T) {
	bus := NewBus()
	bus.Fire(UserLoggedIn, nil)

	calls := 0
	bus.Listen(UserLoggedIn, func(interface{}) { calls++ })
	bus.Fire(UserLoggedIn, nil)
	bus.Fire(UserLoggedOut, nil)
	assert.Equal(t, 1, calls)
}

func TestNilBusIsNoop(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Fire(CartUpdated, nil) })
}
