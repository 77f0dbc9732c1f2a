package syncbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/prism/internal/domain/preference"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/prism/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/prism/internal/ports"
)

type rawEvent struct {
	payload interface{}
}

func (e rawEvent) EventType() string    { return ports.EventThemeChanged }
func (e rawEvent) Payload() interface{} { return e.payload }

func TestBroadcastReachesListenersSynchronously(t *testing.T) {
	t.Parallel()

	bus := NewBus(events.NewPagePublisher(logging.NewNoOpLogger()), nil)

	var got []preference.Change
	var origins []string
	sub, err := bus.Listen(func(_ context.Context, origin string, change preference.Change) error {
		origins = append(origins, origin)
		got = append(got, change)
		return nil
	})
	require.NoError(t, err)
	defer sub.Unsubscribe()

	change := preference.Change{Field: preference.FieldAccentColor, Value: "blue"}
	bus.Broadcast(context.Background(), "ctrl-1", change)

	assert.Equal(t, []preference.Change{change}, got)
	assert.Equal(t, []string{"ctrl-1"}, origins)
}

func TestUnsubscribedListenerStopsReceiving(t *testing.T) {
	t.Parallel()

	bus := NewBus(events.NewPagePublisher(nil), nil)
	calls := 0
	sub, err := bus.Listen(func(context.Context, string, preference.Change) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	change := preference.Change{Field: preference.FieldThemeFamily, Value: "high-contrast"}
	bus.Broadcast(context.Background(), "a", change)
	sub.Unsubscribe()
	bus.Broadcast(context.Background(), "a", change)

	assert.Equal(t, 1, calls)
}

func TestFailingListenerDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	bus := NewBus(events.NewPagePublisher(nil), nil)
	_, err := bus.Listen(func(context.Context, string, preference.Change) error {
		return errors.New("boom")
	})
	require.NoError(t, err)

	delivered := false
	_, err = bus.Listen(func(context.Context, string, preference.Change) error {
		delivered = true
		return nil
	})
	require.NoError(t, err)

	bus.Broadcast(context.Background(), "a", preference.Change{Field: preference.FieldMenuAccent, Value: "bold"})
	assert.True(t, delivered)
}

func TestNilBusIsInert(t *testing.T) {
	t.Parallel()

	var bus *Bus
	bus.Broadcast(context.Background(), "a", preference.Change{})
	sub, err := bus.Listen(func(context.Context, string, preference.Change) error { return nil })
	require.NoError(t, err)
	sub.Unsubscribe()
}

func TestDecodeMapPayload(t *testing.T) {
	t.Parallel()

	origin, change, err := Decode(rawEvent{payload: map[string]interface{}{
		PayloadField:  "accent",
		PayloadValue:  "pink",
		PayloadOrigin: "external",
	}})
	require.NoError(t, err)
	assert.Equal(t, "external", origin)
	assert.Equal(t, preference.Change{Field: preference.FieldAccentColor, Value: "pink"}, change)
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	cases := map[string]interface{}{
		"not a map":     "accent=pink",
		"unknown field": map[string]interface{}{PayloadField: "colour", PayloadValue: "pink"},
		"missing value": map[string]interface{}{PayloadField: "accentColor"},
	}
	for name, payload := range cases {
		payload := payload
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Decode(rawEvent{payload: payload})
			assert.Error(t, err)
		})
	}
}

func TestChangeEventPayloadShape(t *testing.T) {
	t.Parallel()

	event := changeEvent{origin: "o", change: preference.Change{Field: preference.FieldFontMono, Value: "fira-code"}}
	assert.Equal(t, ports.EventThemeChanged, event.EventType())
	assert.Equal(t, map[string]interface{}{
		"field":  "fontMono",
		"value":  "fira-code",
		"origin": "o",
	}, event.Payload())
}
