package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() LoadEvent {
	return LoadEvent{
		LoadID:    "9b2f6c1e-4a7d-4d0c-9a57-0c3e1f2b8d11",
		DatasetID: "run-1",
		LoadedAt:  time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
		Counts:    []TableRows{{Table: "users", Rows: 25}, {Table: "orders", Rows: 40}},
	}
}

func TestLoadEventValidate(t *testing.T) {
	require.NoError(t, validEvent().Validate())

	tests := map[string]func(*LoadEvent){
		"no id":     func(e *LoadEvent) { e.LoadID = "" },
		"no time":   func(e *LoadEvent) { e.LoadedAt = time.Time{} },
		"no counts": func(e *LoadEvent) { e.Counts = nil },
		"no table":  func(e *LoadEvent) { e.Counts[0].Table = "" },
		"negative":  func(e *LoadEvent) { e.Counts[1].Rows = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			ev := validEvent()
			mutate(&ev)
			assert.Error(t, ev.Validate())
		})
	}
}

func TestEncodeUsesLoadIDAsKey(t *testing.T) {
	ev := validEvent()
	msg, err := encode(ev)
	require.NoError(t, err)
	assert.Equal(t, ev.LoadID, string(msg.Key))

	var back LoadEvent
	require.NoError(t, json.Unmarshal(msg.Value, &back))
	assert.Equal(t, ev.Counts, back.Counts)
	assert.True(t, ev.LoadedAt.Equal(back.LoadedAt))

	_, err = encode(LoadEvent{})
	assert.Error(t, err)
}

func TestConsumerProcess(t *testing.T) {
	var got []LoadEvent
	c := &Consumer{handle: func(_ context.Context, ev LoadEvent) error {
		got = append(got, ev)
		return nil
	}}

	msg, err := encode(validEvent())
	require.NoError(t, err)
	require.NoError(t, c.process(context.Background(), msg.Value))
	require.Len(t, got, 1)
	assert.Equal(t, validEvent().LoadID, got[0].LoadID)

	assert.Error(t, c.process(context.Background(), []byte("{")))
	assert.Error(t, c.process(context.Background(), []byte(`{"load_id":""}`)))
	assert.Len(t, got, 1)
}

func TestConsumerProcessHandlerError(t *testing.T) {
	boom := errors.New("boom")
	c := &Consumer{handle: func(context.Context, LoadEvent) error { return boom }}
	msg, err := encode(validEvent())
	require.NoError(t, err)
	assert.ErrorIs(t, c.process(context.Background(), msg.Value), boom)
}
