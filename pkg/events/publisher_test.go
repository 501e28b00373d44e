package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Drivers(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	require.IsType(t, Nop{}, p)

	p, err = New(Config{Driver: "gochannel"})
	require.NoError(t, err)
	require.IsType(t, &ChannelPublisher{}, p)
	require.NoError(t, p.Close())

	_, err = New(Config{Driver: "kafka"})
	require.Error(t, err)

	_, err = New(Config{Driver: "carrier-pigeon"})
	require.Error(t, err)
}

func TestChannelPublisher_DeliversSubmission(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p := NewChannelPublisher(Config{Topic: "surveys"})
	defer p.Close()

	messages, err := p.Subscribe(ctx)
	require.NoError(t, err)

	event := Submitted("Survey 1", "session-1", []byte(`{"Q1":{"label":"L","widget_key":"k","value":"x"}}`))
	require.NoError(t, p.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		require.Equal(t, event.ID, msg.UUID)
		require.Equal(t, string(EventSurveySubmitted), msg.Metadata.Get("event_type"))
		require.Equal(t, "Survey 1", msg.Metadata.Get("survey"))

		var got Event
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		require.Equal(t, "session-1", got.SessionID)
		require.JSONEq(t, `{"Q1":{"label":"L","widget_key":"k","value":"x"}}`, string(got.Answers))
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestNewEvent_DefaultsEmptyAnswers(t *testing.T) {
	event := Imported("s", "", nil)
	require.Equal(t, EventAnswersImported, event.Type)
	require.Equal(t, DefaultSource, event.Source)
	require.NotEmpty(t, event.ID)
	require.JSONEq(t, `{}`, string(event.Answers))
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), Submitted("s", "", nil)))
	require.Error(t, r.Publish(context.Background(), nil))
	require.Len(t, r.Events(), 1)
}
