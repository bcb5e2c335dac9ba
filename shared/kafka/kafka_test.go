package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMessage struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func newTypedHandler(processErr error, processed *[]testMessage) *TypedMessageHandler[testMessage] {
	return &TypedMessageHandler[testMessage]{
		Validate: func(msg *testMessage) error {
			if msg.ID == "" {
				return errors.New("missing id")
			}
			return nil
		},
		Process: func(_ context.Context, msg *testMessage) error {
			*processed = append(*processed, *msg)
			return processErr
		},
		AlwaysMark: true,
	}
}

func TestTypedMessageHandler(t *testing.T) {
	tests := []struct {
		name          string
		value         string
		processErr    error
		wantMark      bool
		wantErr       bool
		wantProcessed int
	}{
		{name: "valid", value: `{"id":"1","body":"hi"}`, wantMark: true, wantProcessed: 1},
		{name: "undecodable is skipped", value: `{`, wantMark: true},
		{name: "invalid is skipped", value: `{"body":"no id"}`, wantMark: true},
		{name: "process failure is not marked", value: `{"id":"2"}`, processErr: errors.New("boom"), wantErr: true, wantProcessed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var processed []testMessage
			h := newTypedHandler(tt.processErr, &processed)

			mark, err := h.HandleMessage(context.Background(), []byte("k"), []byte(tt.value))
			assert.Equal(t, tt.wantMark, mark)
			assert.Equal(t, tt.wantErr, err != nil)
			assert.Len(t, processed, tt.wantProcessed)
		})
	}
}

func TestTypedMessageHandlerWithoutAlwaysMark(t *testing.T) {
	var processed []testMessage
	h := newTypedHandler(nil, &processed)
	h.AlwaysMark = false

	mark, err := h.HandleMessage(context.Background(), nil, []byte(`{"body":"no id"}`))
	require.NoError(t, err)
	assert.False(t, mark)
}

func TestProducerPublish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var msg testMessage
		if err := json.Unmarshal(val, &msg); err != nil {
			return err
		}
		if msg.ID != "job-1" {
			return errors.New("unexpected id " + msg.ID)
		}
		return nil
	})

	p := NewProducerFromSync(sp, "post-generation-results")
	require.NoError(t, p.Publish("job-1", testMessage{ID: "job-1", Body: "done"}))
	assert.Equal(t, "post-generation-results", p.Topic())
	require.NoError(t, p.Close())
}

func TestProducerPublishFailure(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFromSync(sp, "post-generation-results")
	err := p.Publish("job-1", testMessage{ID: "job-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish to post-generation-results")
	require.NoError(t, p.Close())
}

// failingGroup is a consumer group whose Consume always fails
type failingGroup struct {
	calls  atomic.Int32
	errors chan error
}

func newFailingGroup() *failingGroup {
	g := &failingGroup{errors: make(chan error)}
	close(g.errors)
	return g
}

func (g *failingGroup) Consume(context.Context, []string, sarama.ConsumerGroupHandler) error {
	g.calls.Add(1)
	return sarama.ErrOutOfBrokers
}

func (g *failingGroup) Errors() <-chan error { return g.errors }
func (g *failingGroup) Close() error { return nil }
func (g *failingGroup) Pause(map[string][]int32) {}
func (g *failingGroup) Resume(map[string][]int32) {}
func (g *failingGroup) PauseAll() {}
func (g *failingGroup) ResumeAll() {}

func TestConsumerBacksOffBeforeRejoining(t *testing.T) {
	group := newFailingGroup()
	c := NewConsumerFromGroup(group, ConsumerConfig{
		Topic:   "jobs",
		GroupID: "test",
		Handler: newTypedHandler(nil, &[]testMessage{}),
		Backoff: 100 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 350*time.Millisecond)
	defer cancel()

	err := c.Start(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	calls := group.calls.Load()
	assert.GreaterOrEqual(t, calls, int32(2))
	assert.LessOrEqual(t, calls, int32(5))
}

func TestNewConsumerFromGroupDefaultBackoff(t *testing.T) {
	c := NewConsumerFromGroup(newFailingGroup(), ConsumerConfig{Topic: "jobs"})
	assert.Equal(t, RejoinBackoff, c.backoff)
}
