package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// fakeMessage only implements Payload; other methods are not used by Run.
type fakeMessage struct {
	pulsar.Message
	payload []byte
}

func (m fakeMessage) Payload() []byte { return m.payload }

type fakeReceiver struct {
	messages []pulsar.Message
	cancel   context.CancelFunc
	acked    []string
	nacked   []string
	closed   bool
}

func (f *fakeReceiver) Receive(ctx context.Context) (pulsar.Message, error) {
	if len(f.messages) == 0 {
		f.cancel()
		<-ctx.Done()
		return nil, ctx.Err()
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeReceiver) Ack(msg pulsar.Message) error {
	f.acked = append(f.acked, string(msg.Payload()))
	return nil
}

func (f *fakeReceiver) Nack(msg pulsar.Message) {
	f.nacked = append(f.nacked, string(msg.Payload()))
}

func (f *fakeReceiver) Close() { f.closed = true }

func TestConsumerRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	receiver := &fakeReceiver{
		messages: []pulsar.Message{
			fakeMessage{payload: []byte("ok-1")},
			fakeMessage{payload: []byte("bad")},
			fakeMessage{payload: []byte("ok-2")},
		},
		cancel: cancel,
	}
	logger := zerolog.Nop()
	consumer := &EventConsumer{consumer: receiver, log: &logger}

	err := consumer.Run(ctx, func(_ context.Context, payload []byte) error {
		if string(payload) == "bad" {
			return errors.New("cannot process")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"ok-1", "ok-2"}, receiver.acked)
	assert.Equal(t, []string{"bad"}, receiver.nacked)

	consumer.Close()
	assert.True(t, receiver.closed)
}

type failingReceiver struct {
	fakeReceiver
	failures int
	calls    int
}

func (f *failingReceiver) Receive(ctx context.Context) (pulsar.Message, error) {
	f.calls++
	if f.calls > f.failures {
		f.cancel()
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return nil, errors.New("connection closed")
}

func TestConsumerRun_BacksOffAfterReceiveErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	receiver := &failingReceiver{fakeReceiver: fakeReceiver{cancel: cancel}, failures: 3}
	logger := zerolog.Nop()
	consumer := &EventConsumer{consumer: receiver, log: &logger, backoff: 20 * time.Millisecond}

	start := time.Now()
	err := consumer.Run(ctx, func(context.Context, []byte) error { return nil })

	assert.NoError(t, err)
	assert.Equal(t, 4, receiver.calls)
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestConsumerRun_StopsDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	receiver := &failingReceiver{fakeReceiver: fakeReceiver{cancel: cancel}, failures: 100}
	logger := zerolog.Nop()
	consumer := &EventConsumer{consumer: receiver, log: &logger, backoff: time.Hour}

	time.AfterFunc(20*time.Millisecond, cancel)
	err := consumer.Run(ctx, func(context.Context, []byte) error { return nil })

	assert.NoError(t, err)
	assert.Equal(t, 1, receiver.calls)
}
