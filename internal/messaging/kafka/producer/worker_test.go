package producer

import (
	"context"
	"errors"
	"testing"

	"github.com/RNiyam/attendance-system/internal/messaging/kafka"
	kafkaMock "github.com/RNiyam/attendance-system/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	fail    map[string]error
	written []kafkago.Message
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.fail[string(m.Key)]; err != nil {
			return err
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx := context.Background()

	pending := []kafka.OutboxEvent{
		{ID: "o-1", RequestID: "rid-1", AggregateID: "emp-1", EventType: "attendance_recorded", Topic: "t", Payload: []byte(`{}`)},
		{ID: "o-2", AggregateID: "emp-2", EventType: "attendance_recorded", Topic: "t", Payload: []byte(`{}`)},
	}
	writer := &fakeWriter{fail: map[string]error{"emp-2": errors.New("broker down")}}

	repo.EXPECT().ListPending(ctx, batchSize).Return(pending, nil)
	repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "o-2", "broker down").Return(nil)

	err := processPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	if assert.Len(t, writer.written, 1) {
		msg := writer.written[0]
		assert.Equal(t, "emp-1", string(msg.Key))
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("rid-1")})
	}
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)

	repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(nil, errors.New("db gone"))

	err := processPendingEvents(context.Background(), repo, &fakeWriter{}, zap.NewNop())
	assert.EqualError(t, err, "db gone")
}
