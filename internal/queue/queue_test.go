package queue

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

func sampleEvent() SeatEvent {
	return NewSeatEvent(EventBookingCleared, model.Booking{
		ID: "b-1", Room: model.RoomReading, SeatID: 5, RequesterName: "Ali Valiyev", Duration: model.DurationTwoHours,
	}, "head@armhub.uz", "2026-03-10T09:30:00Z")
}

func TestWriteAuditLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAuditLine(&buf, sampleEvent()))
	assert.Equal(t,
		"[2026-03-10T09:30:00Z] booking.cleared | booking_id=b-1 | room=reading | seat=5 | requester=\"Ali Valiyev\" | duration=\"2 hours\" | actor=head@armhub.uz\n",
		buf.String())

	buf.Reset()
	ev := sampleEvent()
	ev.Actor = ""
	require.NoError(t, WriteAuditLine(&buf, ev))
	assert.Contains(t, buf.String(), "| actor=-\n")
}

func TestConsumer_Handle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "seat_events.log")
	c := &Consumer{LogPath: path, Log: zap.NewNop()}

	body, err := json.Marshal(sampleEvent())
	require.NoError(t, err)
	require.NoError(t, c.Handle(body))
	require.NoError(t, c.Handle(body))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))

	assert.Error(t, c.Handle([]byte("{")))
	assert.Error(t, c.Handle([]byte(`{"type":""}`)))
}
