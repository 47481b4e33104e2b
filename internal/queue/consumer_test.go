package queue

import (
    "bytes"
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestWriteJournal(t *testing.T) {
    ev := BookingEvent{
        EventID:        "e-1",
        Type:           EventBookingStatusChanged,
        ReservationID:  7,
        Code:           "BK0000ABCD",
        UserID:         3,
        RoomID:         11,
        CheckIn:        "2025-01-01",
        CheckOut:       "2025-01-04",
        Status:         "checked_in",
        PreviousStatus: "paid",
        TotalPrice:     "270.00",
        ActorID:        1,
        OccurredAt:     "2025-01-01T12:00:00Z",
    }
    body, err := json.Marshal(ev)
    require.NoError(t, err)

    var buf bytes.Buffer
    require.NoError(t, WriteJournal(&buf, body))

    var line map[string]any
    require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
    assert.Equal(t, "booking.status_changed", line["type"])
    assert.Equal(t, "paid", line["previous_status"])
    assert.Equal(t, "270.00", line["total_price"])
    assert.EqualValues(t, 7, line["reservation_id"])
    assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestWriteJournalRejectsBadPayloads(t *testing.T) {
    var buf bytes.Buffer
    assert.Error(t, WriteJournal(&buf, []byte("{not json")))
    assert.Error(t, WriteJournal(&buf, []byte(`{"event_id":"x"}`)))
    assert.Zero(t, buf.Len())
}
