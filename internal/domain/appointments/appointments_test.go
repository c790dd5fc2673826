package appointments

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

func appt(id string, offset time.Duration, st Status) Appointment {
	return Appointment{ID: id, DateTime: now.Add(offset), Status: st, Type: TypeConsultation}
}

func ids(items []Appointment) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

func TestUpcoming_OnlyScheduledFuture_SortedAscending(t *testing.T) {
	items := []Appointment{
		appt("later", 72*time.Hour, StatusScheduled),
		appt("cancelled-future", 24*time.Hour, StatusCancelled),
		appt("soon", time.Hour, StatusScheduled),
		appt("past", -time.Hour, StatusScheduled),
		appt("exactly-now", 0, StatusScheduled),
	}

	assert.Equal(t, []string{"soon", "later"}, ids(Upcoming(items, now)))
}

func TestPast_StrictlyBeforeNow_SortedDescending_IgnoresStatus(t *testing.T) {
	items := []Appointment{
		appt("week-ago", -7*24*time.Hour, StatusCompleted),
		appt("stale-scheduled", -time.Hour, StatusScheduled),
		appt("future", time.Hour, StatusScheduled),
		appt("exactly-now", 0, StatusCompleted),
	}

	assert.Equal(t, []string{"stale-scheduled", "week-ago"}, ids(Past(items, now)))
}

func TestTransition_FromScheduled(t *testing.T) {
	for _, to := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		got, err := appt("a", time.Hour, StatusScheduled).Transition(to)
		require.NoError(t, err)
		assert.Equal(t, to, got.Status)
	}
}

func TestTransition_OutOfTerminalIsRejected(t *testing.T) {
	for _, from := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		a := appt("a", time.Hour, from)
		assert.True(t, from.Terminal())

		_, err := a.Transition(StatusScheduled)
		assert.True(t, errors.Is(err, ErrInvalidTransition), "from %s", from)

		// mismo estado: idempotente
		same, err := a.Transition(from)
		require.NoError(t, err)
		assert.Equal(t, from, same.Status)
	}
}

func TestParse(t *testing.T) {
	st, err := ParseStatus("No Show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, st)

	typ, err := ParseType("Health Check")
	require.NoError(t, err)
	assert.Equal(t, TypeHealthCheck, typ)

	typ, err = ParseType("Follow-up")
	require.NoError(t, err)
	assert.Equal(t, TypeFollowUp, typ)

	_, err = ParseStatus("lost")
	assert.Error(t, err)
}
