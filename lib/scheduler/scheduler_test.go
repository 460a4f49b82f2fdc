package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeReminders struct {
	now    time.Time
	leadIn time.Duration
	err    error
}

func (f *fakeReminders) SendReminders(now time.Time, leadIn time.Duration) (int, error) {
	f.now, f.leadIn = now, leadIn
	return 2, f.err
}

type fakePurger struct {
	before time.Time
	calls  int
}

func (f *fakePurger) PurgeQueue(before time.Time) (int64, error) {
	f.before = before
	f.calls++
	return 5, nil
}

func testNow() time.Time {
	return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
}

func TestRunReminders(t *testing.T) {
	reminders := &fakeReminders{}
	s := New(Settings{ReminderLeadIn: 24 * time.Hour}, reminders, &fakePurger{})
	s.now = testNow

	s.RunReminders()
	require.Equal(t, testNow(), reminders.now)
	require.Equal(t, 24*time.Hour, reminders.leadIn)

	reminders.err = errors.New("db down")
	require.NotPanics(t, s.RunReminders)
}

func TestRunPurge(t *testing.T) {
	purger := &fakePurger{}
	s := New(Settings{Retention: 30 * 24 * time.Hour}, &fakeReminders{}, purger)
	s.now = testNow

	s.RunPurge()
	require.Equal(t, 1, purger.calls)
	require.Equal(t, time.Date(2024, 2, 9, 12, 0, 0, 0, time.UTC), purger.before)

	s.settings.Retention = 0
	s.RunPurge()
	require.Equal(t, 1, purger.calls)
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := New(Settings{ReminderSpec: "not a spec"}, &fakeReminders{}, &fakePurger{})
	require.Error(t, s.Start(context.Background()))
}

func TestStartStopsWithContext(t *testing.T) {
	s := New(Settings{ReminderSpec: "@every 1h", PurgeSpec: "@daily"}, &fakeReminders{}, &fakePurger{})
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	require.Len(t, s.cron.Entries(), 2)
	cancel()
}
