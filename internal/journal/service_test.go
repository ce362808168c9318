package journal_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vj-go/internal/journal"
	"vj-go/internal/model"
	"vj-go/internal/storage"
	"vj-go/internal/testutil"
)

// seed creates two trips with one record of every kind each and a daily log
// for the first. It returns the IDs of the two trips.
func seed(t *testing.T, svc *journal.JournalService, clock *testutil.StubClock) (int, int) {
	t.Helper()

	a := svc.Trips().Create("Portugal", "Lisbon", testutil.At(0, 0), testutil.At(0, 0).AddDate(0, 0, 6))
	b := svc.Trips().Create("Japan", "Kyoto", testutil.At(0, 0), testutil.At(0, 0).AddDate(0, 0, 6))
	require.True(t, svc.Trips().SetActive(a.ID))

	for _, id := range []int{a.ID, b.ID} {
		clock.Set(testutil.At(9, 0))
		p := svc.Photos().Add(id, "/photos/x.jpg")
		svc.Photos().AddTag(p.ID, "day1")
		svc.Expenses().Add(model.Expense{TripID: id, Amount: dec("20"), Currency: "EUR", Date: testutil.At(13, 0), Category: "Food", Description: "Lunch"})
		clock.Set(testutil.At(20, 0))
		svc.Notes().Add(id, "Evening", "Walked around", []string{"walk"})
	}
	svc.Logs().Get(a.ID, testutil.At(0, 0))
	svc.Logs().Get(b.ID, testutil.At(0, 0))
	return a.ID, b.ID
}

func TestJournalService_DeleteTripCascades(t *testing.T) {
	svc, clock := testutil.NewTestJournal(t, nil)
	a, b := seed(t, svc, clock)

	require.NoError(t, svc.DeleteTrip(a))

	_, ok := svc.Trips().Get(a)
	assert.False(t, ok)
	assert.Empty(t, svc.Photos().ForTrip(a))
	assert.Empty(t, svc.Expenses().ForTrip(a))
	assert.Empty(t, svc.Notes().ForTrip(a))
	assert.Empty(t, svc.Logs().ListForTrip(a))

	assert.Len(t, svc.Photos().ForTrip(b), 1)
	assert.Len(t, svc.Expenses().ForTrip(b), 1)
	assert.Len(t, svc.Notes().ForTrip(b), 1)
	assert.Len(t, svc.Logs().ListForTrip(b), 1)

	err := svc.DeleteTrip(a)
	assert.ErrorIs(t, err, journal.ErrTripNotFound)
}

func TestJournalService_ResolveTrip(t *testing.T) {
	svc, clock := testutil.NewTestJournal(t, nil)

	_, err := svc.ResolveTrip(0)
	assert.ErrorIs(t, err, journal.ErrNoActiveTrip)

	a, b := seed(t, svc, clock)

	got, err := svc.ResolveTrip(0)
	require.NoError(t, err)
	assert.Equal(t, a, got.ID)

	got, err = svc.ResolveTrip(b)
	require.NoError(t, err)
	assert.Equal(t, b, got.ID)

	_, err = svc.ResolveTrip(42)
	assert.ErrorIs(t, err, journal.ErrTripNotFound)
}

func TestJournalService_SaveLoad(t *testing.T) {
	store := storage.NewMemoryStorage()
	clock := testutil.FixedClock()

	svc := journal.NewJournalService(store, nil, journal.NewNopLogger(), clock)
	a, _ := seed(t, svc, clock)
	entry := svc.Logs().Get(a, testutil.At(0, 0))
	require.True(t, svc.Logs().Update(entry.ID, "pinned words"))
	require.NoError(t, svc.Expenses().SetRate("CHF", dec("0.9")))
	require.NoError(t, svc.Save())

	reloaded := journal.NewJournalService(store, nil, journal.NewNopLogger(), clock)
	require.NoError(t, reloaded.Load())

	assert.Len(t, reloaded.Trips().List(), 2)
	active, ok := reloaded.Trips().Active()
	require.True(t, ok)
	assert.Equal(t, a, active.ID)

	assert.Equal(t, "pinned words", reloaded.Logs().Get(a, testutil.At(0, 0)).Text())
	assert.Contains(t, reloaded.Expenses().Currencies(), "CHF")
	assert.Equal(t, svc.Expenses().Total(a, "USD").String(), reloaded.Expenses().Total(a, "USD").String())

	// Counters continue after the highest loaded ID.
	next := reloaded.Trips().Create("Third", "", testutil.At(0, 0), testutil.At(0, 0))
	assert.Equal(t, 3, next.ID)
	p := reloaded.Photos().Add(a, "/photos/new.jpg")
	assert.Equal(t, 3, p.ID)
}

func TestJournalService_LoadEmptyStorage(t *testing.T) {
	svc, _ := testutil.NewTestJournal(t, nil)
	require.NoError(t, svc.Load())
	assert.Empty(t, svc.Trips().List())
}

func TestJournalService_BackupRestore(t *testing.T) {
	archive := testutil.NewTestArchive()
	enc := testutil.NewTestEncryptor()

	svc, clock := testutil.NewTestJournal(t, nil)
	a, _ := seed(t, svc, clock)

	v1, err := svc.Backup(archive, enc, "journal-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	var sealed bytes.Buffer
	require.NoError(t, archive.GetSnapshot("journal-1", &sealed))
	assert.NotContains(t, sealed.String()[:8], "{")

	require.NoError(t, svc.DeleteTrip(a))
	v2, err := svc.Backup(archive, enc, "journal-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2)

	// Restoring brings back the latest backup, without the deleted trip.
	fresh, _ := testutil.NewTestJournal(t, nil)
	dec, err := enc.Unlock("pass")
	require.NoError(t, err)

	version, err := fresh.RestoreBackup(archive, dec, "journal-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	assert.Len(t, fresh.Trips().List(), 1)
	_, ok := fresh.Trips().Get(a)
	assert.False(t, ok)
}

func TestJournalService_RestoreBackupErrors(t *testing.T) {
	svc, _ := testutil.NewTestJournal(t, nil)
	enc := testutil.NewTestEncryptor()
	dec, err := enc.Unlock("pass")
	require.NoError(t, err)

	_, err = svc.RestoreBackup(testutil.NewTestArchive(), dec, "nobody")
	assert.True(t, errors.Is(err, journal.ErrNoSnapshot))
}
