package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verolabs/vero/pkg/page"
)

func openTestStore(t *testing.T) *Bunt {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Pages, "a", []byte(`{"id":"a"}`)))
	got, err := s.Get(ctx, Pages, "a")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"a"}`, string(got))
}

func TestGet_Missing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), Pages, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_AbsentIsNoOp(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Delete(context.Background(), Pages, "nope"))
}

func TestMerge_ShallowFields(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Settings, AdminSettingsKey, []byte(`{"passphrase":"old","extra":1}`)))
	require.NoError(t, s.Merge(ctx, Settings, AdminSettingsKey, map[string]any{"passphrase": "new"}))

	got, err := s.Get(ctx, Settings, AdminSettingsKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"passphrase":"new","extra":1}`, string(got))
}

func TestList_CollectionIsolation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Pages, "one", []byte(`{}`)))
	require.NoError(t, s.Put(ctx, Pages, "two", []byte(`{}`)))
	require.NoError(t, s.Put(ctx, Leads, "lead", []byte(`{}`)))

	pages, err := s.List(ctx, Pages)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Contains(t, pages, "one")
	require.Contains(t, pages, "two")
}

func TestAppend_AssignsUniqueIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a, err := s.Append(ctx, Leads, []byte(`{"n":1}`))
	require.NoError(t, err)
	b, err := s.Append(ctx, Leads, []byte(`{"n":2}`))
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	leads, err := s.List(ctx, Leads)
	require.NoError(t, err)
	require.Len(t, leads, 2)
}

func TestSubscribe_DeliversInWriteOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var got []string
	cancel := s.Subscribe(Pages, "a", func(v []byte) {
		got = append(got, string(v))
	})
	defer cancel()

	require.NoError(t, s.Put(ctx, Pages, "a", []byte("1")))
	require.NoError(t, s.Put(ctx, Pages, "a", []byte("2")))
	require.NoError(t, s.Put(ctx, Pages, "b", []byte("other key")))

	require.Equal(t, []string{"1", "2"}, got)
}

// Concurrent writers to one key: the last notification a subscriber
// receives must carry the value that actually won the write race.
// Commit and publish happen under one write lock, so publish order
// cannot invert commit order.
func TestSubscribe_ConcurrentWritersLastDeliveryMatchesStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var mu sync.Mutex
	var last string
	cancel := s.Subscribe(Pages, "hot", func(v []byte) {
		mu.Lock()
		last = string(v)
		mu.Unlock()
	})
	defer cancel()

	const writers, writes = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				val := fmt.Sprintf(`{"writer":%d,"n":%d}`, w, i)
				if err := s.Put(ctx, Pages, "hot", []byte(val)); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	stored, err := s.Get(ctx, Pages, "hot")
	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, string(stored), last)
}

func TestSubscribe_CancelStopsDelivery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var count int
	cancel := s.Subscribe(Pages, "a", func([]byte) { count++ })

	require.NoError(t, s.Put(ctx, Pages, "a", []byte("1")))
	cancel()
	cancel() // double cancel must be safe
	require.NoError(t, s.Put(ctx, Pages, "a", []byte("2")))

	require.Equal(t, 1, count)
}

func TestSubscribe_DeleteDeliversNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var gotNil bool
	cancel := s.Subscribe(Pages, "a", func(v []byte) { gotNil = v == nil })
	defer cancel()

	require.NoError(t, s.Put(ctx, Pages, "a", []byte("1")))
	require.NoError(t, s.Delete(ctx, Pages, "a"))
	require.True(t, gotNil)
}

func TestClosedStore(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())
	_, err := s.Get(context.Background(), Pages, "a")
	require.ErrorIs(t, err, ErrClosed)
	require.ErrorIs(t, s.Put(context.Background(), Pages, "a", nil), ErrClosed)
}

func TestCatalog_PageRoundTripDeepEqual(t *testing.T) {
	s := openTestStore(t)
	cat := NewCatalog(s)
	ctx := context.Background()

	doc := page.SeedDocument()
	require.NoError(t, cat.PutPage(ctx, doc))

	got, err := cat.GetPage(ctx, page.DefaultSlug)
	require.NoError(t, err)

	// PutPage bumps the revision; everything else round-trips exactly.
	doc.Revision++
	require.Equal(t, doc.ID, got.ID)
	require.Equal(t, doc.Revision, got.Revision)
	require.Equal(t, doc.Theme, got.Theme)
	require.Equal(t, doc.SEO, got.SEO)
	require.Equal(t, doc.ThankYou, got.ThankYou)
	require.True(t, doc.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Sections, len(doc.Sections))
	for i, sec := range doc.Sections {
		require.Equal(t, sec.ID, got.Sections[i].ID)
		require.Equal(t, sec.Type, got.Sections[i].Type)
		for k := range sec.Content {
			require.Contains(t, got.Sections[i].Content, k)
		}
	}
}

func TestCatalog_SubscribePageDecodes(t *testing.T) {
	s := openTestStore(t)
	cat := NewCatalog(s)
	ctx := context.Background()

	var got *page.Document
	cancel := cat.SubscribePage("p", func(d *page.Document) { got = d })
	defer cancel()

	doc := page.NewDocument("p")
	require.NoError(t, cat.PutPage(ctx, doc))
	require.NotNil(t, got)
	require.Equal(t, "p", got.ID)

	require.NoError(t, cat.DeletePage(ctx, "p"))
	require.Nil(t, got)
}

func TestCatalog_LeadCounts(t *testing.T) {
	s := openTestStore(t)
	cat := NewCatalog(s)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := cat.AppendLead(ctx, page.Lead{
			Fields:     map[string]string{"name": "x"},
			SourcePage: "alpha",
		})
		require.NoError(t, err)
	}
	_, err := cat.AppendLead(ctx, page.Lead{SourcePage: "beta"})
	require.NoError(t, err)

	counts, err := cat.LeadCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"alpha": 3, "beta": 1}, counts)
}

func TestCatalog_SettingsSetupMode(t *testing.T) {
	s := openTestStore(t)
	cat := NewCatalog(s)
	ctx := context.Background()

	_, err := cat.GetSettings(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, cat.PutSettings(ctx, page.Settings{Passphrase: "open-sesame"}))
	got, err := cat.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "open-sesame", got.Passphrase)
}
