package aggregator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/law-makers/jobhub/internal/reqctx"
	"github.com/law-makers/jobhub/internal/sites"
	"github.com/law-makers/jobhub/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	name  string
	jobs  []models.Job
	err   error
	delay time.Duration

	mu   sync.Mutex
	got  []models.SearchRequest
	ids  []string
	busy *int32
	peak *int32
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Search(ctx context.Context, req models.SearchRequest) ([]models.Job, error) {
	if f.busy != nil {
		n := atomic.AddInt32(f.busy, 1)
		defer atomic.AddInt32(f.busy, -1)
		for {
			p := atomic.LoadInt32(f.peak)
			if n <= p || atomic.CompareAndSwapInt32(f.peak, p, n) {
				break
			}
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	f.got = append(f.got, req)
	f.ids = append(f.ids, reqctx.GetRequestContext(ctx).RequestID)
	f.mu.Unlock()
	return f.jobs, f.err
}

func job(title, source string) models.Job {
	return models.Job{models.FieldTitle: title, models.FieldCompany: "Acme", models.FieldURL: "https://x.test/" + title, models.FieldSource: source}
}

func TestSearch_DispatchesBySite(t *testing.T) {
	linkedin := &fakeAdapter{name: "linkedin", jobs: []models.Job{job("a", "LinkedIn")}}
	remoteok := &fakeAdapter{name: "remoteok", jobs: []models.Job{job("b", "RemoteOK")}}
	agg := New(sites.NewRegistry(linkedin, remoteok), 0)

	jobs := agg.Search(context.Background(), models.SearchRequest{Query: " python ", Site: "LinkedIn"})
	require.Len(t, jobs, 1)
	assert.Equal(t, "a", jobs[0][models.FieldTitle])

	require.Len(t, linkedin.got, 1)
	assert.Equal(t, "python", linkedin.got[0].Query)
	assert.Equal(t, 1, linkedin.got[0].Page, "page defaults to 1")
	assert.Empty(t, remoteok.got)
}

func TestSearch_LegacyAlias(t *testing.T) {
	linkedin := &fakeAdapter{name: "linkedin", jobs: []models.Job{job("a", "LinkedIn")}}
	agg := New(sites.NewRegistry(linkedin), 0)

	assert.Len(t, agg.Search(context.Background(), models.SearchRequest{Query: "go", Site: "linkdin"}), 1)
}

func TestSearch_UnknownSiteIsEmpty(t *testing.T) {
	agg := New(sites.NewRegistry(&fakeAdapter{name: "linkedin"}), 0)

	jobs := agg.Search(context.Background(), models.SearchRequest{Query: "python", Site: "monster"})
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)

	jobs, err := agg.SearchErr(context.Background(), models.SearchRequest{Query: "python", Site: "monster"})
	assert.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestSearch_AdapterFailureIsEmpty(t *testing.T) {
	cause := errors.New("status 403")
	agg := New(sites.NewRegistry(&fakeAdapter{name: "indeed", err: cause}), 0)

	jobs := agg.Search(context.Background(), models.SearchRequest{Query: "python", Site: "indeed"})
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)

	_, err := agg.SearchErr(context.Background(), models.SearchRequest{Query: "python", Site: "indeed"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	var re *reqctx.RequestError
	assert.ErrorAs(t, err, &re)
}

func TestSearchAll_GroupsInRequestOrder(t *testing.T) {
	slow := &fakeAdapter{name: "indeed", delay: 30 * time.Millisecond, jobs: []models.Job{job("slow", "Indeed")}}
	fast := &fakeAdapter{name: "remoteok", jobs: []models.Job{job("fast", "RemoteOK")}}
	broken := &fakeAdapter{name: "timesjobs", err: errors.New("boom")}
	agg := New(sites.NewRegistry(slow, fast, broken), 3)

	var mu sync.Mutex
	done := map[string]error{}
	notify := func(site string, _ int, err error) {
		mu.Lock()
		done[site] = err
		mu.Unlock()
	}

	results := agg.SearchAllNotify(context.Background(), models.SearchRequest{Query: "go"}, []string{"indeed", "timesjobs", "remoteok", "nowhere"}, notify)
	require.Len(t, results, 4)

	assert.Equal(t, "indeed", results[0].Site)
	assert.Equal(t, "slow", results[0].Jobs[0][models.FieldTitle])
	assert.Equal(t, "timesjobs", results[1].Site)
	assert.Empty(t, results[1].Jobs)
	assert.Equal(t, "remoteok", results[2].Site)
	assert.Equal(t, "fast", results[2].Jobs[0][models.FieldTitle])
	assert.Equal(t, "nowhere", results[3].Site)
	assert.Empty(t, results[3].Jobs)

	assert.Len(t, done, 4)
	assert.Error(t, done["timesjobs"])

	// all sites share the request id assigned for the fan-out
	assert.Equal(t, slow.ids[0], fast.ids[0])
}

func TestSearchAll_RespectsConcurrencyLimit(t *testing.T) {
	var busy, peak int32
	var adapters []sites.Adapter
	var names []string
	for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
		adapters = append(adapters, &fakeAdapter{name: n, delay: 20 * time.Millisecond, busy: &busy, peak: &peak})
		names = append(names, n)
	}
	agg := New(sites.NewRegistry(adapters...), 2)

	results := agg.SearchAll(context.Background(), models.SearchRequest{Query: "go"}, names)
	assert.Len(t, results, 6)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestSearchAll_DefaultsToAllSites(t *testing.T) {
	agg := New(sites.NewRegistry(&fakeAdapter{name: "x"}, &fakeAdapter{name: "y"}), 0)
	results := agg.SearchAll(context.Background(), models.SearchRequest{Query: "go"}, nil)
	require.Len(t, results, 2)
	assert.Equal(t, "x", results[0].Site)
	assert.Equal(t, []string{"x", "y"}, agg.Sites())
}
