package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"maridash/adapters/remote"
	"maridash/domain/artifact"
	"maridash/domain/table"
	"maridash/domain/topic"
	"maridash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFetcher stands in for the artifact host
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) ProbeImage(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockFetcher) FetchTable(ctx context.Context, url string) (*table.Table, error) {
	args := m.Called(ctx, url)
	tbl, _ := args.Get(0).(*table.Table)
	return tbl, args.Error(1)
}

const (
	testImages = "https://files.test/images"
	testData   = "https://files.test/data"
)

var testCatalogue = topic.MustCatalogue([]topic.Topic{
	{Label: "Deutsche Schifffahrt"},
	{Label: "Elon Musk"},
})

func newService(f *MockFetcher) *DashboardService {
	return NewDashboardService(testCatalogue, artifact.NewResolver(testImages, testData), f, 3, nil)
}

func sampleTable() *table.Table {
	return &table.Table{Columns: []string{"word", "n"}, Rows: [][]string{{"schiff", "3"}}}
}

// allPresent answers every probe and table fetch successfully
func allPresent(f *MockFetcher) {
	f.On("ProbeImage", mock.Anything, mock.Anything).Return(nil)
	f.On("FetchTable", mock.Anything, mock.Anything).Return(sampleTable(), nil)
}

func sectionNames(v *View) []string {
	names := make([]string, len(v.Sections))
	for i, s := range v.Sections {
		names[i] = s.Category.String()
	}
	return names
}

func TestRender_AllPresentFollowsLayout(t *testing.T) {
	f := &MockFetcher{}
	allPresent(f)

	view, err := newService(f).Render(context.Background(), "Deutsche Schifffahrt")
	require.NoError(t, err)

	require.Len(t, view.Sections, len(artifact.Layout))
	for i, c := range artifact.Layout {
		assert.Equal(t, c, view.Sections[i].Category)
	}
	assert.Equal(t, "Deutsche_Schifffahrt", view.Key)
	assert.Equal(t, testImages+"/wordcloud/Deutsche_Schifffahrt_wordcloud.png", view.Sections[1].URL)
	assert.True(t, view.Sections[0].IsTable())
	assert.Equal(t, "n", view.Sections[0].Summaries[0].Column)
	assert.Empty(t, view.Missing())
	f.AssertNumberOfCalls(t, "ProbeImage", 7)
	f.AssertNumberOfCalls(t, "FetchTable", 4)
}

func TestRender_EmptyLabelSelectsDefault(t *testing.T) {
	f := &MockFetcher{}
	allPresent(f)

	view, err := newService(f).Render(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Deutsche Schifffahrt", view.Topic.Label)
}

func TestRender_UnknownTopic(t *testing.T) {
	f := &MockFetcher{}

	_, err := newService(f).Render(context.Background(), "Deutsche_Schifffahrt")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	f.AssertNotCalled(t, "ProbeImage", mock.Anything, mock.Anything)
}

func TestRender_FailuresAreOmittedIndependently(t *testing.T) {
	f := &MockFetcher{}
	networkURL := testImages + "/network/Elon_Musk_network.png"
	wordcloudURL := testImages + "/wordcloud/Elon_Musk_wordcloud.png"
	resultsURL := testData + "/results/Elon_Musk_results.csv"
	tokensURL := testData + "/token_sentiments/Elon_Musk_token_sentiments.csv"

	f.On("ProbeImage", mock.Anything, networkURL).Return(errors.NotFound("artifact"))
	f.On("ProbeImage", mock.Anything, wordcloudURL).Return(errors.ExternalServiceError("artifact host", fmt.Errorf("dial tcp: refused")))
	f.On("ProbeImage", mock.Anything, mock.Anything).Return(nil)
	f.On("FetchTable", mock.Anything, resultsURL).Return(nil, errors.MalformedData("table", fmt.Errorf("wrong number of fields")))
	f.On("FetchTable", mock.Anything, tokensURL).Return(nil, nil)
	f.On("FetchTable", mock.Anything, mock.Anything).Return(sampleTable(), nil)

	view, err := newService(f).Render(context.Background(), "Elon Musk")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"image/sentiments",
		"image/extreme_sentiments",
		"table/extreme_sentiments",
		"image/keyword_distribution",
		"image/trending_keywords",
		"image/country_distribution",
		"table/top_topics",
	}, sectionNames(view))

	statuses := make(map[string]Status)
	for _, r := range view.Results {
		statuses[r.Reference.Category.String()] = r.Status
	}
	assert.Equal(t, StatusMissing, statuses["image/network"])
	assert.Equal(t, StatusUnreachable, statuses["image/wordcloud"])
	assert.Equal(t, StatusMalformed, statuses["table/results"])
	assert.Equal(t, StatusMalformed, statuses["table/token_sentiments"])
	assert.Equal(t, StatusPresent, statuses["table/top_topics"])
	assert.Len(t, view.Missing(), 4)
}

func TestRender_NothingAvailable(t *testing.T) {
	f := &MockFetcher{}
	f.On("ProbeImage", mock.Anything, mock.Anything).Return(errors.NotFound("artifact"))
	f.On("FetchTable", mock.Anything, mock.Anything).Return(nil, errors.NotFound("artifact"))

	view, err := newService(f).Render(context.Background(), "Elon Musk")
	require.NoError(t, err)
	assert.Empty(t, view.Sections)
	assert.Len(t, view.Results, len(artifact.Layout))
}

func TestRender_SecondSelectionReplacesFirst(t *testing.T) {
	f := &MockFetcher{}
	allPresent(f)
	svc := newService(f)

	_, err := svc.Render(context.Background(), "Deutsche Schifffahrt")
	require.NoError(t, err)
	view, err := svc.Render(context.Background(), "Elon Musk")
	require.NoError(t, err)

	for _, s := range view.Sections {
		assert.Contains(t, s.URL, "Elon_Musk_")
		assert.False(t, strings.Contains(s.URL, "Schifffahrt"))
	}
}

func TestTable(t *testing.T) {
	f := &MockFetcher{}
	url := testData + "/top_topics/Elon_Musk_top_topics.csv"
	f.On("FetchTable", mock.Anything, url).Return(sampleTable(), nil)

	tbl, err := newService(f).Table(context.Background(), "Elon Musk", artifact.TopTopics)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_Errors(t *testing.T) {
	f := &MockFetcher{}
	f.On("FetchTable", mock.Anything, mock.Anything).Return(nil, errors.NotFound("artifact"))
	svc := newService(f)

	_, err := svc.Table(context.Background(), "Elon Musk", artifact.Wordcloud)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.Table(context.Background(), "Nobody", artifact.TopTopics)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.Table(context.Background(), "Elon Musk", artifact.TopTopics)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestReferences(t *testing.T) {
	svc := newService(&MockFetcher{})
	tp, err := svc.Topic("Elon Musk")
	require.NoError(t, err)

	refs := svc.References(tp)
	require.Len(t, refs, len(artifact.Layout))
	assert.Equal(t, testData+"/results/Elon_Musk_results.csv", refs[0].URL)
}

// countingFetcher records how many fetches run at the same time
type countingFetcher struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (f *countingFetcher) enter() {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	f.inFlight.Add(-1)
}

func (f *countingFetcher) ProbeImage(ctx context.Context, url string) error {
	f.enter()
	return nil
}

func (f *countingFetcher) FetchTable(ctx context.Context, url string) (*table.Table, error) {
	f.enter()
	return sampleTable(), nil
}

func TestFetch_BoundedByConcurrency(t *testing.T) {
	f := &countingFetcher{}
	svc := NewDashboardService(testCatalogue, artifact.NewResolver(testImages, testData), f, 2, nil)

	results := svc.Fetch(context.Background(), testCatalogue.Default())

	require.Len(t, results, len(artifact.Layout))
	assert.Equal(t, int32(len(artifact.Layout)), f.calls.Load())
	assert.LessOrEqual(t, f.peak.Load(), int32(2))
	assert.GreaterOrEqual(t, f.peak.Load(), int32(1))
	for _, r := range results {
		assert.Equal(t, StatusPresent, r.Status)
	}
}

func TestRender_CancelledContextMarksUnreachable(t *testing.T) {
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("word,n\nschiff,3\n"))
	}))
	defer host.Close()

	resolver := artifact.NewResolver(host.URL+"/images", host.URL+"/data")
	svc := NewDashboardService(testCatalogue, resolver, remote.NewFetcher(), 4, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	view, err := svc.Render(ctx, "Elon Musk")
	require.NoError(t, err)
	assert.Empty(t, view.Sections)
	require.Len(t, view.Results, len(artifact.Layout))
	for _, r := range view.Results {
		assert.Equal(t, StatusUnreachable, r.Status, r.Reference.URL)
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
