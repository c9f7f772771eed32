package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"maridash/adapters/remote"
	"maridash/app"
	"maridash/domain/artifact"
	"maridash/domain/topic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, load dashboardLoader, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd(load)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func loaderFor(baseURL string) dashboardLoader {
	catalogue := topic.MustCatalogue([]topic.Topic{{Label: "Zeta Häfen"}, {Label: "Alpha Schiff"}})
	return func() (*app.DashboardService, error) {
		resolver := artifact.NewResolver(baseURL+"/images", baseURL+"/data")
		return app.NewDashboardService(catalogue, resolver, remote.NewFetcher(), 2, nil), nil
	}
}

func TestTopicsCmd(t *testing.T) {
	out, err := run(t, loaderFor("http://files.test"), "topics")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Zeta Häfen"), strings.Index(out, "Alpha Schiff"))
	assert.Contains(t, out, "Zeta_Häfen")

	out, err = run(t, loaderFor("http://files.test"), "topics", "--sorted")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Alpha Schiff"), strings.Index(out, "Zeta Häfen"))
}

func TestResolveCmd(t *testing.T) {
	out, err := run(t, loaderFor("http://files.test"), "resolve", "Alpha_Schiff")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(artifact.Layout))
	assert.Contains(t, lines[0], "http://files.test/data/results/Alpha_Schiff_results.csv")
	assert.Contains(t, lines[1], "http://files.test/images/wordcloud/Alpha_Schiff_wordcloud.png")
}

func TestResolveCmd_UnknownTopic(t *testing.T) {
	_, err := run(t, loaderFor("http://files.test"), "resolve", "Gamma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown topic "Gamma"`)
}

func TestCheckCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/images/network/Alpha_Schiff_network.png" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	out, err := run(t, loaderFor(srv.URL), "check", "Alpha Schiff")
	require.NoError(t, err)
	assert.Contains(t, out, "present")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, `1 of 11 artifacts available for "Alpha Schiff"`)
}
