package versions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrSnakeDoc/gradle-updater/internal/errs"
	"github.com/MrSnakeDoc/gradle-updater/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type infoRecorder struct{ lines []string }

func (r *infoRecorder) Info(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

type fakeHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return f.DoFunc(req)
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var gotPath string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &gotPath
}

func newFetcher(t *testing.T, srv *httptest.Server, policy Policy) (*Fetcher, *infoRecorder) {
	t.Helper()
	rec := &infoRecorder{}
	f, err := NewFetcher(srv.URL+"/versions", policy, srv.Client(), rec)
	require.NoError(t, err)
	return f, rec
}

func TestMain(m *testing.M) {
	logger.UseTestMode()
	m.Run()
}

func TestLatest_Success(t *testing.T) {
	srv, path := newServer(t, http.StatusOK, `{"version":"7.6.1","broken":false}`)
	f, rec := newFetcher(t, srv, Lenient)

	info, err := f.Latest(context.Background(), "current")
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, &VersionInfo{Version: "7.6.1", Broken: false}, info)
	assert.Equal(t, "/versions/current", *path)
	require.Len(t, rec.lines, 1)
	assert.Equal(t, "Fetched version: {\n  \"version\": \"7.6.1\",\n  \"broken\": false\n}", rec.lines[0])
}

func TestLatest_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		policy    Policy
		want      *VersionInfo
		malformed bool
	}{
		{"lenient missing version", `{"broken":false}`, Lenient, nil, false},
		{"strict missing version", `{"broken":false}`, Strict, nil, true},
		{"lenient version not a string", `{"version":7,"broken":false}`, Lenient, nil, false},
		{"lenient empty object", `{}`, Lenient, nil, false},
		{"lenient empty version", `{"version":"","broken":false}`, Lenient, nil, false},
		{"lenient array body", `[]`, Lenient, nil, false},
		{"strict array body", `[]`, Strict, nil, true},
		{"lenient missing broken", `{"version":"8.5"}`, Lenient, &VersionInfo{Version: "8.5"}, false},
		{"strict missing broken", `{"version":"8.5"}`, Strict, nil, true},
		{"lenient broken wrong type", `{"version":"8.5","broken":"yes"}`, Lenient, &VersionInfo{Version: "8.5"}, false},
		{"strict broken wrong type", `{"version":"8.5","broken":"yes"}`, Strict, nil, true},
		{"broken true", `{"version":"8.5","broken":true}`, Strict, &VersionInfo{Version: "8.5", Broken: true}, false},
		{"null body", `null`, Lenient, nil, true},
		{"not json", `<html>`, Lenient, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, tt.body)
			f, _ := newFetcher(t, srv, tt.policy)

			info, err := f.Latest(context.Background(), "current")
			if tt.malformed {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errs.MalformedResponse), "got %v", err)
				assert.Nil(t, info)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, info)
		})
	}
}

func TestLatest_LogsBeforeValidation(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"broken":false}`)
	f, rec := newFetcher(t, srv, Strict)

	_, err := f.Latest(context.Background(), "nightly")
	require.Error(t, err)
	require.Len(t, rec.lines, 1)
	assert.Contains(t, rec.lines[0], `"broken": false`)
}

func TestLatest_NonSuccessStatusGoesThroughDecode(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `{"message":"not found"}`)

	lenient, _ := newFetcher(t, srv, Lenient)
	info, err := lenient.Latest(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, info)

	strict, _ := newFetcher(t, srv, Strict)
	_, err = strict.Latest(context.Background(), "unknown")
	assert.True(t, errors.Is(err, errs.MalformedResponse))
}

func TestLatest_LargeListingIsDecodedWhole(t *testing.T) {
	records := make([]string, 0, 20000)
	for i := 0; i < 20000; i++ {
		records = append(records, fmt.Sprintf(`{"version":"8.%d","buildTime":"20240101000000+0000","broken":false,"snapshot":false}`, i))
	}
	body := "[" + strings.Join(records, ",") + "]"
	require.Greater(t, len(body), 1<<20)

	srv, _ := newServer(t, http.StatusOK, body)
	f, rec := newFetcher(t, srv, Lenient)

	info, err := f.Latest(context.Background(), "all")
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.Len(t, rec.lines, 1)
}

func TestLatest_NetworkError(t *testing.T) {
	client := &fakeHTTPClient{DoFunc: func(*http.Request) (*http.Response, error) {
		return nil, errors.New("dial tcp: connection refused")
	}}
	rec := &infoRecorder{}
	f, err := NewFetcher("", Lenient, client, rec)
	require.NoError(t, err)

	_, err = f.Latest(context.Background(), "current")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.Network))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, rec.lines)
}

func TestFetcher_URL(t *testing.T) {
	f, err := NewFetcher("", Lenient, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://services.gradle.org/versions/release-candidate", f.URL("release-candidate"))
	assert.Equal(t, "https://services.gradle.org/versions/", f.URL(""))
}

func TestNewFetcher_RejectsInsecureEndpoint(t *testing.T) {
	_, err := NewFetcher("http://services.gradle.org/versions", Lenient, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.Configuration))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, Lenient, p)

	p, err = ParsePolicy(" Strict ")
	require.NoError(t, err)
	assert.Equal(t, Strict, p)

	_, err = ParsePolicy("loose")
	assert.True(t, errors.Is(err, errs.Configuration))
}
