package feed

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allViewsBody = `[
  {"kismet.devices.view.id": "all", "kismet.devices.view.size": 99},
  {"kismet.devices.view.id": "phydot11_accesspoints", "kismet.devices.view.description": "Access points", "kismet.devices.view.size": 7},
  {"kismet.devices.view.id": "phy-IEEE802.11", "kismet.devices.view.size": 23},
  {"kismet.devices.view.id": "phy-Bluetooth", "kismet.devices.view.size": 4}
]`

func newKismetClient(t *testing.T, url string) *Kismet {
	t.Helper()
	k, err := NewKismet(url, "secret-token", "", "")
	require.NoError(t, err)
	return k
}

func TestCounts(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/devices/views/all_views.json", r.URL.Path)
		assert.Equal(t, "secret-token", r.Header.Get("KISMET"))
		w.Header().Add("Content-Type", "application/json")
		fmt.Fprint(w, allViewsBody)
	}))
	defer s.Close()

	counts, err := newKismetClient(t, s.URL).Counts()
	require.NoError(t, err)
	assert.Equal(t, Counts{AP: 7, Wifi: 23, BT: 4}, counts)
}

func TestCountsMissingViewsAreZero(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"kismet.devices.view.id": "phy-Bluetooth", "kismet.devices.view.size": 2}]`)
	}))
	defer s.Close()

	counts, err := newKismetClient(t, s.URL).Counts()
	require.NoError(t, err)
	assert.Equal(t, Counts{AP: 0, Wifi: 0, BT: 2}, counts)
}

func TestCountsServerErrorIsUnavailable(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "login required", http.StatusUnauthorized)
	}))
	defer s.Close()

	_, err := newKismetClient(t, s.URL).Counts()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCountsUnreachableServerIsUnavailable(t *testing.T) {
	k, err := NewKismet("http://127.0.0.1:1", "t", "", "")
	require.NoError(t, err)
	k.httpClient.Timeout = 500 * time.Millisecond

	_, err = k.Counts()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBasicAuthWhenNoToken(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "kismet", user)
		assert.Equal(t, "hunter2", pass)
		assert.Empty(t, r.Header.Get("KISMET"))
		fmt.Fprint(w, allViewsBody)
	}))
	defer s.Close()

	k, err := NewKismet(s.URL, "", "kismet", "hunter2")
	require.NoError(t, err)
	_, err = k.Counts()
	assert.NoError(t, err)
}

func TestTokenWinsOverBasicAuth(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("KISMET"))
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		fmt.Fprint(w, allViewsBody)
	}))
	defer s.Close()

	k, err := NewKismet(s.URL, "tok", "user", "pass")
	require.NoError(t, err)
	_, err = k.Counts()
	assert.NoError(t, err)
}

func TestCredentialsFallBackToEnvironment(t *testing.T) {
	t.Setenv("KISMET_TOKEN", "env-token")

	k, err := NewKismet("http://localhost:2501", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "env-token", k.Token)
}

func TestServerUptime(t *testing.T) {
	start := time.Now().Add(-(2*time.Hour + 3*time.Minute + 4*time.Second)).Unix()
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status.json", r.URL.Path)
		fmt.Fprintf(w, `{"kismet.server.starttime": %d, "kismet.server.name": "test"}`, start)
	}))
	defer s.Close()

	up, err := newKismetClient(t, s.URL).ServerUptime()
	require.NoError(t, err)
	assert.Equal(t, "Uptime 02:03:04", up)
}

func TestServerUptimeMissingStartTime(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"kismet.server.name": "test"}`)
	}))
	defer s.Close()

	_, err := newKismetClient(t, s.URL).ServerUptime()
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFindViewSizeStopsScanningPastWindow(t *testing.T) {
	// A size field far away from the view id belongs to another view and
	// must not be picked up.
	body := []byte(`{"kismet.devices.view.id": "phy-Bluetooth"}` + string(make([]byte, 300)) + `{"kismet.devices.view.size": 42}`)
	assert.Equal(t, 0, findViewSize(body, "phy-Bluetooth"))
}
