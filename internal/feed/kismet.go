// Package feed collects the status text shown on the HUD: Kismet device
// counts, GPS fix state, local addresses and uptime. Every producer either
// returns a usable string or an error the caller turns into a placeholder
// line; none of them may take the redraw loop down.
package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"
)

// ErrUnavailable marks a producer outage. The HUD skips or substitutes the
// affected lines for the cycle and tries again next interval.
var ErrUnavailable = errors.New("feed: data unavailable")

// Counts are the Kismet device-view sizes shown on the HUD.
type Counts struct {
	AP   int
	Wifi int
	BT   int
}

// Kismet is a client for the Kismet REST API. Authentication is either an
// API token (KISMET header) or basic auth; the token wins when both are set.
type Kismet struct {
	BaseURL *url.URL
	Token   string
	User    string
	Pass    string

	httpClient *http.Client
}

// NewKismet builds a client for the server at baseURL. Empty credentials
// fall back to the KISMET_TOKEN, KISMET_USER and KISMET_PASS environment
// variables.
func NewKismet(baseURL, token, user, pass string) (*Kismet, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing kismet URL: %w", err)
	}
	if token == "" {
		token = os.Getenv("KISMET_TOKEN")
	}
	if user == "" {
		user = os.Getenv("KISMET_USER")
	}
	if pass == "" {
		pass = os.Getenv("KISMET_PASS")
	}
	return &Kismet{
		BaseURL:    u,
		Token:      token,
		User:       user,
		Pass:       pass,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (k *Kismet) get(path string) ([]byte, error) {
	req, err := http.NewRequest("GET", k.BaseURL.JoinPath(path).String(), nil)
	if err != nil {
		return nil, err
	}
	if k.Token != "" {
		req.Header.Set("KISMET", k.Token)
	} else if k.User != "" && k.Pass != "" {
		req.SetBasicAuth(k.User, k.Pass)
	}

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: kismet returned %s", ErrUnavailable, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

var viewSizePattern = regexp.MustCompile(`"kismet\.devices\.view\.size"\s*:\s*([0-9]+)`)

// findViewSize scans the all_views payload for the given view id and pulls
// the size field that follows it. Missing views count as zero; the payload is
// large and this keeps the HUD from deserializing the whole device tree.
func findViewSize(body []byte, viewID string) int {
	marker := fmt.Sprintf(`"kismet.devices.view.id": "%s"`, viewID)
	idx := bytes.Index(body, []byte(marker))
	if idx < 0 {
		return 0
	}
	window := body[idx:]
	if len(window) > 200 {
		window = window[:200]
	}
	m := viewSizePattern.FindSubmatch(window)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0
	}
	return n
}

// Counts queries the device view sizes for access points, Wi-Fi and
// Bluetooth devices.
func (k *Kismet) Counts() (Counts, error) {
	body, err := k.get("devices/views/all_views.json")
	if err != nil {
		return Counts{}, err
	}
	return Counts{
		AP:   findViewSize(body, "phydot11_accesspoints"),
		Wifi: findViewSize(body, "phy-IEEE802.11"),
		BT:   findViewSize(body, "phy-Bluetooth"),
	}, nil
}

// ServerUptime reports how long the Kismet server has been running, as
// "Uptime HH:MM:SS".
func (k *Kismet) ServerUptime() (string, error) {
	body, err := k.get("status.json")
	if err != nil {
		return "", err
	}

	var status struct {
		StartTime int64 `json:"kismet.server.starttime"`
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return "", fmt.Errorf("%w: decoding status: %v", ErrUnavailable, err)
	}
	if status.StartTime == 0 {
		return "", fmt.Errorf("%w: status has no start time", ErrUnavailable)
	}
	return FormatUptime(time.Since(time.Unix(status.StartTime, 0))), nil
}
