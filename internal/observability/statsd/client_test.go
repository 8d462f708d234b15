package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" login/outcome ": "login_outcome",
		"foo..bar":        "foo.bar",
		"..trimmed..":     "trimmed",
		"":                "",
	}

	for input, want := range tests {
		if got := normalizeMetricName(input); got != want {
			t.Fatalf("normalizeMetricName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	got := formatTags(map[string]string{
		"result": " success ",
		"":       "ignored",
		"kind":   "customer",
	})
	want := "|#kind:customer,result:success"

	if got != want {
		t.Fatalf("formatTags() = %q, want %q", got, want)
	}

	if got := formatTags(nil); got != "" {
		t.Fatalf("formatTags(nil) = %q, want empty", got)
	}
}

func TestClient_DisabledSwallowsEmissions(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	// Must not panic or block.
	client.Count("login.outcome", 1, nil)
	client.Timing("login.duration", time.Second, nil)

	if cerr := client.Close(); cerr != nil {
		t.Fatalf("Close error: %v", cerr)
	}
}

func TestClient_EmitsOverUDP(t *testing.T) {
	t.Parallel()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	defer pc.Close()

	client, err := NewClient(Config{
		Enabled: true,
		Address: pc.LocalAddr().String(),
		Prefix:  "washauth",
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	client.Count("login.outcome", 1, map[string]string{"result": "success"})

	if derr := pc.SetReadDeadline(time.Now().Add(2 * time.Second)); derr != nil {
		t.Fatalf("deadline error: %v", derr)
	}
	buf := make([]byte, 512)
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	got := string(buf[:n])
	want := "washauth.login.outcome:1|c|#result:success"
	if !strings.HasPrefix(got, want) {
		t.Fatalf("payload = %q, want prefix %q", got, want)
	}
}

func TestClient_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var client *Client
	client.Count("x", 1, nil)
	client.Timing("x", time.Second, nil)
	if err := client.Close(); err != nil {
		t.Fatalf("Close on nil = %v", err)
	}
}
