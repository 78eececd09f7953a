package heartbeat

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/neilotoole/slogt"

	"github.com/dohr-michael/emotai/internal/events"
	"github.com/dohr-michael/emotai/internal/mockservice"
)

func TestProbe(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Status
	}{
		{"ok", http.StatusOK, StatusAlive},
		{"no health route", http.StatusNotFound, StatusAlive},
		{"failing", http.StatusInternalServerError, StatusStale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != HealthPath {
					t.Errorf("unexpected path %q", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			got, _ := Probe(context.Background(), srv.Client(), srv.URL+"/")
			if got != tt.want {
				t.Errorf("Probe = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProbe_MockService(t *testing.T) {
	srv := httptest.NewServer(mockservice.New(mockservice.WithLogger(slogt.New(t))))
	defer srv.Close()

	got, err := Probe(context.Background(), srv.Client(), srv.URL)
	if err != nil || got != StatusAlive {
		t.Fatalf("Probe = %s, %v", got, err)
	}
}

func TestProbe_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	url := "http://" + ln.Addr().String()
	ln.Close()

	got, err := Probe(context.Background(), http.DefaultClient, url)
	if got != StatusDead || err == nil {
		t.Fatalf("Probe = %s, %v; want dead with error", got, err)
	}
}

func TestMonitor_PublishesChangesOnly(t *testing.T) {
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bus := events.NewBus(16)
	defer bus.Close()
	ch, unsubscribe := bus.SubscribeChan(16, events.EventServiceStatus)
	defer unsubscribe()

	m := NewMonitor(srv.URL,
		WithInterval(10*time.Millisecond),
		WithHTTPClient(srv.Client()),
		WithBus(bus),
		WithLogger(slogt.New(t)),
	)
	m.Start(context.Background())
	defer m.Stop()

	next := func() events.ServiceStatusPayload {
		t.Helper()
		select {
		case e := <-ch:
			p, ok := events.GetServiceStatusPayload(e)
			if !ok {
				t.Fatalf("unexpected payload %T", e.Payload)
			}
			return p
		case <-time.After(2 * time.Second):
			t.Fatal("no status event")
			return events.ServiceStatusPayload{}
		}
	}

	if p := next(); p.Status != string(StatusAlive) || p.URL != srv.URL {
		t.Fatalf("first event = %+v", p)
	}

	// Several probes run while healthy; none of them publish.
	time.Sleep(50 * time.Millisecond)
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %+v", e.Payload)
	default:
	}

	failing.Store(true)
	if p := next(); p.Status != string(StatusStale) || p.Error == "" {
		t.Fatalf("second event = %+v", p)
	}
	if m.Status() != StatusStale {
		t.Errorf("Status = %s", m.Status())
	}
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	m := NewMonitor("http://127.0.0.1:1", WithInterval(time.Hour), WithLogger(slogt.New(t)))
	if m.Status() != StatusUnknown {
		t.Fatalf("initial status = %s", m.Status())
	}
	m.Stop()
	m.Start(context.Background())
	m.Stop()
	m.Stop()
}
