package session

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/medport/medport/internal/api"
	"github.com/medport/medport/internal/log"
	"github.com/medport/medport/internal/tokenstore"
)

// fakeTokenStore is an in-memory TokenStore
type fakeTokenStore struct {
	mu      sync.Mutex
	token   string
	present bool
	deleted bool
}

func (f *fakeTokenStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.present {
		return "", tokenstore.ErrNotFound
	}
	return f.token, nil
}

func (f *fakeTokenStore) Delete() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.present = false
	f.deleted = true
	return nil
}

func (f *fakeTokenStore) wasDeleted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleted
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("unable to start test server: %v", err)
	}

	server := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	server.Start()
	t.Cleanup(server.Close)
	return server
}

func quietLogger() *log.Logger {
	return log.New(log.Config{Level: log.LevelError, Format: log.FormatText, Output: &bytes.Buffer{}})
}

func TestManager_EnsureWithoutToken(t *testing.T) {
	var calls atomic.Int64
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	client := api.NewClient(server.URL)
	manager := NewManager(client, &fakeTokenStore{}, quietLogger())

	if s := manager.Ensure(context.Background()); s != nil {
		t.Errorf("Ensure() = %+v, want nil without a token", s)
	}
	if calls.Load() != 0 {
		t.Errorf("network calls = %d, want 0", calls.Load())
	}
}

func TestManager_EnsureDoctorSession(t *testing.T) {
	tests := []struct {
		name         string
		doctorStatus int
		wantDoctorID bool
	}{
		{
			name:         "enrichment succeeds",
			doctorStatus: http.StatusOK,
			wantDoctorID: true,
		},
		{
			name:         "enrichment failure is non-fatal",
			doctorStatus: http.StatusInternalServerError,
			wantDoctorID: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/auth/verify":
					if r.Header.Get("Authorization") != "Bearer tok-doc" {
						t.Errorf("verify without bearer token: %q", r.Header.Get("Authorization"))
					}
					w.Write([]byte(`{"status":"success","user_id":3,"role":"doctor"}`))
				case "/user/doctor/3":
					w.WriteHeader(tt.doctorStatus)
					if tt.doctorStatus == http.StatusOK {
						w.Write([]byte(`{"status":"success","doctor":{"id":12,"user_id":3}}`))
					}
				default:
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
			}))

			client := api.NewClient(server.URL)
			manager := NewManager(client, &fakeTokenStore{token: "tok-doc", present: true}, quietLogger())

			s := manager.Ensure(context.Background())
			if s == nil {
				t.Fatal("Ensure() = nil, want session")
			}
			if s.UserID != 3 || s.Role != "doctor" {
				t.Errorf("session = %d/%s, want 3/doctor", s.UserID, s.Role)
			}
			if tt.wantDoctorID {
				if s.DoctorID == nil || *s.DoctorID != 12 {
					t.Errorf("DoctorID = %v, want 12", s.DoctorID)
				}
			} else if s.DoctorID != nil {
				t.Errorf("DoctorID = %v, want nil after failed lookup", *s.DoctorID)
			}
		})
	}
}

func TestManager_EnsurePatientSession(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verify":
			w.Write([]byte(`{"status":"success","user_id":7,"role":"user"}`))
		case "/user/patient/7":
			w.Write([]byte(`{"status":"success","patient":{"id":9,"user_id":7}}`))
		}
	}))

	client := api.NewClient(server.URL)
	manager := NewManager(client, &fakeTokenStore{token: "tok-pat", present: true}, quietLogger())

	s := manager.Ensure(context.Background())
	if s == nil {
		t.Fatal("Ensure() = nil, want session")
	}
	if !s.IsPatient() {
		t.Errorf("role = %s, want patient", s.Role)
	}
	if s.PatientID == nil || *s.PatientID != 9 {
		t.Errorf("PatientID = %v, want 9", s.PatientID)
	}
	if s.DoctorID != nil {
		t.Errorf("DoctorID = %v, want nil for patient", *s.DoctorID)
	}
}

func TestManager_EnsureMemoizes(t *testing.T) {
	var verifyCalls atomic.Int64
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verify":
			verifyCalls.Add(1)
			w.Write([]byte(`{"status":"success","user_id":3,"role":"doctor"}`))
		case "/user/doctor/3":
			w.Write([]byte(`{"status":"success","doctor":{"id":12}}`))
		}
	}))

	client := api.NewClient(server.URL)
	manager := NewManager(client, &fakeTokenStore{token: "tok", present: true}, quietLogger())

	first := manager.Ensure(context.Background())
	second := manager.Ensure(context.Background())

	if first == nil || second == nil {
		t.Fatal("Ensure() returned nil")
	}
	if first != second {
		t.Error("second Ensure() did not return the cached session")
	}
	if verifyCalls.Load() != 1 {
		t.Errorf("verify calls = %d, want 1", verifyCalls.Load())
	}
	if manager.Current() != first {
		t.Error("Current() does not reflect the cached session")
	}
}

func TestManager_ConcurrentEnsureSharesOneResolution(t *testing.T) {
	var verifyCalls atomic.Int64
	release := make(chan struct{})
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verify":
			verifyCalls.Add(1)
			<-release
			w.Write([]byte(`{"status":"success","user_id":7,"role":"user"}`))
		case "/user/patient/7":
			w.Write([]byte(`{"status":"success","patient":{"id":9}}`))
		}
	}))

	client := api.NewClient(server.URL)
	manager := NewManager(client, &fakeTokenStore{token: "tok", present: true}, quietLogger())

	var wg sync.WaitGroup
	results := make([]*Session, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = manager.Ensure(context.Background())
		}(i)
	}

	// Let all callers pile up on the in-flight resolution before the
	// backend answers.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if verifyCalls.Load() != 1 {
		t.Errorf("verify calls = %d, want 1 shared resolution", verifyCalls.Load())
	}
	for i, s := range results {
		if s == nil {
			t.Errorf("caller %d got nil session", i)
		}
	}
}

func TestManager_CancelledEnsureRetriesOnNextCall(t *testing.T) {
	var verifyCalls atomic.Int64
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verify":
			verifyCalls.Add(1)
			w.Write([]byte(`{"status":"success","user_id":7,"role":"user"}`))
		case "/user/patient/7":
			w.Write([]byte(`{"status":"success","patient":{"id":9}}`))
		}
	}))

	client := api.NewClient(server.URL)
	tokens := &fakeTokenStore{token: "tok", present: true}
	manager := NewManager(client, tokens, quietLogger())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled resolution fails, but nothing gets cached and the token
	// survives, so a later call with a live context succeeds.
	if s := manager.Ensure(cancelled); s != nil {
		t.Errorf("Ensure(cancelled) = %+v, want nil", s)
	}
	if tokens.wasDeleted() {
		t.Error("token purged on a cancelled resolution")
	}

	if manager.Ensure(context.Background()) == nil {
		t.Fatal("Ensure() after cancellation = nil, want session")
	}
	if verifyCalls.Load() != 1 {
		t.Errorf("verify calls = %d, want 1 successful resolution", verifyCalls.Load())
	}
}

func TestManager_UnauthorizedPurgesToken(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"token expired"}`))
	}))

	client := api.NewClient(server.URL)
	tokens := &fakeTokenStore{token: "tok-stale", present: true}
	manager := NewManager(client, tokens, quietLogger())

	if s := manager.Ensure(context.Background()); s != nil {
		t.Errorf("Ensure() = %+v, want nil on rejected token", s)
	}
	if !tokens.wasDeleted() {
		t.Error("rejected token was not purged")
	}
	if client.Token() != "" {
		t.Errorf("client token = %q, want cleared", client.Token())
	}
}

func TestManager_ServerErrorKeepsToken(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	client := api.NewClient(server.URL)
	tokens := &fakeTokenStore{token: "tok", present: true}
	manager := NewManager(client, tokens, quietLogger())

	if s := manager.Ensure(context.Background()); s != nil {
		t.Errorf("Ensure() = %+v, want nil on server error", s)
	}
	if tokens.wasDeleted() {
		t.Error("token purged on a transient server error")
	}
}

func TestManager_MalformedVerifyPayload(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user_id":3}`))
	}))

	client := api.NewClient(server.URL)
	manager := NewManager(client, &fakeTokenStore{token: "tok", present: true}, quietLogger())

	if s := manager.Ensure(context.Background()); s != nil {
		t.Errorf("Ensure() = %+v, want nil on malformed payload", s)
	}
}

func TestManager_Clear(t *testing.T) {
	var verifyCalls atomic.Int64
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/verify":
			verifyCalls.Add(1)
			w.Write([]byte(`{"status":"success","user_id":7,"role":"user"}`))
		case "/user/patient/7":
			w.Write([]byte(`{"status":"success","patient":{"id":9}}`))
		}
	}))

	client := api.NewClient(server.URL)
	manager := NewManager(client, &fakeTokenStore{token: "tok", present: true}, quietLogger())

	if manager.Ensure(context.Background()) == nil {
		t.Fatal("Ensure() = nil, want session")
	}

	manager.Clear()
	if manager.Current() != nil {
		t.Error("Current() != nil after Clear()")
	}

	// The token is untouched, so the next Ensure re-resolves from scratch.
	if manager.Ensure(context.Background()) == nil {
		t.Fatal("Ensure() after Clear() = nil, want session")
	}
	if verifyCalls.Load() != 2 {
		t.Errorf("verify calls = %d, want 2", verifyCalls.Load())
	}
}
