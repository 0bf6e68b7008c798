package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"venturescope/internal/config"
	"venturescope/internal/model"
)

// classifierStub serves the Gemini wire shape with a fixed label
func classifierStub(t *testing.T, label string, status int, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": label}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newGateFor(baseURL string, timeoutMS int) *AdmissionService {
	cfg := &config.AIConfig{
		APIKey:    "test-key",
		BaseURL:   baseURL,
		TimeoutMS: timeoutMS,
	}
	return NewAdmissionService(NewGeminiClient(cfg), "test-model")
}

func TestAdmitShortInputSkipsClassifier(t *testing.T) {
	var calls int32
	srv := classifierStub(t, "non_business", http.StatusOK, &calls)
	defer srv.Close()
	gate := newGateFor(srv.URL, 1000)

	for _, input := range []string{"", "   ", "a", "  word  "} {
		res := gate.Admit(context.Background(), input)
		if res.Admitted {
			t.Fatalf("input %q should be rejected locally", input)
		}
		if res.Reason == "" {
			t.Fatalf("rejection needs a reason for %q", input)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("phase 1 rejection must not call the classifier, got %d calls", n)
	}
}

func TestAdmitClassifierVerdicts(t *testing.T) {
	cases := []struct {
		label    string
		admitted bool
	}{
		{"valid_idea", true},
		{"vague", false},
		{"non_business", false},
		{"  VALID_IDEA \n", true}, // case-insensitive, trimmed
		{"Vague", false},
		{"something unexpected", true}, // unrecognized label fails open
	}
	for _, tc := range cases {
		t.Run(strings.TrimSpace(tc.label), func(t *testing.T) {
			var calls int32
			srv := classifierStub(t, tc.label, http.StatusOK, &calls)
			defer srv.Close()
			gate := newGateFor(srv.URL, 1000)

			res := gate.Admit(context.Background(), "an app that rents out parking spots")
			if res.Admitted != tc.admitted {
				t.Fatalf("label %q: admitted=%v, want %v (reason %q)", tc.label, res.Admitted, tc.admitted, res.Reason)
			}
			if !res.Admitted && res.Reason == "" {
				t.Fatal("rejections must carry a user-facing reason")
			}
			if n := atomic.LoadInt32(&calls); n != 1 {
				t.Fatalf("expected exactly one classifier call, got %d", n)
			}
		})
	}
}

func TestAdmitRejectionMessagesDiffer(t *testing.T) {
	var calls int32
	vagueSrv := classifierStub(t, "vague", http.StatusOK, &calls)
	defer vagueSrv.Close()
	nbSrv := classifierStub(t, "non_business", http.StatusOK, &calls)
	defer nbSrv.Close()

	vague := newGateFor(vagueSrv.URL, 1000).Admit(context.Background(), "make money somehow online")
	nb := newGateFor(nbSrv.URL, 1000).Admit(context.Background(), "what is the weather today")
	if vague.Reason == nb.Reason {
		t.Fatalf("vague and non-business rejections should read differently, both %q", vague.Reason)
	}
	if vague.Classification != model.ClassVague || nb.Classification != model.ClassNonBusiness {
		t.Fatalf("classifications not recorded: %q / %q", vague.Classification, nb.Classification)
	}
}

func TestAdmitFailsOpenOnServerError(t *testing.T) {
	var calls int32
	srv := classifierStub(t, "", http.StatusInternalServerError, &calls)
	defer srv.Close()
	gate := newGateFor(srv.URL, 1000)

	res := gate.Admit(context.Background(), "a marketplace for used lab equipment")
	if !res.Admitted {
		t.Fatalf("classifier error must fail open, got rejection %q", res.Reason)
	}
	// No retries: a transient failure is the fail-open case.
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly one attempt, got %d", n)
	}
}

func TestAdmitFailsOpenOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()
	gate := newGateFor(srv.URL, 20)

	start := time.Now()
	res := gate.Admit(context.Background(), "a marketplace for used lab equipment")
	if !res.Admitted {
		t.Fatalf("timeout must fail open, got rejection %q", res.Reason)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Fatalf("timeout was not honored, took %v", elapsed)
	}
}

func TestAdmitFailsOpenWithoutAPIKey(t *testing.T) {
	cfg := &config.AIConfig{BaseURL: "http://127.0.0.1:0", TimeoutMS: 100}
	gate := NewAdmissionService(NewGeminiClient(cfg), "test-model")

	res := gate.Admit(context.Background(), "a marketplace for used lab equipment")
	if !res.Admitted {
		t.Fatalf("unconfigured classifier must fail open, got %q", res.Reason)
	}
	// The local length gate still applies without a classifier.
	if res := gate.Admit(context.Background(), "a"); res.Admitted {
		t.Fatal("short input must still be rejected locally")
	}
}
