package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"example.com/mergington/internal/domain"
	"example.com/mergington/internal/roster"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	service := domain.NewService(roster.NewInMemoryRegistry())
	handler := NewHandler(service)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func do(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func listActivities(t *testing.T, mux *http.ServeMux) map[string]ActivityView {
	t.Helper()
	rr := do(mux, http.MethodGet, "/activities")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var activities map[string]ActivityView
	if err := json.Unmarshal(rr.Body.Bytes(), &activities); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return activities
}

func detailOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return payload["detail"]
}

func TestListActivitiesReturnsSeededCatalogue(t *testing.T) {
	mux := newTestMux(t)

	activities := listActivities(t, mux)
	for _, name := range []string{
		"Chess Club", "Programming Class", "Gym Class", "Basketball Team",
		"Tennis Club", "Art Studio", "Drama Club", "Debate Team", "Science Club",
	} {
		view, ok := activities[name]
		if !ok {
			t.Fatalf("missing activity %q", name)
		}
		if view.Description == "" || view.Schedule == "" {
			t.Fatalf("activity %q missing description or schedule", name)
		}
		if view.MaxParticipants <= 0 {
			t.Fatalf("activity %q has non-positive capacity", name)
		}
		if view.Participants == nil {
			t.Fatalf("activity %q has nil participants", name)
		}
	}
}

func TestSignupAddsParticipant(t *testing.T) {
	mux := newTestMux(t)
	before := len(listActivities(t, mux)["Chess Club"].Participants)

	rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=newstudent@mergington.edu")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp MessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Signed up newstudent@mergington.edu for Chess Club" {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	after := listActivities(t, mux)["Chess Club"].Participants
	if len(after) != before+1 {
		t.Fatalf("expected %d participants got %d", before+1, len(after))
	}
	if after[len(after)-1] != "newstudent@mergington.edu" {
		t.Fatalf("expected new participant at roster tail, got %q", after[len(after)-1])
	}
}

func TestSignupDuplicateReturnsConflict(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=michael@mergington.edu")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if detail := detailOf(t, rr); !strings.Contains(detail, "already signed up") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestSignupUnknownActivityReturnsNotFound(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/Nonexistent%20Activity/signup?email=student@mergington.edu")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
	if detail := detailOf(t, rr); detail != "Activity not found" {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestSignupMissingEmailReturnsBadRequest(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestSignupAcrossActivities(t *testing.T) {
	mux := newTestMux(t)

	for _, name := range []string{"Chess%20Club", "Programming%20Class"} {
		rr := do(mux, http.MethodPost, "/activities/"+name+"/signup?email=newstudent@mergington.edu")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", name, rr.Code)
		}
	}

	activities := listActivities(t, mux)
	for _, name := range []string{"Chess Club", "Programming Class"} {
		if !contains(activities[name].Participants, "newstudent@mergington.edu") {
			t.Fatalf("expected participant in %q", name)
		}
	}
}

func TestUnregisterRemovesParticipant(t *testing.T) {
	mux := newTestMux(t)
	before := len(listActivities(t, mux)["Chess Club"].Participants)

	rr := do(mux, http.MethodDelete, "/activities/Chess%20Club/unregister?email=michael@mergington.edu")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp MessageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != "Unregistered michael@mergington.edu from Chess Club" {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	after := listActivities(t, mux)["Chess Club"].Participants
	if len(after) != before-1 {
		t.Fatalf("expected %d participants got %d", before-1, len(after))
	}
	if contains(after, "michael@mergington.edu") {
		t.Fatalf("participant still on roster after unregister")
	}
}

func TestUnregisterThenSignupAgain(t *testing.T) {
	mux := newTestMux(t)

	if rr := do(mux, http.MethodDelete, "/activities/Chess%20Club/unregister?email=michael@mergington.edu"); rr.Code != http.StatusOK {
		t.Fatalf("unregister: expected 200 got %d", rr.Code)
	}
	if rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=michael@mergington.edu"); rr.Code != http.StatusOK {
		t.Fatalf("signup: expected 200 got %d", rr.Code)
	}

	participants := listActivities(t, mux)["Chess Club"].Participants
	if !contains(participants, "michael@mergington.edu") {
		t.Fatalf("expected participant back on roster")
	}
}

func TestUnregisterUnknownActivityReturnsNotFound(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodDelete, "/activities/Nonexistent%20Activity/unregister?email=student@mergington.edu")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
	if detail := detailOf(t, rr); detail != "Activity not found" {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestUnregisterNotRegisteredReturnsConflict(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodDelete, "/activities/Chess%20Club/unregister?email=notregistered@mergington.edu")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if detail := detailOf(t, rr); !strings.Contains(detail, "not registered") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestRosterActionRejectsWrongMethod(t *testing.T) {
	mux := newTestMux(t)

	if rr := do(mux, http.MethodGet, "/activities/Chess%20Club/signup?email=a@mergington.edu"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("signup: expected 405 got %d", rr.Code)
	}
	if rr := do(mux, http.MethodPost, "/activities/Chess%20Club/unregister?email=a@mergington.edu"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unregister: expected 405 got %d", rr.Code)
	}
}

func TestWrongMethodWinsOverMissingEmail(t *testing.T) {
	mux := newTestMux(t)

	if rr := do(mux, http.MethodGet, "/activities/Chess%20Club/signup"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("signup: expected 405 got %d", rr.Code)
	}
	if rr := do(mux, http.MethodPost, "/activities/Chess%20Club/unregister"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unregister: expected 405 got %d", rr.Code)
	}
}

func TestRootRedirectsToStaticIndex(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodGet, "/")
	if rr.Code != http.StatusTemporaryRedirect {
		t.Fatalf("expected 307 got %d", rr.Code)
	}
	if location := rr.Header().Get("Location"); !strings.Contains(location, "/static/index.html") {
		t.Fatalf("unexpected redirect location %q", location)
	}
}

func contains(participants []string, email string) bool {
	for _, participant := range participants {
		if participant == email {
			return true
		}
	}
	return false
}
