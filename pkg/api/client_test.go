package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second, staticToken(token))
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	client := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		json.NewEncoder(w).Encode(TaskPage{TotalPages: 1})
	})

	if _, err := client.ListTasks(context.Background(), nil); err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotRequestID == "" {
		t.Error("X-Request-Id header missing")
	}
}

func TestLoginSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string
	client := newTestClient(t, "stale-token", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("request = %s %s, want POST /auth/login", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(AuthResponse{
			User:  User{ID: "u1", Name: "Ada", Email: "ada@example.com"},
			Token: "fresh-token",
		})
	})

	resp, err := client.Login(context.Background(), "ada@example.com", "Sekret1!")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization on login = %q, want empty", gotAuth)
	}
	if gotBody["email"] != "ada@example.com" || gotBody["password"] != "Sekret1!" {
		t.Errorf("login payload = %v", gotBody)
	}
	if resp.Token != "fresh-token" {
		t.Errorf("Token = %q, want %q", resp.Token, "fresh-token")
	}
}

func TestListTasksParamsPassedThrough(t *testing.T) {
	var gotQuery url.Values
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(TaskPage{
			Tasks:      []Task{{ID: "a1", Title: "First"}},
			TotalPages: 2,
			TotalTasks: 12,
		})
	})

	params := url.Values{}
	params.Set("search", "report")
	params.Set("page", "2")
	params.Set("limit", "9")
	params.Set("status", "pending")

	page, err := client.ListTasks(context.Background(), params)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	for key, want := range map[string]string{
		"search": "report",
		"page":   "2",
		"limit":  "9",
		"status": "pending",
	} {
		if got := gotQuery.Get(key); got != want {
			t.Errorf("query %s = %q, want %q", key, got, want)
		}
	}
	if len(page.Tasks) != 1 || page.TotalTasks != 12 {
		t.Errorf("page = %+v", page)
	}
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"Invalid token"}`)
	})

	_, err := client.ListTasks(context.Background(), nil)
	if err == nil {
		t.Fatal("ListTasks() error = nil, want HTTPError")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
	if got := err.Error(); got != "server returned 401: Invalid token" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorWithoutEnvelope(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "not json at all")
	})

	_, err := client.GetTask(context.Background(), "missing")
	if err == nil {
		t.Fatal("GetTask() error = nil, want HTTPError")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
	if IsUnauthorized(err) {
		t.Error("IsUnauthorized() = true for 404, want false")
	}
}

func TestMarkDoneSendsStatusOnly(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Task{ID: "a1", Title: "First", Status: StatusDone})
	})

	task, err := client.MarkDone(context.Background(), "a1")
	if err != nil {
		t.Fatalf("MarkDone() error = %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/tasks/a1" {
		t.Errorf("request = %s %s, want PUT /tasks/a1", gotMethod, gotPath)
	}
	if len(gotBody) != 1 || gotBody["status"] != "done" {
		t.Errorf("payload = %v, want only status=done", gotBody)
	}
	if task.Status != StatusDone {
		t.Errorf("Status = %q, want %q", task.Status, StatusDone)
	}
}

func TestCreateTaskPayload(t *testing.T) {
	var gotBody TaskInput
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(Task{ID: "new1", Title: gotBody.Title})
	})

	input := TaskInput{
		Title:    "Write tests",
		DueDate:  "2026-09-15",
		Status:   StatusTodo,
		Priority: PriorityMedium,
	}
	task, err := client.CreateTask(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if gotBody.Title != "Write tests" || gotBody.DueDate != "2026-09-15" {
		t.Errorf("payload = %+v", gotBody)
	}
	if task.ID != "new1" {
		t.Errorf("ID = %q, want %q", task.ID, "new1")
	}
}

func TestDeleteTask(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		io.WriteString(w, `{"message":"Task deleted successfully"}`)
	})

	if err := client.DeleteTask(context.Background(), "a1"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/tasks/a1" {
		t.Errorf("request = %s %s, want DELETE /tasks/a1", gotMethod, gotPath)
	}
}

func TestContextCancellation(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ListTasks(ctx, nil); err == nil {
		t.Fatal("ListTasks() with cancelled context, want error")
	}
}

func TestMongoIDFieldDecoded(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"_id":"65af01","title":"From server","status":"todo","priority":"low"}`)
	})

	task, err := client.GetTask(context.Background(), "65af01")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if task.ID != "65af01" {
		t.Errorf("ID = %q, want %q", task.ID, "65af01")
	}
}
