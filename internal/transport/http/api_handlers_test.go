package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Harrybandukda/gochat-server/internal/store"
)

func doJSON(t *testing.T, server *stdhttp.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)
	return resp
}

func TestSignupAndLogin(t *testing.T) {
	st := createTestStore(t)
	server, _ := startTestServer(t, st)

	resp := doJSON(t, server, stdhttp.MethodPost, "/api/auth/signup",
		`{"username":"alice","firstname":"Alice","lastname":"Smith","password":"s3cret"}`)
	if resp.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created MessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal signup response: %v", err)
	}
	if created.Message != "User created successfully" {
		t.Fatalf("unexpected signup message: %q", created.Message)
	}

	resp = doJSON(t, server, stdhttp.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"s3cret"}`)
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// Exactly the public profile fields, never the password hash.
	var profile map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &profile); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	if len(profile) != 3 {
		t.Fatalf("expected exactly 3 fields, got %v", profile)
	}
	if profile["username"] != "alice" || profile["firstname"] != "Alice" || profile["lastname"] != "Smith" {
		t.Fatalf("unexpected profile: %v", profile)
	}
}

func TestSignupDuplicateUsernameIsGenericFailure(t *testing.T) {
	st := createTestStore(t)
	server, _ := startTestServer(t, st)

	body := `{"username":"alice","firstname":"Alice","lastname":"Smith","password":"s3cret"}`
	if resp := doJSON(t, server, stdhttp.MethodPost, "/api/auth/signup", body); resp.Code != stdhttp.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	resp := doJSON(t, server, stdhttp.MethodPost, "/api/auth/signup", body)
	if resp.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("expected 500 for duplicate username, got %d", resp.Code)
	}

	var errBody ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("unmarshal error response: %v", err)
	}
	if errBody.Error == "" {
		t.Fatalf("expected error message in body")
	}
}

func TestLoginUnknownUserAndWrongPassword(t *testing.T) {
	st := createTestStore(t)
	server, _ := startTestServer(t, st)

	resp := doJSON(t, server, stdhttp.MethodPost, "/api/auth/login",
		`{"username":"ghost","password":"whatever"}`)
	if resp.Code != stdhttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	doJSON(t, server, stdhttp.MethodPost, "/api/auth/signup",
		`{"username":"alice","firstname":"Alice","lastname":"Smith","password":"s3cret"}`)

	resp = doJSON(t, server, stdhttp.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"wrong"}`)
	if resp.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}

	var errBody ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("unmarshal error response: %v", err)
	}
	if errBody.Error != "Invalid password" {
		t.Fatalf("unexpected error message: %q", errBody.Error)
	}
}

func TestListGroupMessagesEndpoint(t *testing.T) {
	st := createTestStore(t)
	server, _ := startTestServer(t, st)

	ctx := context.Background()
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 55; i++ {
		err := st.SaveGroupMessage(ctx, &store.GroupMessage{
			Room:     "general",
			FromUser: "alice",
			Message:  "hello",
			DateSent: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	resp := doJSON(t, server, stdhttp.MethodGet, "/api/chat/messages/general", "")
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var messages []GroupMessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("unmarshal messages: %v", err)
	}
	if len(messages) != 50 {
		t.Fatalf("expected 50 messages, got %d", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].DateSent.After(messages[i-1].DateSent) {
			t.Fatalf("messages not newest-first at index %d", i)
		}
	}

	// An unknown room returns an empty array, not an error.
	resp = doJSON(t, server, stdhttp.MethodGet, "/api/chat/messages/nowhere", "")
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestListPrivateMessagesEndpoint(t *testing.T) {
	st := createTestStore(t)
	server, _ := startTestServer(t, st)

	ctx := context.Background()
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	seed := func(from, to, text string, offset int) {
		t.Helper()
		err := st.SavePrivateMessage(ctx, &store.PrivateMessage{
			FromUser: from,
			ToUser:   to,
			Message:  text,
			DateSent: base.Add(time.Duration(offset) * time.Second),
		})
		if err != nil {
			t.Fatalf("seed private message: %v", err)
		}
	}

	seed("alice", "bob", "hi bob", 0)
	seed("bob", "alice", "hi alice", 1)
	seed("alice", "carol", "hi carol", 2)

	resp := doJSON(t, server, stdhttp.MethodGet, "/api/chat/private/alice/bob", "")
	if resp.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var messages []PrivateMessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &messages); err != nil {
		t.Fatalf("unmarshal messages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Message != "hi alice" || messages[1].Message != "hi bob" {
		t.Fatalf("unexpected order or content: %+v", messages)
	}
}

func TestHealthEndpoint(t *testing.T) {
	st := createTestStore(t)
	_, ts := startTestServer(t, st)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}
