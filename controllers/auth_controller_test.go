package controller_test

import (
	"net/http"
	"testing"

	"teamboard/utils"
)

func registerPayload(username, email, phone string) map[string]string {
	return map[string]string{
		"username": username,
		"email":    email,
		"phone_no": phone,
		"password": testPassword,
	}
}

func TestRegisterAndLoginByEmail(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", registerPayload("alice", "alice@example.com", "+15550000001"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register returned status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	user := body["user"].(map[string]interface{})
	if user["username"] != "alice" {
		t.Errorf("registered username = %v, want alice", user["username"])
	}

	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "alice@example.com",
		"password":   testPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned status %d", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatal("login response has no token")
	}

	// The token's claims must decode to the logged-in user's id.
	claims, err := utils.ParseJWTToken(token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	wantID := uint(body["user"].(map[string]interface{})["id"].(float64))
	if claims.UserID != wantID {
		t.Errorf("token user id = %d, want %d", claims.UserID, wantID)
	}
}

func TestLoginByPhoneNumber(t *testing.T) {
	app, _ := setupApp(t)

	doJSON(t, app, http.MethodPost, "/auth/register", "", registerPayload("bob", "bob@example.com", "+15550000002"))

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "+15550000002",
		"password":   testPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login by phone returned status %d", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmailOrPhone(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/register", "", registerPayload("carol", "carol@example.com", "+15550000003"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register returned status %d", resp.StatusCode)
	}

	cases := []struct {
		name  string
		email string
		phone string
	}{
		{"same email", "carol@example.com", "+15550009999"},
		{"same phone", "other@example.com", "+15550000003"},
	}
	for _, tc := range cases {
		resp := doJSON(t, app, http.MethodPost, "/auth/register", "", registerPayload("dup", tc.email, tc.phone))
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: register returned status %d, want 400", tc.name, resp.StatusCode)
			continue
		}
		body := decodeBody(t, resp)
		if body["message"] != "User already exists with this email or phone number" {
			t.Errorf("%s: message = %v", tc.name, body["message"])
		}
	}
}

// Wrong password and unknown identifier must be indistinguishable.
func TestLoginFailuresShareOneMessage(t *testing.T) {
	app, _ := setupApp(t)

	doJSON(t, app, http.MethodPost, "/auth/register", "", registerPayload("dave", "dave@example.com", "+15550000004"))

	var messages []string
	for _, creds := range []map[string]string{
		{"identifier": "dave@example.com", "password": "wrong-password"},
		{"identifier": "nobody@example.com", "password": testPassword},
		{"identifier": "+15559999999", "password": testPassword},
	} {
		resp := doJSON(t, app, http.MethodPost, "/auth/login", "", creds)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("login returned status %d, want 400", resp.StatusCode)
		}
		messages = append(messages, decodeBody(t, resp)["message"].(string))
	}

	for _, msg := range messages {
		if msg != "Invalid credentials" {
			t.Errorf("login failure message = %q, want %q", msg, "Invalid credentials")
		}
	}
}

func TestGetCurrentUser(t *testing.T) {
	app, db := setupApp(t)

	user := createUser(t, db, "erin")
	resp := doJSON(t, app, http.MethodGet, "/auth/me", authToken(t, user), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/auth/me returned status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	got := body["user"].(map[string]interface{})
	if uint(got["id"].(float64)) != user.ID {
		t.Errorf("/auth/me id = %v, want %d", got["id"], user.ID)
	}
}
