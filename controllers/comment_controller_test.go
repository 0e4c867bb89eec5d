package controller_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCommentsAppendInOrder(t *testing.T) {
	app, db := setupApp(t)

	user := createUser(t, db, "talker")
	token := authToken(t, user)
	_, boardID := createTeam(t, app, token, "Discuss")
	lists := boardLists(t, app, token, boardID)

	task := createTask(t, app, token, map[string]interface{}{
		"title":  "Needs discussion",
		"listId": lists["To Do"],
	})
	taskID := uint(task["ID"].(float64))

	for _, content := range []string{"first", "second", "third"} {
		resp := doJSON(t, app, http.MethodPost, "/comments/create", token,
			map[string]interface{}{"taskId": taskID, "content": content})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create comment returned status %d", resp.StatusCode)
		}
		body := decodeBody(t, resp)["comment"].(map[string]interface{})
		if body["username"] != "talker" {
			t.Errorf("comment username = %v, want talker", body["username"])
		}
	}

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/comments/task/%d", taskID), token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get comments returned status %d", resp.StatusCode)
	}
	comments := decodeBody(t, resp)["comments"].([]interface{})
	if len(comments) != 3 {
		t.Fatalf("comment count = %d, want 3", len(comments))
	}
	for i, want := range []string{"first", "second", "third"} {
		got := comments[i].(map[string]interface{})["content"]
		if got != want {
			t.Errorf("comments[%d].content = %v, want %s", i, got, want)
		}
	}
}

func TestCreateCommentValidatesInput(t *testing.T) {
	app, db := setupApp(t)

	user := createUser(t, db, "quiet")
	token := authToken(t, user)
	_, boardID := createTeam(t, app, token, "Silence")
	lists := boardLists(t, app, token, boardID)

	task := createTask(t, app, token, map[string]interface{}{
		"title":  "Unremarked",
		"listId": lists["To Do"],
	})
	taskID := uint(task["ID"].(float64))

	resp := doJSON(t, app, http.MethodPost, "/comments/create", token,
		map[string]interface{}{"taskId": taskID})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty content returned status %d, want 400", resp.StatusCode)
	}
	if msg := decodeBody(t, resp)["message"]; msg != "Task ID and comment content are required" {
		t.Errorf("message = %v", msg)
	}
}

func TestCommentRoutesConflateMissingAndDenied(t *testing.T) {
	app, db := setupApp(t)

	owner := createUser(t, db, "author")
	outsider := createUser(t, db, "lurker")
	ownerToken := authToken(t, owner)
	_, boardID := createTeam(t, app, ownerToken, "Private")
	lists := boardLists(t, app, ownerToken, boardID)

	task := createTask(t, app, ownerToken, map[string]interface{}{
		"title":  "Members only",
		"listId": lists["To Do"],
	})
	taskID := uint(task["ID"].(float64))

	outsiderToken := authToken(t, outsider)

	for name, target := range map[string]uint{"existing task": taskID, "missing task": taskID + 999} {
		resp := doJSON(t, app, http.MethodPost, "/comments/create", outsiderToken,
			map[string]interface{}{"taskId": target, "content": "hello"})
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("%s: create comment returned status %d, want 403", name, resp.StatusCode)
		}
		if msg := decodeBody(t, resp)["message"]; msg != "Task not found or access denied" {
			t.Errorf("%s: message = %v", name, msg)
		}
	}
}
