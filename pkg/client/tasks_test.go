package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// taskServer is a minimal stateful stub for exercising TaskManager semantics.
type taskServer struct {
	mux    *http.ServeMux
	tasks  []Task
	nextID uint64
}

func newTaskServer() *taskServer {
	s := &taskServer{mux: http.NewServeMux(), nextID: 1}

	s.mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		priority := r.URL.Query().Get("priority")
		category := r.URL.Query().Get("category")

		matched := []Task{}
		for _, task := range s.tasks {
			if status != "" && task.Status != status {
				continue
			}
			if priority != "" && task.Priority != priority {
				continue
			}
			if category != "" && task.Category != category {
				continue
			}
			matched = append(matched, task)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": matched})
	})

	s.mux.HandleFunc("GET /tasks/stats", func(w http.ResponseWriter, r *http.Request) {
		stats := TaskStats{Total: int64(len(s.tasks))}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": stats})
	})

	s.mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		var input TaskInput
		_ = json.NewDecoder(r.Body).Decode(&input)

		task := Task{
			ID:       s.nextID,
			Title:    input.Title,
			Status:   input.Status,
			Priority: input.Priority,
			Category: input.Category,
		}
		if task.Status == "" {
			task.Status = "pending"
		}
		if task.Priority == "" {
			task.Priority = "medium"
		}
		s.nextID++
		s.tasks = append(s.tasks, task)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": task})
	})

	s.mux.HandleFunc("PUT /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		for i := range s.tasks {
			if taskPath(s.tasks[i].ID) == r.URL.Path {
				if title, ok := body["title"].(string); ok {
					s.tasks[i].Title = title
				}
				if status, ok := body["status"].(string); ok {
					s.tasks[i].Status = status
				}
				_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": s.tasks[i]})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "task not found"})
	})

	s.mux.HandleFunc("DELETE /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		for i := range s.tasks {
			if taskPath(s.tasks[i].ID) == r.URL.Path {
				deleted := s.tasks[i]
				s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
				_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": deleted})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "task not found"})
	})

	s.mux.HandleFunc("GET /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, task := range s.tasks {
			if taskPath(task.ID) == r.URL.Path {
				_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": task})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "task not found"})
	})

	return s
}

func setupTaskManager(t *testing.T) (*TaskManager, *taskServer) {
	t.Helper()

	server := newTaskServer()
	srv := httptest.NewServer(server.mux)
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	c.setSession(Session{Token: "test-token"})
	return NewTaskManager(c), server
}

func TestTaskManager_FetchReplacesList(t *testing.T) {
	manager, server := setupTaskManager(t)

	server.tasks = []Task{
		{ID: 1, Title: "a", Status: "pending", Priority: "high"},
		{ID: 2, Title: "b", Status: "completed", Priority: "low"},
	}

	require.NoError(t, manager.Fetch(Filters{}))
	require.Len(t, manager.Tasks(), 2)

	// A filtered fetch replaces the list wholesale, no merge.
	require.NoError(t, manager.Fetch(Filters{Status: "completed"}))
	tasks := manager.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, "b", tasks[0].Title)
}

func TestTaskManager_FetchForwardsOnlyNonEmptyFilters(t *testing.T) {
	var gotQuery string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []Task{}})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	manager := NewTaskManager(New(srv.URL))

	require.NoError(t, manager.Fetch(Filters{Status: "completed", Category: ""}))
	require.Equal(t, "status=completed", gotQuery)

	require.NoError(t, manager.Fetch(Filters{}))
	require.Empty(t, gotQuery)
}

func TestTaskManager_CreatePrependsAndRefreshesStats(t *testing.T) {
	manager, _ := setupTaskManager(t)

	first, err := manager.Create(TaskInput{Title: "first"})
	require.NoError(t, err)
	require.Equal(t, "pending", first.Status)
	require.Equal(t, "medium", first.Priority)

	second, err := manager.Create(TaskInput{Title: "second", Priority: "high"})
	require.NoError(t, err)

	tasks := manager.Tasks()
	require.Len(t, tasks, 2)
	require.Equal(t, second.ID, tasks[0].ID, "newest task should be first")

	require.NotNil(t, manager.Stats())
	require.EqualValues(t, 2, manager.Stats().Total)
}

func TestTaskManager_CreateFailureLeavesListUnchanged(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "title is required"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	manager := NewTaskManager(New(srv.URL))

	_, err := manager.Create(TaskInput{})
	require.Error(t, err)
	require.EqualError(t, err, "title is required")
	require.Empty(t, manager.Tasks())
}

func TestTaskManager_UpdateReplacesInPlace(t *testing.T) {
	manager, _ := setupTaskManager(t)

	created, err := manager.Create(TaskInput{Title: "before"})
	require.NoError(t, err)
	_, err = manager.Create(TaskInput{Title: "other"})
	require.NoError(t, err)

	title := "after"
	status := "completed"
	updated, err := manager.Update(created.ID, TaskUpdate{Title: &title, Status: &status})
	require.NoError(t, err)
	require.Equal(t, "after", updated.Title)

	var found *Task
	for _, task := range manager.Tasks() {
		if task.ID == created.ID {
			task := task
			found = &task
		}
	}
	require.NotNil(t, found)
	require.Equal(t, "after", found.Title)
	require.Equal(t, "completed", found.Status)
	require.Len(t, manager.Tasks(), 2)
}

func TestTaskManager_DeleteRemovesAndRefreshesStats(t *testing.T) {
	manager, _ := setupTaskManager(t)

	created, err := manager.Create(TaskInput{Title: "doomed"})
	require.NoError(t, err)
	kept, err := manager.Create(TaskInput{Title: "kept"})
	require.NoError(t, err)

	require.NoError(t, manager.Delete(created.ID))

	tasks := manager.Tasks()
	require.Len(t, tasks, 1)
	require.Equal(t, kept.ID, tasks[0].ID)
	require.EqualValues(t, 1, manager.Stats().Total)
}

func TestTaskManager_GetReturnsNilOnFailure(t *testing.T) {
	manager, _ := setupTaskManager(t)

	created, err := manager.Create(TaskInput{Title: "findable"})
	require.NoError(t, err)

	found := manager.Get(created.ID)
	require.NotNil(t, found)
	require.Equal(t, "findable", found.Title)

	require.Nil(t, manager.Get(9999), "missing task resolves to nil, not an error")

	// Get must not touch the held list.
	require.Len(t, manager.Tasks(), 1)
}
