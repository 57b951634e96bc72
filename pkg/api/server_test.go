package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/att-innovate/torc-controller/pkg/state"
	"github.com/att-innovate/torc-controller/pkg/types"
)

type fakeGroups struct {
	groups map[string][]types.Task
}

func (f *fakeGroups) ServiceGroup(name string) ([]types.Task, bool) {
	g, ok := f.groups[name]
	return g, ok
}

func newTestServer(t *testing.T, groups map[string][]types.Task) *Server {
	t.Helper()
	actor := state.New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go actor.Run(ctx)
	return New(actor.Client("10.0.0.1"), &fakeGroups{groups: groups})
}

func TestPingReturnsPongText(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	w := httptest.NewRecorder()

	s.mux.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestServicesRunningExcludesJobs(t *testing.T) {
	s := newTestServer(t, nil)
	s.State.StartTask(types.Task{Name: "svc-a"})
	s.State.UpdateTaskState("svc-a", types.Accepted)
	s.State.UpdateTaskState("svc-a", types.Running)

	s.State.StartTask(types.Task{Name: "job-a", IsJob: true})
	s.State.UpdateTaskState("job-a", types.Accepted)
	s.State.UpdateTaskState("job-a", types.Running)

	req := httptest.NewRequest("GET", "/services/running", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	var tasks []types.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "svc-a", tasks[0].Name)
}

func TestServiceGetReturnsResultWithCORSHeader(t *testing.T) {
	s := newTestServer(t, nil)
	s.State.StartTask(types.Task{Name: "dns-a"})
	s.State.UpdateTaskInfo("dns-a", "c0ffee1234", "", "")

	req := httptest.NewRequest("GET", "/service?id=c0ff", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "dns-a", resp.Result)
}

func TestServiceGetUnknownIDReturnsEmptyResult(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/service?id=nope", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "", resp.Result)
}

func TestServiceDeleteMissingNameStillReturnsDone(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest("DELETE", "/service", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "done", resp.Result)
}

func TestStartGroupEnqueuesAllTasksInGroup(t *testing.T) {
	groups := map[string][]types.Task{
		"web": {
			{Name: "web-0"},
			{Name: "web-1"},
			{Name: "web-2"},
		},
	}
	s := newTestServer(t, groups)

	req := httptest.NewRequest("GET", "/start/group?name=web", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "done", resp.Result)

	for _, name := range []string{"web-0", "web-1", "web-2"} {
		assert.Equal(t, types.Requested, s.State.GetTaskState(name))
	}
}

func TestStartGroupUnknownNameStillReturnsDone(t *testing.T) {
	s := newTestServer(t, map[string][]types.Task{})

	req := httptest.NewRequest("GET", "/start/group?name=ghost", nil)
	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "done", resp.Result)
}
