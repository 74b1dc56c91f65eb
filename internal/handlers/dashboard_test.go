package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/mfg-tool-dashboard/internal/dto"
	"github.com/yukikurage/mfg-tool-dashboard/internal/models"
	"github.com/yukikurage/mfg-tool-dashboard/internal/testutil"
)

func TestDashboardHandler_ListTools(t *testing.T) {
	env := setupHandlerTestEnv(t)
	testutil.CreateTools(t, env.db, "Etcher A", "Etcher B")

	r := newTestRouter(nil)
	r.GET("/api/tools", NewDashboardHandler(env.toolService).ListTools)

	w := performJSON(t, r, http.MethodGet, "/api/tools", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var tools []dto.ToolDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	require.Len(t, tools, 2)
	assert.Equal(t, uint64(1), tools[0].ID)
	assert.Equal(t, "Etcher A", tools[0].Name)
	assert.Equal(t, "Etcher B", tools[1].Name)
}

func TestDashboardHandler_ListTools_Empty(t *testing.T) {
	env := setupHandlerTestEnv(t)

	r := newTestRouter(nil)
	r.GET("/api/tools", NewDashboardHandler(env.toolService).ListTools)

	w := performJSON(t, r, http.MethodGet, "/api/tools", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestDashboardHandler_Index(t *testing.T) {
	env := setupHandlerTestEnv(t)
	testutil.CreateTools(t, env.db, "Etcher A")

	r := newTestRouter(nil)
	r.GET("/", NewDashboardHandler(env.toolService).Index)

	w := performJSON(t, r, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["tools"], 1)
	assert.NotContains(t, body, "user")
}

func TestDashboardHandler_UserDashboard(t *testing.T) {
	env := setupHandlerTestEnv(t)
	testutil.CreateTools(t, env.db, "Etcher A", "Etcher B")
	assigned := testutil.CreateUser(t, env.db, "E100", "supersecret", false, testutil.Ptr(uint64(2)))
	unassigned := testutil.CreateUser(t, env.db, "E200", "supersecret", false, nil)
	dangling := testutil.CreateUser(t, env.db, "E300", "supersecret", false, testutil.Ptr(uint64(99)))
	handler := NewDashboardHandler(env.toolService)

	cases := []struct {
		name     string
		user     *models.User
		wantTool any
	}{
		{name: "assigned", user: assigned, wantTool: "Etcher B"},
		{name: "unassigned", user: unassigned},
		{name: "dangling", user: dangling},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(tc.user)
			r.GET("/user/dashboard", handler.UserDashboard)

			w := performJSON(t, r, http.MethodGet, "/user/dashboard", nil)

			require.Equal(t, http.StatusOK, w.Code)
			body := decodeBody(t, w)
			if tc.wantTool == nil {
				assert.Nil(t, body["tool"])
				return
			}
			assert.Equal(t, tc.wantTool, body["tool"].(map[string]any)["mfg_tool_name"])
		})
	}
}

func TestDashboardHandler_UpdateAssignedTool(t *testing.T) {
	env := setupHandlerTestEnv(t)
	testutil.CreateTools(t, env.db, "Etcher A", "Etcher B")
	user := testutil.CreateUser(t, env.db, "E100", "supersecret", false, testutil.Ptr(uint64(2)))
	user.FirstName = "Jane"
	user.LastName = "Doe"
	require.NoError(t, env.db.Save(user).Error)

	r := newTestRouter(user)
	r.POST("/user/update-tool", NewDashboardHandler(env.toolService).UpdateAssignedTool)

	w := performJSON(t, r, http.MethodPost, "/user/update-tool", map[string]any{
		"current_status": "Down",
		"next_action":    "Replace pump",
		"eta":            "2024-06-01",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Tool status updated successfully", body["message"])

	var tool models.Tool
	require.NoError(t, env.db.First(&tool, 2).Error)
	assert.Equal(t, "Down", tool.CurrentStatus)
	assert.Equal(t, "Replace pump", tool.NextAction)
	assert.Equal(t, "2024-06-01", tool.ETA)
	assert.Equal(t, "Jane Doe", tool.ResponsibleParty)
}

func TestDashboardHandler_UpdateAssignedTool_Errors(t *testing.T) {
	env := setupHandlerTestEnv(t)
	testutil.CreateTools(t, env.db, "Etcher A", "Etcher B")
	assigned := testutil.CreateUser(t, env.db, "E100", "supersecret", false, testutil.Ptr(uint64(2)))
	unassigned := testutil.CreateUser(t, env.db, "E200", "supersecret", false, nil)
	handler := NewDashboardHandler(env.toolService)

	valid := map[string]any{
		"current_status": "Down",
		"next_action":    "Replace pump",
		"eta":            "2024-06-01",
	}

	cases := []struct {
		name    string
		user    *models.User
		payload map[string]any
		status  int
		message string
	}{
		{
			name:    "no assignment",
			user:    unassigned,
			payload: valid,
			status:  http.StatusBadRequest,
			message: "No tool assigned to your account",
		},
		{
			name: "other tool",
			user: assigned,
			payload: map[string]any{
				"tool_id":        1,
				"current_status": "Down",
				"next_action":    "Replace pump",
				"eta":            "2024-06-01",
			},
			status: http.StatusForbidden,
		},
		{
			name:    "missing fields",
			user:    assigned,
			payload: map[string]any{"current_status": "Down"},
			status:  http.StatusBadRequest,
			message: "All fields are required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(tc.user)
			r.POST("/user/update-tool", handler.UpdateAssignedTool)

			w := performJSON(t, r, http.MethodPost, "/user/update-tool", tc.payload)

			require.Equal(t, tc.status, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			if tc.message != "" {
				assert.Equal(t, tc.message, body["message"])
			}
		})
	}

	var tools []models.Tool
	require.NoError(t, env.db.Order("id").Find(&tools).Error)
	for _, tool := range tools {
		assert.Equal(t, "Operational", tool.CurrentStatus)
	}
}
