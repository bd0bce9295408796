package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func loginAs(t *testing.T, username, password string) {
	t.Helper()
	credentials := map[string]string{"username": username, "password": password}
	postJSON(t, "/api/signup", credentials).Body.Close()

	resp := postJSON(t, "/api/login", credentials)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateAndHistoryFlow(t *testing.T) {
	loginAs(t, "genuser", "genpass")

	// Generate against the mock endpoint
	resp := postJSON(t, "/api/generate", map[string]string{"prompt": "a red balloon"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Status string `json:"status"`
		Image  struct {
			URL    string `json:"url"`
			Prompt string `json:"prompt"`
		} `json:"image"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Equal(t, "success", result.Status)
	require.Equal(t, "https://example.com/generated.png", result.Image.URL)
	require.Equal(t, "a red balloon", result.Image.Prompt)

	// The generation lands in history, most recent first
	histResp, err := http.Get(serverURL + "/api/history")
	require.NoError(t, err)
	defer histResp.Body.Close()
	require.Equal(t, http.StatusOK, histResp.StatusCode)

	var history struct {
		Count   int `json:"count"`
		History []struct {
			ID     string `json:"id"`
			URL    string `json:"url"`
			Prompt string `json:"prompt"`
		} `json:"history"`
	}
	require.NoError(t, json.NewDecoder(histResp.Body).Decode(&history))
	require.GreaterOrEqual(t, history.Count, 1)
	require.Equal(t, "a red balloon", history.History[0].Prompt)
	require.NotEmpty(t, history.History[0].ID)
}

func TestGenerateEmptyPromptRejected(t *testing.T) {
	loginAs(t, "emptyuser", "emptypass")

	resp := postJSON(t, "/api/generate", map[string]string{"prompt": "   "})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCommunityGallery(t *testing.T) {
	loginAs(t, "communityuser", "communitypass")

	resp, err := http.Get(serverURL + "/api/community")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Count  int `json:"count"`
		Images []struct {
			ID     string `json:"id"`
			URL    string `json:"url"`
			Prompt string `json:"prompt"`
		} `json:"images"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 20, body.Count)
	for _, image := range body.Images {
		require.NotEmpty(t, image.ID)
		require.NotEmpty(t, image.URL)
	}
}

func TestProtectedEndpointsRequireSession(t *testing.T) {
	// Drop any session left over from earlier tests
	postJSON(t, "/api/logout", nil).Body.Close()

	resp, err := http.Get(serverURL + "/api/history")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	genResp := postJSON(t, "/api/generate", map[string]string{"prompt": "anything"})
	defer genResp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, genResp.StatusCode)
}
