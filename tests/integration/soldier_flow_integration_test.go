//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("BASTION_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:18080"
}

func TestSoldierJourneyIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	email := fmt.Sprintf("integration_%d@unit.mil", time.Now().UnixNano())
	password := "Secret123!"

	var registerResp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	doPost(t, client, base+"/api/auth/register", "", map[string]any{
		"email":    email,
		"password": password,
		"callsign": "Integration",
	}, &registerResp)
	if registerResp.Token == "" || registerResp.UserID == "" {
		t.Fatalf("unexpected register response: %+v", registerResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doPost(t, client, base+"/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &loginResp)
	token := loginResp.Token
	if token == "" {
		t.Fatalf("login did not return token")
	}

	// morning zone check
	var check struct {
		ID             string `json:"id"`
		Recommendation struct {
			Action string `json:"action"`
		} `json:"recommendation"`
	}
	doPost(t, client, base+"/api/zone/check", token, map[string]any{
		"stress_rating": 5.0,
		"emotions":      []string{"focused"},
		"upcoming_task": "live fire",
	}, &check)
	if check.ID == "" || check.Recommendation.Action == "" {
		t.Fatalf("unexpected zone check: %+v", check)
	}

	// log last night's sleep and read the dashboard
	end := time.Now().UTC().Add(-2 * time.Hour)
	doPost(t, client, base+"/api/sleep/logs", token, map[string]any{
		"start":   end.Add(-7 * time.Hour).Format(time.RFC3339),
		"end":     end.Format(time.RFC3339),
		"quality": 7,
	}, nil)
	var dash struct {
		CognitiveReadiness int `json:"cognitive_readiness"`
	}
	doGet(t, client, base+"/api/sleep/dashboard", token, &dash)
	if dash.CognitiveReadiness == 0 {
		t.Fatalf("unexpected dashboard: %+v", dash)
	}

	// complete the first mission and verify XP landed
	var catalog struct {
		Missions []struct {
			ID       string `json:"id"`
			MaxScore int    `json:"max_score"`
		} `json:"missions"`
	}
	doGet(t, client, base+"/api/missions", token, &catalog)
	if len(catalog.Missions) == 0 {
		t.Fatalf("mission catalog empty")
	}
	first := catalog.Missions[0]
	var completion struct {
		Result struct {
			Passed bool `json:"passed"`
		} `json:"result"`
		Progression struct {
			XP int `json:"xp"`
		} `json:"progression"`
	}
	doPost(t, client, base+"/api/missions/"+first.ID+"/complete", token, map[string]any{
		"score": first.MaxScore,
	}, &completion)
	if !completion.Result.Passed || completion.Progression.XP == 0 {
		t.Fatalf("unexpected completion: %+v", completion)
	}

	var prog struct {
		XP   int `json:"xp"`
		Rank struct {
			Title string `json:"title"`
		} `json:"rank"`
	}
	doGet(t, client, base+"/api/progression", token, &prog)
	if prog.XP != completion.Progression.XP || prog.Rank.Title == "" {
		t.Fatalf("unexpected progression: %+v", prog)
	}

	// evening reflection closes the day
	doPost(t, client, base+"/api/zone/"+check.ID+"/reflection", token, map[string]any{
		"performance_outcome": 4,
		"reflection":          "solid day",
	}, nil)
	var streak struct {
		StreakDays int `json:"streak_days"`
	}
	doGet(t, client, base+"/api/progression/streak", token, &streak)
	if streak.StreakDays != 1 {
		t.Fatalf("streak = %d, want 1", streak.StreakDays)
	}
}

func doPost(t *testing.T, client *http.Client, url, token string, body any, out any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http post %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

func doGet(t *testing.T, client *http.Client, url, token string, out any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("http get %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}
