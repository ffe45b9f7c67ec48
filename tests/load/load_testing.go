package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 5
	duration   = 3 * time.Minute
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type CreateProjectRequest struct {
	Title           string         `json:"title"`
	Summary         string         `json:"summary"`
	Category        string         `json:"category"`
	RemoteType      string         `json:"remote_type"`
	PositionsNeeded map[string]int `json:"positions_needed"`
}

type ProjectResponse struct {
	ID string `json:"id"`
}

var (
	leaderTokens []string
	memberTokens []string
	projects     []string
	httpc        = &http.Client{Timeout: 10 * time.Second}
	positions    = []string{"BE", "FE", "DESIGN"}
)

func postJSON(url, token string, body, out any) (int, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode, nil
}

func registerAndLogin(email, role string) (string, error) {
	status, err := postJSON(targetHost+"/api/auth/register", "", RegisterRequest{
		Email:    email,
		Password: "load-test-password",
		Name:     "Load User",
		Role:     role,
	}, nil)
	if err != nil {
		return "", err
	}
	if status >= 400 && status != http.StatusConflict {
		log.Printf("WARN auth/register returned %d\n", status)
	}

	var login LoginResponse
	status, err = postJSON(targetHost+"/api/auth/login", "", LoginRequest{
		Email:    email,
		Password: "load-test-password",
	}, &login)
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("login for %s returned %d", email, status)
	}
	return login.AccessToken, nil
}

// Seed
func seedData() error {
	log.Println("Seeding: registering leaders and members...")

	for i := 1; i <= 20; i++ {
		token, err := registerAndLogin(fmt.Sprintf("load-leader-%02d@example.com", i), "LEADER")
		if err != nil {
			return err
		}
		leaderTokens = append(leaderTokens, token)
		time.Sleep(20 * time.Millisecond)
	}

	for i := 1; i <= 100; i++ {
		token, err := registerAndLogin(fmt.Sprintf("load-member-%03d@example.com", i), "MEMBER")
		if err != nil {
			return err
		}
		memberTokens = append(memberTokens, token)
		time.Sleep(20 * time.Millisecond)
	}

	log.Println("Seeding: creating projects...")

	for i, token := range leaderTokens {
		var project ProjectResponse
		status, err := postJSON(targetHost+"/api/projects", token, CreateProjectRequest{
			Title:      fmt.Sprintf("Load Project %02d", i+1),
			Summary:    "Generated for load testing",
			Category:   "STUDY",
			RemoteType: "ONLINE",
			PositionsNeeded: map[string]int{
				"BE": 50, "FE": 50, "DESIGN": 50,
			},
		}, &project)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN projects returned %d\n", status)
			continue
		}
		projects = append(projects, project.ID)
		time.Sleep(20 * time.Millisecond)
	}

	log.Printf("Seed completed: leaders=%d members=%d projects=%d\n",
		len(leaderTokens), len(memberTokens), len(projects))
	return nil
}

func authHeader(token string) map[string][]string {
	return map[string][]string{
		"Authorization": {"Bearer " + token},
		"Content-Type":  {"application/json"},
	}
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()
		member := memberTokens[rand.Intn(len(memberTokens))]

		// 50% GET projects list
		if r < 0.50 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/projects?page=%d&size=20", targetHost, rand.Intn(5)+1)
			t.Body = nil
			t.Header = authHeader(member)
			return nil
		}

		// 25% GET project detail
		if r < 0.75 {
			project := projects[rand.Intn(len(projects))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/projects/%s", targetHost, project)
			t.Body = nil
			t.Header = authHeader(member)
			return nil
		}

		// 15% GET project team
		if r < 0.90 {
			project := projects[rand.Intn(len(projects))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/projects/%s/team", targetHost, project)
			t.Body = nil
			t.Header = authHeader(member)
			return nil
		}

		// 8% POST apply (дубликаты PENDING дают 409 — это ожидаемо)
		if r < 0.98 {
			project := projects[rand.Intn(len(projects))]
			body, _ := json.Marshal(map[string]string{
				"applied_position": positions[rand.Intn(len(positions))],
				"motivation":       "Load test application",
			})
			t.Method = http.MethodPost
			t.URL = fmt.Sprintf("%s/api/projects/%s/apply", targetHost, project)
			t.Body = body
			t.Header = authHeader(member)
			return nil
		}

		// 2% POST ai feature use
		body, _ := json.Marshal(map[string]string{})
		t.Method = http.MethodPost
		t.URL = targetHost + "/api/ai/MEETING_SUMMARY/use"
		t.Body = body
		t.Header = authHeader(member)
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	runAttack()
}
