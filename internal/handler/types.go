package handler

import "time"

// Запросы и ответы API

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
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	NoShowCount  int        `json:"no_show_count"`
	PenaltyUntil *time.Time `json:"penalty_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CreateProjectRequest struct {
	Title                 string         `json:"title"`
	Summary               string         `json:"summary"`
	Description           string         `json:"description"`
	Category              string         `json:"category"`
	Goal                  string         `json:"goal"`
	ExpectedDurationWeeks int            `json:"expected_duration_weeks"`
	RemoteType            string         `json:"remote_type"`
	PositionsNeeded       map[string]int `json:"positions_needed"`
}

type ProjectResponse struct {
	ID                    string         `json:"id"`
	LeaderID              string         `json:"leader_id"`
	Title                 string         `json:"title"`
	Summary               string         `json:"summary"`
	Description           string         `json:"description"`
	Category              string         `json:"category"`
	Goal                  string         `json:"goal"`
	ExpectedDurationWeeks int            `json:"expected_duration_weeks"`
	RemoteType            string         `json:"remote_type"`
	RecruitmentStatus     string         `json:"recruitment_status"`
	PositionsNeeded       map[string]int `json:"positions_needed"`
	PositionsFilled       map[string]int `json:"positions_filled"`
	CreatedAt             time.Time      `json:"created_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Size     int               `json:"size"`
}

type ApplyRequest struct {
	AppliedPosition string `json:"applied_position"`
	Motivation      string `json:"motivation"`
	PortfolioLink   string `json:"portfolio_link,omitempty"`
}

type ApplicationResponse struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	UserID          string    `json:"user_id"`
	AppliedPosition string    `json:"applied_position"`
	Motivation      string    `json:"motivation"`
	PortfolioLink   string    `json:"portfolio_link,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type TeamMemberResponse struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"project_id"`
	UserID        string     `json:"user_id"`
	RoleInProject string     `json:"role_in_project"`
	IsLeader      bool       `json:"is_leader"`
	JoinedAt      time.Time  `json:"joined_at"`
	LeftAt        *time.Time `json:"left_at,omitempty"`
}

type NoShowRequest struct {
	UserID string `json:"user_id"`
}

type FeatureUsageResponse struct {
	Feature   string `json:"feature"`
	Count     int    `json:"count"`
	Remaining int    `json:"remaining"`
}
