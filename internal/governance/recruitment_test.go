package governance_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"projectmate-service/internal/domain"
	"projectmate-service/internal/governance"
)

func openProject(needed, filled map[string]int) domain.Project {
	return domain.Project{
		ID:                uuid.New(),
		LeaderID:          uuid.New(),
		RecruitmentStatus: domain.RecruitmentOpen,
		PositionsNeeded:   needed,
		PositionsFilled:   filled,
	}
}

func TestCanAcceptApplication(t *testing.T) {
	testCases := []struct {
		name     string
		status   domain.RecruitmentStatus
		needed   map[string]int
		filled   map[string]int
		role     string
		expected bool
	}{
		{
			name:     "Open role with capacity",
			status:   domain.RecruitmentOpen,
			needed:   map[string]int{"BE": 2},
			filled:   map[string]int{"BE": 1},
			role:     "BE",
			expected: true,
		},
		{
			name:     "Role at capacity",
			status:   domain.RecruitmentOpen,
			needed:   map[string]int{"BE": 1},
			filled:   map[string]int{"BE": 1},
			role:     "BE",
			expected: false,
		},
		{
			name:     "Unknown role",
			status:   domain.RecruitmentOpen,
			needed:   map[string]int{"BE": 1},
			filled:   map[string]int{},
			role:     "QA",
			expected: false,
		},
		{
			name:     "In progress with spare capacity",
			status:   domain.RecruitmentInProgress,
			needed:   map[string]int{"BE": 2},
			filled:   map[string]int{"BE": 1},
			role:     "BE",
			expected: true,
		},
		{
			name:     "Closed project",
			status:   domain.RecruitmentClosed,
			needed:   map[string]int{"BE": 2},
			filled:   map[string]int{"BE": 0},
			role:     "BE",
			expected: false,
		},
		{
			name:     "Finished project",
			status:   domain.RecruitmentFinished,
			needed:   map[string]int{"BE": 2},
			filled:   map[string]int{"BE": 0},
			role:     "BE",
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := openProject(tc.needed, tc.filled)
			p.RecruitmentStatus = tc.status
			assert.Equal(t, tc.expected, governance.CanAcceptApplication(p, tc.role))
		})
	}
}

func TestApplyMembership_InvalidRole(t *testing.T) {
	p := openProject(map[string]int{"BE": 1}, map[string]int{})

	_, err := governance.ApplyMembership(p, "QA", +1)

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestApplyMembership_AutoTransitionToInProgress(t *testing.T) {
	p := openProject(map[string]int{"BE": 1, "FE": 1}, map[string]int{"BE": 1})

	updated, err := governance.ApplyMembership(p, "FE", +1)

	assert.NoError(t, err)
	assert.Equal(t, domain.RecruitmentInProgress, updated.RecruitmentStatus)
	assert.Equal(t, 1, updated.PositionsFilled["FE"])
}

func TestApplyMembership_StaysOpenWhileAnyRoleUnfilled(t *testing.T) {
	p := openProject(map[string]int{"BE": 2, "FE": 1}, map[string]int{})

	updated, err := governance.ApplyMembership(p, "BE", +1)

	assert.NoError(t, err)
	assert.Equal(t, domain.RecruitmentOpen, updated.RecruitmentStatus)
}

func TestApplyMembership_MemberLeavingReopensRecruitment(t *testing.T) {
	p := openProject(map[string]int{"BE": 1}, map[string]int{"BE": 1})
	p.RecruitmentStatus = domain.RecruitmentInProgress

	updated, err := governance.ApplyMembership(p, "BE", -1)

	assert.NoError(t, err)
	assert.Equal(t, 0, updated.PositionsFilled["BE"])
	assert.Equal(t, domain.RecruitmentOpen, updated.RecruitmentStatus)
}

func TestApplyMembership_FilledNeverExceedsNeeded(t *testing.T) {
	p := openProject(map[string]int{"BE": 1}, map[string]int{"BE": 1})

	updated, err := governance.ApplyMembership(p, "BE", +1)

	assert.NoError(t, err)
	for role, needed := range updated.PositionsNeeded {
		assert.LessOrEqual(t, updated.PositionsFilled[role], needed)
	}
}

func TestApplyMembership_DoesNotMutateInput(t *testing.T) {
	filled := map[string]int{"BE": 0}
	p := openProject(map[string]int{"BE": 1}, filled)

	_, err := governance.ApplyMembership(p, "BE", +1)

	assert.NoError(t, err)
	assert.Equal(t, 0, filled["BE"])
}

func TestCloseRecruitment(t *testing.T) {
	testCases := []struct {
		name    string
		status  domain.RecruitmentStatus
		wantErr error
	}{
		{name: "From open", status: domain.RecruitmentOpen},
		{name: "From in progress", status: domain.RecruitmentInProgress},
		{name: "From closed", status: domain.RecruitmentClosed, wantErr: domain.ErrInvalidStatusTransition},
		{name: "From finished", status: domain.RecruitmentFinished, wantErr: domain.ErrInvalidStatusTransition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := openProject(map[string]int{"BE": 1}, map[string]int{})
			p.RecruitmentStatus = tc.status

			updated, err := governance.CloseRecruitment(p)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.RecruitmentClosed, updated.RecruitmentStatus)
		})
	}
}

func TestFinishProject(t *testing.T) {
	testCases := []struct {
		name    string
		status  domain.RecruitmentStatus
		wantErr error
	}{
		{name: "From in progress", status: domain.RecruitmentInProgress},
		{name: "From open", status: domain.RecruitmentOpen, wantErr: domain.ErrInvalidStatusTransition},
		{name: "From closed", status: domain.RecruitmentClosed, wantErr: domain.ErrInvalidStatusTransition},
		{name: "From finished", status: domain.RecruitmentFinished, wantErr: domain.ErrInvalidStatusTransition},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := openProject(map[string]int{"BE": 1}, map[string]int{})
			p.RecruitmentStatus = tc.status

			updated, err := governance.FinishProject(p)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.RecruitmentFinished, updated.RecruitmentStatus)
		})
	}
}
