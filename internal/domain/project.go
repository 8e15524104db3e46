package domain

import "time"

type Project struct {
	ID           int64
	NGOID        int64
	Name         string
	Description  string
	DateStart    *time.Time
	DateEnd      *time.Time
	RewardPoints int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProjectInput is the editable part of a project.
type ProjectInput struct {
	Name         string
	Description  string
	DateStart    *time.Time
	DateEnd      *time.Time
	RewardPoints int64
}

// ParticipationState is the per (project, employee) completion state.
// Transitions only move forward: none -> pending -> completed.
type ParticipationState string

const (
	StateNotParticipant ParticipationState = "not_participant"
	StatePending        ParticipationState = "participant_pending"
	StateCompleted      ParticipationState = "participant_completed"
)

type Participation struct {
	ProjectID   int64
	EmployeeID  int64
	JoinedAt    time.Time
	CompletedAt *time.Time
}

func (p *Participation) State() ParticipationState {
	if p == nil {
		return StateNotParticipant
	}
	if p.CompletedAt != nil {
		return StateCompleted
	}
	return StatePending
}

type JoinStatus string

const (
	JoinJoined        JoinStatus = "joined"
	JoinAlreadyMember JoinStatus = "already_member"
)

type JoinResult struct {
	Status JoinStatus
	State  ParticipationState
}

type CompletionStatus string

const (
	CompletionAwarded     CompletionStatus = "awarded"
	CompletionNoReward    CompletionStatus = "completed_without_reward"
	CompletionAlreadyDone CompletionStatus = "already_completed"
)

type CompletionResult struct {
	Status        CompletionStatus
	PointsAwarded int64
	PointsBalance int64
}

// ProjectView is a project as seen by a particular caller.
type ProjectView struct {
	Project      Project
	Participants int64
	Completions  int64
	IsMember     bool
	IsCompleted  bool
}
