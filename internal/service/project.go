package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/metrics"
	"github.com/set-night/o2ledger/internal/repository"
	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

type ProjectService struct {
	store    repository.Store
	ledger   *Ledger
	observer Observer
}

func NewProjectService(store repository.Store, ledger *Ledger, observer Observer) *ProjectService {
	return &ProjectService{store: store, ledger: ledger, observer: orNop(observer)}
}

// Join adds the employee to the project. Joining twice is not an error.
func (s *ProjectService) Join(ctx context.Context, projectID, employeeID int64) (domain.JoinResult, error) {
	var res domain.JoinResult
	err := s.store.ExecTx(ctx, func(q sqlc.Querier) error {
		if _, err := q.GetProject(ctx, projectID); err != nil {
			return fmt.Errorf("get project: %w", orNotFound(err, domain.ErrProjectNotFound))
		}
		if _, err := q.GetEmployee(ctx, employeeID); err != nil {
			return fmt.Errorf("get employee: %w", orNotFound(err, domain.ErrEmployeeNotFound))
		}

		key := sqlc.AddProjectParticipantParams{ProjectID: projectID, EmployeeID: employeeID}
		_, err := q.AddProjectParticipant(ctx, key)
		if err == nil {
			res = domain.JoinResult{Status: domain.JoinJoined, State: domain.StatePending}
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("add participant: %w", err)
		}

		row, err := q.GetProjectParticipant(ctx, sqlc.GetProjectParticipantParams(key))
		if err != nil {
			return fmt.Errorf("get participant: %w", err)
		}
		res = domain.JoinResult{Status: domain.JoinAlreadyMember, State: rowToParticipation(row).State()}
		return nil
	})
	if err != nil {
		metrics.ObserveJoin("error")
		return domain.JoinResult{}, err
	}

	metrics.ObserveJoin(string(res.Status))
	return res, nil
}

// MarkDone completes the employee's participation and awards the project's
// reward exactly once. A repeated call reports CompletionAlreadyDone.
func (s *ProjectService) MarkDone(ctx context.Context, projectID, employeeID int64) (domain.CompletionResult, error) {
	var (
		res     domain.CompletionResult
		project sqlc.Project
		emp     sqlc.Employee
	)
	err := s.store.ExecTx(ctx, func(q sqlc.Querier) error {
		var err error
		project, err = q.GetProject(ctx, projectID)
		if err != nil {
			return fmt.Errorf("get project: %w", orNotFound(err, domain.ErrProjectNotFound))
		}

		key := sqlc.CompleteProjectParticipantParams{ProjectID: projectID, EmployeeID: employeeID}
		_, err = q.CompleteProjectParticipant(ctx, key)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			if _, err := q.GetProjectParticipant(ctx, sqlc.GetProjectParticipantParams(key)); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return domain.ErrNotAParticipant
				}
				return fmt.Errorf("get participant: %w", err)
			}
			emp, err = q.GetEmployee(ctx, employeeID)
			if err != nil {
				return fmt.Errorf("get employee: %w", orNotFound(err, domain.ErrEmployeeNotFound))
			}
			res = domain.CompletionResult{Status: domain.CompletionAlreadyDone, PointsBalance: emp.PointsBalance}
			return nil
		case err != nil:
			return fmt.Errorf("complete participant: %w", err)
		}

		if project.RewardPoints <= 0 {
			emp, err = q.GetEmployee(ctx, employeeID)
			if err != nil {
				return fmt.Errorf("get employee: %w", orNotFound(err, domain.ErrEmployeeNotFound))
			}
			res = domain.CompletionResult{Status: domain.CompletionNoReward, PointsBalance: emp.PointsBalance}
			return nil
		}

		emp, err = s.ledger.award(ctx, q, employeeID, project.RewardPoints)
		if err != nil {
			return err
		}
		res = domain.CompletionResult{
			Status:        domain.CompletionAwarded,
			PointsAwarded: project.RewardPoints,
			PointsBalance: emp.PointsBalance,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotAParticipant) {
			metrics.ObserveCompletion("not_participant", 0)
		} else {
			metrics.ObserveCompletion("error", 0)
		}
		return domain.CompletionResult{}, err
	}

	metrics.ObserveCompletion(string(res.Status), res.PointsAwarded)
	if res.Status != domain.CompletionAlreadyDone {
		slog.Info("project completed",
			"project_id", projectID,
			"employee_id", employeeID,
			"awarded", res.PointsAwarded,
			"balance", res.PointsBalance,
		)
		s.observer.ProjectCompleted(ctx, rowToEmployee(emp), rowToProject(project), res)
	}
	return res, nil
}

// State reports where the employee stands on the project.
func (s *ProjectService) State(ctx context.Context, projectID, employeeID int64) (domain.ParticipationState, error) {
	row, err := s.store.GetProjectParticipant(ctx, sqlc.GetProjectParticipantParams{ProjectID: projectID, EmployeeID: employeeID})
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StateNotParticipant, nil
	}
	if err != nil {
		return "", fmt.Errorf("get participant: %w", err)
	}
	return rowToParticipation(row).State(), nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (domain.Project, error) {
	row, err := s.store.GetProject(ctx, id)
	if err != nil {
		return domain.Project{}, fmt.Errorf("get project: %w", orNotFound(err, domain.ErrProjectNotFound))
	}
	return rowToProject(row), nil
}

func (s *ProjectService) Create(ctx context.Context, ngo domain.NGO, in domain.ProjectInput) (domain.Project, error) {
	if err := validateProject(in); err != nil {
		return domain.Project{}, err
	}
	row, err := s.store.CreateProject(ctx, sqlc.CreateProjectParams{
		NgoID:        ngo.ID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		DateStart:    timePtrToPgDate(in.DateStart),
		DateEnd:      timePtrToPgDate(in.DateEnd),
		RewardPoints: in.RewardPoints,
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}
	return rowToProject(row), nil
}

// Update edits a project owned by ngo.
func (s *ProjectService) Update(ctx context.Context, ngo domain.NGO, id int64, in domain.ProjectInput) (domain.Project, error) {
	if err := validateProject(in); err != nil {
		return domain.Project{}, err
	}

	var out sqlc.Project
	err := s.store.ExecTx(ctx, func(q sqlc.Querier) error {
		current, err := q.GetProject(ctx, id)
		if err != nil {
			return fmt.Errorf("get project: %w", orNotFound(err, domain.ErrProjectNotFound))
		}
		if current.NgoID != ngo.ID {
			return domain.ErrForbidden
		}
		out, err = q.UpdateProject(ctx, sqlc.UpdateProjectParams{
			ID:           id,
			Name:         strings.TrimSpace(in.Name),
			Description:  in.Description,
			DateStart:    timePtrToPgDate(in.DateStart),
			DateEnd:      timePtrToPgDate(in.DateEnd),
			RewardPoints: in.RewardPoints,
		})
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return rowToProject(out), nil
}

// View returns a project for the caller. NGOs see their own projects and
// employees the projects they joined.
func (s *ProjectService) View(ctx context.Context, p domain.Principal, id int64) (domain.ProjectView, error) {
	row, err := s.store.GetProject(ctx, id)
	if err != nil {
		return domain.ProjectView{}, fmt.Errorf("get project: %w", orNotFound(err, domain.ErrProjectNotFound))
	}

	view := domain.ProjectView{Project: rowToProject(row)}
	switch {
	case p.IsNGO():
		if row.NgoID != p.NGO.ID {
			return domain.ProjectView{}, domain.ErrForbidden
		}
	case p.IsEmployee():
		state, err := s.State(ctx, id, p.Employee.ID)
		if err != nil {
			return domain.ProjectView{}, err
		}
		if state == domain.StateNotParticipant {
			return domain.ProjectView{}, domain.ErrForbidden
		}
		view.IsMember = true
		view.IsCompleted = state == domain.StateCompleted
	default:
		return domain.ProjectView{}, domain.ErrForbidden
	}

	stats, err := s.store.GetProjectStats(ctx, id)
	if err != nil {
		return domain.ProjectView{}, fmt.Errorf("get project stats: %w", err)
	}
	view.Participants = stats.Participants
	view.Completions = stats.Completions
	return view, nil
}

func (s *ProjectService) ListForNGO(ctx context.Context, ngo domain.NGO, page domain.Page) ([]domain.Project, int64, error) {
	rows, err := s.store.ListProjectsByNGO(ctx, sqlc.ListProjectsByNGOParams{
		NgoID:  ngo.ID,
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	total, err := s.CountForNGO(ctx, ngo)
	if err != nil {
		return nil, 0, err
	}
	return rowsToProjects(rows), total, nil
}

func (s *ProjectService) CountForNGO(ctx context.Context, ngo domain.NGO) (int64, error) {
	total, err := s.store.CountProjectsByNGO(ctx, ngo.ID)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return total, nil
}

func (s *ProjectService) ListForEmployee(ctx context.Context, employeeID int64, page domain.Page) ([]domain.Project, int64, error) {
	rows, err := s.store.ListProjectsByEmployee(ctx, sqlc.ListProjectsByEmployeeParams{
		EmployeeID: employeeID,
		Limit:      page.Limit(),
		Offset:     page.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	total, err := s.store.CountProjectsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}
	return rowsToProjects(rows), total, nil
}

func rowsToProjects(rows []sqlc.Project) []domain.Project {
	out := make([]domain.Project, len(rows))
	for i, r := range rows {
		out[i] = rowToProject(r)
	}
	return out
}

func validateProject(in domain.ProjectInput) error {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "required"
	}
	if in.RewardPoints < 0 {
		fields["reward_points"] = "must not be negative"
	}
	if in.DateStart != nil && in.DateEnd != nil && in.DateEnd.Before(*in.DateStart) {
		fields["date_end"] = "must not be before date_start"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
