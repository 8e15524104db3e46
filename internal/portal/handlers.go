package portal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/set-night/o2ledger/internal/domain"
)

type projectRequest struct {
	Name         string  `json:"name" validate:"notblank,max=200"`
	Description  string  `json:"description" validate:"max=5000"`
	DateStart    *string `json:"date_start" validate:"omitempty,datetime=2006-01-02"`
	DateEnd      *string `json:"date_end" validate:"omitempty,datetime=2006-01-02"`
	RewardPoints int64   `json:"reward_points" validate:"gte=0"`
}

func (req projectRequest) input() domain.ProjectInput {
	return domain.ProjectInput{
		Name:         req.Name,
		Description:  req.Description,
		DateStart:    parseDate(req.DateStart),
		DateEnd:      parseDate(req.DateEnd),
		RewardPoints: req.RewardPoints,
	}
}

type activityRequest struct {
	Name           string          `json:"name" validate:"notblank,max=200"`
	Description    string          `json:"description" validate:"max=5000"`
	PointsCost     int64           `json:"points_cost" validate:"gte=0"`
	CurrencyPayout decimal.Decimal `json:"currency_payout" validate:"-"`
	Active         *bool           `json:"active"`
}

func (req activityRequest) input() domain.ActivityInput {
	return domain.ActivityInput{
		Name:           req.Name,
		Description:    req.Description,
		PointsCost:     req.PointsCost,
		CurrencyPayout: req.CurrencyPayout,
		Active:         req.Active,
	}
}

type enrollRequest struct {
	EmployeeID int64 `json:"employee_id" validate:"required,gt=0"`
}

// parseDate expects a value already checked by the validator.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}

func pageParam(r *http.Request) domain.Page {
	n, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return domain.NewPage(n)
}

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Fields: map[string]string{"id": "must be a positive integer"}}
	}
	return id, nil
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	out := meJSON{UserID: p.UserID}

	if p.IsEmployee() {
		profile, err := s.opts.Employees.Profile(r.Context(), p.Employee.ID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		e := toEmployeeJSON(profile.Employee)
		e.Rank = profile.Rank
		e.Employees = profile.Employees
		out.Employee = e
	}

	if p.IsNGO() {
		projects, err := s.opts.Projects.CountForNGO(r.Context(), *p.NGO)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		activities, err := s.opts.Activities.CountForNGO(r.Context(), *p.NGO)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		out.NGO = &ngoJSON{ID: p.NGO.ID, Name: p.NGO.Name, Projects: projects, Activities: activities}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMyPurchases(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if !p.IsEmployee() {
		s.fail(w, r, domain.ErrForbidden)
		return
	}

	page := pageParam(r)
	items, total, err := s.opts.Activities.PurchaseHistory(r.Context(), p.Employee.ID, page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(mapSlice(items, toPurchaseJSON), page, total))
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	standings, err := s.opts.Leaderboard.Top(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": mapSlice(standings, func(st domain.Standing) standingJSON {
			return standingJSON{
				Rank:       st.Rank,
				EmployeeID: st.EmployeeID,
				Name:       st.Name,
				Currency:   st.Currency.StringFixed(2),
				Badge:      st.Badge,
			}
		}),
	})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	page := pageParam(r)

	var (
		items []domain.Project
		total int64
		err   error
	)
	switch {
	case p.IsNGO():
		items, total, err = s.opts.Projects.ListForNGO(r.Context(), *p.NGO, page)
	case p.IsEmployee():
		items, total, err = s.opts.Projects.ListForEmployee(r.Context(), p.Employee.ID, page)
	default:
		err = domain.ErrForbidden
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(mapSlice(items, toProjectJSON), page, total))
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if !p.IsNGO() {
		s.fail(w, r, domain.ErrForbidden)
		return
	}

	var req projectRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	project, err := s.opts.Projects.Create(r.Context(), *p.NGO, req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectJSON(project))
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view, err := s.opts.Projects.View(r.Context(), p, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectViewJSON(view, !p.IsNGO()))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if !p.IsNGO() {
		s.fail(w, r, domain.ErrForbidden)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req projectRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	project, err := s.opts.Projects.Update(r.Context(), *p.NGO, id, req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectJSON(project))
}

// handleJoinProject lets an employee join, or an NGO enroll an employee in
// one of its own projects.
func (s *Server) handleJoinProject(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var employeeID int64
	switch {
	case p.IsNGO():
		var req enrollRequest
		if err := decode(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
		project, err := s.opts.Projects.Get(r.Context(), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if project.NGOID != p.NGO.ID {
			s.fail(w, r, domain.ErrForbidden)
			return
		}
		employeeID = req.EmployeeID
	case p.IsEmployee():
		employeeID = p.Employee.ID
	default:
		s.fail(w, r, domain.ErrForbidden)
		return
	}

	res, err := s.opts.Projects.Join(r.Context(), id, employeeID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if res.Status == domain.JoinJoined {
		status = http.StatusCreated
	}
	writeJSON(w, status, map[string]any{
		"status": res.Status,
		"state":  res.State,
	})
}

func (s *Server) handleMarkDone(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if !p.IsEmployee() {
		s.fail(w, r, domain.ErrForbidden)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.opts.Projects.MarkDone(r.Context(), id, p.Employee.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         res.Status,
		"points_awarded": res.PointsAwarded,
		"points_balance": res.PointsBalance,
	})
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	page := pageParam(r)

	var (
		items []domain.Activity
		total int64
		err   error
	)
	switch {
	case p.IsNGO():
		items, total, err = s.opts.Activities.ListForNGO(r.Context(), *p.NGO, page)
	case p.IsEmployee():
		items, total, err = s.opts.Activities.ListActive(r.Context(), page)
	default:
		err = domain.ErrForbidden
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPage(mapSlice(items, toActivityJSON), page, total))
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if !p.IsNGO() {
		s.fail(w, r, domain.ErrForbidden)
		return
	}

	var req activityRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	activity, err := s.opts.Activities.Create(r.Context(), *p.NGO, req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActivityJSON(activity))
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	activity, err := s.opts.Activities.View(r.Context(), p, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityJSON(activity))
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if !p.IsNGO() {
		s.fail(w, r, domain.ErrForbidden)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req activityRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	activity, err := s.opts.Activities.Update(r.Context(), *p.NGO, id, req.input())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityJSON(activity))
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	if !p.IsEmployee() {
		s.fail(w, r, domain.ErrForbidden)
		return
	}
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.opts.Activities.Purchase(r.Context(), p.Employee.ID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"purchase":         toPurchaseJSON(res.Purchase),
		"points_balance":   res.PointsBalance,
		"currency_balance": res.CurrencyBalance.StringFixed(2),
	})
}
