// Package memory is an in-process Store with the same transactional contract
// as the Postgres store: ExecTx is serialized against every other call and
// either publishes all of its writes or none of them. Missing rows surface as
// pgx.ErrNoRows and constraint violations as *pgconn.PgError, so services
// cannot tell the two stores apart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/set-night/o2ledger/internal/repository"
	"github.com/set-night/o2ledger/internal/repository/sqlc"
)

var _ repository.Store = (*Store)(nil)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

type participantKey struct {
	projectID  int64
	employeeID int64
}

type state struct {
	seq          int64
	ngos         map[int64]sqlc.Ngo
	employees    map[int64]sqlc.Employee
	projects     map[int64]sqlc.Project
	participants map[participantKey]sqlc.ProjectParticipant
	activities   map[int64]sqlc.Activity
	purchases    []sqlc.Purchase
}

func newState() *state {
	return &state{
		ngos:         make(map[int64]sqlc.Ngo),
		employees:    make(map[int64]sqlc.Employee),
		projects:     make(map[int64]sqlc.Project),
		participants: make(map[participantKey]sqlc.ProjectParticipant),
		activities:   make(map[int64]sqlc.Activity),
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:          s.seq,
		ngos:         make(map[int64]sqlc.Ngo, len(s.ngos)),
		employees:    make(map[int64]sqlc.Employee, len(s.employees)),
		projects:     make(map[int64]sqlc.Project, len(s.projects)),
		participants: make(map[participantKey]sqlc.ProjectParticipant, len(s.participants)),
		activities:   make(map[int64]sqlc.Activity, len(s.activities)),
		purchases:    append([]sqlc.Purchase(nil), s.purchases...),
	}
	for k, v := range s.ngos {
		c.ngos[k] = v
	}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	for k, v := range s.projects {
		c.projects[k] = v
	}
	for k, v := range s.participants {
		c.participants[k] = v
	}
	for k, v := range s.activities {
		c.activities[k] = v
	}
	return c
}

func (s *state) nextID() int64 {
	s.seq++
	return s.seq
}

// Store implements repository.Store in memory.
type Store struct {
	*querier

	mu       sync.Mutex
	failures map[string]error
}

func New() *Store {
	s := &Store{failures: make(map[string]error)}
	s.querier = &querier{st: newState(), mu: &s.mu, now: time.Now, store: s}
	return s
}

// SetClock replaces the time source used for timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.querier.now = now
}

// FailOn makes the named query return err until cleared with a nil err.
func (s *Store) FailOn(query string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, query)
		return
	}
	s.failures[query] = err
}

func (s *Store) ExecTx(ctx context.Context, fn func(q sqlc.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := &querier{st: s.querier.st.clone(), now: s.querier.now, store: s}
	if err := fn(work); err != nil {
		return err
	}
	s.querier.st = work.st
	return nil
}

// AddNGO seeds an NGO. NGOs are owned by the surrounding system.
func (s *Store) AddNGO(userID int64, name string) sqlc.Ngo {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := sqlc.Ngo{
		ID:        s.st.nextID(),
		UserID:    userID,
		Name:      name,
		Active:    true,
		CreatedAt: ts(s.now()),
	}
	s.st.ngos[n.ID] = n
	return n
}

// AddEmployee seeds an employee. Employees are owned by the HR system.
func (s *Store) AddEmployee(userID int64, name string, points int64, currency decimal.Decimal) sqlc.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := ts(s.now())
	e := sqlc.Employee{
		ID:              s.st.nextID(),
		UserID:          userID,
		Name:            name,
		PointsBalance:   points,
		CurrencyBalance: currency,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.st.employees[e.ID] = e
	return e
}

// PurchaseCount returns the number of receipts ever written.
func (s *Store) PurchaseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.purchases)
}

// querier serves sqlc.Querier over a state. Outside a transaction mu guards
// each call; inside ExecTx the store lock is already held and mu is nil.
type querier struct {
	st    *state
	mu    *sync.Mutex
	now   func() time.Time
	store *Store
}

func (q *querier) lock() func() {
	if q.mu == nil {
		return func() {}
	}
	q.mu.Lock()
	return q.mu.Unlock
}

func (q *querier) fail(query string) error {
	return q.store.failures[query]
}

func ts(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint, Message: constraint}
}

func page[T any](items []T, limit, offset int32) []T {
	if offset < 0 {
		offset = 0
	}
	if int(offset) >= len(items) {
		return nil
	}
	end := len(items)
	if limit >= 0 && int(offset)+int(limit) < end {
		end = int(offset) + int(limit)
	}
	return items[offset:end]
}

func (q *querier) GetEmployee(ctx context.Context, id int64) (sqlc.Employee, error) {
	defer q.lock()()
	e, ok := q.st.employees[id]
	if !ok {
		return sqlc.Employee{}, pgx.ErrNoRows
	}
	return e, nil
}

func (q *querier) GetEmployeeForUpdate(ctx context.Context, id int64) (sqlc.Employee, error) {
	return q.GetEmployee(ctx, id)
}

func (q *querier) GetEmployeeByUserID(ctx context.Context, userID int64) (sqlc.Employee, error) {
	defer q.lock()()
	for _, e := range q.st.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return sqlc.Employee{}, pgx.ErrNoRows
}

func (q *querier) GetEmployeeByTelegramID(ctx context.Context, telegramID int64) (sqlc.Employee, error) {
	defer q.lock()()
	for _, e := range q.st.employees {
		if e.TelegramID != nil && *e.TelegramID == telegramID {
			return e, nil
		}
	}
	return sqlc.Employee{}, pgx.ErrNoRows
}

func (q *querier) ListEmployees(ctx context.Context) ([]sqlc.Employee, error) {
	defer q.lock()()
	out := make([]sqlc.Employee, 0, len(q.st.employees))
	for _, e := range q.st.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (q *querier) AddEmployeePoints(ctx context.Context, arg sqlc.AddEmployeePointsParams) (sqlc.Employee, error) {
	defer q.lock()()
	if err := q.fail("AddEmployeePoints"); err != nil {
		return sqlc.Employee{}, err
	}
	e, ok := q.st.employees[arg.ID]
	if !ok {
		return sqlc.Employee{}, pgx.ErrNoRows
	}
	if e.PointsBalance+arg.Points < 0 {
		return sqlc.Employee{}, pgError(codeCheckViolation, "employees_points_balance_check")
	}
	e.PointsBalance += arg.Points
	e.UpdatedAt = ts(q.now())
	q.st.employees[e.ID] = e
	return e, nil
}

func (q *querier) DebitEmployeePoints(ctx context.Context, arg sqlc.DebitEmployeePointsParams) (sqlc.Employee, error) {
	defer q.lock()()
	if err := q.fail("DebitEmployeePoints"); err != nil {
		return sqlc.Employee{}, err
	}
	e, ok := q.st.employees[arg.ID]
	if !ok || e.PointsBalance < arg.Points {
		return sqlc.Employee{}, pgx.ErrNoRows
	}
	e.PointsBalance -= arg.Points
	e.UpdatedAt = ts(q.now())
	q.st.employees[e.ID] = e
	return e, nil
}

func (q *querier) AddEmployeeCurrency(ctx context.Context, arg sqlc.AddEmployeeCurrencyParams) (sqlc.Employee, error) {
	defer q.lock()()
	if err := q.fail("AddEmployeeCurrency"); err != nil {
		return sqlc.Employee{}, err
	}
	e, ok := q.st.employees[arg.ID]
	if !ok {
		return sqlc.Employee{}, pgx.ErrNoRows
	}
	next := e.CurrencyBalance.Add(arg.Amount)
	if next.IsNegative() {
		return sqlc.Employee{}, pgError(codeCheckViolation, "employees_currency_balance_check")
	}
	e.CurrencyBalance = next.Round(2)
	e.UpdatedAt = ts(q.now())
	q.st.employees[e.ID] = e
	return e, nil
}

func (q *querier) SetEmployeeTelegramID(ctx context.Context, arg sqlc.SetEmployeeTelegramIDParams) (sqlc.Employee, error) {
	defer q.lock()()
	e, ok := q.st.employees[arg.ID]
	if !ok {
		return sqlc.Employee{}, pgx.ErrNoRows
	}
	if arg.TelegramID != nil {
		for _, other := range q.st.employees {
			if other.ID != e.ID && other.TelegramID != nil && *other.TelegramID == *arg.TelegramID {
				return sqlc.Employee{}, pgError(codeUniqueViolation, "employees_telegram_id_key")
			}
		}
		id := *arg.TelegramID
		e.TelegramID = &id
	} else {
		e.TelegramID = nil
	}
	e.UpdatedAt = ts(q.now())
	q.st.employees[e.ID] = e
	return e, nil
}

func (q *querier) GetNGO(ctx context.Context, id int64) (sqlc.Ngo, error) {
	defer q.lock()()
	n, ok := q.st.ngos[id]
	if !ok {
		return sqlc.Ngo{}, pgx.ErrNoRows
	}
	return n, nil
}

func (q *querier) GetNGOByUserID(ctx context.Context, userID int64) (sqlc.Ngo, error) {
	defer q.lock()()
	for _, n := range q.st.ngos {
		if n.UserID == userID && n.Active {
			return n, nil
		}
	}
	return sqlc.Ngo{}, pgx.ErrNoRows
}

func (q *querier) CreateProject(ctx context.Context, arg sqlc.CreateProjectParams) (sqlc.Project, error) {
	defer q.lock()()
	if err := q.fail("CreateProject"); err != nil {
		return sqlc.Project{}, err
	}
	if _, ok := q.st.ngos[arg.NgoID]; !ok {
		return sqlc.Project{}, pgError(codeForeignKeyViolation, "projects_ngo_id_fkey")
	}
	now := ts(q.now())
	p := sqlc.Project{
		ID:           q.st.nextID(),
		NgoID:        arg.NgoID,
		Name:         arg.Name,
		Description:  arg.Description,
		DateStart:    arg.DateStart,
		DateEnd:      arg.DateEnd,
		RewardPoints: arg.RewardPoints,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	q.st.projects[p.ID] = p
	return p, nil
}

func (q *querier) UpdateProject(ctx context.Context, arg sqlc.UpdateProjectParams) (sqlc.Project, error) {
	defer q.lock()()
	p, ok := q.st.projects[arg.ID]
	if !ok {
		return sqlc.Project{}, pgx.ErrNoRows
	}
	p.Name = arg.Name
	p.Description = arg.Description
	p.DateStart = arg.DateStart
	p.DateEnd = arg.DateEnd
	p.RewardPoints = arg.RewardPoints
	p.UpdatedAt = ts(q.now())
	q.st.projects[p.ID] = p
	return p, nil
}

func (q *querier) GetProject(ctx context.Context, id int64) (sqlc.Project, error) {
	defer q.lock()()
	p, ok := q.st.projects[id]
	if !ok {
		return sqlc.Project{}, pgx.ErrNoRows
	}
	return p, nil
}

func (q *querier) projectsWhere(keep func(sqlc.Project) bool) []sqlc.Project {
	var out []sqlc.Project
	for _, p := range q.st.projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (q *querier) ListProjectsByNGO(ctx context.Context, arg sqlc.ListProjectsByNGOParams) ([]sqlc.Project, error) {
	defer q.lock()()
	all := q.projectsWhere(func(p sqlc.Project) bool { return p.NgoID == arg.NgoID })
	return page(all, arg.Limit, arg.Offset), nil
}

func (q *querier) CountProjectsByNGO(ctx context.Context, ngoID int64) (int64, error) {
	defer q.lock()()
	return int64(len(q.projectsWhere(func(p sqlc.Project) bool { return p.NgoID == ngoID }))), nil
}

func (q *querier) ListProjectsByEmployee(ctx context.Context, arg sqlc.ListProjectsByEmployeeParams) ([]sqlc.Project, error) {
	defer q.lock()()
	all := q.projectsWhere(func(p sqlc.Project) bool {
		_, ok := q.st.participants[participantKey{p.ID, arg.EmployeeID}]
		return ok
	})
	return page(all, arg.Limit, arg.Offset), nil
}

func (q *querier) CountProjectsByEmployee(ctx context.Context, employeeID int64) (int64, error) {
	defer q.lock()()
	var n int64
	for k := range q.st.participants {
		if k.employeeID == employeeID {
			n++
		}
	}
	return n, nil
}

func (q *querier) AddProjectParticipant(ctx context.Context, arg sqlc.AddProjectParticipantParams) (sqlc.ProjectParticipant, error) {
	defer q.lock()()
	if err := q.fail("AddProjectParticipant"); err != nil {
		return sqlc.ProjectParticipant{}, err
	}
	if _, ok := q.st.projects[arg.ProjectID]; !ok {
		return sqlc.ProjectParticipant{}, pgError(codeForeignKeyViolation, "project_participants_project_id_fkey")
	}
	if _, ok := q.st.employees[arg.EmployeeID]; !ok {
		return sqlc.ProjectParticipant{}, pgError(codeForeignKeyViolation, "project_participants_employee_id_fkey")
	}
	key := participantKey{arg.ProjectID, arg.EmployeeID}
	if _, exists := q.st.participants[key]; exists {
		return sqlc.ProjectParticipant{}, pgx.ErrNoRows
	}
	pp := sqlc.ProjectParticipant{
		ProjectID:  arg.ProjectID,
		EmployeeID: arg.EmployeeID,
		JoinedAt:   ts(q.now()),
	}
	q.st.participants[key] = pp
	return pp, nil
}

func (q *querier) GetProjectParticipant(ctx context.Context, arg sqlc.GetProjectParticipantParams) (sqlc.ProjectParticipant, error) {
	defer q.lock()()
	pp, ok := q.st.participants[participantKey{arg.ProjectID, arg.EmployeeID}]
	if !ok {
		return sqlc.ProjectParticipant{}, pgx.ErrNoRows
	}
	return pp, nil
}

func (q *querier) CompleteProjectParticipant(ctx context.Context, arg sqlc.CompleteProjectParticipantParams) (sqlc.ProjectParticipant, error) {
	defer q.lock()()
	if err := q.fail("CompleteProjectParticipant"); err != nil {
		return sqlc.ProjectParticipant{}, err
	}
	key := participantKey{arg.ProjectID, arg.EmployeeID}
	pp, ok := q.st.participants[key]
	if !ok || pp.CompletedAt.Valid {
		return sqlc.ProjectParticipant{}, pgx.ErrNoRows
	}
	pp.CompletedAt = ts(q.now())
	q.st.participants[key] = pp
	return pp, nil
}

func (q *querier) GetProjectStats(ctx context.Context, projectID int64) (sqlc.GetProjectStatsRow, error) {
	defer q.lock()()
	var row sqlc.GetProjectStatsRow
	for k, pp := range q.st.participants {
		if k.projectID != projectID {
			continue
		}
		row.Participants++
		if pp.CompletedAt.Valid {
			row.Completions++
		}
	}
	return row, nil
}

func (q *querier) CreateActivity(ctx context.Context, arg sqlc.CreateActivityParams) (sqlc.Activity, error) {
	defer q.lock()()
	if err := q.fail("CreateActivity"); err != nil {
		return sqlc.Activity{}, err
	}
	if _, ok := q.st.ngos[arg.NgoID]; !ok {
		return sqlc.Activity{}, pgError(codeForeignKeyViolation, "activities_ngo_id_fkey")
	}
	now := ts(q.now())
	a := sqlc.Activity{
		ID:             q.st.nextID(),
		NgoID:          arg.NgoID,
		Name:           arg.Name,
		Description:    arg.Description,
		PointsCost:     arg.PointsCost,
		CurrencyPayout: arg.CurrencyPayout.Round(2),
		Active:         arg.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	q.st.activities[a.ID] = a
	return a, nil
}

func (q *querier) UpdateActivity(ctx context.Context, arg sqlc.UpdateActivityParams) (sqlc.Activity, error) {
	defer q.lock()()
	a, ok := q.st.activities[arg.ID]
	if !ok {
		return sqlc.Activity{}, pgx.ErrNoRows
	}
	a.Name = arg.Name
	a.Description = arg.Description
	a.PointsCost = arg.PointsCost
	a.CurrencyPayout = arg.CurrencyPayout.Round(2)
	a.Active = arg.Active
	a.UpdatedAt = ts(q.now())
	q.st.activities[a.ID] = a
	return a, nil
}

func (q *querier) GetActivity(ctx context.Context, id int64) (sqlc.Activity, error) {
	defer q.lock()()
	a, ok := q.st.activities[id]
	if !ok {
		return sqlc.Activity{}, pgx.ErrNoRows
	}
	return a, nil
}

func (q *querier) activitiesWhere(keep func(sqlc.Activity) bool) []sqlc.Activity {
	var out []sqlc.Activity
	for _, a := range q.st.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (q *querier) ListActivitiesByNGO(ctx context.Context, arg sqlc.ListActivitiesByNGOParams) ([]sqlc.Activity, error) {
	defer q.lock()()
	all := q.activitiesWhere(func(a sqlc.Activity) bool { return a.NgoID == arg.NgoID })
	return page(all, arg.Limit, arg.Offset), nil
}

func (q *querier) CountActivitiesByNGO(ctx context.Context, ngoID int64) (int64, error) {
	defer q.lock()()
	return int64(len(q.activitiesWhere(func(a sqlc.Activity) bool { return a.NgoID == ngoID }))), nil
}

func (q *querier) ListActiveActivities(ctx context.Context, arg sqlc.ListActiveActivitiesParams) ([]sqlc.Activity, error) {
	defer q.lock()()
	all := q.activitiesWhere(func(a sqlc.Activity) bool { return a.Active })
	return page(all, arg.Limit, arg.Offset), nil
}

func (q *querier) CountActiveActivities(ctx context.Context) (int64, error) {
	defer q.lock()()
	return int64(len(q.activitiesWhere(func(a sqlc.Activity) bool { return a.Active }))), nil
}

func (q *querier) CreatePurchase(ctx context.Context, arg sqlc.CreatePurchaseParams) (sqlc.Purchase, error) {
	defer q.lock()()
	if err := q.fail("CreatePurchase"); err != nil {
		return sqlc.Purchase{}, err
	}
	if _, ok := q.st.activities[arg.ActivityID]; !ok {
		return sqlc.Purchase{}, pgError(codeForeignKeyViolation, "purchases_activity_id_fkey")
	}
	if _, ok := q.st.employees[arg.EmployeeID]; !ok {
		return sqlc.Purchase{}, pgError(codeForeignKeyViolation, "purchases_employee_id_fkey")
	}
	for _, p := range q.st.purchases {
		if p.Receipt == arg.Receipt {
			return sqlc.Purchase{}, pgError(codeUniqueViolation, "purchases_receipt_key")
		}
	}
	p := sqlc.Purchase{
		ID:               q.st.nextID(),
		Receipt:          arg.Receipt,
		ActivityID:       arg.ActivityID,
		EmployeeID:       arg.EmployeeID,
		NgoID:            arg.NgoID,
		PointsPaid:       arg.PointsPaid,
		CurrencyReceived: arg.CurrencyReceived.Round(2),
		PurchasedAt:      ts(q.now()),
	}
	q.st.purchases = append(q.st.purchases, p)
	return p, nil
}

func (q *querier) ListPurchasesByEmployee(ctx context.Context, arg sqlc.ListPurchasesByEmployeeParams) ([]sqlc.Purchase, error) {
	defer q.lock()()
	var out []sqlc.Purchase
	for i := len(q.st.purchases) - 1; i >= 0; i-- {
		if p := q.st.purchases[i]; p.EmployeeID == arg.EmployeeID {
			out = append(out, p)
		}
	}
	return page(out, arg.Limit, arg.Offset), nil
}

func (q *querier) CountPurchasesByEmployee(ctx context.Context, employeeID int64) (int64, error) {
	defer q.lock()()
	var n int64
	for _, p := range q.st.purchases {
		if p.EmployeeID == employeeID {
			n++
		}
	}
	return n, nil
}

func (q *querier) CountPurchasesByActivity(ctx context.Context, activityID int64) (int64, error) {
	defer q.lock()()
	var n int64
	for _, p := range q.st.purchases {
		if p.ActivityID == activityID {
			n++
		}
	}
	return n, nil
}
