package router

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdesk/internal/apperr"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
)

// store is an in-memory stand-in for the postgres layer. It mirrors the
// transactional contract: a mutation that carries audit entries either
// applies everything or nothing (failLogs simulates a log-insert failure
// and must leave the primary write unapplied).
type store struct {
	mu sync.Mutex

	users    []*models.User
	hashes   map[string]string
	tasks    []*models.Task
	logs     []models.TaskLog
	comments []models.TaskComment
	clients  []*models.Client
	requests []*models.ClientRequest
	depts    []*models.Department

	failLogs bool
	clock    time.Time
}

func newStore() *store {
	return &store{hashes: map[string]string{}, clock: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

// tick returns a strictly increasing timestamp so ordering is stable.
func (s *store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *store) repos() Repos {
	return Repos{
		Tasks:       &fakeTasks{s},
		Users:       &fakeUsers{s},
		Clients:     &fakeClients{s},
		Requests:    &fakeRequests{s},
		Departments: &fakeDepts{s},
	}
}

func (s *store) addUser(u models.User, hash string) *models.User {
	u.ID = uuid.NewString()
	u.Active = true
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	s.users = append(s.users, &u)
	s.hashes[u.ID] = hash
	return s.users[len(s.users)-1]
}

func (s *store) addClient(c models.Client) *models.Client {
	c.ID = uuid.NewString()
	c.CreatedAt = s.tick()
	s.clients = append(s.clients, &c)
	return s.clients[len(s.clients)-1]
}

func (s *store) addRequest(cr models.ClientRequest) *models.ClientRequest {
	cr.ID = uuid.NewString()
	cr.SubmittedAt = s.tick()
	s.requests = append(s.requests, &cr)
	return s.requests[len(s.requests)-1]
}

func (s *store) addTask(t models.Task) *models.Task {
	t.ID = uuid.NewString()
	t.CreatedAt = s.tick()
	s.tasks = append(s.tasks, &t)
	return s.tasks[len(s.tasks)-1]
}

func (s *store) userByID(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *store) taskByID(id string) *models.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *store) taskLogs(taskID string) []models.TaskLog {
	var out []models.TaskLog
	for _, l := range s.logs {
		if l.TaskID == taskID {
			out = append(out, l)
		}
	}
	return out
}

func (s *store) appendLog(l models.TaskLog) error {
	if s.failLogs {
		return errors.New("log insert failed")
	}
	l.ID = uuid.NewString()
	l.CreatedAt = s.tick()
	if u := s.userByID(l.UserID); u != nil {
		l.UserName = u.DisplayName()
	}
	s.logs = append(s.logs, l)
	return nil
}

func (s *store) decorate(t models.Task) models.Task {
	if u := s.userByID(t.Assignee); u != nil {
		t.AssigneeName = u.DisplayName()
	} else {
		t.AssigneeName = ""
	}
	var comments []models.TaskComment
	for _, c := range s.comments {
		if c.TaskID == t.ID {
			comments = append(comments, c)
		}
	}
	t.Comments = comments
	return t
}

// ---------------------------------------------------------------------------

type fakeTasks struct{ s *store }

var _ repository.TaskRepository = (*fakeTasks)(nil)

func (f *fakeTasks) List(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Task
	for i := len(f.s.tasks) - 1; i >= 0; i-- {
		t := f.s.tasks[i]
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Assignee != "" && t.Assignee != filter.Assignee {
			continue
		}
		if filter.Creator != "" && t.CreatedBy != filter.Creator {
			continue
		}
		out = append(out, f.s.decorate(*t))
	}
	return out, nil
}

func (f *fakeTasks) Get(ctx context.Context, id string) (*models.Task, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	t := f.s.taskByID(id)
	if t == nil {
		return nil, nil
	}
	cp := f.s.decorate(*t)
	return &cp, nil
}

func (f *fakeTasks) Create(ctx context.Context, t *models.Task, log *models.TaskLog) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failLogs && log != nil {
		return errors.New("log insert failed")
	}
	created := f.s.addTask(*t)
	if log != nil {
		log.TaskID = created.ID
		if err := f.s.appendLog(*log); err != nil {
			return err
		}
	}
	*t = f.s.decorate(*created)
	return nil
}

func (f *fakeTasks) Update(ctx context.Context, t *models.Task, logs []models.TaskLog) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	existing := f.s.taskByID(t.ID)
	if existing == nil {
		return apperr.NotFoundf("task %s", t.ID)
	}
	// all-or-nothing: refuse before touching state
	if f.s.failLogs && len(logs) > 0 {
		return errors.New("log insert failed")
	}
	for i := range logs {
		logs[i].TaskID = t.ID
		if err := f.s.appendLog(logs[i]); err != nil {
			return err
		}
	}
	keep := existing.CreatedAt
	*existing = *t
	existing.CreatedAt = keep
	return nil
}

func (f *fakeTasks) Delete(ctx context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	idx := -1
	for i, t := range f.s.tasks {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFoundf("task %s", id)
	}
	f.s.tasks = append(f.s.tasks[:idx], f.s.tasks[idx+1:]...)
	var logs []models.TaskLog
	for _, l := range f.s.logs {
		if l.TaskID != id {
			logs = append(logs, l)
		}
	}
	f.s.logs = logs
	var comments []models.TaskComment
	for _, c := range f.s.comments {
		if c.TaskID != id {
			comments = append(comments, c)
		}
	}
	f.s.comments = comments
	return nil
}

func (f *fakeTasks) AddComment(ctx context.Context, c *models.TaskComment, log *models.TaskLog) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.failLogs && log != nil {
		return errors.New("log insert failed")
	}
	c.ID = uuid.NewString()
	c.CreatedAt = f.s.tick()
	if u := f.s.userByID(c.UserID); u != nil {
		c.UserName = u.DisplayName()
	}
	f.s.comments = append(f.s.comments, *c)
	if log != nil {
		log.TaskID = c.TaskID
		if err := f.s.appendLog(*log); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTasks) ListComments(ctx context.Context, taskID string) ([]models.TaskComment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.TaskComment
	for _, c := range f.s.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeTasks) ListLogs(ctx context.Context, filter repository.LogFilter) ([]models.TaskLog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	action := filter.Action
	if action == models.LogTaskAssigned {
		action = models.LogAssignmentChange
	}
	var out []models.TaskLog
	for _, l := range f.s.logs {
		if filter.TaskID != "" && l.TaskID != filter.TaskID {
			continue
		}
		if action != "" && l.Action != action {
			continue
		}
		out = append(out, l)
	}
	if !filter.Ascending {
		// newest first
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------

type fakeUsers struct{ s *store }

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(ctx context.Context, u *models.User, passwordHash string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, ex := range f.s.users {
		if ex.Username == u.Username {
			return apperr.Integrityf("users_username_key")
		}
	}
	*u = *f.s.addUser(*u, passwordHash)
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u := f.s.userByID(id)
	if u == nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == username {
			cp := *u
			return &cp, f.s.hashes[u.ID], nil
		}
	}
	return nil, "", nil
}

func (f *fakeUsers) List(ctx context.Context, role models.Role) ([]models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.User
	for _, u := range f.s.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Update(ctx context.Context, u *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	ex := f.s.userByID(u.ID)
	if ex == nil {
		return apperr.NotFoundf("user %s", u.ID)
	}
	*ex = *u
	ex.UpdatedAt = f.s.tick()
	return nil
}

func (f *fakeUsers) Delete(ctx context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	idx := -1
	for i, u := range f.s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFoundf("user %s", id)
	}
	// nullify references, keep dependent rows
	for _, t := range f.s.tasks {
		if t.CreatedBy == id {
			t.CreatedBy = ""
		}
		if t.Assignee == id {
			t.Assignee = ""
		}
	}
	for i := range f.s.logs {
		if f.s.logs[i].UserID == id {
			f.s.logs[i].UserID = ""
		}
	}
	for i := range f.s.comments {
		if f.s.comments[i].UserID == id {
			f.s.comments[i].UserID = ""
		}
	}
	for _, cr := range f.s.requests {
		if cr.ReviewedBy == id {
			cr.ReviewedBy = ""
		}
	}
	delete(f.s.hashes, id)
	f.s.users = append(f.s.users[:idx], f.s.users[idx+1:]...)
	return nil
}

// ---------------------------------------------------------------------------

type fakeClients struct{ s *store }

var _ repository.ClientRepository = (*fakeClients)(nil)

func (f *fakeClients) List(ctx context.Context) ([]models.Client, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Client
	for _, c := range f.s.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClients) Get(ctx context.Context, id string) (*models.Client, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.clients {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeClients) Create(ctx context.Context, c *models.Client) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	*c = *f.s.addClient(*c)
	return nil
}

func (f *fakeClients) Update(ctx context.Context, c *models.Client) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, ex := range f.s.clients {
		if ex.ID == c.ID {
			*ex = *c
			return nil
		}
	}
	return apperr.NotFoundf("client %s", c.ID)
}

func (f *fakeClients) Delete(ctx context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	idx := -1
	for i, c := range f.s.clients {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFoundf("client %s", id)
	}
	// cascade requests; tasks born from them lose the back-reference
	var kept []*models.ClientRequest
	for _, cr := range f.s.requests {
		if cr.ClientID != id {
			kept = append(kept, cr)
			continue
		}
		for _, t := range f.s.tasks {
			if t.RequestID == cr.ID {
				t.RequestID = ""
			}
		}
	}
	f.s.requests = kept
	f.s.clients = append(f.s.clients[:idx], f.s.clients[idx+1:]...)
	return nil
}

// ---------------------------------------------------------------------------

type fakeRequests struct{ s *store }

var _ repository.RequestRepository = (*fakeRequests)(nil)

func (f *fakeRequests) List(ctx context.Context, filter repository.RequestFilter) ([]models.ClientRequest, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.ClientRequest
	for _, cr := range f.s.requests {
		if filter.ClientID != "" && cr.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && cr.Status != filter.Status {
			continue
		}
		out = append(out, *cr)
	}
	return out, nil
}

func (f *fakeRequests) Get(ctx context.Context, id string) (*models.ClientRequest, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, cr := range f.s.requests {
		if cr.ID == id {
			cp := *cr
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRequests) Create(ctx context.Context, cr *models.ClientRequest) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	found := false
	for _, c := range f.s.clients {
		if c.ID == cr.ClientID {
			found = true
			break
		}
	}
	if !found {
		return apperr.Integrityf("client_requests_client_id_fkey")
	}
	*cr = *f.s.addRequest(*cr)
	return nil
}

func (f *fakeRequests) Update(ctx context.Context, cr *models.ClientRequest) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, ex := range f.s.requests {
		if ex.ID == cr.ID {
			*ex = *cr
			return nil
		}
	}
	return apperr.NotFoundf("client request %s", cr.ID)
}

func (f *fakeRequests) Delete(ctx context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	idx := -1
	for i, cr := range f.s.requests {
		if cr.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFoundf("client request %s", id)
	}
	for _, t := range f.s.tasks {
		if t.RequestID == id {
			t.RequestID = ""
		}
	}
	f.s.requests = append(f.s.requests[:idx], f.s.requests[idx+1:]...)
	return nil
}

func (f *fakeRequests) Convert(ctx context.Context, cr *models.ClientRequest, t *models.Task, log *models.TaskLog) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	ex := (*models.ClientRequest)(nil)
	for _, candidate := range f.s.requests {
		if candidate.ID == cr.ID {
			ex = candidate
			break
		}
	}
	if ex == nil {
		return apperr.NotFoundf("client request %s", cr.ID)
	}
	// one task per request, as the unique index enforces
	for _, existing := range f.s.tasks {
		if existing.RequestID == cr.ID {
			return apperr.Integrityf("tasks_request_id_key")
		}
	}
	t.RequestID = cr.ID
	created := f.s.addTask(*t)
	if log != nil {
		log.TaskID = created.ID
		if err := f.s.appendLog(*log); err != nil {
			return err
		}
	}
	ex.Status = models.RequestConverted
	ex.ReviewedBy = cr.ReviewedBy
	cr.Status = models.RequestConverted
	*t = *created
	return nil
}

// ---------------------------------------------------------------------------

type fakeDepts struct{ s *store }

var _ repository.DepartmentRepository = (*fakeDepts)(nil)

func (f *fakeDepts) List(ctx context.Context) ([]models.Department, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Department
	for _, d := range f.s.depts {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDepts) Get(ctx context.Context, id string) (*models.Department, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, d := range f.s.depts {
		if d.ID == id {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDepts) Create(ctx context.Context, d *models.Department) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	d.ID = uuid.NewString()
	d.CreatedAt = f.s.tick()
	cp := *d
	f.s.depts = append(f.s.depts, &cp)
	return nil
}

func (f *fakeDepts) Update(ctx context.Context, d *models.Department) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, ex := range f.s.depts {
		if ex.ID == d.ID {
			ex.Name = d.Name
			return nil
		}
	}
	return apperr.NotFoundf("department %s", d.ID)
}

func (f *fakeDepts) Delete(ctx context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i, d := range f.s.depts {
		if d.ID == id {
			f.s.depts = append(f.s.depts[:i], f.s.depts[i+1:]...)
			return nil
		}
	}
	return apperr.NotFoundf("department %s", id)
}
