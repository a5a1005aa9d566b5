package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/internal/domain/repository"
)

var (
	_ repository.CounterRepository      = (*counterRepo)(nil)
	_ repository.UserRepository         = (*userRepo)(nil)
	_ repository.ProjectRepository      = (*projectRepo)(nil)
	_ repository.TaskRepository         = (*taskRepo)(nil)
	_ repository.CommentRepository      = (*commentRepo)(nil)
	_ repository.HistoryRepository      = (*historyRepo)(nil)
	_ repository.NotificationRepository = (*notificationRepo)(nil)
)

// ── Counters ──────────────────────────────────────────────────────────────────

type counterRepo struct{ scope }

func (r *counterRepo) Next(_ context.Context, collection string) (int64, error) {
	defer r.lock()()
	if err := r.fault(OpCounterNext); err != nil {
		return 0, err
	}
	r.s.state.counters[collection]++
	return r.s.state.counters[collection], nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

type userRepo struct{ scope }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	defer r.lock()()
	for _, u := range r.s.state.users {
		if u.Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.state.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	defer r.lock()()
	u, ok := r.s.state.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	defer r.lock()()
	for _, u := range r.s.state.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) List(_ context.Context) ([]*entity.User, error) {
	defer r.lock()()
	list := make([]*entity.User, 0, len(r.s.state.users))
	for _, u := range r.s.state.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return list, nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	defer r.lock()()
	if _, ok := r.s.state.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.state.users[user.ID] = *user
	return nil
}

func (r *userRepo) Count(_ context.Context) (int, error) {
	defer r.lock()()
	return len(r.s.state.users), nil
}

// ── Projects ──────────────────────────────────────────────────────────────────

type projectRepo struct{ scope }

func (r *projectRepo) Create(_ context.Context, p *entity.Project) error {
	defer r.lock()()
	r.s.state.projects[p.ID] = *p
	return nil
}

func (r *projectRepo) GetForOwner(_ context.Context, id, ownerID string) (*entity.Project, error) {
	defer r.lock()()
	p, ok := r.s.state.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	return &p, nil
}

func (r *projectRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Project, error) {
	defer r.lock()()
	var list []*entity.Project
	for _, p := range r.s.state.projects {
		if p.OwnerID == ownerID {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
	return list, nil
}

func (r *projectRepo) Update(_ context.Context, p *entity.Project) error {
	defer r.lock()()
	cur, ok := r.s.state.projects[p.ID]
	if !ok || cur.OwnerID != p.OwnerID {
		return domain.ErrNotFound
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.UpdatedAt = p.UpdatedAt
	r.s.state.projects[p.ID] = cur
	return nil
}

func (r *projectRepo) Delete(_ context.Context, id, ownerID string) error {
	defer r.lock()()
	cur, ok := r.s.state.projects[id]
	if !ok || cur.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.s.state.projects, id)
	return nil
}

// ── Tasks ─────────────────────────────────────────────────────────────────────

type taskRepo struct{ scope }

func (r *taskRepo) Create(_ context.Context, t *entity.Task) error {
	defer r.lock()()
	if err := r.fault(OpTaskCreate); err != nil {
		return err
	}
	r.s.state.tasks[t.ID] = copyTask(*t)
	return nil
}

func (r *taskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	defer r.lock()()
	t, ok := r.s.state.tasks[id]
	if !ok {
		return nil, nil
	}
	t = copyTask(t)
	return &t, nil
}

func (r *taskRepo) GetForOwner(_ context.Context, id, ownerID string) (*entity.Task, error) {
	defer r.lock()()
	t, ok := r.s.state.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, nil
	}
	t = copyTask(t)
	return &t, nil
}

func (r *taskRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Task, error) {
	defer r.lock()()
	var list []*entity.Task
	for _, t := range r.s.state.tasks {
		if t.OwnerID == ownerID {
			t := copyTask(t)
			list = append(list, &t)
		}
	}
	sortTasks(list)
	return list, nil
}

func (r *taskRepo) Update(_ context.Context, t *entity.Task) error {
	defer r.lock()()
	if err := r.fault(OpTaskUpdate); err != nil {
		return err
	}
	cur, ok := r.s.state.tasks[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return domain.ErrNotFound
	}
	next := copyTask(*t)
	next.Number = cur.Number
	next.CreatedAt = cur.CreatedAt
	r.s.state.tasks[t.ID] = next
	return nil
}

func (r *taskRepo) Delete(_ context.Context, id, ownerID string) error {
	defer r.lock()()
	if err := r.fault(OpTaskDelete); err != nil {
		return err
	}
	cur, ok := r.s.state.tasks[id]
	if !ok || cur.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.s.state.tasks, id)
	return nil
}

func (r *taskRepo) ClearProject(_ context.Context, projectID, ownerID string) error {
	defer r.lock()()
	for id, t := range r.s.state.tasks {
		if t.OwnerID == ownerID && t.ProjectID != nil && *t.ProjectID == projectID {
			t.ProjectID = nil
			r.s.state.tasks[id] = t
		}
	}
	return nil
}

// ── Comments ──────────────────────────────────────────────────────────────────

type commentRepo struct{ scope }

func (r *commentRepo) Create(_ context.Context, c *entity.Comment) error {
	defer r.lock()()
	r.s.state.comments = append(r.s.state.comments, *c)
	return nil
}

func (r *commentRepo) ListByTask(_ context.Context, taskID string) ([]*entity.Comment, error) {
	defer r.lock()()
	var list []*entity.Comment
	for _, c := range r.s.state.comments {
		if c.TaskID == taskID {
			c := c
			list = append(list, &c)
		}
	}
	return list, nil
}

// ── History ───────────────────────────────────────────────────────────────────

type historyRepo struct{ scope }

func (r *historyRepo) Append(_ context.Context, e *entity.History) error {
	defer r.lock()()
	if err := r.fault(OpHistoryAppend); err != nil {
		return err
	}
	r.s.state.history = append(r.s.state.history, *e)
	return nil
}

func (r *historyRepo) ListByTask(_ context.Context, taskID, actorID string) ([]*entity.History, error) {
	defer r.lock()()
	var list []*entity.History
	for _, e := range r.s.state.history {
		if e.TaskID == taskID && (actorID == "" || e.UserID == actorID) {
			e := e
			list = append(list, &e)
		}
	}
	return list, nil
}

func (r *historyRepo) ListRecent(_ context.Context, actorID string, limit int) ([]*entity.History, error) {
	defer r.lock()()
	var list []*entity.History
	for i := len(r.s.state.history) - 1; i >= 0 && len(list) < limit; i-- {
		e := r.s.state.history[i]
		if actorID == "" || e.UserID == actorID {
			list = append(list, &e)
		}
	}
	return list, nil
}

// ── Notifications ─────────────────────────────────────────────────────────────

type notificationRepo struct{ scope }

func (r *notificationRepo) Create(_ context.Context, n *entity.Notification) error {
	defer r.lock()()
	if err := r.fault(OpNotificationCreate); err != nil {
		return err
	}
	r.s.state.notifications = append(r.s.state.notifications, *n)
	return nil
}

func (r *notificationRepo) ListByRecipient(_ context.Context, recipient string, unreadOnly bool) ([]*entity.Notification, error) {
	defer r.lock()()
	var list []*entity.Notification
	for i := len(r.s.state.notifications) - 1; i >= 0; i-- {
		n := r.s.state.notifications[i]
		if n.Recipient == recipient && (!unreadOnly || !n.Read) {
			list = append(list, &n)
		}
	}
	return list, nil
}

func (r *notificationRepo) MarkAllRead(_ context.Context, recipient string) (int64, error) {
	defer r.lock()()
	var changed int64
	for i := range r.s.state.notifications {
		n := &r.s.state.notifications[i]
		if n.Recipient == recipient && !n.Read {
			n.Read = true
			changed++
		}
	}
	return changed, nil
}
