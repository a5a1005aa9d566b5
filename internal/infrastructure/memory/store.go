// Package memory implementa todos los repositorios en memoria de proceso.
// Se usa con STORE_DRIVER=memory y como doble de prueba de los casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Tareas-api/internal/application/ports"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// Operaciones donde se puede inyectar un fallo (FailOn).
const (
	OpCounterNext        = "counters.next"
	OpTaskCreate         = "tasks.create"
	OpTaskUpdate         = "tasks.update"
	OpTaskDelete         = "tasks.delete"
	OpHistoryAppend      = "history.append"
	OpNotificationCreate = "notifications.create"
)

// Store guarda el estado completo bajo un único mutex.
// Run toma el mutex durante toda la unidad de trabajo y restaura una copia si fn falla.
type Store struct {
	mu     sync.Mutex
	state  *state
	faults map[string]error
}

type state struct {
	users         map[string]entity.User
	projects      map[string]entity.Project
	tasks         map[string]entity.Task
	comments      []entity.Comment
	history       []entity.History
	notifications []entity.Notification
	counters      map[string]int64
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		state: &state{
			users:    map[string]entity.User{},
			projects: map[string]entity.Project{},
			tasks:    map[string]entity.Task{},
			counters: map[string]int64{},
		},
		faults: map[string]error{},
	}
}

// Repos devuelve repositorios que bloquean el store en cada llamada.
func (s *Store) Repos() ports.Repos {
	return s.repos(false)
}

// Run ejecuta fn de forma exclusiva; si fn falla el estado vuelve a la copia previa.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state.clone()
	if err := fn(s.repos(true)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// FailOn hace que la próxima llamada a op devuelva err (una sola vez).
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) repos(locked bool) ports.Repos {
	sc := scope{s: s, locked: locked}
	return ports.Repos{
		Users:         &userRepo{sc},
		Projects:      &projectRepo{sc},
		Tasks:         &taskRepo{sc},
		Comments:      &commentRepo{sc},
		History:       &historyRepo{sc},
		Notifications: &notificationRepo{sc},
		Counters:      &counterRepo{sc},
	}
}

// scope sabe si el mutex ya está tomado por Run.
type scope struct {
	s      *Store
	locked bool
}

func (sc scope) lock() func() {
	if sc.locked {
		return func() {}
	}
	sc.s.mu.Lock()
	return sc.s.mu.Unlock
}

// fault consume un fallo inyectado; se llama con el mutex tomado.
func (sc scope) fault(op string) error {
	err, ok := sc.s.faults[op]
	if !ok {
		return nil
	}
	delete(sc.s.faults, op)
	return err
}

func (st *state) clone() *state {
	c := &state{
		users:         make(map[string]entity.User, len(st.users)),
		projects:      make(map[string]entity.Project, len(st.projects)),
		tasks:         make(map[string]entity.Task, len(st.tasks)),
		comments:      append([]entity.Comment(nil), st.comments...),
		history:       append([]entity.History(nil), st.history...),
		notifications: append([]entity.Notification(nil), st.notifications...),
		counters:      make(map[string]int64, len(st.counters)),
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.projects {
		c.projects[k] = v
	}
	for k, v := range st.tasks {
		c.tasks[k] = copyTask(v)
	}
	for k, v := range st.counters {
		c.counters[k] = v
	}
	return c
}

// copyTask evita compartir punteros entre el estado y los llamadores.
func copyTask(t entity.Task) entity.Task {
	if t.ProjectID != nil {
		p := *t.ProjectID
		t.ProjectID = &p
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

func sortTasks(list []*entity.Task) {
	sort.Slice(list, func(i, j int) bool { return list[i].Number < list[j].Number })
}
