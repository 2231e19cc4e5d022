// Package testutil provee dobles en memoria de los puertos de persistencia, el TxRunner
// y los colaboradores del motor de pedidos, para tests sin base de datos.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

type state struct {
	users   map[int64]entity.User
	platos  map[int64]entity.Plato
	pedidos map[int64]entity.Pedido // solo cabecera
	items   map[int64][]entity.OrderItem

	nextUser, nextPlato, nextPedido int64
}

func newState() *state {
	return &state{
		users:   map[int64]entity.User{},
		platos:  map[int64]entity.Plato{},
		pedidos: map[int64]entity.Pedido{},
		items:   map[int64][]entity.OrderItem{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.platos {
		c.platos[k] = v
	}
	for k, v := range s.pedidos {
		c.pedidos[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.OrderItem(nil), v...)
	}
	c.nextUser, c.nextPlato, c.nextPedido = s.nextUser, s.nextPlato, s.nextPedido
	return c
}

// Store base de datos en memoria. Las transacciones trabajan sobre una copia que solo
// se publica si el callback termina sin error.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// Platos repositorio del menú fuera de transacción.
func (s *Store) Platos() *PlatoRepo { return &PlatoRepo{store: s} }

// Pedidos repositorio de pedidos fuera de transacción.
func (s *Store) Pedidos() *PedidoRepo { return &PedidoRepo{store: s} }

// TxRunner runner transaccional sobre el store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{store: s} }

func (s *Store) with(tx *state, fn func(st *state)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// TxRunner serializa las transacciones con el mutex del store.
type TxRunner struct {
	store *Store
	Calls int
}

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
func (r *TxRunner) Run(_ context.Context, fn func(
	pedidos repository.PedidoRepository,
	platos repository.PlatoRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.Calls++

	work := r.store.state.clone()
	if err := fn(&PedidoRepo{store: r.store, tx: work}, &PlatoRepo{store: r.store, tx: work}); err != nil {
		return err
	}
	r.store.state = work
	return nil
}

// ── Users ────────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	store *Store
	tx    *state
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	var err error
	r.store.with(r.tx, func(st *state) {
		for _, existing := range st.users {
			if existing.Email == u.Email {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		st.nextUser++
		u.ID = st.nextUser
		st.users[u.ID] = *u
	})
	return err
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	r.store.with(r.tx, func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.store.with(r.tx, func(st *state) {
		for _, u := range st.users {
			if u.Email == email {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	var err error
	r.store.with(r.tx, func(st *state) {
		if _, ok := st.users[u.ID]; !ok {
			err = domain.ErrUserNotFound
			return
		}
		for id, existing := range st.users {
			if id != u.ID && existing.Email == u.Email {
				err = domain.ErrEmailAlreadyExists
				return
			}
		}
		st.users[u.ID] = *u
	})
	return err
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	r.store.with(r.tx, func(st *state) {
		for _, id := range sortedKeys(st.users) {
			u := st.users[id]
			if f.IsActive != nil && u.IsActive != *f.IsActive {
				continue
			}
			out = append(out, &u)
		}
	})
	return page(out, f.Offset, f.Limit), nil
}

func (r *UserRepo) Delete(_ context.Context, id int64) error {
	var err error
	r.store.with(r.tx, func(st *state) {
		if _, ok := st.users[id]; !ok {
			err = domain.ErrUserNotFound
			return
		}
		for _, p := range st.pedidos {
			if p.UsuarioID == id {
				err = domain.ErrConflict
				return
			}
		}
		delete(st.users, id)
	})
	return err
}

// ── Platos ───────────────────────────────────────────────────────────────────

var _ repository.PlatoRepository = (*PlatoRepo)(nil)

// PlatoRepo implementación en memoria de PlatoRepository.
type PlatoRepo struct {
	store *Store
	tx    *state
}

func (r *PlatoRepo) Create(_ context.Context, p *entity.Plato) error {
	var err error
	r.store.with(r.tx, func(st *state) {
		for _, existing := range st.platos {
			if existing.Nombre == p.Nombre {
				err = domain.ErrDuplicate
				return
			}
		}
		st.nextPlato++
		p.ID = st.nextPlato
		st.platos[p.ID] = *p
	})
	return err
}

func (r *PlatoRepo) GetByID(_ context.Context, id int64) (*entity.Plato, error) {
	var out *entity.Plato
	r.store.with(r.tx, func(st *state) {
		if p, ok := st.platos[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *PlatoRepo) GetByNombre(_ context.Context, nombre string) (*entity.Plato, error) {
	var out *entity.Plato
	r.store.with(r.tx, func(st *state) {
		for _, p := range st.platos {
			if p.Nombre == nombre {
				p := p
				out = &p
				return
			}
		}
	})
	return out, nil
}

func (r *PlatoRepo) Update(_ context.Context, p *entity.Plato) error {
	var err error
	r.store.with(r.tx, func(st *state) {
		if _, ok := st.platos[p.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		for id, existing := range st.platos {
			if id != p.ID && existing.Nombre == p.Nombre {
				err = domain.ErrDuplicate
				return
			}
		}
		st.platos[p.ID] = *p
	})
	return err
}

func (r *PlatoRepo) List(_ context.Context, f repository.PlatoFilter) ([]*entity.Plato, error) {
	var out []*entity.Plato
	cat := strings.ToLower(f.Categoria)
	r.store.with(r.tx, func(st *state) {
		for _, id := range sortedKeys(st.platos) {
			p := st.platos[id]
			if f.IsActive != nil && p.IsActive != *f.IsActive {
				continue
			}
			if cat != "" && !strings.Contains(strings.ToLower(p.Categoria), cat) {
				continue
			}
			out = append(out, &p)
		}
	})
	return page(out, f.Offset, f.Limit), nil
}

func (r *PlatoRepo) Delete(_ context.Context, id int64) error {
	var err error
	r.store.with(r.tx, func(st *state) {
		if _, ok := st.platos[id]; !ok {
			err = domain.ErrNotFound
			return
		}
		for _, items := range st.items {
			for _, it := range items {
				if it.PlatoID == id {
					err = domain.ErrConflict
					return
				}
			}
		}
		delete(st.platos, id)
	})
	return err
}

// ── Pedidos ──────────────────────────────────────────────────────────────────

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación en memoria de PedidoRepository.
type PedidoRepo struct {
	store *Store
	tx    *state
}

func (r *PedidoRepo) Create(_ context.Context, p *entity.Pedido) error {
	r.store.with(r.tx, func(st *state) {
		st.nextPedido++
		p.ID = st.nextPedido
		header := *p
		header.Items, header.Usuario = nil, nil
		st.pedidos[p.ID] = header
		st.items[p.ID] = stripItems(p.ID, p.Items)
		for i := range p.Items {
			p.Items[i].PedidoID = p.ID
		}
	})
	return nil
}

func (r *PedidoRepo) GetByID(_ context.Context, id int64) (*entity.Pedido, error) {
	var out *entity.Pedido
	r.store.with(r.tx, func(st *state) {
		if _, ok := st.pedidos[id]; ok {
			out = hydrate(st, id)
		}
	})
	return out, nil
}

func (r *PedidoRepo) GetForUpdate(_ context.Context, id int64) (*entity.Pedido, error) {
	var out *entity.Pedido
	r.store.with(r.tx, func(st *state) {
		if p, ok := st.pedidos[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *PedidoRepo) List(_ context.Context, f repository.PedidoFilter) ([]*entity.Pedido, error) {
	var out []*entity.Pedido
	r.store.with(r.tx, func(st *state) {
		for _, id := range sortedKeys(st.pedidos) {
			if f.Estado != "" && st.pedidos[id].Estado != f.Estado {
				continue
			}
			out = append(out, hydrate(st, id))
		}
	})
	if f.OldestFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].FechaCreacion.Before(out[j].FechaCreacion) })
	}
	return page(out, f.Offset, f.Limit), nil
}

func (r *PedidoRepo) UpdateHeader(_ context.Context, p *entity.Pedido) error {
	var err error
	r.store.with(r.tx, func(st *state) {
		if _, ok := st.pedidos[p.ID]; !ok {
			err = domain.ErrPedidoNotFound
			return
		}
		header := *p
		header.Items, header.Usuario = nil, nil
		st.pedidos[p.ID] = header
	})
	return err
}

func (r *PedidoRepo) ReplaceItems(_ context.Context, pedidoID int64, items []entity.OrderItem) error {
	r.store.with(r.tx, func(st *state) {
		st.items[pedidoID] = stripItems(pedidoID, items)
	})
	return nil
}

func (r *PedidoRepo) Delete(_ context.Context, id int64) error {
	var err error
	r.store.with(r.tx, func(st *state) {
		if _, ok := st.pedidos[id]; !ok {
			err = domain.ErrPedidoNotFound
			return
		}
		delete(st.pedidos, id)
		delete(st.items, id)
	})
	return err
}

// ItemCount número de ítems guardados para el pedido (0 si se borraron en cascada).
func (s *Store) ItemCount(pedidoID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.items[pedidoID])
}

func hydrate(st *state, id int64) *entity.Pedido {
	p := st.pedidos[id]
	if u, ok := st.users[p.UsuarioID]; ok {
		p.Usuario = &u
	}
	p.Items = make([]entity.OrderItem, 0, len(st.items[id]))
	for _, it := range st.items[id] {
		if pl, ok := st.platos[it.PlatoID]; ok {
			it.Plato = &pl
		}
		p.Items = append(p.Items, it)
	}
	sort.Slice(p.Items, func(i, j int) bool { return p.Items[i].PlatoID < p.Items[j].PlatoID })
	return &p
}

func stripItems(pedidoID int64, items []entity.OrderItem) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.OrderItem{PedidoID: pedidoID, PlatoID: it.PlatoID, Cantidad: it.Cantidad})
	}
	return out
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func page[T any](list []T, offset, limit int) []T {
	if list == nil {
		list = make([]T, 0)
	}
	if offset >= len(list) {
		return list[:0]
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
