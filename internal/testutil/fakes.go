package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// MetricsRecorder cuenta las llamadas al puerto de métricas.
type MetricsRecorder struct {
	mu          sync.Mutex
	Created     int
	Deleted     int
	Replaced    int
	Transitions []string // "from->to"
}

func (m *MetricsRecorder) PedidoCreated(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created++
}

func (m *MetricsRecorder) EstadoChanged(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transitions = append(m.Transitions, from+"->"+to)
}

func (m *MetricsRecorder) ItemsReplaced() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replaced++
}

func (m *MetricsRecorder) PedidoDeleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted++
}

// TicketStub generador de tickets que devuelve un PDF mínimo.
type TicketStub struct {
	Err error
}

func (s *TicketStub) GenerateTicket(_ context.Context, p *entity.Pedido) ([]byte, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return []byte(fmt.Sprintf("%%PDF-1.3 pedido %d mesa %d", p.ID, p.NumeroMesa)), nil
}

// MustUser crea un usuario activo con el rol dado (hash vacío salvo que se indique).
func (s *Store) MustUser(email, role string) *entity.User {
	now := time.Now().UTC()
	u := &entity.User{Email: email, Role: role, Nombre: role, IsActive: true, CreatedAt: now, UpdatedAt: now}
	if err := s.Users().Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// MustPlato crea un plato con el precio dado (string decimal).
func (s *Store) MustPlato(nombre, precio string, activo bool) *entity.Plato {
	now := time.Now().UTC()
	p := &entity.Plato{
		Nombre:    nombre,
		Precio:    decimal.RequireFromString(precio),
		Categoria: "wok",
		IsActive:  activo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Platos().Create(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}

// Revoker lista de revocación en memoria; ignora el TTL.
type Revoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	Err     error
}

func (r *Revoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.revoked == nil {
		r.revoked = map[string]time.Duration{}
	}
	r.revoked[jti] = ttl
	return nil
}

func (r *Revoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	_, ok := r.revoked[jti]
	return ok, nil
}

// TTL devuelve el TTL con el que se revocó jti.
func (r *Revoker) TTL(jti string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revoked[jti]
}
