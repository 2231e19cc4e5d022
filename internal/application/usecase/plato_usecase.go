package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// PlatoUseCase casos de uso CRUD del menú.
type PlatoUseCase struct {
	repo repository.PlatoRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewPlatoUseCase construye el caso de uso.
func NewPlatoUseCase(repo repository.PlatoRepository, log zerolog.Logger) *PlatoUseCase {
	return &PlatoUseCase{
		repo: repo,
		log:  log.With().Str("component", "platos").Logger(),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create crea un plato. El nombre se guarda sin espacios extremos y en forma NFC.
func (uc *PlatoUseCase) Create(ctx context.Context, in dto.CreatePlatoRequest) (*dto.PlatoResponse, error) {
	nombre, err := normalizeNombre(in.Nombre)
	if err != nil {
		return nil, err
	}
	precio, err := validatePrecio(in.Precio)
	if err != nil {
		return nil, err
	}
	categoria, err := validateCategoria(in.Categoria)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByNombre(ctx, nombre)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	activo := true
	if in.IsActive != nil {
		activo = *in.IsActive
	}
	now := uc.now()
	plato := &entity.Plato{
		Nombre:      nombre,
		Descripcion: in.Descripcion,
		Precio:      precio,
		Categoria:   categoria,
		IsActive:    activo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, plato); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("plato_id", plato.ID).Str("nombre", plato.Nombre).Msg("plato creado")
	return dto.FromPlato(plato), nil
}

// GetByID obtiene un plato por ID.
func (uc *PlatoUseCase) GetByID(ctx context.Context, id int64) (*dto.PlatoResponse, error) {
	plato, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromPlato(plato), nil
}

// Update actualiza solo los campos enviados, con las mismas reglas que Create.
func (uc *PlatoUseCase) Update(ctx context.Context, id int64, in dto.UpdatePlatoRequest) (*dto.PlatoResponse, error) {
	plato, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nombre != nil {
		nombre, err := normalizeNombre(*in.Nombre)
		if err != nil {
			return nil, err
		}
		if nombre != plato.Nombre {
			existing, err := uc.repo.GetByNombre(ctx, nombre)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != plato.ID {
				return nil, domain.ErrDuplicate
			}
		}
		plato.Nombre = nombre
	}
	if in.Descripcion != nil {
		plato.Descripcion = in.Descripcion
	}
	if in.Precio != nil {
		precio, err := validatePrecio(*in.Precio)
		if err != nil {
			return nil, err
		}
		plato.Precio = precio
	}
	if in.Categoria != nil {
		categoria, err := validateCategoria(*in.Categoria)
		if err != nil {
			return nil, err
		}
		plato.Categoria = categoria
	}
	if in.IsActive != nil {
		plato.IsActive = *in.IsActive
	}
	plato.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, plato); err != nil {
		return nil, err
	}
	return dto.FromPlato(plato), nil
}

// List lista el menú con filtros opcionales de estado y categoría.
func (uc *PlatoUseCase) List(ctx context.Context, in dto.PlatoListRequest) ([]dto.PlatoResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.PlatoFilter{
		IsActive:  in.IsActive,
		Categoria: strings.TrimSpace(in.Categoria),
		Limit:     in.Limit,
		Offset:    in.Skip,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlatoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.FromPlato(p))
	}
	return out, nil
}

// Delete elimina un plato. Si figura en algún pedido devuelve domain.ErrConflict.
func (uc *PlatoUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("plato_id", id).Msg("plato eliminado")
	return nil
}

func (uc *PlatoUseCase) get(ctx context.Context, id int64) (*entity.Plato, error) {
	plato, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plato == nil {
		return nil, &domain.PlatoNotFoundError{PlatoID: id}
	}
	return plato, nil
}

func normalizeNombre(s string) (string, error) {
	nombre := norm.NFC.String(strings.TrimSpace(s))
	if nombre == "" {
		return "", domain.Invalid("nombre", "no puede estar vacío")
	}
	return nombre, nil
}

// validatePrecio redondea a centavos y valida el valor ya redondeado.
func validatePrecio(p decimal.Decimal) (decimal.Decimal, error) {
	precio := p.Round(2)
	if !precio.IsPositive() {
		return decimal.Zero, domain.Invalid("precio", "debe ser mayor que 0")
	}
	if precio.GreaterThan(entity.MaxImporte) {
		return decimal.Zero, domain.Invalid("precio", "máximo "+entity.MaxImporte.StringFixed(2))
	}
	return precio, nil
}

func validateCategoria(s string) (string, error) {
	categoria := strings.TrimSpace(s)
	if categoria == "" {
		return "", domain.Invalid("categoria", "no puede estar vacía")
	}
	return categoria, nil
}
