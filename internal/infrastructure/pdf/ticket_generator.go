// Package pdf genera el ticket imprimible de un pedido.
//
// Layout (A5):
//
//	┌───────────────────────────────────────────┐
//	│  Restaurante          │  Pedido N° / Mesa │
//	│  ───────────────────────────────────────  │
//	│  Estado / Fecha / Atendido por            │
//	│  Cant | Plato | P.Unit | Subtotal         │
//	│  ───────────────────────────────────────  │
//	│  TOTAL                                    │
//	│  Notas                                    │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/pedido"
)

var (
	colorPrimary = &props.Color{Red: 150, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var estadoLabels = map[string]string{
	entity.EstadoPendiente:     "Pendiente",
	entity.EstadoEnPreparacion: "En preparación",
	entity.EstadoListo:         "Listo",
	entity.EstadoEntregado:     "Entregado",
	entity.EstadoCancelado:     "Cancelado",
}

// TicketGenerator implementa pedido.TicketGenerator con Maroto v2.
type TicketGenerator struct {
	restaurante string
}

// NewTicketGenerator construye el generador; restaurante va en la cabecera.
func NewTicketGenerator(restaurante string) *TicketGenerator {
	return &TicketGenerator{restaurante: restaurante}
}

// GenerateTicket genera el PDF del pedido (cargado con ítems y platos) y devuelve sus bytes.
func (g *TicketGenerator) GenerateTicket(_ context.Context, p *entity.Pedido) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Pedido %d", p.ID), true).
		WithAuthor(g.restaurante, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.restaurante, p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(p))
	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(p.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(p.Total))
	if p.Notas != nil && strings.TrimSpace(*p.Notas) != "" {
		m.AddRows(notasRow(*p.Notas))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(restaurante string, p *entity.Pedido) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(restaurante, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("PEDIDO N° %d", p.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("Mesa %d", p.NumeroMesa), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7, Color: colorPrimary,
			}),
		),
	)
}

func infoRow(p *entity.Pedido) core.Row {
	atendio := "-"
	if p.Usuario != nil {
		atendio = nonEmpty(p.Usuario.Nombre, p.Usuario.Email)
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Estado: %s   |   Fecha: %s   |   Atendido por: %s",
				nonEmpty(estadoLabels[p.Estado], p.Estado),
				p.FechaCreacion.Format("02/01/2006 15:04"),
				atendio,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Plato", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		nombre := fmt.Sprintf("Plato %d", it.PlatoID)
		precio := decimal.Zero
		if it.Plato != nil {
			nombre = it.Plato.Nombre
			precio = it.Plato.Precio
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Cantidad), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nombre, props.Text{Size: 8, Align: align.Left, Top: 1})),
			col.New(2).Add(text.New(formatMoney(precio), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(formatMoney(pedido.LineTotal(precio, it.Cantidad)), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

func notasRow(notas string) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("Notas:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}),
		text.New(notas, props.Text{Size: 8, Top: 7, Color: colorGray}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney: "$" + miles con coma y dos decimales. Ej: 1234.5 → "$1,234.50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
