// Package catalog carga productos desde archivos CSV exportados de hojas de cálculo.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// ProductCreator crea productos validados. Lo implementa *inventory.ProductUseCase.
type ProductCreator interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
}

// Options formato del archivo.
type Options struct {
	Encoding string // utf-8 (por defecto), iso-8859-1, windows-1252
	Comma    rune   // separador; por defecto ','
}

// RowError fila rechazada.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// Result resumen de la importación.
type Result struct {
	Created  int
	Rejected []RowError
}

// Encabezados aceptados por columna.
var columns = map[string][]string{
	"name":             {"name", "nombre", "producto"},
	"purchase_price":   {"purchase_price", "precio_compra", "costo"},
	"sale_price":       {"sale_price", "precio_venta", "precio"},
	"quantity":         {"quantity", "cantidad", "existencia"},
	"minimum_quantity": {"minimum_quantity", "cantidad_minima", "minimo"},
}

// Importer crea un producto por fila. Las filas inválidas se reportan y no detienen la carga.
type Importer struct {
	products ProductCreator
	log      *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(products ProductCreator, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{products: products, log: log.Component("catalog")}
}

// ImportCSV lee el CSV (con encabezado) y crea los productos.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	decoded, err := decodeReader(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(decoded)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: leer encabezado: %v", domain.ErrInvalidInput, err)
	}
	idx, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return res, fmt.Errorf("leer csv: %w", err)
			}
			res.Rejected = append(res.Rejected, RowError{Line: pe.Line, Err: err})
			continue
		}
		line, _ := cr.FieldPos(0)
		if isBlank(rec) {
			continue
		}
		req, err := parseRow(rec, idx)
		if err == nil {
			_, err = im.products.Create(ctx, req)
		}
		if err != nil {
			if !errors.Is(err, domain.ErrInvalidInput) {
				return res, fmt.Errorf("línea %d: %w", line, err)
			}
			res.Rejected = append(res.Rejected, RowError{Line: line, Err: err})
			continue
		}
		res.Created++
	}

	im.log.Info().Int("created", res.Created).Int("rejected", len(res.Rejected)).Msg("catálogo importado")
	return res, nil
}

func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("%w: codificación %q no soportada", domain.ErrInvalidInput, encoding)
}

func mapHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(columns))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for col, aliases := range columns {
			for _, a := range aliases {
				if h == a {
					idx[col] = i
				}
			}
		}
	}
	if _, ok := idx["name"]; !ok {
		return nil, fmt.Errorf("%w: falta la columna de nombre", domain.ErrInvalidInput)
	}
	return idx, nil
}

func parseRow(rec []string, idx map[string]int) (dto.CreateProductRequest, error) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	var (
		out dto.CreateProductRequest
		err error
	)
	out.Name = field("name")
	if out.PurchasePrice, err = parseAmount(field("purchase_price")); err != nil {
		return out, err
	}
	if out.SalePrice, err = parseAmount(field("sale_price")); err != nil {
		return out, err
	}
	if out.Quantity, err = parseInt(field("quantity")); err != nil {
		return out, err
	}
	if out.MinimumQuantity, err = parseInt(field("minimum_quantity")); err != nil {
		return out, err
	}
	return out, nil
}

// parseAmount acepta "1234.5", "1234,5" y "$1.234,50".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: monto %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: cantidad %q", domain.ErrInvalidInput, s)
	}
	return n, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
