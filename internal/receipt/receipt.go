// Package receipt renders priced sales receipts to PDF.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/diewo77/product-organizer/internal/pricing"
	"github.com/google/uuid"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const (
	Title        = "Digital Product Receipt"
	ClosingLine  = "Thank you for your business!"
	stampLayout  = "2006-01-02 15:04"
	fileLayout   = "2006-01-02_15_04_05"
	logoRowSize  = 22
	bodyFontSize = 11
)

var (
	// ErrWrite wraps failures writing the primary receipt or one of its copies.
	ErrWrite = errors.New("write receipt")
	// ErrGenerate wraps failures building the PDF itself.
	ErrGenerate = errors.New("generate receipt")
)

// Request describes one receipt to render.
type Request struct {
	ClientName  string
	ClientEmail string
	Items       []pricing.LineItem
	Pricing     pricing.Result
	LogoPath    string
	// CopyTo lists extra paths receiving the same document.
	CopyTo []string
}

// Document is a rendered receipt. LogoPath is empty when no logo made it onto the page.
type Document struct {
	FilePath    string
	ClientName  string
	ClientEmail string
	IssuedAt    time.Time
	Items       []pricing.LineItem
	Pricing     pricing.Result
	LogoPath    string
}

type Options struct {
	Dir      string
	Currency string
	Fs       afero.Fs
	Clock    func() time.Time
	Logger   logrus.FieldLogger
}

type Renderer struct {
	dir      string
	currency string
	fs       afero.Fs
	now      func() time.Time
	log      logrus.FieldLogger

	// mu guards path allocation so two renders never pick the same file.
	mu sync.Mutex
}

func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		dir:      opts.Dir,
		currency: opts.Currency,
		fs:       opts.Fs,
		now:      opts.Clock,
		log:      opts.Logger,
	}
	if r.dir == "" {
		r.dir = "receipts"
	}
	if r.currency == "" {
		r.currency = "$"
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.log == nil {
		r.log = logrus.StandardLogger()
	}
	return r
}

// Render lays out the receipt, writes it under the receipts directory and copies it to req.CopyTo.
// A logo that cannot be loaded is skipped; any write failure is returned.
func (r *Renderer) Render(ctx context.Context, req Request) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := &Document{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		IssuedAt:    r.now(),
		Items:       append([]pricing.LineItem(nil), req.Items...),
		Pricing:     req.Pricing,
	}

	var lg *logo
	if strings.TrimSpace(req.LogoPath) != "" {
		var err error
		lg, err = loadLogo(r.fs, req.LogoPath)
		if err != nil {
			r.log.WithError(err).WithField("logo", req.LogoPath).Warn("receipt logo skipped")
			lg = nil
		} else {
			doc.LogoPath = req.LogoPath
		}
	}

	data, err := r.build(doc, lg)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrWrite, r.dir, err)
	}
	doc.FilePath = r.allocatePath(doc.ClientName, doc.IssuedAt)
	if err := afero.WriteFile(r.fs, doc.FilePath, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWrite, doc.FilePath, err)
	}
	for _, p := range req.CopyTo {
		if err := r.copyTo(p, data); err != nil {
			return doc, err
		}
	}
	r.log.WithFields(logrus.Fields{"receipt": doc.FilePath, "client": doc.ClientEmail}).Info("receipt written")
	return doc, nil
}

func (r *Renderer) copyTo(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrWrite, dir, err)
		}
	}
	if err := afero.WriteFile(r.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: copy to %s: %v", ErrWrite, path, err)
	}
	return nil
}

// allocatePath derives "<client>_<timestamp>.pdf" and appends a short random
// discriminator when that file already exists.
func (r *Renderer) allocatePath(clientName string, at time.Time) string {
	base := FileBase(clientName, at)
	path := filepath.Join(r.dir, base+".pdf")
	if exists, _ := afero.Exists(r.fs, path); exists {
		path = filepath.Join(r.dir, base+"_"+uuid.NewString()[:8]+".pdf")
	}
	return path
}

// FileBase builds the receipt file name without extension. Whitespace and path
// separators in the client name become underscores.
func FileBase(clientName string, at time.Time) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, strings.TrimSpace(clientName))
	if name == "" {
		name = "client"
	}
	return name + "_" + at.Format(fileLayout)
}

func (r *Renderer) build(doc *Document, lg *logo) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithPageNumber().
		WithLeftMargin(18).
		WithTopMargin(18).
		WithRightMargin(18).
		Build()
	m := maroto.New(cfg)

	if lg != nil {
		m.AddRow(logoRowSize,
			image.NewFromBytesCol(4, lg.data, lg.ext, props.Rect{Percent: 100}),
			col.New(8),
		)
		m.AddRow(4)
	}
	r.addHeader(m, doc)
	r.addItems(m, doc)
	r.addTotals(m, doc)
	r.addFooter(m)

	pdf, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	return pdf.GetBytes(), nil
}

func (r *Renderer) addHeader(m core.Maroto, doc *Document) {
	m.AddRow(12, text.NewCol(12, Title, props.Text{
		Size:  16,
		Style: fontstyle.Bold,
		Align: align.Left,
	}))
	m.AddRow(7, text.NewCol(12, "Date: "+doc.IssuedAt.Format(stampLayout), props.Text{Size: bodyFontSize}))
	m.AddRow(9, text.NewCol(12, fmt.Sprintf("Client: %s (%s)", doc.ClientName, doc.ClientEmail), props.Text{Size: bodyFontSize}))
	m.AddRow(5, line.NewCol(12))
}

func (r *Renderer) addItems(m core.Maroto, doc *Document) {
	bold := props.Text{Size: bodyFontSize, Style: fontstyle.Bold, Align: align.Left}
	boldRight := bold
	boldRight.Align = align.Right
	m.AddRow(7, text.NewCol(8, "Item", bold), text.NewCol(4, "Price", boldRight))

	for _, it := range doc.Items {
		m.AddRow(7,
			text.NewCol(8, it.Name, props.Text{Size: bodyFontSize, Align: align.Left}),
			text.NewCol(4, pricing.FormatMoney(r.currency, it.UnitPrice), props.Text{Size: bodyFontSize, Align: align.Right}),
		)
	}
	m.AddRow(5, line.NewCol(12))
}

func (r *Renderer) addTotals(m core.Maroto, doc *Document) {
	p := doc.Pricing
	r.totalRow(m, "Subtotal:", pricing.FormatMoney(r.currency, p.Subtotal), false)
	if p.HasDiscount() {
		r.totalRow(m, "Discount:", pricing.FormatMoney(r.currency, p.Discount.Neg()), false)
	}
	if p.HasTax() {
		r.totalRow(m, fmt.Sprintf("Tax (%s%%):", RateLabel(p.TaxRatePercent)), pricing.FormatMoney(r.currency, p.Tax), false)
	}
	r.totalRow(m, "Grand Total:", pricing.FormatMoney(r.currency, p.GrandTotal), true)
}

func (r *Renderer) totalRow(m core.Maroto, label, value string, emphasize bool) {
	style := fontstyle.Normal
	size := float64(bodyFontSize)
	height := 7.0
	if emphasize {
		style = fontstyle.Bold
		size = 13
		height = 9
	}
	m.AddRow(height,
		text.NewCol(8, label, props.Text{Size: size, Style: style, Align: align.Left}),
		text.NewCol(4, value, props.Text{Size: size, Style: style, Align: align.Right}),
	)
}

func (r *Renderer) addFooter(m core.Maroto) {
	m.AddRow(10)
	m.AddRow(8, text.NewCol(12, ClosingLine, props.Text{Size: 10, Align: align.Left}))
}

// RateLabel prints the tax rate with one decimal, or more when one would lose precision.
func RateLabel(rate decimal.Decimal) string {
	s := rate.StringFixed(1)
	if !decimal.RequireFromString(s).Equal(rate) {
		return rate.String()
	}
	return s
}
