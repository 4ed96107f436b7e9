package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/diewo77/product-organizer/internal/mailer"
	"github.com/diewo77/product-organizer/internal/models"
	"github.com/diewo77/product-organizer/internal/pricing"
	"github.com/diewo77/product-organizer/internal/receipt"
	"github.com/diewo77/product-organizer/validation"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ReceiptRenderer is the part of receipt.Renderer the workflow needs.
type ReceiptRenderer interface {
	Render(ctx context.Context, req receipt.Request) (*receipt.Document, error)
}

// SendRequest carries the raw user input of one send action.
type SendRequest struct {
	// To is a manually typed address. It wins over Selected.
	To string
	// Selected is the picked client, "Name <email>" or a bare address.
	Selected string
	// ClientName, when set, names the client on the receipt and in the registry.
	ClientName string

	Subject string
	Body    string
	// Template replaces Body with the stored template of that title.
	Template string

	AttachmentPath string

	// Price, Discount and TaxRate are optional numbers as typed; TaxRate is a percentage.
	Price    string
	Discount string
	TaxRate  string

	LogoPath      string
	CopyReceiptTo []string
}

type SendResult struct {
	Recipient     string
	ClientName    string
	ClientCreated bool
	// RecordErr is set when the email went out but the client could not be recorded.
	RecordErr error
	// Receipt is nil when no price was given or the primary document could not be
	// written. A failed copy keeps Receipt and sets ReceiptErr.
	Receipt    *receipt.Document
	ReceiptErr error
}

type SendOptions struct {
	From               string
	AllowNegativeTotal bool
}

// SendService runs the send-and-record workflow: validate, transmit, record the
// client, then render a receipt when a price was given.
type SendService struct {
	transport mailer.Transport
	clients   *ClientService
	templates *TemplateService
	renderer  ReceiptRenderer
	fs        afero.Fs
	opts      SendOptions
	log       logrus.FieldLogger

	mu sync.Mutex
}

func NewSendService(
	transport mailer.Transport,
	clients *ClientService,
	templates *TemplateService,
	renderer ReceiptRenderer,
	fs afero.Fs,
	opts SendOptions,
	log logrus.FieldLogger,
) *SendService {
	return &SendService{
		transport: transport,
		clients:   clients,
		templates: templates,
		renderer:  renderer,
		fs:        fs,
		opts:      opts,
		log:       log,
	}
}

// sendInput is a SendRequest after validation.
type sendInput struct {
	recipient  string
	nameGuess  string
	subject    string
	body       string
	attachment *mailer.Attachment
	price      decimal.Decimal
	discount   decimal.Decimal
	taxRate    decimal.Decimal
}

// Send runs one send action. Validation and transport failures are returned as
// *ValidationError and *TransportError and leave no trace. Once the email is out
// Send succeeds; record and receipt failures are reported on the result.
func (s *SendService) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	log := s.log.WithField("recipient", in.recipient)

	msg := mailer.Message{
		From:       s.opts.From,
		To:         in.recipient,
		Subject:    in.subject,
		Body:       in.body,
		Attachment: in.attachment,
	}
	if err := s.transport.Send(ctx, msg); err != nil {
		log.WithError(err).Error("email not sent")
		return nil, &TransportError{Err: err}
	}
	log.Info("email sent")

	res := &SendResult{Recipient: in.recipient}
	res.ClientCreated, res.RecordErr = s.clients.EnsureClient(ctx, in.recipient, in.nameGuess)
	if res.RecordErr != nil {
		log.WithError(res.RecordErr).Error("client not recorded")
	}
	res.ClientName = s.receiptName(ctx, in)

	if in.price.IsPositive() {
		res.Receipt, res.ReceiptErr = s.makeReceipt(ctx, in, res.ClientName, req)
		if res.ReceiptErr != nil {
			log.WithError(res.ReceiptErr).Warn("receipt not generated")
		}
	}
	return res, nil
}

func (s *SendService) validate(ctx context.Context, req SendRequest) (*sendInput, error) {
	v := validation.Violations{}
	in := &sendInput{
		subject: strings.TrimSpace(req.Subject),
		body:    strings.TrimSpace(req.Body),
	}

	in.recipient, in.nameGuess = resolveRecipient(req.To, req.Selected)
	if name := strings.TrimSpace(req.ClientName); name != "" {
		in.nameGuess = name
	}
	validation.Required("recipient", in.recipient, v)
	validation.Email("recipient", in.recipient, v)

	if strings.TrimSpace(req.Template) != "" {
		tpl, err := s.templates.ByTitle(ctx, req.Template)
		switch {
		case errors.Is(err, ErrNotFound):
			v["template"] = "not_found"
		case err != nil:
			return nil, err
		default:
			in.body = strings.TrimSpace(tpl.Body)
		}
	}
	validation.Required("subject", in.subject, v)
	validation.Required("body", in.body, v)

	in.price = validation.Amount("price", req.Price, decimal.Zero, v)
	in.discount = validation.Amount("discount", req.Discount, decimal.Zero, v)
	in.taxRate = validation.Amount("tax", req.TaxRate, decimal.Zero, v)
	if in.price.IsPositive() && !s.opts.AllowNegativeTotal && in.discount.GreaterThan(in.price) {
		v["discount"] = "exceeds_price"
	}

	if p := strings.TrimSpace(req.AttachmentPath); p != "" {
		data, err := afero.ReadFile(s.fs, p)
		if err != nil {
			v["attachment"] = "unreadable"
		} else {
			in.attachment = &mailer.Attachment{Name: filepath.Base(p), Data: data}
		}
	}

	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	return in, nil
}

// resolveRecipient picks the manual address over the selection. A display name is
// only guessed from the selection, and only when the selection supplied the address.
func resolveRecipient(manual, selected string) (email, name string) {
	selName, selEmail := splitLabel(selected)
	if m := strings.TrimSpace(manual); m != "" {
		return m, ""
	}
	return selEmail, selName
}

// splitLabel parses "Name <email>" as produced by models.Client.Label.
func splitLabel(label string) (name, email string) {
	label = strings.TrimSpace(label)
	i := strings.LastIndex(label, "<")
	if i < 0 || !strings.HasSuffix(label, ">") {
		return "", label
	}
	name = strings.TrimSpace(label[:i])
	if name == models.NoName {
		name = ""
	}
	return name, strings.TrimSpace(label[i+1 : len(label)-1])
}

// receiptName prefers the explicit or guessed name, then the stored one, then the email local part.
func (s *SendService) receiptName(ctx context.Context, in *sendInput) string {
	if in.nameGuess != "" {
		return in.nameGuess
	}
	c, err := s.clients.ByEmail(ctx, in.recipient)
	if err != nil {
		c = &models.Client{Email: in.recipient}
	}
	return c.ReceiptName()
}

func (s *SendService) makeReceipt(ctx context.Context, in *sendInput, clientName string, req SendRequest) (*receipt.Document, error) {
	itemName := "Digital product"
	if in.attachment != nil {
		itemName = in.attachment.Name
	}
	items := []pricing.LineItem{pricing.NewLineItem(itemName, in.price)}
	totals, err := pricing.Compute(items, in.discount, in.taxRate)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	doc, err := s.renderer.Render(ctx, receipt.Request{
		ClientName:  clientName,
		ClientEmail: in.recipient,
		Items:       items,
		Pricing:     totals,
		LogoPath:    req.LogoPath,
		CopyTo:      req.CopyReceiptTo,
	})
	if err != nil {
		return doc, &RenderError{Err: err}
	}
	return doc, nil
}
