package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/diewo77/product-organizer/internal/models"
	"github.com/diewo77/product-organizer/internal/services"
	"github.com/spf13/cobra"
)

const defaultBody = "Please find the attached file."

type sendFlags struct {
	to, name         string
	clientID         uint
	productID        uint
	clientFile       string
	attach           string
	subject, body    string
	template         string
	price, discount  string
	tax              string
	logo             string
	copyTo           []string
	storeInClientDir bool
	noOpen           bool
}

func (a *App) sendCmd() *cobra.Command {
	var f sendFlags
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Email a file to a client and issue a receipt when priced",
		Example: `  organizer send --product 3 --client 1 --price 19.99 --tax 8.5
  organizer send --to buyer@example.com --name "Jane Doe" --file guide.pdf --template "Thank you"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.buildSendRequest(cmd, f)
			if err != nil {
				return err
			}
			res, err := a.sender.Send(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.present(cmd.OutOrStdout(), res, f)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.to, "to", "", "recipient address, overrides --client")
	fl.UintVar(&f.clientID, "client", 0, "recorded client id to send to")
	fl.StringVar(&f.name, "name", "", "client name for the registry and the receipt")
	fl.UintVar(&f.productID, "product", 0, "attach the file of this catalogue product")
	fl.StringVar(&f.clientFile, "file", "", "attach this file from the client's folder")
	fl.StringVar(&f.attach, "attach", "", "attach a file by path")
	fl.StringVar(&f.subject, "subject", "", "email subject (defaults to \"Sharing: <product title>\")")
	fl.StringVar(&f.body, "body", "", "email body")
	fl.StringVar(&f.template, "template", "", "use the body of this stored template")
	fl.StringVar(&f.price, "price", "", "price; a receipt is issued when positive")
	fl.StringVar(&f.discount, "discount", "", "discount amount")
	fl.StringVar(&f.tax, "tax", "", "tax rate in percent")
	fl.StringVar(&f.logo, "logo", "", "image placed on the receipt")
	fl.StringSliceVar(&f.copyTo, "copy-to", nil, "also write the receipt to these paths")
	fl.BoolVar(&f.storeInClientDir, "store-receipt", false, "keep a copy of the receipt in the client's folder")
	fl.BoolVar(&f.noOpen, "no-open", false, "do not open the receipt after sending")
	cmd.MarkFlagsMutuallyExclusive("product", "file", "attach")
	cmd.MarkFlagsMutuallyExclusive("body", "template")
	return cmd
}

func (a *App) buildSendRequest(cmd *cobra.Command, f sendFlags) (services.SendRequest, error) {
	ctx := cmd.Context()
	req := services.SendRequest{
		To:             f.to,
		ClientName:     f.name,
		Subject:        f.subject,
		Body:           f.body,
		Template:       f.template,
		AttachmentPath: f.attach,
		Price:          f.price,
		Discount:       f.discount,
		TaxRate:        f.tax,
		LogoPath:       f.logo,
		CopyReceiptTo:  f.copyTo,
	}
	folderName := strings.TrimSpace(f.name)

	if f.clientID != 0 {
		c, err := a.clients.Get(ctx, f.clientID)
		if err != nil {
			return req, err
		}
		req.Selected = c.Label()
		if folderName == "" {
			folderName = c.ReceiptName()
		}
	}
	if folderName == "" && strings.TrimSpace(f.to) != "" {
		folderName = a.folderNameFor(cmd, f.to)
	}

	switch {
	case f.productID != 0:
		p, err := a.catalog.Get(ctx, f.productID)
		if err != nil {
			return req, err
		}
		req.AttachmentPath = p.FilePath
		if strings.TrimSpace(req.Subject) == "" {
			req.Subject = "Sharing: " + p.Title
		}
	case f.clientFile != "":
		path, err := a.clientFiles.Path(folderName, f.clientFile)
		if err != nil {
			return req, err
		}
		req.AttachmentPath = path
	}

	if strings.TrimSpace(req.Body) == "" && strings.TrimSpace(req.Template) == "" {
		req.Body = defaultBody
	}
	return req, nil
}

// folderNameFor names the client folder of a typed address the same way the
// receipt is named: the stored client's name, else the email local part.
func (a *App) folderNameFor(cmd *cobra.Command, email string) string {
	c, err := a.clients.ByEmail(cmd.Context(), email)
	if err != nil {
		c = &models.Client{Email: strings.TrimSpace(email)}
	}
	return c.ReceiptName()
}

// present reports the outcome and reveals the receipt.
func (a *App) present(out io.Writer, res *services.SendResult, f sendFlags) {
	fmt.Fprintf(out, "Email sent to %s\n", res.Recipient)
	if res.ClientCreated {
		fmt.Fprintf(out, "New client recorded: %s\n", res.ClientName)
	}
	if res.RecordErr != nil {
		fmt.Fprintf(out, "Warning: client was not recorded: %v\n", res.RecordErr)
	}
	if res.ReceiptErr != nil {
		fmt.Fprintf(out, "Warning: %v\n", res.ReceiptErr)
	}
	if res.Receipt == nil {
		return
	}
	fmt.Fprintf(out, "Receipt saved: %s\n", res.Receipt.FilePath)

	if f.storeInClientDir {
		dest, err := a.clientFiles.Add(res.ClientName, res.Receipt.FilePath)
		if err != nil {
			fmt.Fprintf(out, "Warning: receipt not stored for client: %v\n", err)
		} else {
			fmt.Fprintf(out, "Receipt stored in %s\n", dest)
		}
	}

	if f.noOpen || !a.cfg.Receipt.Open {
		return
	}
	if err := a.open(res.Receipt.FilePath); err != nil {
		a.log.WithError(err).WithField("receipt", res.Receipt.FilePath).Warn("could not open receipt")
	}
}
