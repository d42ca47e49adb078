// Package whatsapp renders an order as a chat message and wraps it in a wa.me deep link.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fekuna/omnipos-menu-service/internal/model"
)

const (
	DefaultBaseURL  = "https://wa.me/"
	DefaultCurrency = "R$"
)

type Formatter struct {
	baseURL  string
	number   string
	currency string
}

func NewFormatter(baseURL, number, currency string) *Formatter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Formatter{baseURL: baseURL, number: number, currency: currency}
}

// Message renders o in a fixed layout. It depends only on o, so equal orders
// always produce identical text.
func (f *Formatter) Message(o *model.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*NOVO PEDIDO #%d*\n\n", o.ID)
	fmt.Fprintf(&b, "*Cliente:* %s\n", o.CustomerName)
	if v := deref(o.CustomerPhone); v != "" {
		fmt.Fprintf(&b, "*Telefone:* %s\n", v)
	}
	if v := deref(o.CustomerAddress); v != "" {
		fmt.Fprintf(&b, "*Endereco:* %s\n", v)
	}

	b.WriteString("\n*ITENS DO PEDIDO:*\n")
	for i, it := range o.Items {
		fmt.Fprintf(&b, "\n%d. *%s*\n", i+1, it.ProductName)
		fmt.Fprintf(&b, "   Qtd: %dx | %s %s\n", it.Quantity, f.currency, it.UnitPrice.StringFixed(2))
		fmt.Fprintf(&b, "   Subtotal: %s %s\n", f.currency, it.Subtotal.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n*VALOR TOTAL: %s %s*", f.currency, o.Total.StringFixed(2))

	if v := deref(o.Observations); v != "" {
		fmt.Fprintf(&b, "\n\n*Observacoes:* %s", v)
	}
	return b.String()
}

// Link percent-encodes message into the deep link for the configured number.
func (f *Formatter) Link(message string) string {
	return f.baseURL + url.PathEscape(f.number) + "?text=" + Encode(message)
}

// Encode percent-encodes s for a query value. Spaces become %20, not "+",
// which chat clients would otherwise show literally.
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
