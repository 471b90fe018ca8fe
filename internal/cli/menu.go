package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"fxconvert/internal/rates"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	errColor   = color.New(color.FgRed)
	okColor    = color.New(color.FgGreen)
)

// Menu is the interactive console surface. All rate-state logic lives
// in the service; the menu only collects input and prints results.
type Menu struct {
	service *rates.Service
	in      *bufio.Scanner
	out     io.Writer
}

func NewMenu(service *rates.Service, in io.Reader, out io.Writer) *Menu {
	return &Menu{service: service, in: bufio.NewScanner(in), out: out}
}

// Run drives the menu loop until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) {
	titleColor.Fprintln(m.out, "Currency converter (remote rates + cache)")
	fmt.Fprintln(m.out, "- Limit: up to 2 remote refreshes per day.")

	for {
		fmt.Fprintln(m.out, "\nOptions:")
		fmt.Fprintln(m.out, "1) Convert an amount")
		fmt.Fprintln(m.out, "2) List currencies and rates")
		fmt.Fprintln(m.out, "3) Refresh rates from the internet (max 2/day)")
		fmt.Fprintln(m.out, "4) Override one rate manually")
		fmt.Fprintln(m.out, "5) Exit")

		choice, ok := m.prompt("Pick an option (1-5): ")
		if !ok {
			return
		}
		switch strings.TrimSpace(choice) {
		case "1":
			m.convertFlow(ctx)
		case "2":
			m.listRates(ctx)
		case "3":
			m.refresh(ctx)
		case "4":
			m.overrideRate(ctx)
		case "5":
			fmt.Fprintln(m.out, "Bye!")
			return
		default:
			errColor.Fprintln(m.out, "Invalid option, try again.")
		}
	}
}

func (m *Menu) convertFlow(ctx context.Context) {
	m.listRates(ctx)
	fmt.Fprintln(m.out)

	amount, ok := m.readAmount("Amount to convert: ")
	if !ok {
		return
	}
	from, ok := m.readCode("From (code): ")
	if !ok {
		return
	}
	to, ok := m.readCode("To (code): ")
	if !ok {
		return
	}

	result, err := m.service.Convert(amount, from, to)
	if err != nil {
		errColor.Fprintf(m.out, "Conversion failed: %v\n", err)
		return
	}
	fmt.Fprintln(m.out)
	okColor.Fprintf(m.out, "%s = %s\n", rates.Present(amount, from), rates.Present(result, to))
}

func (m *Menu) listRates(ctx context.Context) {
	status := m.service.Status(ctx, rates.Today())

	fmt.Fprintln(m.out, "Available currencies (base 1 USD):")
	for _, e := range m.service.ListRates() {
		fmt.Fprintf(m.out, "- %s: %s per USD\n", e.Code, e.Rate.String())
	}
	if status.LastUpdated != "" {
		fmt.Fprintf(m.out, "\nLast remote update: %s (UTC)\n", status.LastUpdated)
		fmt.Fprintf(m.out, "Refreshes left today: %d\n", status.Remaining)
	}
}

func (m *Menu) refresh(ctx context.Context) {
	res := m.service.Refresh(ctx, rates.Today())
	switch res.Status {
	case rates.StatusRefreshed:
		okColor.Fprintf(m.out, "Rates refreshed. Currencies updated: %d\n", res.Updated)
		fmt.Fprintf(m.out, "Refreshes left today: %d\n", res.Remaining)
	case rates.StatusQuotaExceeded:
		errColor.Fprintln(m.out, "You already used today's refresh quota.")
	case rates.StatusFailed:
		errColor.Fprintf(m.out, "Couldn't refresh rates: %v\n", res.Err)
	}
}

func (m *Menu) overrideRate(ctx context.Context) {
	m.listRates(ctx)
	code, ok := m.readCode("\nCurrency code to override: ")
	if !ok {
		return
	}

	for {
		raw, promptOK := m.prompt(fmt.Sprintf("New rate for %s (units of %s per 1 USD): ", code, code))
		if !promptOK {
			return
		}
		value, err := rates.ParseRate(raw)
		if err != nil {
			errColor.Fprintf(m.out, "%v\n", err)
			continue
		}
		if err = m.service.SetRate(code, value); err != nil {
			errColor.Fprintf(m.out, "%v\n", err)
			continue
		}
		okColor.Fprintf(m.out, "Rate updated: 1 USD = %s %s\n", value.String(), code)
		return
	}
}

func (m *Menu) readAmount(promptMsg string) (decimal.Decimal, bool) {
	for {
		raw, promptOK := m.prompt(promptMsg)
		if !promptOK {
			return decimal.Decimal{}, false
		}
		v, err := rates.ParseAmount(raw)
		if err != nil {
			errColor.Fprintf(m.out, "%v\n", err)
			continue
		}
		return v, true
	}
}

func (m *Menu) readCode(promptMsg string) (string, bool) {
	for {
		raw, promptOK := m.prompt(promptMsg)
		if !promptOK {
			return "", false
		}
		code := rates.NormalizeCode(raw)
		if err := rates.ValidateCode(code); err != nil {
			errColor.Fprintln(m.out, "Unrecognized currency. Use one of:")
			fmt.Fprintln(m.out, strings.Join(rates.SupportedCodes(), ", "))
			continue
		}
		return code, true
	}
}

func (m *Menu) prompt(msg string) (string, bool) {
	fmt.Fprint(m.out, msg)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}
