// Package output renders calculation results as a human-readable table,
// CSV or JSON.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/fincalc/pkg/amortization"
	"github.com/iwvelando/fincalc/pkg/comparison"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/finance"
	"github.com/iwvelando/fincalc/pkg/format"
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

var resultHeader = []string{
	"scheme", "maturity", "invested", "interest", "effective_rate", "annual_rate",
	"tenure", "unit", "tax_free", "periodic_payment", "quarterly_payout",
	"annual_payout", "monthly_income", "doubling_time_years", "deposit_years",
	"required_annual_deposit", "required_monthly_deposit",
}

// Result writes a single calculation result in the given format.
func Result(w io.Writer, outputFormat string, result finance.Result) error {
	result = result.Rounded()
	switch outputFormat {
	case constants.OutputFormatCSV:
		return writeCSV(w, resultHeader, [][]string{resultRecord(result)})
	case constants.OutputFormatJSON:
		return writeJSON(w, result)
	default:
		return PrettyFormat(w, result)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result finance.Result) error {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "--- Results for %s ---\n", result.Scheme)
	for _, f := range resultFields(result) {
		if _, err := p.Fprintf(w, "%-24s | %s\n", f.label, f.value); err != nil {
			return err
		}
	}
	return nil
}

type field struct {
	label string
	value string
}

func resultFields(r finance.Result) []field {
	fields := []field{
		{"Maturity amount", format.Rupees(r.Maturity)},
		{"Total invested", format.Rupees(r.Invested)},
		{"Interest earned", format.Rupees(r.Interest)},
		{"Effective return", format.Percent(r.EffectiveRate)},
		{"Annual rate", format.Percent(r.AnnualRate)},
		{"Tenure", fmt.Sprintf("%d %s", r.Tenure, r.Unit)},
	}
	if r.TaxFree {
		fields = append(fields, field{"Tax free", "yes"})
	}

	optional := []struct {
		label  string
		amount float64
	}{
		{"Periodic payment", r.PeriodicPayment},
		{"Quarterly payout", r.QuarterlyPayout},
		{"Annual payout", r.AnnualPayout},
		{"Monthly income", r.MonthlyIncome},
		{"Required yearly deposit", r.RequiredAnnualDeposit},
		{"Required monthly deposit", r.RequiredMonthlyDeposit},
	}
	for _, o := range optional {
		if o.amount != 0 {
			fields = append(fields, field{o.label, format.Rupees(o.amount)})
		}
	}
	if r.DepositYears != 0 {
		fields = append(fields, field{"Deposit years", strconv.Itoa(r.DepositYears)})
	}
	if r.DoublingTimeYears != 0 {
		fields = append(fields, field{"Doubling time", fmt.Sprintf("%.2f years", r.DoublingTimeYears)})
	}
	return fields
}

func resultRecord(r finance.Result) []string {
	return []string{
		r.Scheme,
		money(r.Maturity),
		money(r.Invested),
		money(r.Interest),
		money(r.EffectiveRate),
		money(r.AnnualRate),
		strconv.Itoa(r.Tenure),
		r.Unit,
		strconv.FormatBool(r.TaxFree),
		money(r.PeriodicPayment),
		money(r.QuarterlyPayout),
		money(r.AnnualPayout),
		money(r.MonthlyIncome),
		money(r.DoublingTimeYears),
		strconv.Itoa(r.DepositYears),
		money(r.RequiredAnnualDeposit),
		money(r.RequiredMonthlyDeposit),
	}
}

// Ranking writes a comparison, best entry first.
func Ranking(w io.Writer, outputFormat, title string, ranking comparison.Ranking) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		header := append([]string{"rank", "name"}, resultHeader...)
		records := make([][]string, 0, len(ranking.Entries))
		for i, entry := range ranking.Entries {
			record := append([]string{strconv.Itoa(i + 1), entry.Name}, resultRecord(entry.Result.Rounded())...)
			records = append(records, record)
		}
		return writeCSV(w, header, records)
	case constants.OutputFormatJSON:
		rounded := comparison.Ranking{Entries: make([]comparison.Entry, len(ranking.Entries))}
		for i, entry := range ranking.Entries {
			rounded.Entries[i] = comparison.Entry{Name: entry.Name, Result: entry.Result.Rounded()}
		}
		if len(rounded.Entries) > 0 {
			rounded.Best = rounded.Entries[0]
		}
		return writeJSON(w, rounded)
	default:
		return prettyRanking(w, title, ranking)
	}
}

func prettyRanking(w io.Writer, title string, ranking comparison.Ranking) error {
	p := message.NewPrinter(language.English)
	_, _ = fmt.Fprintf(w, "--- %s ---\n", title)
	_, _ = fmt.Fprintf(w, "Rank | Name                 | Final amount       | Invested           | Return\n")
	_, _ = fmt.Fprintf(w, "____ | ____________________ | __________________ | __________________ | ______\n")
	for i, entry := range ranking.Entries {
		r := entry.Result
		if _, err := p.Fprintf(w, "%4d | %-20s | %18s | %18s | %s\n",
			i+1, entry.Name, format.Rupees(r.Maturity), format.Rupees(r.Invested), format.Percent(r.EffectiveRate)); err != nil {
			return err
		}
	}
	if best, ok := ranking.BestEntry(); ok {
		_, _ = fmt.Fprintf(w, "Best: %s\n", best.Name)
	}
	return nil
}

// Schedule writes an amortization schedule.
func Schedule(w io.Writer, outputFormat string, installments []amortization.Installment) error {
	switch outputFormat {
	case constants.OutputFormatCSV:
		header := []string{"month", "payment", "principal", "interest", "remaining_principal", "cumulative_interest", "cumulative_principal"}
		records := make([][]string, 0, len(installments))
		for _, in := range installments {
			records = append(records, []string{
				strconv.Itoa(in.Month),
				money(in.Payment),
				money(in.Principal),
				money(in.Interest),
				money(in.RemainingPrincipal),
				money(in.CumulativeInterest),
				money(in.CumulativePrincipal),
			})
		}
		return writeCSV(w, header, records)
	case constants.OutputFormatJSON:
		return writeJSON(w, installments)
	default:
		p := message.NewPrinter(language.English)
		_, _ = fmt.Fprintf(w, "Month | Payment        | Principal      | Interest       | Balance\n")
		_, _ = fmt.Fprintf(w, "_____ | ______________ | ______________ | ______________ | _______\n")
		for _, in := range installments {
			if _, err := p.Fprintf(w, "%5d | %14s | %14s | %14s | %s\n",
				in.Month, format.Rupees(in.Payment), format.Rupees(in.Principal), format.Rupees(in.Interest), format.Rupees(in.RemainingPrincipal)); err != nil {
				return err
			}
		}
		return nil
	}
}

// Value writes any other record: YAML for pretty output, JSON otherwise.
// CSV is not available for nested records.
func Value(w io.Writer, outputFormat string, v interface{}) error {
	switch outputFormat {
	case constants.OutputFormatJSON:
		return writeJSON(w, v)
	case constants.OutputFormatCSV:
		return fmt.Errorf("csv output is not available for %T", v)
	default:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		return encoder.Close()
	}
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func money(v float64) string {
	return strconv.FormatFloat(mathutil.Round(v), 'f', constants.DecimalPrecision, 64)
}
