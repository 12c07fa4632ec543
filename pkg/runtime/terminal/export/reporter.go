package export

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/storage-audit/pkg/models/domain"
	"github.com/de-tools/storage-audit/pkg/services/audit"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	AllAccountsTitle       = "All storage accounts"
	ExceedingAccountsTitle = "Storage accounts exceeding their threshold"
	NoExceedanceNotice     = "No storage accounts exceeded their threshold."
)

// Reporter renders audit results as console tables
type Reporter struct {
	writer io.Writer
	style  table.Style
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		style:  table.StyleLight,
	}
}

// Handle prints the all-accounts table followed by the exceeding table, or the
// no-exceedance notice when nothing is above its threshold.
func (r *Reporter) Handle(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	if err := r.renderUsage(AllAccountsTitle, report.All); err != nil {
		return err
	}

	if len(report.Exceeding) == 0 {
		if _, err := fmt.Fprintf(r.writer, "\n%s\n", NoExceedanceNotice); err != nil {
			return err
		}
	} else if err := r.renderUsage(ExceedingAccountsTitle, report.Exceeding); err != nil {
		return err
	}

	if failures := report.FailureErr(); failures != nil {
		if _, err := fmt.Fprintf(r.writer, "\n%d item(s) were skipped because of errors: %v", len(report.Failures), failures); err != nil {
			return err
		}
	}
	return nil
}

// HandleSelection prints the subscriptions an audit would cover
func (r *Reporter) HandleSelection(selections []audit.Selection) error {
	t := r.newTable("Selected subscriptions")
	t.AppendHeader(table.Row{"Subscription", "Subscription ID", "Threshold (GB)"})
	for _, s := range selections {
		t.AppendRow(table.Row{s.Name, s.ID, s.ThresholdGB})
	}
	return r.write(t.Render())
}

func (r *Reporter) renderUsage(title string, records []domain.UsageRecord) error {
	t := r.newTable(title)
	t.AppendHeader(table.Row{
		"Subscription", "Subscription ID", "Storage Account", "Resource Group",
		"Location", "Used (GB)", "Threshold (GB)", "Exceeds",
	})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.SubscriptionName,
			rec.SubscriptionID,
			rec.AccountName,
			rec.ResourceGroup,
			rec.Location,
			fmt.Sprintf("%.2f", rec.UsedGB),
			rec.ThresholdGB,
			rec.Exceeds,
		})
	}
	return r.write(t.Render())
}

func (r *Reporter) newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.SetStyle(r.style)
	return t
}

func (r *Reporter) write(rendered string) error {
	_, err := fmt.Fprintf(r.writer, "\n%s\n", rendered)
	return err
}
