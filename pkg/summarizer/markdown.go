package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as Markdown tables.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Transform Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Settings.Command != "" {
		fmt.Fprintf(&b, "| %s | %s |\n", t("Command"), s.Settings.Command)
	}
	fmt.Fprintf(&b, "| %s | %d |\n", t("Quality"), s.Settings.Quality)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Auto Orientation"), f.yesNo(s.Settings.AutoOrient))
	if s.Settings.Workers > 0 {
		fmt.Fprintf(&b, "| %s | %d |\n", t("Workers"), s.Settings.Workers)
	}
	if s.Settings.QueueSize > 0 {
		fmt.Fprintf(&b, "| %s | %d |\n", t("Queue Size"), s.Settings.QueueSize)
	}

	if len(s.Runs) > 1 {
		failed := 0
		for _, r := range s.Runs {
			if r.Err != "" {
				failed++
			}
		}
		fmt.Fprintf(&b, "\n%s: %d, %s: %d\n", t("Succeeded"), len(s.Runs)-failed, t("Failed"), failed)
	}

	for _, r := range s.Runs {
		f.formatRun(&b, r)
	}

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\npixelworker %s\n", f.version)
	}

	return b.String()
}

func (f *MarkdownFormatter) formatRun(b *strings.Builder, r Run) {
	t := f.translate

	fmt.Fprintf(b, "\n## %s\n\n", r.Input.Path)
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))

	if r.Err != "" {
		fmt.Fprintf(b, "| %s | %s |\n", t("Output"), r.Output.Path)
		fmt.Fprintf(b, "| %s | %s |\n", t("Error"), r.Err)
		return
	}

	fmt.Fprintf(b, "| %s | %s (%s, %s) |\n", t("Input"), r.Input.Path, r.Input.Format, dims(r.Input.Width, r.Input.Height))
	fmt.Fprintf(b, "| %s | %s (%s, %s) |\n", t("Output"), r.Output.Path, r.Output.Format, dims(r.Output.Width, r.Output.Height))
	fmt.Fprintf(b, "| %s | %s |\n", t("Output Size"), formatBytes(r.Output.Bytes))
	fmt.Fprintf(b, "| %s | %s |\n", t("Total Time"), formatDuration(r.Duration))

	if len(r.Steps) == 0 {
		return
	}

	fmt.Fprintf(b, "\n| # | %s | %s | %s | %s |\n|---|---|---|---|---|\n",
		t("Operation"), t("Input"), t("Output"), t("Time"))
	for _, s := range r.Steps {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s |\n",
			s.Index, s.Op, dims(s.InputWidth, s.InputHeight), dims(s.OutputWidth, s.OutputHeight), formatDuration(s.Duration))
	}
}

func (f *MarkdownFormatter) yesNo(v bool) string {
	if v {
		return f.translate("Yes")
	}
	return f.translate("No")
}

func dims(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}

// formatDuration renders milliseconds with one decimal.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1f ms", float64(d.Microseconds())/1000)
}

// formatBytes renders a size with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
