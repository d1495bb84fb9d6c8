package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/finsight-cli/internal/classify"
	cfgpkg "github.com/KaramelBytes/finsight-cli/internal/config"
	"github.com/KaramelBytes/finsight-cli/internal/dataset"
	"github.com/KaramelBytes/finsight-cli/internal/ingest"
	"github.com/KaramelBytes/finsight-cli/internal/utils"
)

// inputFlags are the file-reading flags shared by every analysis command.
type inputFlags struct {
	sheetName  string
	sheetIndex int
	delimiter  string
	decimal    string
	thousands  string
}

func (in *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	cmd.Flags().IntVar(&in.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	cmd.Flags().StringVar(&in.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|' (sniffed if omitted)")
	cmd.Flags().StringVar(&in.decimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	cmd.Flags().StringVar(&in.thousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
}

func (in *inputFlags) options(c *cfgpkg.Global) (ingest.Options, error) {
	opt := ingest.Options{SheetName: in.sheetName, SheetIndex: in.sheetIndex}
	switch in.delimiter {
	case "":
	case ",":
		opt.Delimiter = ','
	case "\t", "tab":
		opt.Delimiter = '\t'
	case ";":
		opt.Delimiter = ';'
	case "|", "pipe":
		opt.Delimiter = '|'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", in.delimiter)
	}
	opt.Number.DecimalSeparator = cfgpkg.Separator(c.DecimalSeparator)
	switch strings.ToLower(strings.TrimSpace(in.decimal)) {
	case ",", "comma":
		opt.Number.DecimalSeparator = ','
	case ".", "dot":
		opt.Number.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", in.decimal)
	}
	opt.Number.ThousandsSeparator = cfgpkg.Separator(c.ThousandsSeparator)
	switch strings.ToLower(in.thousands) {
	case ",":
		opt.Number.ThousandsSeparator = ','
	case ".":
		opt.Number.ThousandsSeparator = '.'
	case "space", " ":
		opt.Number.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", in.thousands)
	}
	return opt, nil
}

// load reads path and returns the dataset together with best-guess columns.
func (in *inputFlags) load(path string) (*dataset.Dataset, classify.Defaults, error) {
	opt, err := in.options(settings())
	if err != nil {
		return nil, classify.Defaults{}, err
	}
	ds, err := ingest.Load(path, opt)
	if err != nil {
		return nil, classify.Defaults{}, fmt.Errorf("load dataset: %w", err)
	}
	return ds, classify.PickDefaults(ds), nil
}

// outputFlags select where and how a result is written.
type outputFlags struct {
	path   string
	format string
}

func (out *outputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&out.path, "output", "o", "", "optional path to write the result")
	cmd.Flags().StringVar(&out.format, "format", "", "output format: json|text (default from config)")
}

// emit renders v as JSON, or through text when the text format is selected,
// to --output or the command's stdout.
func (out *outputFlags) emit(cmd *cobra.Command, v any, text func(io.Writer)) error {
	format := out.format
	if format == "" {
		format = settings().OutputFormat
	}
	var body []byte
	switch strings.ToLower(format) {
	case "json":
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		body = append(b, '\n')
	case "text":
		var sb strings.Builder
		text(&sb)
		body = []byte(sb.String())
	default:
		return fmt.Errorf("unsupported --format: %s (use json|text)", format)
	}
	if out.path != "" {
		if err := utils.SafeWriteFile(out.path, body); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote result to %s\n", out.path)
		return nil
	}
	_, err := cmd.OutOrStdout().Write(body)
	return err
}

// firstNonEmpty returns the flag value, or the fallback column guess.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
