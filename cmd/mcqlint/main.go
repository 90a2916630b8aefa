package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/letsssgooo/mcqPollBot/internal/mcq"
)

func main() {
	flagFormat := pflag.Bool("format", false, "print questions in canonical format instead of a report")
	flagStrict := pflag.Bool("strict", false, "drop questions whose answer can not be resolved")
	flagNoColor := pflag.Bool("no-color", false, "disable colored output")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file ...]\n\nReads stdin when no files are given.\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	var opts []mcq.Option
	if *flagStrict {
		opts = append(opts, mcq.WithStrictAnswers())
	}
	parser := mcq.NewParser(opts...)

	inputs := pflag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	st := newStyles(*flagNoColor || !term.IsTerminal(int(os.Stdout.Fd())))
	total := 0

	for _, name := range inputs {
		data, err := readInput(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, st.err.Render(err.Error()))
			os.Exit(2)
		}

		report := parser.ParseReport(string(data))
		total += len(report.Records)

		if *flagFormat {
			fmt.Print(mcq.Format(report.Records))
			continue
		}

		fmt.Print(renderReport(st, name, report))
	}

	if total == 0 {
		fmt.Fprintln(os.Stderr, st.err.Render("no valid questions found"))
		os.Exit(1)
	}
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return data, nil
}

type styles struct {
	title   lipgloss.Style
	prompt  lipgloss.Style
	correct lipgloss.Style
	option  lipgloss.Style
	muted   lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}

	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		prompt:  lipgloss.NewStyle().Bold(true),
		correct: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		option:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func renderReport(st styles, name string, report mcq.Report) string {
	var sb strings.Builder

	sb.WriteString(st.title.Render(name))
	sb.WriteString("\n")

	for i, r := range report.Records {
		sb.WriteString(st.prompt.Render(fmt.Sprintf("%d. %s", i+1, r.Prompt)))
		sb.WriteString("\n")

		for j, opt := range r.Options {
			line := fmt.Sprintf("   %s) %s", mcq.IndexToLetter(j), opt)
			if j == r.CorrectIndex {
				sb.WriteString(st.correct.Render(line + " *"))
			} else {
				sb.WriteString(st.option.Render(line))
			}
			sb.WriteString("\n")
		}

		if r.Explanation != "" {
			sb.WriteString(st.muted.Render("   " + r.Explanation))
			sb.WriteString("\n")
		}
	}

	summary := fmt.Sprintf("%d questions from %d blocks", len(report.Records), report.Blocks)
	sb.WriteString(st.title.Render(summary))
	if report.Dropped > 0 {
		sb.WriteString(st.warn.Render(fmt.Sprintf(", %d dropped", report.Dropped)))
	}
	if report.Defaulted > 0 {
		sb.WriteString(st.warn.Render(fmt.Sprintf(", %d answers defaulted to A", report.Defaulted)))
	}
	sb.WriteString("\n\n")

	return sb.String()
}
