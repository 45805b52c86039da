package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/lucidshield/sentinel/internal/config"
	"github.com/lucidshield/sentinel/pkg/sentinel"
)

func main() {
	os.Exit(run())
}

func run() int {
	textFlag := flag.String("text", "", "inline text to scan")
	fileFlag := flag.String("file", "", "path to file to scan")
	configFlag := flag.String("config", "", "path to config YAML file")
	jsonFlag := flag.Bool("json", false, "output structured JSON")
	flag.Parse()

	text, err := readInput(*textFlag, *fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	var cfg *config.Config
	if *configFlag != "" {
		cfg, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			return 2
		}
	} else {
		cfg = config.DefaultConfig()
	}

	r, err := sentinel.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building recognizer: %v\n", err)
		return 2
	}

	detections := r.Extract(text)
	result := sentinel.ApplyMasking(text, detections)

	if *jsonFlag {
		return outputJSON(result)
	}
	return outputPretty(result, isTerminal())
}

func readInput(textFlag, fileFlag string) (string, error) {
	switch {
	case textFlag != "":
		return textFlag, nil
	case fileFlag != "":
		data, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		return string(data), nil
	default:
		stat, err := os.Stdin.Stat()
		if err != nil {
			return "", fmt.Errorf("checking stdin: %w", err)
		}
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return "", fmt.Errorf("no input provided (use --text, --file, or pipe to stdin)")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
}

func isTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func outputJSON(result sentinel.MaskResult) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "error encoding JSON: %v\n", err)
		return 2
	}
	if len(result.Detections) > 0 {
		return 1
	}
	return 0
}

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorBold    = "\033[1m"
)

func kindColor(kind string) string {
	switch kind {
	case "person":
		return colorMagenta
	case "phone", "ip":
		return colorYellow
	case "email", "url", "domain":
		return colorCyan
	case "financial", "credit_card", "custom":
		return colorRed
	case "iban", "saudi_id", "ssn":
		return colorGreen
	default:
		return colorBlue
	}
}

func outputPretty(result sentinel.MaskResult, useColor bool) int {
	count := len(result.Detections)

	header := fmt.Sprintf("─── ORIGINAL (%d detections found) ", count)
	header += strings.Repeat("─", max(0, 56-len(header)))
	printHeader(header, useColor)

	if useColor && count > 0 {
		fmt.Println(highlight(result.OriginalText, result.Detections))
	} else {
		fmt.Println(result.OriginalText)
	}

	fmt.Println()
	printHeader("─── REDACTED "+strings.Repeat("─", 43), useColor)
	fmt.Println(result.RedactedText)

	if count > 0 {
		fmt.Println()
		printHeader("─── STATISTICS "+strings.Repeat("─", 41), useColor)

		s := sentinel.ComputeStats(result.Detections)
		fmt.Printf("Total: %d\n\n", s.TotalDetections)

		kinds := make(map[string]int)
		for _, d := range result.Detections {
			kinds[string(d.Kind)]++
		}
		names := make([]string, 0, len(kinds))
		for k := range kinds {
			names = append(names, k)
		}
		sort.Strings(names)

		fmt.Printf("  %-14s %s\n", "Kind", "Count")
		for _, k := range names {
			if useColor {
				fmt.Printf("  %s%-14s%s %d\n", kindColor(k), k, colorReset, kinds[k])
			} else {
				fmt.Printf("  %-14s %d\n", k, kinds[k])
			}
		}
	}

	fmt.Println()

	if count > 0 {
		return 1
	}
	return 0
}

func printHeader(header string, useColor bool) {
	if useColor {
		fmt.Printf("%s%s%s\n", colorBold, header, colorReset)
	} else {
		fmt.Println(header)
	}
}

func highlight(text string, detections []sentinel.Detection) string {
	if len(detections) == 0 {
		return text
	}

	sorted := make([]sentinel.Detection, len(detections))
	copy(sorted, detections)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var buf strings.Builder
	lastEnd := 0
	for _, d := range sorted {
		if d.Start < lastEnd {
			continue
		}
		buf.WriteString(text[lastEnd:d.Start])
		buf.WriteString(kindColor(string(d.Kind)))
		buf.WriteString(colorBold)
		buf.WriteString(text[d.Start:d.End])
		buf.WriteString(colorReset)
		lastEnd = d.End
	}
	buf.WriteString(text[lastEnd:])
	return buf.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
