package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"strings"

	"copygate-be/pkg/voice"

	"github.com/fatih/color"
)

func main() {
	inPath := flag.String("in", "-", "Path to source copy text, or - for stdin")
	outPath := flag.String("out", "", "Write profile JSON to this file (default stdout)")
	clientSlug := flag.String("client", "", "Client slug (required)")
	brandSlug := flag.String("brand", "", "Brand slug (required)")
	brandName := flag.String("name", "", "Brand display name")
	sourceURL := flag.String("url", "", "Source site URL")
	pages := flag.String("pages", "", "Comma separated list of pages sampled")
	flag.Parse()

	if *clientSlug == "" || *brandSlug == "" {
		color.Red("Both -client and -brand are required")
		os.Exit(1)
	}

	var raw []byte
	var err error
	if *inPath == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(*inPath)
	}
	if err != nil {
		color.Red("Failed to read source copy: %v", err)
		os.Exit(1)
	}

	var sampled []string
	if *pages != "" {
		for _, p := range strings.Split(*pages, ",") {
			sampled = append(sampled, strings.TrimSpace(p))
		}
	}

	extractor := voice.NewExtractor()
	profile := extractor.Extract(voice.ExtractInput{
		Text:               string(raw),
		ClientSlug:         *clientSlug,
		BrandSlug:          *brandSlug,
		BrandDisplayName:   *brandName,
		SourceURL:          *sourceURL,
		SourcePagesSampled: sampled,
		CaptureMethod:      "cli",
	})

	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		color.Red("Failed to marshal profile: %v", err)
		os.Exit(1)
	}

	if *outPath == "" {
		os.Stdout.Write(out)
		os.Stdout.Write([]byte("\n"))
	} else {
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			color.Red("Failed to write profile: %v", err)
			os.Exit(1)
		}
		color.Green("Profile %s written to %s", profile.ProfileID, *outPath)
	}

	if profile.CaptureConfidence != nil {
		color.Cyan("Capture confidence: %s (%d words)",
			profile.CaptureConfidence.Overall, profile.CaptureConfidence.SourceWordCount)
	}
}
