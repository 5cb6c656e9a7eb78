package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"copygate-be/internal/dto"
	"copygate-be/pkg/gate"
	"copygate-be/pkg/scoring"
	"copygate-be/pkg/voice"

	"github.com/fatih/color"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func main() {
	sectionsPath := flag.String("sections", "-", "Path to sections JSON object (name -> text), or - for stdin")
	profilePath := flag.String("profile", "", "Path to voice profile JSON (enables Pass 2)")
	pass1Threshold := flag.Float64("pass1-threshold", 0, "Pass 1 threshold override (0 = default)")
	pass2Threshold := flag.Float64("pass2-threshold", 0, "Pass 2 threshold override (0 = default)")
	override := flag.Bool("override", false, "Open the gate even if checks fail")
	overrideNote := flag.String("note", "", "Override justification, recorded in the result")
	jsonOut := flag.Bool("json", false, "Print the full result as JSON")
	flag.Parse()

	raw, err := readInput(*sectionsPath)
	if err != nil {
		color.Red("Failed to read sections: %v", err)
		os.Exit(1)
	}

	var sections dto.OrderedSections
	if err := json.Unmarshal(raw, &sections); err != nil {
		color.Red("Failed to parse sections: %v", err)
		os.Exit(1)
	}

	var profile *voice.Profile
	if *profilePath != "" {
		rawProfile, err := os.ReadFile(*profilePath)
		if err != nil {
			color.Red("Failed to read profile: %v", err)
			os.Exit(1)
		}
		profile = &voice.Profile{}
		if err := json.Unmarshal(rawProfile, profile); err != nil {
			color.Red("Failed to parse profile: %v", err)
			os.Exit(1)
		}
	}

	g := gate.New(gate.Config{
		Profile:        profile,
		Pass1Threshold: *pass1Threshold,
		Pass2Threshold: *pass2Threshold,
	})
	result := g.Run([]scoring.Section(sections), *override, *overrideNote)

	if *jsonOut {
		prettyPrint(result)
	} else {
		printReport(result)
	}

	if !result.GateOpen {
		os.Exit(1)
	}
}

func printReport(r gate.Result) {
	switch r.GateStatus {
	case gate.StatusPass:
		color.Green("GATE: OPEN (%s)", r.GateStatus)
	case gate.StatusOverride:
		color.Yellow("GATE: OPEN (%s)", r.GateStatus)
	default:
		color.Red("GATE: CLOSED (%s)", r.GateStatus)
	}

	fmt.Println()
	printPass("Pass 1 (AI detection)", r.Pass1)
	printPass("Pass 2 (voice alignment)", r.Pass2)

	if len(r.SectionOrder) > 0 {
		fmt.Println()
		color.Cyan("Sections:")
		for _, name := range r.SectionOrder {
			sec := r.Sections[name]
			mark := color.GreenString("ok")
			if !sec.Pass {
				mark = color.RedString("FAIL")
			}
			fmt.Printf("  %-20s %s  pass1=%.3f", name, mark, sec.Pass1Score)
			if sec.Pass2Score != nil {
				fmt.Printf("  pass2=%.3f", *sec.Pass2Score)
			}
			fmt.Println()
			for _, f := range sec.Pass1Failures {
				color.Red("    - %s", f)
			}
			for _, f := range sec.Pass2Failures {
				color.Red("    - %s", f)
			}
		}
	}

	if r.OverrideApplied {
		fmt.Println()
		color.Yellow("Override note: %s", r.OverrideNote)
	}

	fmt.Println()
	fmt.Println(r.Summary)
	color.Cyan("Next: %s", r.ActionRequired)
}

func printPass(label string, p gate.PassSummary) {
	if !p.Active {
		color.Yellow("%s: skipped (no profile)", label)
		return
	}

	status := color.GreenString("pass")
	if !p.Pass {
		status = color.RedString("fail")
	}
	line := fmt.Sprintf("%s: %s", label, status)
	if p.Score != nil && p.Threshold != nil {
		line += fmt.Sprintf("  score=%.3f  threshold=%.2f", *p.Score, *p.Threshold)
	}
	if p.ProfileUsed != "" {
		line += fmt.Sprintf("  profile=%s", p.ProfileUsed)
	}
	fmt.Println(line)
}
