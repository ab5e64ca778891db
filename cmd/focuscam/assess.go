package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	app "focus-cam/internal/application"
)

type assessLine struct {
	File         string  `json:"file"`
	Focus        float64 `json:"focus"`
	Brightness   float64 `json:"brightness"`
	FocusOK      bool    `json:"focus_ok"`
	BrightnessOK bool    `json:"brightness_ok"`
	Uploaded     bool    `json:"uploaded"`
	Error        string  `json:"error,omitempty"`
}

// NewAssessCmd оценивает файлы изображений.
func NewAssessCmd() *cobra.Command {
	var (
		asJSON     bool
		withUpload bool
	)
	cmd := &cobra.Command{
		Use:   "assess FILE...",
		Short: "Print focus and brightness metrics for image files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !withUpload {
				cfg.UploadURL = ""
			}
			a, err := buildApp(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.close(); err != nil {
					log.Printf("Close error: %v", err)
				}
			}()

			lines := make([]assessLine, 0, len(args))
			failed := 0
			for _, path := range args {
				line := assessFile(cmd, a.container.InspectionService, path)
				if line.Error != "" {
					failed++
				}
				lines = append(lines, line)
			}

			if err := printAssessment(cmd.OutOrStdout(), lines, asJSON); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be assessed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&withUpload, "upload", false, "Upload files that pass both checks")
	return cmd
}

func assessFile(cmd *cobra.Command, svc *app.InspectionService, path string) assessLine {
	line := assessLine{File: path}
	data, err := os.ReadFile(path)
	if err != nil {
		line.Error = err.Error()
		return line
	}

	out, err := svc.ProcessPhoto(cmd.Context(), data)
	if err != nil {
		line.Error = err.Error()
		return line
	}
	a := out.Assessment
	line.Focus = a.Metrics.Focus
	line.Brightness = a.Metrics.Brightness
	line.FocusOK = a.Readiness.FocusOK
	line.BrightnessOK = a.Readiness.BrightnessOK
	line.Uploaded = out.Uploaded()
	return line
}

func printAssessment(w io.Writer, lines []assessLine, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lines)
	}
	for _, l := range lines {
		if l.Error != "" {
			fmt.Fprintf(w, "%s: error: %s\n", l.File, l.Error)
			continue
		}
		fmt.Fprintf(w, "%s: focus=%.1f (%s) brightness=%.1f (%s)\n",
			l.File, l.Focus, okText(l.FocusOK), l.Brightness, okText(l.BrightnessOK))
	}
	return nil
}

func okText(ok bool) string {
	if ok {
		return "ok"
	}
	return "low"
}
