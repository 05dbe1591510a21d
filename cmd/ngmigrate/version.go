package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ngmigrate/internal/version"
)

type versionInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include git commit and build date")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ngmigrate build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(versionFormat)
		switch format {
		case "pretty", "json":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}

		info := collectVersionInfo()
		if format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), info, versionShowFull)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, versionShowFull)
		return nil
	},
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, full bool) {
	fmt.Fprintf(out, "ngmigrate %s\n", info.Version)
	if full {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, full bool) error {
	payload := versionPayload{
		Tool:    "ngmigrate",
		Version: info.Version,
	}
	if full {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
