// bomgen generates Bill-of-Materials documents from schema files on disk.
// It is a thin wrapper over the engine for testing schemas outside the web
// application.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/FreshSupaSulley/ABC/bom"
	"github.com/FreshSupaSulley/ABC/catalog"
	"github.com/FreshSupaSulley/ABC/internal/logger"
	"github.com/FreshSupaSulley/ABC/render"
)

var (
	catalogPath string
	answersPath string
	outputPath  string
	asSheet     bool
)

var rootCmd = &cobra.Command{
	Use:   "bomgen",
	Short: "Generate Bill-of-Materials documents from schema files",
}

var checkCmd = &cobra.Command{
	Use:   "check [schema.yaml]",
	Short: "Validate a schema the way a save action does",
	Long: `Parses the schema, answers every question with its declared default,
and runs the full generation pipeline in dry-run mode. An empty BOM is
accepted; any other validation failure is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var generateCmd = &cobra.Command{
	Use:   "generate [schema.yaml]",
	Short: "Generate a BOM document from a schema and an answers file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	checkCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "YAML catalog file (optional; defaults to an empty catalog)")

	generateCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "YAML catalog file (required)")
	generateCmd.Flags().StringVarP(&answersPath, "answers", "a", "", "YAML file mapping question names to answers (required)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: <schema>-bom.pdf)")
	generateCmd.Flags().BoolVar(&asSheet, "xlsx", false, "write the spreadsheet artifact instead of the PDF")
	_ = generateCmd.MarkFlagRequired("catalog")
	_ = generateCmd.MarkFlagRequired("answers")

	rootCmd.AddCommand(checkCmd, generateCmd)
}

func main() {
	logger.Setup()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	cat := catalog.NewInMemory()
	if catalogPath != "" {
		if cat, err = catalog.LoadFile(catalogPath); err != nil {
			return err
		}
	}

	gen := bom.NewGenerator(cat, render.DefaultConfig(), slog.Default())
	schema, err := gen.Check(patternName(args[0]), doc)
	if err != nil {
		return err
	}

	fmt.Printf("OK: %d question(s), %d rule(s)\n", len(schema.Questions), len(schema.Rules))
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	cat, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return err
	}

	answersData, err := os.ReadFile(answersPath)
	if err != nil {
		return err
	}
	var answers map[string]any
	if err := yaml.Unmarshal(answersData, &answers); err != nil {
		return fmt.Errorf("failed to parse answers file: %w", err)
	}

	name := patternName(args[0])
	gen := bom.NewGenerator(cat, render.DefaultConfig(), slog.Default())

	var out []byte
	ext := "pdf"
	if asSheet {
		out, err = gen.GenerateSheet(name, doc, answers)
		ext = "xlsx"
	} else {
		out, err = gen.Generate(name, doc, answers)
	}
	if err != nil {
		return err
	}

	dest := outputPath
	if dest == "" {
		dest = fmt.Sprintf("%s-bom.%s", name, ext)
	}
	if err := os.WriteFile(dest, out, 0o644); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d bytes)\n", dest, len(out))
	return nil
}

func patternName(schemaPath string) string {
	base := filepath.Base(schemaPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
