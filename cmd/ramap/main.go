package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/djherbis/times"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dyuri/ramap/internal/grid"
	"github.com/dyuri/ramap/internal/meg"
	"github.com/dyuri/ramap/internal/model"
	"github.com/dyuri/ramap/pkg/ramap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var log = logrus.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ramap",
	Short: "Inspect, validate and repack Red Alert scenario maps",
	Long: `ramap is a tool for working with Red Alert scenario map files.

It loads classic .ini and remastered .mpr maps, reports and repairs
broken content, writes clean copies, and packages maps into .meg
archives with their JSON metadata.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(repackCmd)
	rootCmd.AddCommand(unpackCmd)
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadMap reads a map file with the shared options.
func loadMap(path string, opts ramap.Options) (*model.Map, *ramap.LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	log.WithField("file", path).Debug("loading map")
	m, report, err := ramap.Load(f, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, report, nil
}

// options builds library options from the --rules flag, if the command
// has one.
func options(cmd *cobra.Command) (ramap.Options, error) {
	opts := ramap.Options{Logger: log}
	if cmd.Flags().Lookup("rules") == nil {
		return opts, nil
	}
	rulesPath, _ := cmd.Flags().GetString("rules")
	if rulesPath == "" {
		return opts, nil
	}
	data, err := os.ReadFile(rulesPath)
	if err != nil {
		return opts, fmt.Errorf("read rules file: %w", err)
	}
	opts.Rules = data
	return opts, nil
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info <map>",
	Short: "Display map information",
	Long: `Display metadata and statistics about a map file.

Shows the scenario name, theater, playable area, and counts of
triggers, teams and placed objects.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Bool("json", false, "Output as JSON")
	infoCmd.Flags().Bool("brief", false, "Show only summary")
	infoCmd.Flags().String("rules", "", "Rules file overriding building values")
}

type houseEconomy struct {
	House      string `json:"house"`
	Structures int    `json:"structures"`
	Power      int    `json:"power"`
	Drain      int    `json:"drain"`
	Storage    int    `json:"storage"`
}

type mapInfo struct {
	File      string         `json:"file"`
	Name      string         `json:"name"`
	Author    string         `json:"author,omitempty"`
	Player    string         `json:"player"`
	Theater   string         `json:"theater"`
	Bounds    [4]int         `json:"bounds"`
	Triggers  int            `json:"triggers"`
	Teams     int            `json:"teams"`
	Objects   int            `json:"objects"`
	Waypoints int            `json:"waypoints"`
	Economy   []houseEconomy `json:"economy,omitempty"`
	Messages  int            `json:"messages"`
	FileSize  int64          `json:"fileSize"`
	Modified  time.Time      `json:"modified"`
	Created   time.Time      `json:"created,omitzero"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")
	brief, _ := cmd.Flags().GetBool("brief")

	opts, err := options(cmd)
	if err != nil {
		return err
	}
	m, report, err := loadMap(inputPath, opts)
	if err != nil {
		return err
	}

	stat, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("stat input file: %w", err)
	}
	ts, err := times.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("stat input file: %w", err)
	}

	info := mapInfo{
		File:     inputPath,
		Name:     m.Basic.Name,
		Author:   m.Basic.Author,
		Player:   m.Basic.Player,
		Theater:  m.Theater.String(),
		Bounds:   [4]int{m.Bounds.X, m.Bounds.Y, m.Bounds.Width, m.Bounds.Height},
		Triggers: len(m.Triggers),
		Teams:    len(m.TeamTypes),
		Objects:  m.Technos.Len(),
		Messages: len(report.Messages),
		FileSize: stat.Size(),
		Modified: ts.ModTime(),
	}
	if ts.HasBirthTime() {
		info.Created = ts.BirthTime()
	}
	for _, wp := range m.Waypoints {
		if wp.HasCell() {
			info.Waypoints++
		}
	}
	for house, e := range m.Economies() {
		info.Economy = append(info.Economy, houseEconomy{
			House:      house,
			Structures: e.Structures,
			Power:      e.Power,
			Drain:      e.Drain,
			Storage:    e.Storage,
		})
	}
	sort.Slice(info.Economy, func(i, j int) bool {
		return info.Economy[i].House < info.Economy[j].House
	})

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}
	outputInfoText(info, brief)
	return nil
}

func outputInfoText(info mapInfo, brief bool) {
	if brief {
		fmt.Printf("%s: %q %s %dx%d Triggers=%d Teams=%d Objects=%d\n",
			info.File, info.Name, info.Theater, info.Bounds[2], info.Bounds[3],
			info.Triggers, info.Teams, info.Objects)
		return
	}

	fmt.Printf("Map File: %s\n", info.File)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	fmt.Println("Scenario:")
	fmt.Printf("  Name:             %s\n", info.Name)
	if info.Author != "" {
		fmt.Printf("  Author:           %s\n", info.Author)
	}
	fmt.Printf("  Player:           %s\n", info.Player)
	fmt.Printf("  Theater:          %s\n", info.Theater)
	fmt.Printf("  Playable area:    %d,%d %dx%d\n", info.Bounds[0], info.Bounds[1], info.Bounds[2], info.Bounds[3])
	fmt.Println()

	fmt.Println("Contents:")
	fmt.Printf("  Triggers:         %d\n", info.Triggers)
	fmt.Printf("  Teams:            %d\n", info.Teams)
	fmt.Printf("  Objects:          %d\n", info.Objects)
	fmt.Printf("  Waypoints:        %d\n", info.Waypoints)
	if info.Messages > 0 {
		fmt.Printf("  Load messages:    %d (run validate for details)\n", info.Messages)
	}
	fmt.Println()

	if len(info.Economy) > 0 {
		fmt.Println("Structures:")
		for _, e := range info.Economy {
			fmt.Printf("  %-16s  %3d built, power %d/%d, storage %d\n", e.House+":", e.Structures, e.Power, e.Drain, e.Storage)
		}
		fmt.Println()
	}

	fmt.Printf("File Size:          %s (%d bytes)\n", formatBytes(info.FileSize), info.FileSize)
	fmt.Printf("Modified:           %s\n", info.Modified.Format(time.DateTime))
	if !info.Created.IsZero() {
		fmt.Printf("Created:            %s\n", info.Created.Format(time.DateTime))
	}
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// validate command
var validateCmd = &cobra.Command{
	Use:   "validate <map>",
	Short: "Validate map contents",
	Long: `Validate triggers, teams and object trigger links of a map.

Problems that keep the game from loading the map are errors; everything
else is a warning. With --fix the repairable problems are repaired and
the result is written to --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Fail on warnings")
	validateCmd.Flags().Bool("fix", false, "Repair problems where possible")
	validateCmd.Flags().StringP("output", "o", "", "Output file for --fix")
	validateCmd.Flags().String("rules", "", "Rules file overriding building values")
}

func runValidate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	strict, _ := cmd.Flags().GetBool("strict")
	fix, _ := cmd.Flags().GetBool("fix")
	outputPath, _ := cmd.Flags().GetString("output")

	if fix && outputPath == "" {
		return fmt.Errorf("--fix needs --output")
	}

	opts, err := options(cmd)
	if err != nil {
		return err
	}
	m, report, err := loadMap(inputPath, opts)
	if err != nil {
		return err
	}

	v := newValidator(strict, inputPath)
	for _, msg := range report.Messages {
		v.warning("%s", msg)
	}

	// Fatal problems are collected first so the full pass can tell them
	// apart.
	check, err := ramap.Check(m, opts)
	if err != nil {
		return err
	}
	fatal := make(map[string]bool, len(check.Messages))
	for _, msg := range check.Messages {
		fatal[msg] = true
	}

	result, err := ramap.Validate(m, opts, fix)
	if err != nil {
		return err
	}
	for _, msg := range result.Messages {
		if fatal[msg] {
			v.error("%s", msg)
		} else {
			v.warning("%s", msg)
		}
	}

	v.printResults()

	if fix {
		if err := writeMap(outputPath, m, opts); err != nil {
			return err
		}
		fmt.Printf("\nWrote %s\n", outputPath)
	}

	if v.hasErrors() || (strict && v.hasWarnings()) {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func writeMap(path string, m *model.Map, opts ramap.Options) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := ramap.Save(out, m, opts); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("save map: %w", err)
	}
	return out.Close()
}

// validator holds validation state
type validator struct {
	strict   bool
	errors   []string
	warnings []string
	file     string
}

func newValidator(strict bool, file string) *validator {
	return &validator{
		strict:   strict,
		errors:   make([]string, 0),
		warnings: make([]string, 0),
		file:     file,
	}
}

func (v *validator) error(msg string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf(msg, args...))
}

func (v *validator) warning(msg string, args ...interface{}) {
	v.warnings = append(v.warnings, fmt.Sprintf(msg, args...))
}

func (v *validator) hasErrors() bool {
	return len(v.errors) > 0
}

func (v *validator) hasWarnings() bool {
	return len(v.warnings) > 0
}

func (v *validator) printResults() {
	fmt.Printf("Validating: %s\n", v.file)
	fmt.Println(strings.Repeat("=", 50))

	if len(v.errors) == 0 && len(v.warnings) == 0 {
		fmt.Println("✓ Valid map - no issues found")
		return
	}

	if len(v.errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(v.errors))
		for _, err := range v.errors {
			fmt.Printf("  ✗ %s\n", err)
		}
	}

	if len(v.warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(v.warnings))
		for _, warn := range v.warnings {
			fmt.Printf("  ⚠ %s\n", warn)
		}
	}

	fmt.Println()
	if len(v.errors) > 0 {
		fmt.Printf("Validation failed: %d error(s)", len(v.errors))
		if len(v.warnings) > 0 {
			fmt.Printf(", %d warning(s)", len(v.warnings))
		}
		fmt.Println()
	} else if len(v.warnings) > 0 {
		fmt.Printf("Validation passed with %d warning(s)\n", len(v.warnings))
		if v.strict {
			fmt.Println("(use without --strict to ignore warnings)")
		}
	}
}

// repack command
var repackCmd = &cobra.Command{
	Use:   "repack <map>",
	Short: "Load a map and write a clean copy",
	Long: `Load a map, apply the load-time repairs, and write it back out.

With --meg the map and its JSON metadata are also packaged into a MEG
archive for the remastered game.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepack,
}

func init() {
	repackCmd.Flags().StringP("output", "o", "", "Output file (required)")
	repackCmd.MarkFlagRequired("output")
	repackCmd.Flags().String("rules", "", "Rules file overriding building values")
	repackCmd.Flags().String("meg", "", "Also write a MEG archive")
	repackCmd.Flags().String("archive-dir", "data/custom_maps", "Directory of the map inside the MEG archive")
	repackCmd.Flags().Bool("force", false, "Save even if the map fails validation")
}

func runRepack(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	megPath, _ := cmd.Flags().GetString("meg")
	archiveDir, _ := cmd.Flags().GetString("archive-dir")
	force, _ := cmd.Flags().GetBool("force")

	opts, err := options(cmd)
	if err != nil {
		return err
	}
	opts.Force = force

	m, report, err := loadMap(inputPath, opts)
	if err != nil {
		return err
	}
	for _, msg := range report.Messages {
		log.Warn(msg)
	}

	if err := writeMap(outputPath, m, opts); err != nil {
		return err
	}

	if megPath != "" {
		out, err := os.Create(megPath)
		if err != nil {
			return fmt.Errorf("create archive: %w", err)
		}
		name := archiveDir + "/" + filepath.Base(outputPath)
		if err := ramap.WriteArchive(out, name, m, opts); err != nil {
			out.Close()
			os.Remove(megPath)
			return fmt.Errorf("write archive: %w", err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("write archive: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Successfully repacked %s to %s\n", inputPath, outputPath)
	fmt.Fprintf(os.Stderr, "  Theater: %s, Triggers: %d, Teams: %d, Objects: %d\n",
		m.Theater, len(m.Triggers), len(m.TeamTypes), m.Technos.Len())
	if report.Modified {
		fmt.Fprintf(os.Stderr, "  %d problem(s) were repaired while loading\n", len(report.Messages))
	}
	if megPath != "" {
		fmt.Fprintf(os.Stderr, "  Archive: %s\n", megPath)
	}
	return nil
}

// unpack command
var unpackCmd = &cobra.Command{
	Use:   "unpack <map>",
	Short: "Dump the decoded tile or overlay grid",
	Long: `Write the decoded contents of the MapPack or OverlayPack section.

Tiles are 16384 little endian template ids followed by 16384 icon
bytes. Overlay is 16384 overlay ids, 0xFF for empty cells.`,
	Args: cobra.ExactArgs(1),
	RunE: runUnpack,
}

func init() {
	unpackCmd.Flags().StringP("output", "o", "", "Output file (required)")
	unpackCmd.MarkFlagRequired("output")
	unpackCmd.Flags().Bool("tiles", false, "Dump the tile grid")
	unpackCmd.Flags().Bool("overlay", false, "Dump the overlay grid")
	unpackCmd.MarkFlagsOneRequired("tiles", "overlay")
	unpackCmd.MarkFlagsMutuallyExclusive("tiles", "overlay")
}

func runUnpack(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	tiles, _ := cmd.Flags().GetBool("tiles")

	m, _, err := loadMap(inputPath, ramap.Options{Logger: log})
	if err != nil {
		return err
	}

	var data []byte
	if tiles {
		data = grid.EncodeTiles(m.Templates)
	} else {
		data = grid.EncodeOverlay(m.Overlay)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%s)\n", outputPath, formatBytes(int64(len(data))))
	return nil
}

// meta command
var metaCmd = &cobra.Command{
	Use:   "meta <map>",
	Short: "Write the JSON metadata of a map",
	Args:  cobra.ExactArgs(1),
	RunE:  runMeta,
}

func init() {
	metaCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
}

func runMeta(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	m, _, err := loadMap(args[0], ramap.Options{Logger: log})
	if err != nil {
		return err
	}

	if outputPath == "" {
		return ramap.WriteMetadata(os.Stdout, m)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()
	return ramap.WriteMetadata(out, m)
}

// extract command
var extractCmd = &cobra.Command{
	Use:   "extract <archive.meg>",
	Short: "Extract files from a MEG archive",
	Long: `Extract the files of an unencrypted MEG archive, such as a
packaged custom map.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("output", "o", ".", "Output directory")
	extractCmd.Flags().BoolP("list", "l", false, "List files without extracting")
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	list, _ := cmd.Flags().GetBool("list")

	if list {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input file: %w", err)
		}
		defer f.Close()
		stat, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat input file: %w", err)
		}
		entries, err := meg.Read(f, stat.Size())
		if err != nil {
			return err
		}
		fmt.Printf("Found %d file(s) in %s:\n", len(entries), filepath.Base(inputPath))
		for _, e := range entries {
			fmt.Printf("  - %s (%d bytes)\n", e.Name, e.Size)
		}
		return nil
	}

	extracted, err := meg.Extract(inputPath, outputPath)
	if err != nil {
		return err
	}
	fmt.Printf("Extracted %d file(s) to %s:\n", len(extracted), outputPath)
	for _, file := range extracted {
		stat, _ := os.Stat(file)
		fmt.Printf("  - %s (%d bytes)\n", file, stat.Size())
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ramap version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
	},
}
