package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"KnitBoard/internal/config"
	"KnitBoard/internal/export"
	"KnitBoard/internal/logging"
	"KnitBoard/internal/share"
	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
	"KnitBoard/internal/ui"
)

// CustomURLScheme lets a share link be opened directly, e.g. knitboard://10.0.0.5:8888
const CustomURLScheme = "knitboard://"

func main() {
	cfg := config.Load()
	cfg.BindFlags(flag.CommandLine)
	join := flag.String("join", "", "view a shared board, e.g. ws://10.0.0.5:8888/ws")
	discover := flag.Bool("discover", false, "list boards shared on the local network and exit")
	exportPath := flag.String("export", "", "write the pattern file as a PDF chart to this path and exit")
	hideMarks := flag.Bool("hide-marks", false, "leave completed stitches undotted in -export")
	flag.Parse()

	logging.Setup(cfg.LogLevel)
	cfg.Validate()

	if args := flag.Args(); len(args) > 0 && strings.HasPrefix(args[0], CustomURLScheme) {
		*join = linkToURL(args[0])
	}

	switch {
	case *discover:
		runDiscover()
	case *exportPath != "":
		runExport(cfg, *exportPath, *hideMarks)
	case *join != "":
		logrus.Infof("Starting as VIEWER of %s", *join)
		ui.RunViewer(cfg, *join)
	default:
		logrus.Info("Starting editor")
		ui.RunApp(cfg)
	}
}

func linkToURL(link string) string {
	address := strings.TrimPrefix(link, CustomURLScheme)
	address = strings.TrimSuffix(address, "/")
	return "ws://" + address + "/ws"
}

func runDiscover() {
	found, err := share.Browse(3 * time.Second)
	if err != nil {
		logrus.Warnf("discovery incomplete: %v", err)
	}
	if len(found) == 0 {
		fmt.Println("No shared boards found.")
		os.Exit(1)
	}
	for _, url := range found {
		fmt.Println(url)
	}
}

// runExport prints the saved pattern at its own size, not the editor's.
func runExport(cfg config.Config, out string, hideMarks bool) {
	f, err := os.Open(cfg.ProjectPath)
	if err != nil {
		logrus.Fatalf("open pattern: %v", err)
	}
	doc, err := store.DecodeProject(f)
	f.Close()
	if err != nil {
		logrus.Fatalf("read pattern %s: %v", cfg.ProjectPath, err)
	}
	n := doc.GridSize
	if n < 1 || n > state.MaxGridSize {
		n = cfg.GridSize
	}
	g, m := doc.Restore(n)
	opts := export.ChartOptions{Title: export.TitleFor(cfg.ProjectPath), HideMarks: hideMarks}
	if err := export.ChartPDF(out, g, m, opts); err != nil {
		logrus.Fatalf("export: %v", err)
	}
	logrus.Infof("chart written to %s", out)
}
