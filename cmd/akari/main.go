package main

import (
	"context"
	"flag"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/jeromeheuze/puzzle-generator/internal/akari"
	"github.com/jeromeheuze/puzzle-generator/internal/cdn"
	"github.com/jeromeheuze/puzzle-generator/internal/config"
	"github.com/jeromeheuze/puzzle-generator/internal/database"
	"github.com/jeromeheuze/puzzle-generator/internal/ebook"
	"github.com/jeromeheuze/puzzle-generator/internal/repository"
	"github.com/jeromeheuze/puzzle-generator/internal/sink"
)

var (
	log = logrus.New()

	mode         string
	sizesFlag    string
	diffsFlag    string
	count        int
	sinkName     string
	output       string
	htmlOutput   string
	title        string
	upload       bool
	seed         uint64
	logFile      string
)

func init() {
	flag.StringVar(&mode, "mode", "premium", "generation mode: premium, daily or ebook")
	flag.StringVar(&sizesFlag, "sizes", "6,8,10,12", "comma-separated puzzle sizes")
	flag.StringVar(&diffsFlag, "difficulties", "easy,medium,hard", "comma-separated difficulties")
	flag.IntVar(&count, "count", 10, "puzzles per size/difficulty combination")
	flag.StringVar(&sinkName, "sink", "db", "where to send puzzles: db or api")
	flag.StringVar(&output, "output", "ebook_puzzles.json", "output file for ebook puzzles")
	flag.StringVar(&htmlOutput, "html", "", "also render an HTML book to this path")
	flag.StringVar(&title, "title", "Akari Puzzle Collection", "ebook title")
	flag.BoolVar(&upload, "upload", false, "upload ebook files to the CDN")
	flag.Uint64Var(&seed, "seed", 0, "fixed RNG seed, 0 for random")
	flag.StringVar(&logFile, "log-file", "akari_generator.log", "rotating log file, empty to disable")
}

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if config.Development() {
		log.SetLevel(logrus.DebugLevel)
	}

	if logFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logrus.InfoLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to create log file hook: ", err)
		}
		log.AddHook(hook)
	}

	// Route the generation loop's logs through the same outputs.
	akari.Log = slog.New(slog.NewTextHandler(log.Writer(), nil))
}

func createRand() *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, piece := range strings.Split(s, ",") {
		size, err := strconv.Atoi(strings.TrimSpace(piece))
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", piece)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

func parseDifficulties(s string) ([]akari.Difficulty, error) {
	var difficulties []akari.Difficulty
	for _, piece := range strings.Split(s, ",") {
		difficulty, err := akari.ParseDifficulty(strings.TrimSpace(piece))
		if err != nil {
			return nil, err
		}
		difficulties = append(difficulties, difficulty)
	}
	return difficulties, nil
}

func reportResult(result *akari.BatchResult) {
	log.Info("generation complete!")
	log.WithFields(logrus.Fields{
		"total_generated": result.Generated,
		"total_saved":     result.Saved,
		"failed":          result.Failed,
		"by_size":         result.BySize,
		"by_difficulty":   result.ByDifficulty,
	}).Info("batch summary")

	for _, e := range result.SinkErrors {
		log.Warn("sink error: ", e)
	}
}

// remoteEbookKey flattens a local output path into the CDN's ebooks
// directory, so -output out/book.html uploads as ebooks/book.html.
func remoteEbookKey(path string) string {
	return "ebooks/" + filepath.Base(path)
}

func runEbook(ctx context.Context, gen *akari.Generator, sizes []int, difficulties []akari.Difficulty) error {
	ebookSink := sink.NewEbook()
	result, _ := gen.GenerateBatch(ctx, sizes, difficulties, count, ebookSink)
	reportResult(result)

	if err := ebookSink.WriteFile(output); err != nil {
		return fmt.Errorf("unable to write ebook file: %w", err)
	}
	log.Infof("saved %d puzzles to %s", len(ebookSink.Puzzles()), output)

	if htmlOutput != "" {
		book := ebook.NewBook(title, ebookSink.Puzzles())
		if err := ebook.RenderFile(htmlOutput, book); err != nil {
			return fmt.Errorf("unable to render HTML book: %w", err)
		}
		log.Infof("rendered HTML book to %s", htmlOutput)
	}

	if !upload {
		return nil
	}

	cfg, err := config.NewCDN()
	if err != nil {
		return err
	}
	client := cdn.NewClient(slog.New(slog.NewTextHandler(log.Writer(), nil)), cfg)

	g, gCtx := errgroup.WithContext(ctx)
	for _, path := range []string{output, htmlOutput} {
		if path == "" {
			continue
		}
		g.Go(func() error {
			url, err := client.UploadFile(gCtx, path, remoteEbookKey(path))
			if err != nil {
				return err
			}
			log.Infof("uploaded %s to %s", path, url)
			return nil
		})
	}
	return g.Wait()
}

func runBatch(ctx context.Context, gen *akari.Generator, sizes []int, difficulties []akari.Difficulty, rnd *rand.Rand) error {
	slogger := slog.New(slog.NewTextHandler(log.Writer(), nil))

	switch sinkName {
	case "db":
		db, err := database.Connect(ctx)
		if err != nil {
			return fmt.Errorf("unable to connect to db: %w", err)
		}
		defer db.Close()

		dbSink := sink.NewDatabase(slogger, repository.New(db), "akari", mode, rnd)
		result, _ := gen.GenerateBatch(ctx, sizes, difficulties, count, dbSink)
		reportResult(result)
		return nil

	case "api":
		cfg, err := config.NewReceiver()
		if err != nil {
			return err
		}

		apiSink := sink.NewAPI(slogger, cfg, mode, rnd)
		result, _ := gen.GenerateBatch(ctx, sizes, difficulties, count, apiSink)

		if apiSink.Pending() > 0 {
			reply, err := apiSink.Flush(ctx)
			if err != nil {
				log.Error("receiver error: ", err)
			} else {
				result.Saved = reply.Data.Saved
				result.SinkErrors = append(result.SinkErrors, reply.Data.Errors...)
				log.Info("receiver response: ", reply.Message)
			}
		}
		reportResult(result)
		return nil

	default:
		return fmt.Errorf("unknown sink %q", sinkName)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()
	setupLogging()

	sizes, err := parseSizes(sizesFlag)
	if err != nil {
		log.Fatal(err)
	}
	difficulties, err := parseDifficulties(diffsFlag)
	if err != nil {
		log.Fatal(err)
	}

	rnd := createRand()
	gen := akari.NewGenerator(rnd)

	log.Infof("starting up, mode = %s", mode)

	switch mode {
	case "ebook":
		err = runEbook(ctx, gen, sizes, difficulties)
	case "premium", "daily":
		err = runBatch(ctx, gen, sizes, difficulties, rnd)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		log.Fatal(err)
	}
}
