package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"prefixcorrector/internal/corrector"
	"prefixcorrector/internal/ecm"
	"prefixcorrector/internal/hypothesis"
	"prefixcorrector/internal/profilestore"
	"prefixcorrector/internal/tokenize"
	"prefixcorrector/internal/vocab"
	"prefixcorrector/pkg/options"
)

type CommandLineArgs struct {
	Hypothesis string `arg:"positional,required" help:"translation hypothesis shown to the user"`
	Cuts       []int  `arg:"-c,--cut,separate"   help:"phrase end positions in tokens (default: one phrase per token)"`

	Config     string `arg:"--config"         help:"YAML configuration file"               placeholder:"FILE"`
	Vocabulary string `arg:"-w,--vocabulary"  help:"word list used to size the vocabulary" placeholder:"FILE"`
	Lowercase  bool   `arg:"-l,--lowercase"   help:"lowercase typed text and hypothesis"`

	RedisAddr     string `arg:"--redis-addr,env:REDIS_ADDR"         help:"Redis address for stored profiles"`
	RedisPassword string `arg:"--redis-password,env:REDIS_PASSWORD" help:"Redis password"`
	RedisDB       int    `arg:"--redis-db,env:REDIS_DB"             help:"Redis database" default:"-1"`
	Profile       string `arg:"-p,--profile"                        help:"load error model parameters from a stored profile"`
	SaveProfile   string `arg:"--save-profile"                      help:"store the effective parameters under this name"`

	Quiet   bool `arg:"-q,--quiet"   help:"only print corrected text"`
	Verbose int  `arg:"-v,--verbose" help:"verbosity level (0-2)" default:"0"`
}

func (CommandLineArgs) Description() string {
	return "Replays typed prefixes from stdin, one per line, against a translation hypothesis"
}

func main() {
	var args CommandLineArgs
	p := arg.MustParse(&args)

	cfg := corrector.DefaultConfig()
	if args.Config != "" {
		var err error
		if cfg, err = corrector.LoadConfig(args.Config); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
	}
	applyArgs(&cfg, args)
	if err := cfg.Validate(); err != nil {
		p.Fail(err.Error())
	}
	setupLogging(cfg.LogLevel, args.Verbose, args.Quiet)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.VocabularyFile != "" {
		st, err := vocab.Scan(cfg.VocabularyFile)
		if err != nil {
			log.Fatalf("Failed to read vocabulary: %v", err)
		}
		log.WithFields(log.Fields{"words": st.Words, "symbols": st.Symbols}).Info("vocabulary loaded")
		cfg.Model.VocabularySize = st.Symbols
	}

	var store *profilestore.Store
	if cfg.Profile != "" || args.SaveProfile != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		store = profilestore.New(client)
	}
	if cfg.Profile != "" {
		params, err := store.Load(ctx, cfg.Profile)
		if err != nil {
			log.Fatalf("Failed to load profile: %v", err)
		}
		cfg.Model = params
	}

	model, err := ecm.New(options.WithParameters(cfg.Model))
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	if args.SaveProfile != "" {
		if err := store.Save(ctx, args.SaveProfile, model.Parameters()); err != nil {
			log.Fatalf("Failed to save profile: %v", err)
		}
		log.Infof("Saved profile %q", args.SaveProfile)
	}

	tok := tokenize.New(cfg.Lowercase)
	base, err := buildHypothesis(tok.Tokenize(args.Hypothesis), args.Cuts)
	if err != nil {
		p.Fail(err.Error())
	}

	session, err := corrector.NewSession(model, tok, base, log.StandardLogger(), corrector.NewMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	lines := bufio.NewScanner(os.Stdin)
	for ctx.Err() == nil && lines.Scan() {
		res, err := session.SetPrefix(lines.Text())
		if err != nil {
			log.Errorf("correction failed: %v", err)
			continue
		}
		printResult(res, args.Quiet)
	}
	if err := lines.Err(); err != nil {
		log.Fatalf("read stdin: %v", err)
	}
}

func applyArgs(cfg *corrector.Config, args CommandLineArgs) {
	if args.Vocabulary != "" {
		cfg.VocabularyFile = args.Vocabulary
	}
	if args.Lowercase {
		cfg.Lowercase = true
	}
	if args.RedisAddr != "" {
		cfg.Redis.Addr = args.RedisAddr
	}
	if args.RedisPassword != "" {
		cfg.Redis.Password = args.RedisPassword
	}
	if args.RedisDB >= 0 {
		cfg.Redis.DB = args.RedisDB
	}
	if args.Profile != "" {
		cfg.Profile = args.Profile
	}
}

// buildHypothesis splits tokens into monotone phrases ending at cuts, each
// aligned one to one with an equally long source span.
func buildHypothesis(tokens []string, cuts []int) (*hypothesis.Hypothesis, error) {
	if len(cuts) == 0 {
		for i := range tokens {
			cuts = append(cuts, i+1)
		}
	}
	h := &hypothesis.Hypothesis{}
	start := 0
	for _, cut := range cuts {
		if cut <= start || cut > len(tokens) {
			return nil, fmt.Errorf("phrase cut %d out of order or past %d tokens", cut, len(tokens))
		}
		for _, t := range tokens[start:cut] {
			h.AppendToken(t, hypothesis.SourceSmt, hypothesis.UnknownConfidence)
		}
		if err := h.MarkPhrase(start, cut, hypothesis.Diagonal(cut-start, cut-start)); err != nil {
			return nil, err
		}
		start = cut
	}
	if start != len(tokens) {
		return nil, fmt.Errorf("phrases cover %d of %d tokens", start, len(tokens))
	}
	return h, nil
}

var (
	prefixColor   = color.New(color.FgGreen, color.Bold)
	trailingColor = color.New(color.FgYellow)
	statsColor    = color.New(color.FgHiBlack)
)

// printResult shows typed or corrected tokens in green and columns no phrase
// covered in yellow.
func printResult(res corrector.Result, quiet bool) {
	if quiet {
		fmt.Println(res.Text)
		return
	}
	parts := make([]string, len(res.Tokens))
	trailingFrom := len(res.Tokens) - res.TrailingColumns
	for i, t := range res.Tokens {
		switch {
		case i >= trailingFrom:
			parts[i] = trailingColor.Sprint(t)
		case res.Sources[i].Has(hypothesis.SourcePrefix):
			parts[i] = prefixColor.Sprint(t)
		default:
			parts[i] = t
		}
	}
	fmt.Printf("%s  %s\n", strings.Join(parts, " "),
		statsColor.Sprintf("cost=%.3f matched=%d", res.Cost, res.Matched))
}

func setupLogging(level string, verbose int, quiet bool) {
	log.SetFormatter(&log.TextFormatter{
		DisableLevelTruncation: true,
		DisableTimestamp:       true,
	})

	if quiet {
		log.SetLevel(log.PanicLevel)
		return
	}

	switch verbose {
	case 0:
		lvl, err := log.ParseLevel(level)
		if err != nil {
			lvl = log.WarnLevel
		}
		log.SetLevel(lvl)
	case 1:
		log.SetLevel(log.InfoLevel)
	case 2:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.TraceLevel)
	}
}
