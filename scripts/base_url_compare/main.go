package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/internal/auth"
	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/repository"
	"github.com/noah-isme/sma-adp-console/pkg/config"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

type target struct {
	Path     string `json:"path"`
	Auth     bool   `json:"auth"`
	Critical bool   `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type outcome struct {
	Status   int
	Body     json.RawMessage
	Message  string
	Duration time.Duration
}

type comparison struct {
	Target      target
	Left        outcome
	Right       outcome
	StatusMatch bool
	BodyMatch   bool
	Error       error
}

// Compares authenticated GETs against two backend base URLs, e.g. the
// deployed API and a local one, using the token stored by `login`.
func main() {
	var (
		leftBase    string
		rightBase   string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&leftBase, "left", "http://localhost:5000/api", "first base URL")
	flag.StringVar(&rightBase, "right", "", "second base URL (defaults to API_BASE_URL)")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "base_url_compare", "targets.json"), "path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if rightBase == "" {
		rightBase = cfg.API.BaseURL
	}

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	ctx := context.Background()
	state, err := repository.OpenStateRepository(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("failed to open state backend: %v", err)
	}
	defer state.Close()
	tokens := auth.NewTokenAccessor(state, cfg.State.AuthStorageKey, nil)

	left := client.New(client.Config{BaseURL: leftBase, Timeout: timeout, Tokens: tokens})
	right := client.New(client.Config{BaseURL: rightBase, Timeout: timeout, Tokens: tokens})

	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)
	for _, t := range targets {
		comp := compareTarget(ctx, left, right, t)
		switch {
		case comp.Error != nil:
			if t.Critical {
				breaking++
			}
		case !comp.StatusMatch || !comp.BodyMatch:
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(leftBase, rightBase, comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf targetFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	if len(tf.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return tf.Targets, nil
}

func compareTarget(ctx context.Context, left, right *client.Client, tgt target) comparison {
	comp := comparison{Target: tgt}

	var err error
	if comp.Left, err = fetchOutcome(ctx, left, tgt); err != nil {
		comp.Error = fmt.Errorf("%s: %w", left.BaseURL(), err)
		return comp
	}
	if comp.Right, err = fetchOutcome(ctx, right, tgt); err != nil {
		comp.Error = fmt.Errorf("%s: %w", right.BaseURL(), err)
		return comp
	}

	comp.StatusMatch = comp.Left.Status == comp.Right.Status
	if comp.Left.Status == http.StatusOK {
		comp.BodyMatch = bodiesEqual(comp.Left.Body, comp.Right.Body)
	} else {
		comp.BodyMatch = comp.Left.Message == comp.Right.Message
	}
	return comp
}

// fetchOutcome returns an error only when the backend could not be reached;
// HTTP failures are part of the outcome being compared.
func fetchOutcome(ctx context.Context, c *client.Client, tgt target) (outcome, error) {
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body json.RawMessage
	start := time.Now()
	err := c.Do(ctx, client.Request{Method: http.MethodGet, Path: path, Auth: tgt.Auth}, &body)
	out := outcome{Status: http.StatusOK, Body: body, Duration: time.Since(start)}
	if err == nil {
		return out, nil
	}

	status := appErrors.StatusOf(err)
	if status == 0 || appErrors.FromError(err).Code == appErrors.ErrAuthTokenMissing.Code {
		return out, err
	}
	out.Status = status
	out.Message = appErrors.Message(err)
	return out, nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(leftBase, rightBase string, results []comparison) {
	fmt.Println("Base URL Compare Report")
	fmt.Println("=======================")
	fmt.Printf("left:  %s\nright: %s\n\n", leftBase, rightBase)
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] GET %s\n", status, res.Target.Path)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Left:  %d (%s) %s\n", res.Left.Status, res.Left.Duration, res.Left.Message)
		fmt.Printf("  Right: %d (%s) %s\n", res.Right.Status, res.Right.Duration, res.Right.Message)
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
