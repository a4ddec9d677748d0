// Command bench times Sign/NewPresentation/Presentation.Verify across a
// sweep of message counts and renders the results as a PNG chart.
package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"

	"github.com/anupsv/ps-signatures/pkg/core"
)

type sample struct {
	messageCount int
	signMs       float64
	proveMs      float64
	verifyMs     float64
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	app := &cli.App{
		Name:  "bench",
		Usage: "benchmark PS signature and presentation timing",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "min-messages", Value: 1, Usage: "smallest message count in the sweep"},
			&cli.IntFlag{Name: "max-messages", Value: 20, Usage: "largest message count in the sweep"},
			&cli.IntFlag{Name: "step", Value: 1, Usage: "increment between swept message counts"},
			&cli.IntFlag{Name: "iterations", Value: 20, Usage: "iterations averaged per message count"},
			&cli.StringFlag{Name: "chart-output", Value: "bench.png", Usage: "path to write the timing chart PNG"},
		},
		Action: func(c *cli.Context) error {
			return run(c, sugar)
		},
	}

	if err := app.Run(os.Args); err != nil {
		sugar.Errorw("bench failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context, sugar *zap.SugaredLogger) error {
	minN := c.Int("min-messages")
	maxN := c.Int("max-messages")
	step := c.Int("step")
	iterations := c.Int("iterations")

	if minN < 1 || maxN < minN || step < 1 || iterations < 1 {
		return fmt.Errorf("invalid sweep bounds: min=%d max=%d step=%d iterations=%d", minN, maxN, step, iterations)
	}

	params, err := core.DefaultParams()
	if err != nil {
		return fmt.Errorf("deriving params: %w", err)
	}

	samples := make([]sample, 0, (maxN-minN)/step+1)
	for n := minN; n <= maxN; n += step {
		s, err := benchOne(params, n, iterations)
		if err != nil {
			return fmt.Errorf("benchmarking n=%d: %w", n, err)
		}
		sugar.Infow("sampled", "messages", n, "signMs", s.signMs, "proveMs", s.proveMs, "verifyMs", s.verifyMs)
		samples = append(samples, s)
	}

	path := c.String("chart-output")
	if err := renderChart(samples, path); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	sugar.Infow("chart written", "path", path, "samples", len(samples))
	return nil
}

func benchOne(params *core.Params, n, iterations int) (sample, error) {
	sk, vk, err := core.Keygen(n, params, rand.Reader)
	if err != nil {
		return sample{}, err
	}

	messages := make([]*big.Int, n)
	for i := range messages {
		messages[i] = core.MessageFromString(fmt.Sprintf("attribute-%d", i))
	}
	revealed := []int{0}

	var signTotal, proveTotal, verifyTotal time.Duration
	for i := 0; i < iterations; i++ {
		start := time.Now()
		sig, err := core.Sign(sk, params, messages, rand.Reader)
		if err != nil {
			return sample{}, err
		}
		signTotal += time.Since(start)

		start = time.Now()
		presentation, err := core.NewPresentation(sig, vk, params, messages, revealed, nil, rand.Reader)
		if err != nil {
			return sample{}, err
		}
		proveTotal += time.Since(start)

		start = time.Now()
		ok, err := presentation.Verify(vk, params)
		if err != nil {
			return sample{}, err
		}
		if !ok {
			return sample{}, fmt.Errorf("presentation failed to verify at n=%d", n)
		}
		verifyTotal += time.Since(start)
	}

	div := float64(iterations)
	return sample{
		messageCount: n,
		signMs:       float64(signTotal.Milliseconds()) / div,
		proveMs:      float64(proveTotal.Milliseconds()) / div,
		verifyMs:     float64(verifyTotal.Milliseconds()) / div,
	}, nil
}

func renderChart(samples []sample, path string) error {
	xs := make([]float64, len(samples))
	signYs := make([]float64, len(samples))
	proveYs := make([]float64, len(samples))
	verifyYs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = float64(s.messageCount)
		signYs[i] = s.signMs
		proveYs[i] = s.proveMs
		verifyYs[i] = s.verifyMs
	}

	graph := chart.Chart{
		Title: "PS signature timing by message count",
		XAxis: chart.XAxis{Name: "messages"},
		YAxis: chart.YAxis{Name: "milliseconds"},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "Sign", XValues: xs, YValues: signYs},
			chart.ContinuousSeries{Name: "Prove", XValues: xs, YValues: proveYs},
			chart.ContinuousSeries{Name: "Verify", XValues: xs, YValues: verifyYs},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
