package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// RunBatch converts inputs with up to workers conversions in flight.
// Each conversion owns its decoder state. Results keep the order of inputs;
// inputs not started before ctx is done report ctx.Err().
func RunBatch(ctx context.Context, inputs []string, workers int, opts Options, log zerolog.Logger) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				in := inputs[i]
				res, err := ConvertFile(in, OutputPath(in), opts, log)
				if err != nil {
					log.Error().Err(err).Str("input", in).Msg("conversion failed")
				}
				results[i] = res
			}
		}()
	}

	next := 0
DISPATCH:
	for ; next < len(inputs); next++ {
		select {
		case <-ctx.Done():
			break DISPATCH
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(inputs); i++ {
		results[i] = Result{Input: inputs[i], Output: OutputPath(inputs[i]), Err: ctx.Err()}
	}
	return results
}

// Failed counts the results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
