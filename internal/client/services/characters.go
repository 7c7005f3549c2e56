package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/animedex/internal/client/client"
	"github.com/dmitrijs2005/animedex/internal/client/models"
	"github.com/dmitrijs2005/animedex/internal/logging"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultRandomCount is the number of draws Random makes when asked for n <= 0.
const DefaultRandomCount = 3

// LoaderOptions tunes how the character list is fetched.
type LoaderOptions struct {
	// ChunkSize is the number of ids fetched per chunk.
	ChunkSize int
	// MaxInFlight caps concurrent requests within a chunk. Zero or a value
	// above ChunkSize means ChunkSize.
	MaxInFlight int
	// StaggerStep delays the i-th fetch of a chunk by i*StaggerStep.
	StaggerStep time.Duration
	// ChunkPause is the wait between two chunks.
	ChunkPause time.Duration
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	// InitialBackoff is the first retry delay; it doubles on every retry.
	InitialBackoff time.Duration
	// Sleeper performs every wait. Nil means TimerSleeper.
	Sleeper Sleeper
}

func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		ChunkSize:      5,
		StaggerStep:    300 * time.Millisecond,
		ChunkPause:     1200 * time.Millisecond,
		MaxRetries:     2,
		InitialBackoff: time.Second,
	}
}

func (o LoaderOptions) normalized() LoaderOptions {
	def := DefaultLoaderOptions()
	if o.ChunkSize <= 0 {
		o.ChunkSize = def.ChunkSize
	}
	if o.MaxInFlight <= 0 || o.MaxInFlight > o.ChunkSize {
		o.MaxInFlight = o.ChunkSize
	}
	if o.StaggerStep < 0 {
		o.StaggerStep = 0
	}
	if o.ChunkPause < 0 {
		o.ChunkPause = 0
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = def.InitialBackoff
	}
	if o.Sleeper == nil {
		o.Sleeper = TimerSleeper
	}
	return o
}

// LoadResult is the outcome of a load. A non-empty Advisory is informational
// and never an error.
type LoadResult struct {
	Characters  []models.Character `json:"characters"`
	Unavailable int                `json:"unavailable"`
	Advisory    string             `json:"advisory,omitempty"`
}

// CharacterLoader is what the navigation surfaces need from CharacterService.
type CharacterLoader interface {
	Load(ctx context.Context) (LoadResult, error)
	Random(ctx context.Context, n int) (LoadResult, error)
}

var _ CharacterLoader = (*CharacterService)(nil)

// CharacterService fetches character records with chunking, bounded
// concurrency, staggering and retries.
type CharacterService struct {
	api  client.CharacterAPI
	opts LoaderOptions
	log  logging.Logger
	ids  []int
}

func NewCharacterService(api client.CharacterAPI, opts LoaderOptions, log logging.Logger) *CharacterService {
	if log == nil {
		log = logging.Nop()
	}
	return &CharacterService{
		api:  api,
		opts: opts.normalized(),
		log:  log,
		ids:  models.DefaultCharacterIDs,
	}
}

// Load fetches the fixed character list.
func (s *CharacterService) Load(ctx context.Context) (LoadResult, error) {
	return s.LoadIDs(ctx, s.ids)
}

// LoadIDs returns exactly one record per id, in the order given. Ids that
// cannot be fetched are replaced by placeholders. The only error is the
// context's.
func (s *CharacterService) LoadIDs(ctx context.Context, ids []int) (LoadResult, error) {
	log := s.log.With("load_id", uuid.NewString())
	log.Info(ctx, "loading characters", "count", len(ids), "chunk_size", s.opts.ChunkSize, "max_in_flight", s.opts.MaxInFlight)
	started := time.Now()

	out := make([]models.Character, len(ids))
	failed := make([]bool, len(ids))

	err := s.run(ctx, len(ids), func(ctx context.Context, i int) error {
		id := ids[i]
		ch, err := s.withRetry(ctx, log, fmt.Sprintf("character %d", id), func(ctx context.Context) (models.Character, error) {
			return s.api.GetCharacter(ctx, id)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Warn(ctx, "using placeholder", "id", id, "error", err)
			out[i] = models.PlaceholderCharacter(id)
			failed[i] = true
			return nil
		}
		out[i] = ch
		return nil
	})
	if err != nil {
		log.Info(ctx, "load aborted", "error", err)
		return LoadResult{}, err
	}

	unavailable := 0
	for _, f := range failed {
		if f {
			unavailable++
		}
	}
	log.Info(ctx, "characters loaded", "count", len(out), "unavailable", unavailable, "elapsed", time.Since(started))

	return LoadResult{
		Characters:  out,
		Unavailable: unavailable,
		Advisory:    advisory(unavailable, len(ids)),
	}, nil
}

// Random draws n random characters (DefaultRandomCount when n <= 0). Failed
// draws are dropped and counted as unavailable.
func (s *CharacterService) Random(ctx context.Context, n int) (LoadResult, error) {
	if n <= 0 {
		n = DefaultRandomCount
	}
	log := s.log.With("load_id", uuid.NewString())
	log.Info(ctx, "drawing random characters", "count", n)

	draws := make([]models.Character, n)
	ok := make([]bool, n)

	err := s.run(ctx, n, func(ctx context.Context, i int) error {
		ch, err := s.withRetry(ctx, log, "random character", s.api.GetRandomCharacter)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Warn(ctx, "random draw failed", "draw", i, "error", err)
			return nil
		}
		draws[i], ok[i] = ch, true
		return nil
	})
	if err != nil {
		return LoadResult{}, err
	}

	res := LoadResult{Characters: make([]models.Character, 0, n)}
	for i, ch := range draws {
		if ok[i] {
			res.Characters = append(res.Characters, ch)
		} else {
			res.Unavailable++
		}
	}
	res.Advisory = advisory(res.Unavailable, n)
	return res, nil
}

// run calls fetch for every index in [0, n), chunk by chunk. Within a chunk
// the i-th call starts after i*StaggerStep and then waits for one of
// MaxInFlight semaphore permits, held while it runs. Chunks are separated by ChunkPause. run stops at the first error,
// which can only come from ctx.
func (s *CharacterService) run(ctx context.Context, n int, fetch func(ctx context.Context, i int) error) error {
	sem := semaphore.NewWeighted(int64(s.opts.MaxInFlight))

	for start := 0; start < n; start += s.opts.ChunkSize {
		if start > 0 {
			if err := s.opts.Sleeper.Sleep(ctx, s.opts.ChunkPause); err != nil {
				return err
			}
		}
		end := min(start+s.opts.ChunkSize, n)

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			delay := time.Duration(i-start) * s.opts.StaggerStep
			g.Go(func() error {
				if err := s.opts.Sleeper.Sleep(gctx, delay); err != nil {
					return err
				}
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)
				return fetch(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
	}
	return ctx.Err()
}

// withRetry calls fetch until it succeeds, fails with client.ErrNotFound or
// the retry budget is spent. Delays double from InitialBackoff.
func (s *CharacterService) withRetry(ctx context.Context, log logging.Logger, target string,
	fetch func(ctx context.Context) (models.Character, error)) (models.Character, error) {

	backoff := retry.WithMaxRetries(uint64(s.opts.MaxRetries), retry.NewExponential(s.opts.InitialBackoff))

	for attempt := 1; ; attempt++ {
		ch, err := fetch(ctx)
		if err == nil {
			return ch, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Character{}, ctxErr
		}
		if errors.Is(err, client.ErrNotFound) {
			return models.Character{}, err
		}

		delay, stop := backoff.Next()
		if stop {
			return models.Character{}, fmt.Errorf("giving up after %d attempts: %w", attempt, err)
		}
		log.Debug(ctx, "retrying", "target", target, "attempt", attempt, "delay", delay, "error", err)
		if err := s.opts.Sleeper.Sleep(ctx, delay); err != nil {
			return models.Character{}, err
		}
	}
}

func advisory(unavailable, total int) string {
	if unavailable == 0 {
		return ""
	}
	return fmt.Sprintf("some characters unavailable (%d of %d)", unavailable, total)
}
