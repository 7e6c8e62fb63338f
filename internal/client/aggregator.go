package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/roboworks-io/uipath-client/internal/constants"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// Static errors for err113 compliance.
var (
	ErrNoKindsRequested = errors.New("no resource kinds requested")
)

// Aggregator implements uipath.Aggregator. Sub-fetches are independent
// read-only requests sharing one session token, so they run concurrently
// with bounded parallelism instead of sequentially: total latency tracks the
// slowest sub-request, not the sum.
type Aggregator struct {
	concurrency int
	timeout     time.Duration
}

// NewAggregator creates an aggregator. Non-positive arguments fall back to
// defaults (3 concurrent sub-fetches, 30s per-fetch timeout).
func NewAggregator(concurrency int, timeout time.Duration) *Aggregator {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	return &Aggregator{
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// Fetch implements uipath.Aggregator.Fetch. Every requested kind yields
// exactly one entry, in request order: either the item list or a failure
// record. A failure on one kind never aborts the others. If the caller's
// context is cancelled before all sub-fetches settle, no partial response is
// returned.
func (a *Aggregator) Fetch(ctx context.Context, session uipath.Client, kinds []uipath.ResourceKind, folderID int64) (*uipath.AggregatedResponse, error) {
	kinds = dedupeKinds(kinds)
	if len(kinds) == 0 {
		return nil, ErrNoKindsRequested
	}

	for _, kind := range kinds {
		if !kind.Valid() {
			return nil, &uipath.ConfigError{Detail: "unknown resource kind " + string(kind)}
		}
	}

	results := make([]uipath.ResourceResult, len(kinds))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, a.concurrency)

	for index, kind := range kinds {
		waitGroup.Add(1)

		go func(index int, kind uipath.ResourceKind) {
			defer waitGroup.Done()

			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			results[index] = a.fetchOne(fetchCtx, session, kind, folderID)
		}(index, kind)
	}

	waitGroup.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	response := uipath.NewAggregatedResponse()
	for index, kind := range kinds {
		response.Add(kind, results[index])
	}

	return response, nil
}

// fetchOne fetches a single kind and converts any error into a failure
// record. An empty item list stays an empty list; it never becomes a
// failure.
func (a *Aggregator) fetchOne(ctx context.Context, session uipath.Client, kind uipath.ResourceKind, folderID int64) uipath.ResourceResult {
	list, err := session.Resource(ctx, kind, folderID)
	if err != nil {
		return uipath.ResourceResult{Failure: classifyFailure(err)}
	}

	items := list.Value
	if items == nil {
		items = []json.RawMessage{}
	}

	return uipath.ResourceResult{Items: items}
}

func classifyFailure(err error) *uipath.ResourceFailure {
	httpErr := &uipath.HTTPError{}
	if errors.As(err, &httpErr) {
		return &uipath.ResourceFailure{
			Error:   uipath.FailureHTTP,
			Status:  httpErr.Status,
			Message: httpErr.Error(),
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &uipath.ResourceFailure{
			Error:   uipath.FailureTimeout,
			Message: err.Error(),
		}
	}

	return &uipath.ResourceFailure{
		Error:   uipath.FailureNetwork,
		Message: err.Error(),
	}
}

// dedupeKinds keeps the first occurrence of each kind, preserving order, so
// the response carries exactly one entry per requested kind.
func dedupeKinds(kinds []uipath.ResourceKind) []uipath.ResourceKind {
	seen := make(map[uipath.ResourceKind]struct{}, len(kinds))
	deduped := make([]uipath.ResourceKind, 0, len(kinds))

	for _, kind := range kinds {
		if _, ok := seen[kind]; ok {
			continue
		}

		seen[kind] = struct{}{}
		deduped = append(deduped, kind)
	}

	return deduped
}
