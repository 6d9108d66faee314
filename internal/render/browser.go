package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"aievents/internal/logger"
)

// LoadMoreLabel is the exact visible text of the pagination control on the
// events listing page.
const LoadMoreLabel = "Load next 16 results"

// loadMoreXPath locates the pagination button by its visible text.
var loadMoreXPath = fmt.Sprintf(`//button[contains(., %q)]`, LoadMoreLabel)

// BrowserOptions tune a Browser renderer.
type BrowserOptions struct {
	// LoadMoreAttempts is the click budget for the pagination control.
	LoadMoreAttempts int
	// LoadMoreSettle is the fixed delay after each click before the
	// network-idle wait.
	LoadMoreSettle time.Duration
	// IdleQuiet is the window of network silence treated as idle.
	IdleQuiet time.Duration
	// ScrollPasses and ScrollSettle control the scroll-to-bottom heuristic
	// run after the load-more loop.
	ScrollPasses int
	ScrollSettle time.Duration
	// NavTimeout bounds the whole render.
	NavTimeout time.Duration

	UserAgent string

	// Gate, when non-nil, bounds concurrent sessions and launch rate.
	Gate *Gate
	// Robots, when non-nil, is consulted before navigating.
	Robots *RobotsChecker
}

// Browser renders pages in a headless Chrome session via chromedp.
// Each Render call launches an independent session and releases it
// unconditionally before returning.
type Browser struct {
	opts BrowserOptions
	log  *logger.Logger
}

// NewBrowser creates a Browser renderer. A nil log falls back to a no-op
// on the package default logger semantics.
func NewBrowser(opts BrowserOptions, log *logger.Logger) *Browser {
	if opts.IdleQuiet <= 0 {
		opts.IdleQuiet = 500 * time.Millisecond
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 90 * time.Second
	}
	return &Browser{opts: opts, log: log}
}

// Render navigates to the URL, expands paginated and lazy-loaded content,
// and returns the full document markup. Navigation and launch errors are
// hard failures; load-more errors abort the loop but not the render.
func (b *Browser) Render(ctx context.Context, url string) (*Result, error) {
	if b.opts.Robots != nil && !b.opts.Robots.IsAllowed(ctx, url) {
		return nil, fmt.Errorf("robots.txt disallows %s", url)
	}

	if b.opts.Gate != nil {
		if err := b.opts.Gate.Acquire(ctx); err != nil {
			return nil, fmt.Errorf("acquiring browser session: %w", err)
		}
		defer b.opts.Gate.Release()
	}

	ctx, cancel := context.WithTimeout(ctx, b.opts.NavTimeout)
	defer cancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
	)
	if b.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(b.opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	b.logInfo("navigating", logger.Fields{"url": url})

	if err := chromedp.Run(tabCtx,
		network.Enable(),
		chromedp.Navigate(url),
		b.waitNetworkIdle(),
	); err != nil {
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}

	outcome := b.expandContent(tabCtx)

	for i := 0; i < b.opts.ScrollPasses; i++ {
		if err := chromedp.Run(tabCtx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(b.opts.ScrollSettle),
		); err != nil {
			b.logWarn("scroll pass failed", logger.Fields{"pass": i + 1}, err)
			break
		}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return nil, fmt.Errorf("capturing page markup: %w", err)
	}

	return &Result{HTML: html, LoadMore: outcome}, nil
}

// expandContent clicks the pagination control up to the configured budget.
// Absence of the button is the normal stop; any error in a round is
// logged, ends the loop, and leaves the render intact.
func (b *Browser) expandContent(ctx context.Context) LoadMoreOutcome {
	outcome := LoadMoreOutcome{Reason: ReasonBudgetExhausted}

	for i := 0; i < b.opts.LoadMoreAttempts; i++ {
		var nodes []*cdp.Node
		err := chromedp.Run(ctx,
			chromedp.Nodes(loadMoreXPath, &nodes, chromedp.BySearch, chromedp.AtLeast(0)),
		)
		if err != nil {
			b.logWarn("locating load-more button failed", logger.Fields{"attempt": i + 1}, err)
			outcome.Reason = ReasonErrored
			outcome.Err = err
			return outcome
		}

		if len(nodes) == 0 {
			b.logInfo("load-more button not found", logger.Fields{"attempt": i + 1})
			outcome.Reason = ReasonButtonMissing
			return outcome
		}

		b.logInfo("clicking load-more button", logger.Fields{"attempt": i + 1, "budget": b.opts.LoadMoreAttempts})

		err = chromedp.Run(ctx,
			chromedp.MouseClickNode(nodes[0]),
			chromedp.Sleep(b.opts.LoadMoreSettle),
			b.waitNetworkIdle(),
		)
		if err != nil {
			b.logWarn("load-more round failed", logger.Fields{"attempt": i + 1}, err)
			outcome.Reason = ReasonErrored
			outcome.Err = err
			return outcome
		}

		outcome.Clicks++
	}

	return outcome
}

// waitNetworkIdle blocks until no network activity has been observed for
// the configured quiet window. Request, finish, and failure events all
// reset the window.
func (b *Browser) waitNetworkIdle() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		idle := make(chan struct{})
		listenCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		var mu sync.Mutex
		var fired bool
		timer := time.AfterFunc(b.opts.IdleQuiet, func() {
			mu.Lock()
			defer mu.Unlock()
			if !fired {
				fired = true
				close(idle)
			}
		})
		defer timer.Stop()

		chromedp.ListenTarget(listenCtx, func(ev interface{}) {
			switch ev.(type) {
			case *network.EventRequestWillBeSent,
				*network.EventLoadingFinished,
				*network.EventLoadingFailed:
				mu.Lock()
				if !fired {
					timer.Reset(b.opts.IdleQuiet)
				}
				mu.Unlock()
			}
		})

		select {
		case <-idle:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

func (b *Browser) logInfo(msg string, fields logger.Fields) {
	if b.log != nil {
		b.log.Info(msg, fields)
		return
	}
	logger.Info(msg, fields)
}

func (b *Browser) logWarn(msg string, fields logger.Fields, err error) {
	if err != nil {
		fields["error"] = err.Error()
	}
	if b.log != nil {
		b.log.Warn(msg, fields)
		return
	}
	logger.Warn(msg, fields)
}
