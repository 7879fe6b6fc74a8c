package rworker

import "sync"

type Option func(*Pool)

// WithErrorHandler sets fn to be called for every failed job, possibly from
// several goroutines at once.
func WithErrorHandler(fn func(error)) Option {
	return func(p *Pool) {
		p.errFn = fn
	}
}

func New(limit int, opts ...Option) *Pool {
	if limit < 1 {
		limit = 1
	}
	p := &Pool{rate: make(chan struct{}, limit)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Pool runs jobs with at most limit of them in flight. A failing job does not
// stop the others.
type Pool struct {
	wg    sync.WaitGroup
	rate  chan struct{}
	errFn func(error)

	mtx  sync.Mutex
	errs []error
}

func (p *Pool) Go(fn func() error) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.rate <- struct{}{}
		defer func() { <-p.rate }()
		if err := fn(); err != nil {
			if p.errFn != nil {
				p.errFn(err)
			}
			p.mtx.Lock()
			p.errs = append(p.errs, err)
			p.mtx.Unlock()
		}
	}()
}

// Wait blocks until every started job returns and reports their failures.
func (p *Pool) Wait() []error {
	p.wg.Wait()
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.errs
}
