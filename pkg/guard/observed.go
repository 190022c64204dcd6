package guard

import "io"

// Guard names reported in logs and metrics.
const (
	GuardPayload    = "payload"
	GuardQuery      = "query"
	GuardCredential = "credential"
)

// Guard runs the guards and reports each outcome. The zero Guard is not usable;
// call New. A Guard is safe for concurrent use.
type Guard struct {
	obs      *observer
	verifier *Verifier
}

// New creates a Guard. Without options it behaves like the package functions.
func New(opts ...Option) (*Guard, error) {
	cfg := &guardConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return &Guard{obs: obs}, nil
}

// WithVerifier returns a copy of g that checks credentials with v.
func (g *Guard) WithVerifier(v *Verifier) *Guard {
	cp := *g
	cp.verifier = v
	return &cp
}

// DecodePayload is DecodePayload followed by CheckPayload.
func (g *Guard) DecodePayload(r io.Reader) (Payload, error) {
	p, err := DecodePayload(r)
	if err != nil {
		g.obs.observe(GuardPayload, err)
		return Payload{}, err
	}
	if err := g.CheckPayload(p); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// CheckPayload is ValidatePayload with reporting.
func (g *Guard) CheckPayload(p Payload) error {
	err := ValidatePayload(p)
	g.obs.observe(GuardPayload, err)
	return err
}

// Query is PrepareQuery with reporting.
func (g *Guard) Query(raw string) (string, error) {
	text, err := PrepareQuery(raw)
	g.obs.observe(GuardQuery, err)
	return text, err
}

// Verify checks credentials with the verifier set by WithVerifier.
// Without one it fails with ErrMisconfigured.
func (g *Guard) Verify(username, secret string) (string, error) {
	if g.verifier == nil {
		return "", ErrMisconfigured
	}
	user, err := g.verifier.Verify(username, secret)
	g.obs.observe(GuardCredential, err)
	return user, err
}
