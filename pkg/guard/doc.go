// Package guard exposes the storeguard request guards for services that embed
// them without the HTTP shell.
//
// # Payload guard
//
// Decode a request body and reject operator injection before it reaches a
// document-store filter:
//
//	p, err := guard.DecodePayload(r.Body)
//	if err != nil { ... }
//	if err := guard.ValidatePayload(p); err != nil {
//	    // errors.Is(err, guard.ErrForbiddenOperator)
//	}
//
// # Search terms
//
//	text, err := guard.PrepareQuery(r.URL.Query().Get("q"))
//	// errors.Is(err, guard.ErrQueryTooBroad) / guard.ErrForbiddenPattern
//
// # Credentials
//
//	v, err := guard.NewVerifier(user, secret)
//	name, err := v.Verify(gotUser, gotSecret)
//
// # Observed guard
//
// Guard runs the same checks and reports rejections to slog and Prometheus:
//
//	g, _ := guard.New(guard.WithLogger(slog.Default()), guard.WithMetrics(prometheus.DefaultRegisterer))
//	err := g.CheckPayload(p)
package guard
