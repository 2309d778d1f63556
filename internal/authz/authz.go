// Package authz decides which routes need a logged-in user. The decision is
// an embedded rego policy evaluated in-process with OPA, so the protected
// route table lives in one declarative file instead of being scattered over
// route registrations.
package authz

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

//go:embed policy.rego
var policy string

const query = "data.wanderlust.authz.allow"

// Request is the policy input for one routed request.
type Request struct {
	Method        string // HTTP method after method override
	Route         string // echo route template, e.g. /listings/:id
	Authenticated bool
}

// Authorizer evaluates the prepared policy.
type Authorizer struct {
	prepared rego.PreparedEvalQuery
}

// New compiles the embedded policy.
func New(ctx context.Context) (*Authorizer, error) {
	pq, err := rego.New(
		rego.Query(query),
		rego.Module("policy.rego", policy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("authz: prepare policy: %w", err)
	}
	return &Authorizer{prepared: pq}, nil
}

// Allow reports whether the request may proceed.
func (a *Authorizer) Allow(ctx context.Context, req Request) (bool, error) {
	rs, err := a.prepared.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"method":        req.Method,
		"route":         req.Route,
		"authenticated": req.Authenticated,
	}))
	if err != nil {
		return false, fmt.Errorf("authz: eval: %w", err)
	}
	return rs.Allowed(), nil
}
