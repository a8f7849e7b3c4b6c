// Package policy evaluates admin-surface access decisions with OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine for the admin surface.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given rego policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.admin_policy.decision"),
		rego.Module("admin_policy.rego", policyContent),
	)
	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}
	return &Engine{query: query}, nil
}

// Evaluate checks the admin policy. Input carries keys like role and path.
// Returns the decision string (allow or deny).
func (e *Engine) Evaluate(ctx context.Context, input any) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return "deny", nil
	}
	if s, ok := results[0].Expressions[0].Value.(string); ok {
		return s, nil
	}
	return "deny", nil
}

// DefaultPolicy admits authenticated operators to every admin flow. Roles
// come from the transport layer: "admin" for a matching bearer token,
// "anonymous" otherwise.
const DefaultPolicy = `
package admin_policy

default decision = "deny"

decision = "allow" {
	input.role == "admin"
}
`
