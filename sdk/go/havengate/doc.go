// Package havengate provides in-process access to the wellness-assistant
// governance gate for Go frontends. It exposes the three call shapes the
// surrounding application needs: per-message authorization before any
// model work, the fixed-order activity pipeline, and tier feature checks.
//
// Usage:
//
//	gate, err := havengate.New(havengate.WithAuditLog("gate.jsonl"))
//	decision := gate.Authorize(havengate.Request{
//	    CallerID: "u1",
//	    Email:    "sam@example.com",
//	    Message:  "help me weigh these two offers",
//	})
//	if decision.Authorized {
//	    out, err := gate.RunActivity(ctx, "decision-helper", input, "", modelFn)
//	    ...
//	}
//
// The SDK links directly against internal packages for zero-subprocess
// overhead. External users import github.com/dkarpele/havengate/sdk/go/havengate.
package havengate
