// Package decision holds the NS-level analogue of a reachability.Decision:
// NSDecision is either Serializable (with a per-global-state invariant),
// NotSerializable (with a replayable counterexample trace), or Timeout,
// saved and loaded as the stable tagged-JSON document spec.md §6
// describes. FromPetriDecision lifts a Petri-level reachability.Decision
// back onto these NS-level terms.
package decision
