package decision

import (
	"encoding/json"
	"os"

	"github.com/katalvlaran/serialcheck/invariant"
	"github.com/katalvlaran/serialcheck/ns"
)

// SerializableDecision carries the per-global-state invariant that
// certifies serializability.
type SerializableDecision[G, Req, L, Resp comparable] struct {
	Invariant invariant.NSInvariant[G, Req, L, Resp] `json:"invariant"`
}

// NotSerializableDecision carries a replayable counterexample trace.
type NotSerializableDecision[G, L, Req, Resp comparable] struct {
	Trace ns.NSTrace[G, L, Req, Resp] `json:"trace"`
}

// TimeoutDecision carries a human-readable explanation of what could not
// be decided in time.
type TimeoutDecision struct {
	Message string `json:"message"`
}

// NSDecision is the outcome of analyzing a Network System: exactly one
// of Serializable, NotSerializable, or Timeout is set, serialized as
// spec.md §6 describes ({"Serializable": {...}} etc.) the same
// one-of-three-optional-fields way ns.TraceStep already does.
type NSDecision[G, L, Req, Resp comparable] struct {
	Serializable    *SerializableDecision[G, Req, L, Resp]    `json:"Serializable,omitempty"`
	NotSerializable *NotSerializableDecision[G, L, Req, Resp] `json:"NotSerializable,omitempty"`
	Timeout         *TimeoutDecision                          `json:"Timeout,omitempty"`
}

// NewSerializable builds the Serializable variant.
func NewSerializable[G, L, Req, Resp comparable](inv invariant.NSInvariant[G, Req, L, Resp]) NSDecision[G, L, Req, Resp] {
	return NSDecision[G, L, Req, Resp]{Serializable: &SerializableDecision[G, Req, L, Resp]{Invariant: inv}}
}

// NewNotSerializable builds the NotSerializable variant.
func NewNotSerializable[G, L, Req, Resp comparable](trace ns.NSTrace[G, L, Req, Resp]) NSDecision[G, L, Req, Resp] {
	return NSDecision[G, L, Req, Resp]{NotSerializable: &NotSerializableDecision[G, L, Req, Resp]{Trace: trace}}
}

// NewTimeout builds the Timeout variant.
func NewTimeout[G, L, Req, Resp comparable](message string) NSDecision[G, L, Req, Resp] {
	return NSDecision[G, L, Req, Resp]{Timeout: &TimeoutDecision{Message: message}}
}

// Save writes d to path as pretty-printed JSON.
func (d NSDecision[G, L, Req, Resp]) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return decisionErrorf("Save", "%s", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return decisionErrorf("Save", "%s", err)
	}
	return nil
}

// Load reads an NSDecision previously written by Save.
func Load[G, L, Req, Resp comparable](path string) (NSDecision[G, L, Req, Resp], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NSDecision[G, L, Req, Resp]{}, decisionErrorf("Load", "%s", err)
	}
	var d NSDecision[G, L, Req, Resp]
	if err := json.Unmarshal(data, &d); err != nil {
		return NSDecision[G, L, Req, Resp]{}, decisionErrorf("Load", "%s", err)
	}
	return d, nil
}
