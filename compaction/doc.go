// Package compaction keeps a long-running conversation's token cost bounded.
//
// When a thread's history exceeds its token budget, the compactor splits the
// history into a "to-summarize" prefix and a "keep verbatim" suffix, asks the
// summarizer to condense the prefix into a single synthetic agent message, and
// reassembles the history as [system] + [summary] + suffix.
//
// Structural invariants:
//
//   - The leading system/instruction message is always preserved verbatim.
//   - The suffix is preserved verbatim and in order.
//   - An empty to-summarize prefix skips compaction entirely; zero messages
//     are never summarized.
//   - One compaction pass per turn. If the suffix alone still exceeds the
//     budget, the oversized history is returned as-is and compaction is
//     retried on the next turn.
//   - The compactor operates only on the history instance passed in; it never
//     touches another thread's messages.
//
// Token counting is deterministic and fail-open: a message it cannot
// interpret is costed by its serialized text length, never an error.
package compaction
