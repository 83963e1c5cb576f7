// Package hirepg is a PostgreSQL-backed orchestration substrate for
// agent-driven HR screening pipelines.
//
// A Supervisor coordinates three concerns for each candidate:
//
//   - A checklist-gated status state machine that moves the candidate
//     through CV screening, voice screening, interview scheduling, and the
//     final decision. A milestone is reachable only once every checklist
//     substep of its phase is done.
//
//   - Durable, versioned conversation checkpoints per thread, committed
//     with compare-and-swap so concurrent writers never silently clobber
//     each other.
//
//   - Token-budgeted history compaction that replaces the oldest half of an
//     over-budget thread with a single summary message, preserving the
//     pinned system prompt and the most recent messages verbatim.
//
// All work for one candidate is serialized behind a per-candidate lane;
// work for different candidates proceeds concurrently.
//
// Basic usage:
//
//	pool, _ := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
//	client := anthropic.NewClient()
//
//	sup, err := hirepg.New(
//	    workflow.NewPostgresStore(pool),
//	    checklist.NewPostgresStore(pool),
//	    checkpoint.NewPostgresStore(pool),
//	    hirepg.Config{
//	        Client:       &client,
//	        Model:        "claude-sonnet-4-5-20250929",
//	        SystemPrompt: "You are an HR screening supervisor.",
//	    },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cand, _ := sup.Register(ctx, "Jane Doe", "jane@example.com", "", "cvs/jane.pdf")
//	reply, _ := sup.RunTurn(ctx, "thread-"+cand.ID, cand.ID, "Screen this CV against the backend role.")
package hirepg
