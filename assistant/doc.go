// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package assistant brokers the conversational collaborator.

Each dataset gets one chat session, primed with a system instruction
summarizing the aggregate set (totals, leaderboards, flagged anomalies)
and re-primed whenever that context changes. The production
implementation runs on the Gemini API with Google Search grounding, so
replies can carry citation chunks (title + URI). Handlers depend on the
Service interface and fall back to a canned transcript message when the
assistant is unconfigured or a request fails.
*/
package assistant
