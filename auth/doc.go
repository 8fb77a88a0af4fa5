// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives and validates per-dataset admin keys.

A dataset's admin key is an HMAC-SHA256 of its ID under a server-side
salt, so keys are verifiable without storage. The key is returned once at
upload time and required for destructive operations (dataset deletion,
live-stream control).
*/
package auth
