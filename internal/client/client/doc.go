// Package client contains client-side building blocks for animedex.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract for the remote character source (see the
//     CharacterAPI interface): GetCharacter and GetRandomCharacter.
//  2. A concrete resty-based implementation for the Jikan v4 API (see
//     JikanClient) that maps HTTP statuses to sentinel errors.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations),
//     wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Conditions are exposed as sentinel errors that callers match with
// errors.Is: ErrNotFound (404), ErrRateLimited (429), ErrUnavailable (any
// other failure, retryable) and ErrInvalidCredentials.
//
// All operations accept context.Context and honor cancellation; a cancelled
// request returns the context error itself, not ErrUnavailable.
package client
