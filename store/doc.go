// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists candidate participations with sqlx.

	st := store.NewParticipationStore(conn)
	err := st.Create(ctx, &models.Participation{...})

Statements use ? placeholders and go through Rebind, so the same code runs
on SQLite and PostgreSQL. A missing row is reported as ErrNotFound.

The store trusts its input: paths are built and checked by the positions
package before they get here.
*/
package store
