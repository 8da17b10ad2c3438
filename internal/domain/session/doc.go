// Package session saves and restores named desktop layouts.
//
// A session is a registry snapshot (every window's flags, z index, geometry
// and scale, plus focus and the z counter) encoded with sonic and written
// through a Store. Restoring hands the decoded snapshot back to the desktop,
// which repairs anything that would break registry invariants.
//
// Components:
//   - Manager: Save, Load, Restore, List, Delete with an in-memory cache
//   - Store: Persistence interface (gorm/sqlite in internal/infrastructure/storage)
//   - MemoryStore: Store for tests and ephemeral runs
//
// Example Usage:
//
//	manager := session.NewManager(engine, store, logger)
//	sess, err := manager.Save(ctx, "Study layout")
//	_, err = manager.Restore(ctx, sess.ID)
package session
