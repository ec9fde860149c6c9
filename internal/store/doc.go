// Package store provides storage and pub/sub functionality for panel states.
//
// This package is internal to emojistatus and keeps the most recent
// evaluation of every panel in memory. It implements a publish-subscribe
// pattern so dashboard clients receive new states as soon as a panel is
// refreshed.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//   - [PanelState]: JSON-ready representation of one evaluated panel
//
// Subscribers receive updates via channels with non-blocking sends (slow
// subscribers miss updates rather than block the refresh loop).
//
// Nothing is persisted: a restarted board starts empty and fills up on its
// first refresh.
package store
