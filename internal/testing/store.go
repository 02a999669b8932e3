// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

const defaultName = "default"

// fakeDB is the data behind one fake database. It implements the KV, JSON,
// event, state, branch, space and admin commands; every other command is
// rejected so tests must script its reply.
type fakeDB struct {
	branches map[string]*fakeBranch
	version  uint64
	clock    uint64

	durability string
	autoEmbed  bool
	writes     uint64
	flushes    uint64
}

type fakeBranch struct {
	info    protocol.BranchInfo
	version uint64
	spaces  map[string]*fakeSpace
}

type fakeEvent struct {
	eventType string
	entry     protocol.VersionedValue
}

type fakeSpace struct {
	kv     map[string][]protocol.VersionedValue
	state  map[string][]protocol.VersionedValue
	json   map[string][]protocol.VersionedValue
	events []fakeEvent
}

func newFakeDB() *fakeDB {
	db := &fakeDB{
		branches:   map[string]*fakeBranch{},
		clock:      1_700_000_000_000_000,
		durability: string(protocol.DurabilityStandard),
	}
	db.branches[defaultName] = db.newBranch(defaultName, nil)
	return db
}

func newFakeSpace() *fakeSpace {
	return &fakeSpace{
		kv:    map[string][]protocol.VersionedValue{},
		state: map[string][]protocol.VersionedValue{},
		json:  map[string][]protocol.VersionedValue{},
	}
}

func (db *fakeDB) configure(opts protocol.OpenOptions) {
	if opts.Durability != "" {
		db.durability = string(opts.Durability)
	}
	if opts.AutoEmbed != nil {
		db.autoEmbed = *opts.AutoEmbed
	}
}

func (db *fakeDB) tick() uint64 {
	db.clock++
	return db.clock
}

// newBranch stamps the branch with the current data version. Creating a
// branch is not a data write.
func (db *fakeDB) newBranch(id string, parent *string) *fakeBranch {
	now := db.tick()
	return &fakeBranch{
		info: protocol.BranchInfo{
			ID:        id,
			Status:    "active",
			CreatedAt: now,
			UpdatedAt: now,
			ParentID:  parent,
		},
		version: db.version,
		spaces:  map[string]*fakeSpace{defaultName: newFakeSpace()},
	}
}

// write stamps a new versioned value.
func (db *fakeDB) write(v value.Value) protocol.VersionedValue {
	db.version++
	db.writes++
	return protocol.VersionedValue{Value: v, Version: db.version, Timestamp: db.tick()}
}

func nameOr(p *string) string {
	if p == nil || *p == "" {
		return defaultName
	}
	return *p
}

func (db *fakeDB) branch(name *string) (*fakeBranch, error) {
	b, ok := db.branches[nameOr(name)]
	if !ok {
		return nil, fmt.Errorf("branch not found: %s", nameOr(name))
	}
	return b, nil
}

// space resolves a target. Writes create missing spaces; reads of a
// missing space see an empty one.
func (db *fakeDB) space(t protocol.Target, create bool) (*fakeSpace, error) {
	b, err := db.branch(t.Branch)
	if err != nil {
		return nil, err
	}
	name := nameOr(t.Space)
	s, ok := b.spaces[name]
	if !ok {
		s = newFakeSpace()
		if create {
			b.spaces[name] = s
		}
	}
	return s, nil
}

func (db *fakeDB) execute(cmd protocol.Command) (protocol.Output, error) {
	switch c := cmd.(type) {
	case protocol.Ping:
		return protocol.OutPong{Version: EngineVersion}, nil
	case protocol.Info:
		return db.info(), nil
	case protocol.Flush:
		db.flushes++
		return protocol.OutUnit{}, nil
	case protocol.Compact:
		return protocol.OutUnit{}, nil
	case protocol.TimeRange:
		return db.timeRange(c.Branch)
	case protocol.ConfigGet:
		return protocol.OutConfig{Durability: db.durability, AutoEmbed: db.autoEmbed}, nil
	case protocol.ConfigSetAutoEmbed:
		db.autoEmbed = c.Enabled
		return protocol.OutUnit{}, nil
	case protocol.AutoEmbedStatus:
		return protocol.OutBool(db.autoEmbed), nil
	case protocol.DurabilityCounters:
		return protocol.OutDurabilityCounters{
			WalAppends:   db.writes,
			SyncCalls:    db.flushes,
			BytesWritten: db.writes * 64,
		}, nil

	case protocol.KvPut:
		return db.put(c.Target, kvMap, c.Key, c.Value)
	case protocol.KvGet:
		return db.get(c.Target, kvMap, c.Key, c.AsOf)
	case protocol.KvDelete:
		return db.del(c.Target, kvMap, c.Key)
	case protocol.KvList:
		keys, _, err := db.list(c.Target, kvMap, c.Prefix, c.Cursor, c.Limit)
		return protocol.OutKeys(keys), err
	case protocol.KvGetv:
		return db.history(c.Target, kvMap, c.Key)
	case protocol.KvBatchPut:
		return db.batchPut(c)

	case protocol.JsonSet:
		if c.Path != "$" {
			return nil, fmt.Errorf("fake engine supports only the root path, got %q", c.Path)
		}
		return db.put(c.Target, jsonMap, c.Key, c.Value)
	case protocol.JsonGet:
		if c.Path != "$" {
			return nil, fmt.Errorf("fake engine supports only the root path, got %q", c.Path)
		}
		return db.get(c.Target, jsonMap, c.Key, c.AsOf)
	case protocol.JsonDelete:
		out, err := db.del(c.Target, jsonMap, c.Key)
		if err != nil {
			return nil, err
		}
		if out == protocol.OutBool(true) {
			return protocol.OutUint(1), nil
		}
		return protocol.OutUint(0), nil
	case protocol.JsonGetv:
		return db.history(c.Target, jsonMap, c.Key)
	case protocol.JsonList:
		keys, cursor, err := db.list(c.Target, jsonMap, c.Prefix, c.Cursor, c.Limit)
		return protocol.OutJsonListResult{Keys: keys, Cursor: cursor}, err

	case protocol.EventAppend:
		return db.appendEvent(c)
	case protocol.EventGet:
		return db.getEvent(c)
	case protocol.EventGetByType:
		return db.eventsByType(c)
	case protocol.EventLen:
		s, err := db.space(c.Target, false)
		if err != nil {
			return nil, err
		}
		return protocol.OutUint(len(s.events)), nil

	case protocol.StateSet:
		return db.put(c.Target, stateMap, c.Cell, c.Value)
	case protocol.StateGet:
		return db.get(c.Target, stateMap, c.Cell, c.AsOf)
	case protocol.StateInit:
		return db.stateInit(c)
	case protocol.StateCas:
		return db.stateCas(c)
	case protocol.StateDelete:
		return db.del(c.Target, stateMap, c.Cell)
	case protocol.StateList:
		keys, _, err := db.list(c.Target, stateMap, c.Prefix, nil, nil)
		return protocol.OutKeys(keys), err
	case protocol.StateGetv:
		return db.history(c.Target, stateMap, c.Cell)

	case protocol.BranchCreate:
		return db.createBranch(c)
	case protocol.BranchGet:
		b, ok := db.branches[c.Branch]
		if !ok {
			return protocol.OutMaybeBranchInfo{}, nil
		}
		return protocol.OutMaybeBranchInfo{Branch: &protocol.VersionedBranchInfo{Info: b.info, Version: b.version, Timestamp: b.info.UpdatedAt}}, nil
	case protocol.BranchList:
		return db.listBranches(c), nil
	case protocol.BranchExists:
		_, ok := db.branches[c.Branch]
		return protocol.OutBool(ok), nil
	case protocol.BranchDelete:
		return db.deleteBranch(c.Branch)
	case protocol.BranchFork:
		return db.fork(c)
	case protocol.BranchDiff:
		return db.diff(c)
	case protocol.BranchMerge:
		return db.merge(c)

	case protocol.SpaceList:
		b, err := db.branch(c.Branch)
		if err != nil {
			return nil, err
		}
		return protocol.OutSpaceList(sortedNames(b.spaces)), nil
	case protocol.SpaceCreate:
		b, err := db.branch(c.Branch)
		if err != nil {
			return nil, err
		}
		if _, ok := b.spaces[c.Space]; !ok {
			b.spaces[c.Space] = newFakeSpace()
		}
		return protocol.OutUnit{}, nil
	case protocol.SpaceDelete:
		return db.deleteSpace(c)
	case protocol.SpaceExists:
		b, err := db.branch(c.Branch)
		if err != nil {
			return nil, err
		}
		_, ok := b.spaces[c.Space]
		return protocol.OutBool(ok), nil

	default:
		return nil, fmt.Errorf("fake engine does not implement %s", cmd.Variant())
	}
}

type mapOf func(*fakeSpace) map[string][]protocol.VersionedValue

func kvMap(s *fakeSpace) map[string][]protocol.VersionedValue    { return s.kv }
func jsonMap(s *fakeSpace) map[string][]protocol.VersionedValue  { return s.json }
func stateMap(s *fakeSpace) map[string][]protocol.VersionedValue { return s.state }

func (db *fakeDB) put(t protocol.Target, m mapOf, key string, v value.Value) (protocol.Output, error) {
	if key == "" {
		return nil, fmt.Errorf("key must not be empty")
	}
	if v == nil {
		return nil, fmt.Errorf("missing field `value`")
	}
	s, err := db.space(t, true)
	if err != nil {
		return nil, err
	}
	entry := db.write(v)
	m(s)[key] = append(m(s)[key], entry)
	return protocol.OutVersion(entry.Version), nil
}

// latest returns the newest entry at or before asOf.
func latest(hist []protocol.VersionedValue, asOf *uint64) (protocol.VersionedValue, bool) {
	for i := len(hist) - 1; i >= 0; i-- {
		if asOf == nil || hist[i].Timestamp <= *asOf {
			return hist[i], true
		}
	}
	return protocol.VersionedValue{}, false
}

func (db *fakeDB) get(t protocol.Target, m mapOf, key string, asOf *uint64) (protocol.Output, error) {
	s, err := db.space(t, false)
	if err != nil {
		return nil, err
	}
	entry, ok := latest(m(s)[key], asOf)
	if !ok {
		return protocol.OutMaybeVersioned{}, nil
	}
	return protocol.OutMaybeVersioned{Value: &entry}, nil
}

func (db *fakeDB) del(t protocol.Target, m mapOf, key string) (protocol.Output, error) {
	s, err := db.space(t, false)
	if err != nil {
		return nil, err
	}
	_, ok := m(s)[key]
	delete(m(s), key)
	if ok {
		db.writes++
	}
	return protocol.OutBool(ok), nil
}

func (db *fakeDB) history(t protocol.Target, m mapOf, key string) (protocol.Output, error) {
	s, err := db.space(t, false)
	if err != nil {
		return nil, err
	}
	hist, ok := m(s)[key]
	if !ok {
		return protocol.OutVersionHistory{}, nil
	}
	versions := make([]protocol.VersionedValue, 0, len(hist))
	for i := len(hist) - 1; i >= 0; i-- {
		versions = append(versions, hist[i])
	}
	return protocol.OutVersionHistory{Versions: versions}, nil
}

func (db *fakeDB) list(t protocol.Target, m mapOf, prefix, cursor *string, limit *uint64) ([]string, *string, error) {
	s, err := db.space(t, false)
	if err != nil {
		return nil, nil, err
	}
	keys := make([]string, 0)
	if limit != nil && *limit == 0 {
		return keys, nil, nil
	}
	for _, k := range sortedKeys(m(s)) {
		if prefix != nil && !strings.HasPrefix(k, *prefix) {
			continue
		}
		if cursor != nil && k <= *cursor {
			continue
		}
		if limit != nil && uint64(len(keys)) == *limit {
			last := keys[len(keys)-1]
			return keys, &last, nil
		}
		keys = append(keys, k)
	}
	return keys, nil, nil
}

func (db *fakeDB) batchPut(c protocol.KvBatchPut) (protocol.Output, error) {
	results := make(protocol.OutBatchResults, 0, len(c.Entries))
	for _, e := range c.Entries {
		out, err := db.put(c.Target, kvMap, e.Key, e.Value)
		if err != nil {
			msg := err.Error()
			results = append(results, protocol.BatchItemResult{Error: &msg})
			continue
		}
		v := uint64(out.(protocol.OutVersion))
		results = append(results, protocol.BatchItemResult{Version: &v})
	}
	return results, nil
}

func (db *fakeDB) appendEvent(c protocol.EventAppend) (protocol.Output, error) {
	if _, ok := c.Payload.(value.Object); !ok {
		return nil, fmt.Errorf("event payload must be an object")
	}
	if c.EventType == "" {
		return nil, fmt.Errorf("event type must not be empty")
	}
	s, err := db.space(c.Target, true)
	if err != nil {
		return nil, err
	}
	seq := uint64(len(s.events))
	entry := db.write(c.Payload)
	entry.Version = seq
	s.events = append(s.events, fakeEvent{eventType: c.EventType, entry: entry})
	return protocol.OutVersion(seq), nil
}

func (db *fakeDB) getEvent(c protocol.EventGet) (protocol.Output, error) {
	s, err := db.space(c.Target, false)
	if err != nil {
		return nil, err
	}
	if c.Sequence >= uint64(len(s.events)) {
		return protocol.OutMaybeVersioned{}, nil
	}
	entry := s.events[c.Sequence].entry
	if c.AsOf != nil && entry.Timestamp > *c.AsOf {
		return protocol.OutMaybeVersioned{}, nil
	}
	return protocol.OutMaybeVersioned{Value: &entry}, nil
}

func (db *fakeDB) eventsByType(c protocol.EventGetByType) (protocol.Output, error) {
	s, err := db.space(c.Target, false)
	if err != nil {
		return nil, err
	}
	out := protocol.OutVersionedValues{}
	for _, ev := range s.events {
		if ev.eventType != c.EventType {
			continue
		}
		if c.AfterSequence != nil && ev.entry.Version <= *c.AfterSequence {
			continue
		}
		if c.AsOf != nil && ev.entry.Timestamp > *c.AsOf {
			continue
		}
		if c.Limit != nil && uint64(len(out)) == *c.Limit {
			break
		}
		out = append(out, ev.entry)
	}
	return out, nil
}

func (db *fakeDB) stateInit(c protocol.StateInit) (protocol.Output, error) {
	s, err := db.space(c.Target, false)
	if err != nil {
		return nil, err
	}
	if cur, ok := latest(s.state[c.Cell], nil); ok {
		return protocol.OutVersion(cur.Version), nil
	}
	return db.put(c.Target, stateMap, c.Cell, c.Value)
}

func (db *fakeDB) stateCas(c protocol.StateCas) (protocol.Output, error) {
	s, err := db.space(c.Target, false)
	if err != nil {
		return nil, err
	}
	cur, exists := latest(s.state[c.Cell], nil)
	switch {
	case c.ExpectedCounter == nil && exists:
		return protocol.OutMaybeVersion{}, nil
	case c.ExpectedCounter != nil && (!exists || cur.Version != *c.ExpectedCounter):
		return protocol.OutMaybeVersion{}, nil
	}
	out, err := db.put(c.Target, stateMap, c.Cell, c.Value)
	if err != nil {
		return nil, err
	}
	v := uint64(out.(protocol.OutVersion))
	return protocol.OutMaybeVersion{Version: &v}, nil
}

func (db *fakeDB) info() protocol.OutDatabaseInfo {
	var total uint64
	for _, b := range db.branches {
		for _, s := range b.spaces {
			total += uint64(len(s.kv))
		}
	}
	return protocol.OutDatabaseInfo{
		Version:     EngineVersion,
		BranchCount: uint64(len(db.branches)),
		TotalKeys:   total,
	}
}

func (db *fakeDB) timeRange(branch *string) (protocol.Output, error) {
	b, err := db.branch(branch)
	if err != nil {
		return nil, err
	}
	var oldest, newest *uint64
	see := func(ts uint64) {
		if oldest == nil || ts < *oldest {
			oldest = &ts
		}
		if newest == nil || ts > *newest {
			newest = &ts
		}
	}
	for _, s := range b.spaces {
		for _, m := range []map[string][]protocol.VersionedValue{s.kv, s.state, s.json} {
			for _, hist := range m {
				for _, e := range hist {
					see(e.Timestamp)
				}
			}
		}
		for _, ev := range s.events {
			see(ev.entry.Timestamp)
		}
	}
	return protocol.OutTimeRange{OldestTS: oldest, LatestTS: newest}, nil
}

func (db *fakeDB) createBranch(c protocol.BranchCreate) (protocol.Output, error) {
	id := ""
	if c.BranchID != nil {
		id = *c.BranchID
	} else {
		id = fmt.Sprintf("branch-%d", len(db.branches)+1)
	}
	if _, ok := db.branches[id]; ok {
		return nil, fmt.Errorf("branch already exists: %s", id)
	}
	b := db.newBranch(id, nil)
	db.branches[id] = b
	return protocol.OutBranchWithVersion{Info: b.info, Version: b.version}, nil
}

func (db *fakeDB) listBranches(c protocol.BranchList) protocol.OutBranchInfoList {
	out := protocol.OutBranchInfoList{}
	for _, id := range sortedNames(db.branches) {
		b := db.branches[id]
		if c.State != nil && b.info.Status != *c.State {
			continue
		}
		out = append(out, protocol.VersionedBranchInfo{Info: b.info, Version: b.version, Timestamp: b.info.UpdatedAt})
	}
	if c.Offset != nil {
		if *c.Offset >= uint64(len(out)) {
			return protocol.OutBranchInfoList{}
		}
		out = out[*c.Offset:]
	}
	if c.Limit != nil && *c.Limit < uint64(len(out)) {
		out = out[:*c.Limit]
	}
	return out
}

func (db *fakeDB) deleteBranch(id string) (protocol.Output, error) {
	if id == defaultName {
		return nil, fmt.Errorf("cannot delete the default branch")
	}
	if _, ok := db.branches[id]; !ok {
		return nil, fmt.Errorf("branch not found: %s", id)
	}
	delete(db.branches, id)
	return protocol.OutUnit{}, nil
}

func (db *fakeDB) fork(c protocol.BranchFork) (protocol.Output, error) {
	src, ok := db.branches[c.Source]
	if !ok {
		return nil, fmt.Errorf("branch not found: %s", c.Source)
	}
	if _, ok := db.branches[c.Destination]; ok {
		return nil, fmt.Errorf("branch already exists: %s", c.Destination)
	}
	parent := c.Source
	dst := db.newBranch(c.Destination, &parent)
	dst.spaces = map[string]*fakeSpace{}

	var keys uint64
	for name, s := range src.spaces {
		cp := newFakeSpace()
		for _, pair := range []struct{ from, to map[string][]protocol.VersionedValue }{
			{s.kv, cp.kv}, {s.state, cp.state}, {s.json, cp.json},
		} {
			for k, hist := range pair.from {
				pair.to[k] = append([]protocol.VersionedValue(nil), hist...)
				keys++
			}
		}
		cp.events = append([]fakeEvent(nil), s.events...)
		keys += uint64(len(s.events))
		dst.spaces[name] = cp
	}
	db.branches[c.Destination] = dst

	return protocol.OutBranchForked{
		Source:       c.Source,
		Destination:  c.Destination,
		KeysCopied:   keys,
		SpacesCopied: uint64(len(src.spaces)),
	}, nil
}

// primitiveMaps lists the keyed primitives compared by diff and merge.
func primitiveMaps(s *fakeSpace) map[string]map[string][]protocol.VersionedValue {
	return map[string]map[string][]protocol.VersionedValue{"kv": s.kv, "state": s.state, "json": s.json}
}

func (db *fakeDB) diff(c protocol.BranchDiff) (protocol.Output, error) {
	a, ok := db.branches[c.BranchA]
	if !ok {
		return nil, fmt.Errorf("branch not found: %s", c.BranchA)
	}
	b, ok := db.branches[c.BranchB]
	if !ok {
		return nil, fmt.Errorf("branch not found: %s", c.BranchB)
	}

	names := map[string]bool{}
	for n := range a.spaces {
		names[n] = true
	}
	for n := range b.spaces {
		names[n] = true
	}

	out := protocol.OutBranchDiff{BranchA: c.BranchA, BranchB: c.BranchB, Spaces: []protocol.SpaceDiff{}}
	for _, name := range sortedNames(names) {
		sa, sb := a.spaces[name], b.spaces[name]
		if sa == nil {
			sa = newFakeSpace()
		}
		if sb == nil {
			sb = newFakeSpace()
		}
		sd := protocol.SpaceDiff{Space: name, Added: []protocol.DiffEntry{}, Removed: []protocol.DiffEntry{}, Modified: []protocol.DiffEntry{}}
		ma, mb := primitiveMaps(sa), primitiveMaps(sb)
		for _, prim := range sortedNames(ma) {
			for _, k := range sortedKeys(mb[prim]) {
				if _, ok := ma[prim][k]; !ok {
					sd.Added = append(sd.Added, protocol.DiffEntry{Key: k, Primitive: prim})
				}
			}
			for _, k := range sortedKeys(ma[prim]) {
				hb, ok := mb[prim][k]
				if !ok {
					sd.Removed = append(sd.Removed, protocol.DiffEntry{Key: k, Primitive: prim})
					continue
				}
				va, _ := latest(ma[prim][k], nil)
				vb, _ := latest(hb, nil)
				if !value.Equal(va.Value, vb.Value) {
					sd.Modified = append(sd.Modified, protocol.DiffEntry{Key: k, Primitive: prim})
				}
			}
		}
		if len(sd.Added)+len(sd.Removed)+len(sd.Modified) == 0 {
			continue
		}
		out.Summary.TotalAdded += uint64(len(sd.Added))
		out.Summary.TotalRemoved += uint64(len(sd.Removed))
		out.Summary.TotalModified += uint64(len(sd.Modified))
		out.Spaces = append(out.Spaces, sd)
	}
	return out, nil
}

func (db *fakeDB) merge(c protocol.BranchMerge) (protocol.Output, error) {
	src, ok := db.branches[c.Source]
	if !ok {
		return nil, fmt.Errorf("branch not found: %s", c.Source)
	}
	dst, ok := db.branches[c.Target]
	if !ok {
		return nil, fmt.Errorf("branch not found: %s", c.Target)
	}

	type change struct {
		space, prim, key string
		entry            protocol.VersionedValue
	}
	var changes []change
	conflicts := []protocol.MergeConflict{}
	spaces := map[string]bool{}

	for _, name := range sortedNames(src.spaces) {
		ss := src.spaces[name]
		ds := dst.spaces[name]
		if ds == nil {
			ds = newFakeSpace()
		}
		ms, md := primitiveMaps(ss), primitiveMaps(ds)
		for _, prim := range sortedNames(ms) {
			for _, k := range sortedKeys(ms[prim]) {
				vs, _ := latest(ms[prim][k], nil)
				vd, exists := latest(md[prim][k], nil)
				if exists && value.Equal(vs.Value, vd.Value) {
					continue
				}
				if exists {
					conflicts = append(conflicts, protocol.MergeConflict{Key: k, Primitive: prim, Space: name})
				}
				changes = append(changes, change{space: name, prim: prim, key: k, entry: vs})
				spaces[name] = true
			}
		}
	}

	if c.Strategy == protocol.MergeStrict && len(conflicts) > 0 {
		return nil, fmt.Errorf("merge conflict: %d keys modified on both branches", len(conflicts))
	}

	for _, ch := range changes {
		ds, ok := dst.spaces[ch.space]
		if !ok {
			ds = newFakeSpace()
			dst.spaces[ch.space] = ds
		}
		m := primitiveMaps(ds)[ch.prim]
		m[ch.key] = append(m[ch.key], db.write(ch.entry.Value))
	}

	return protocol.OutBranchMerged{
		KeysApplied:  uint64(len(changes)),
		SpacesMerged: uint64(len(spaces)),
		Conflicts:    conflicts,
	}, nil
}

func (db *fakeDB) deleteSpace(c protocol.SpaceDelete) (protocol.Output, error) {
	b, err := db.branch(c.Branch)
	if err != nil {
		return nil, err
	}
	if c.Space == defaultName {
		return nil, fmt.Errorf("cannot delete the default space")
	}
	s, ok := b.spaces[c.Space]
	if !ok {
		return nil, fmt.Errorf("space not found: %s", c.Space)
	}
	if !c.Force && len(s.kv)+len(s.state)+len(s.json)+len(s.events) > 0 {
		return nil, fmt.Errorf("space %s is not empty (use force)", c.Space)
	}
	delete(b.spaces, c.Space)
	return protocol.OutUnit{}, nil
}

func sortedKeys(m map[string][]protocol.VersionedValue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
