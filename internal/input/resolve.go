package input

import "log"

// Resolver builds Keys from symbolic keys, native codes and platform events.
type Resolver struct {
	layout *Layout
	os     KeyQuerier
	logf   func(format string, args ...interface{})
}

// NewResolver creates a resolver over a layout and an OS query backend.
func NewResolver(layout *Layout, os KeyQuerier) *Resolver {
	return &Resolver{layout: layout, os: os, logf: log.Printf}
}

// FromType resolves a symbolic key. NoKey and keys without a native mapping
// resolve to the "no key" value.
func (r *Resolver) FromType(k KeyType) Key {
	if k == NoKey {
		return NoKeyValue()
	}
	virtual := r.layout.Translate(k)
	if virtual == 0 {
		r.logf("Keys: %s is not supported by the %s backend", k, r.layout.Name)
		return NoKeyValue()
	}
	return r.FromCode(virtual)
}

// FromCode resolves a native virtual code.
func (r *Resolver) FromCode(virtual uint32) Key {
	if virtual == 0 {
		return NoKeyValue()
	}
	return r.resolve(virtual, r.os.ScanCode(virtual))
}

// resolve runs the key rules over a virtual code and its hardware code
func (r *Resolver) resolve(virtual, code uint32) Key {
	d := &keyDraft{virtual: virtual, code: code}
	for _, rule := range keyRules {
		if rule.apply(r, d) {
			break
		}
	}
	return Key{code: d.code, virtual: d.virtual, extended: d.extended, name: d.name}
}

type keyDraft struct {
	code     uint32
	virtual  uint32
	extended bool
	name     string
}

// keyRule mutates a draft; returning true stops the rule list.
type keyRule struct {
	name  string
	apply func(r *Resolver, d *keyDraft) bool
}

// keyRules run in order. Virtual-key-only status wins over a successful
// hardware lookup.
var keyRules = []keyRule{
	{"virtual-key-only", ruleVirtualOnly},
	{"extended", ruleExtended},
	{"name", ruleName},
}

func ruleVirtualOnly(r *Resolver, d *keyDraft) bool {
	if d.code != 0 && !r.layout.IsVirtualOnly(d.virtual) {
		return false
	}
	d.code = 0
	d.name = NameVirtualKeyOnly
	return true
}

func ruleExtended(r *Resolver, d *keyDraft) bool {
	d.extended = r.layout.IsExtended(d.virtual)
	return false
}

func ruleName(r *Resolver, d *keyDraft) bool {
	if name, ok := r.os.KeyName(d.code, d.virtual, d.extended); ok && name != "" {
		d.name = name
	} else {
		d.name = NameUnknown
	}
	return true
}
