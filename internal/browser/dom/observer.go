// internal/browser/dom/observer.go
package dom

// MutationRecord describes one observed change.
type MutationRecord struct {
	// Type is "childList" or "attributes".
	Type string
	// Target is the node whose children or attributes changed.
	Target *Element
	// AttributeName is set for attribute records.
	AttributeName string
}

const (
	RecordChildList  = "childList"
	RecordAttributes = "attributes"
)

// ObserverOptions selects what Observe reports.
type ObserverOptions struct {
	ChildList  bool
	Attributes bool
	// Subtree extends observation to descendants of the target.
	Subtree bool
	// AttributeFilter limits attribute records to the listed names.
	AttributeFilter []string
}

// MutationObserver turns the internal change signals into records. Delivery
// is synchronous: the callback runs inside the mutating call. With a nil
// callback records queue until TakeRecords.
type MutationObserver struct {
	fn      func([]MutationRecord, *MutationObserver)
	cancels []func()
	pending []MutationRecord
}

// NewMutationObserver creates an observer calling fn for each record.
func NewMutationObserver(fn func([]MutationRecord, *MutationObserver)) *MutationObserver {
	return &MutationObserver{fn: fn}
}

// Observe starts reporting changes on target.
func (o *MutationObserver) Observe(target *Element, opts ObserverOptions) error {
	if target == nil {
		return argumentMissing("MutationObserver", "observe", 1, "Node")
	}
	if !opts.ChildList && !opts.Attributes {
		return &Exception{
			Kind:      ErrArgumentMissing,
			Interface: "MutationObserver",
			Op:        "observe",
			Message:   "The options object must set at least one of 'attributes' or 'childList' to true.",
		}
	}
	cancel := target.subscribe(func(sig signal) {
		if !opts.Subtree && sig.origin != target {
			return
		}
		rec, ok := opts.record(sig)
		if !ok {
			return
		}
		o.deliver(rec)
	})
	o.cancels = append(o.cancels, cancel)
	return nil
}

func (opts ObserverOptions) record(sig signal) (MutationRecord, bool) {
	switch sig.kind {
	case signalStructure:
		if opts.ChildList {
			return MutationRecord{Type: RecordChildList, Target: sig.origin}, true
		}
	case signalAttribute:
		if !opts.Attributes {
			break
		}
		if len(opts.AttributeFilter) > 0 && !containsToken(opts.AttributeFilter, sig.attr) {
			break
		}
		return MutationRecord{Type: RecordAttributes, Target: sig.origin, AttributeName: sig.attr}, true
	}
	return MutationRecord{}, false
}

func (o *MutationObserver) deliver(rec MutationRecord) {
	if o.fn == nil {
		o.pending = append(o.pending, rec)
		return
	}
	o.fn([]MutationRecord{rec}, o)
}

// TakeRecords returns and clears the queued records.
func (o *MutationObserver) TakeRecords() []MutationRecord {
	out := o.pending
	o.pending = nil
	return out
}

// Disconnect stops all observation. Queued records are discarded.
func (o *MutationObserver) Disconnect() {
	for _, cancel := range o.cancels {
		cancel()
	}
	o.cancels = nil
	o.pending = nil
}
