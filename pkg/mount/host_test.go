package mount

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/popover"
	"github.com/vango-dev/popover/pkg/dom/domtest"
	"github.com/vango-dev/popover/pkg/hooks"
)

func newHost(t *testing.T, opts ...Option) (*Host, *popover.Directive, *domtest.Document) {
	t.Helper()
	doc := domtest.NewDocument()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := popover.New(doc, domtest.NewClock(), popover.WithLogger(logger))
	h := New(doc, d, append([]Option{WithLogger(logger)}, opts...)...)
	return h, d, doc
}

func addTrigger(doc *domtest.Document, value string) *domtest.Element {
	el := doc.NewElement("button")
	el.SetAttr(hooks.AttrName, value)
	doc.BodyElement().AppendChild(el)
	return el
}

// settle delivers mutations until the document is quiet.
func settle(doc *domtest.Document) {
	for i := 0; i < 10 && doc.FlushMutations(); i++ {
	}
}

func TestSyncAttachesUpdatesAndDetaches(t *testing.T) {
	h, d, doc := newHost(t)
	a := addTrigger(doc, hooks.Popover(hooks.Config{Content: "A"}).Value)
	b := addTrigger(doc, hooks.Popover(hooks.Config{Content: "B", Click: true}).Value)
	addTrigger(doc, `Sortable:{"group":"x"}`)

	res := h.Sync()
	if res.Attached != 2 || res.Updated != 0 || res.Detached != 0 {
		t.Fatalf("first sync = %+v", res)
	}
	if !d.Attached(a) || !d.Attached(b) || d.Len() != 2 {
		t.Fatal("expected both popover triggers attached")
	}

	if res := h.Sync(); res.Changed() {
		t.Errorf("idempotent sync changed %+v", res)
	}

	a.SetAttr(hooks.AttrName, hooks.Popover(hooks.Config{Content: "A2"}).Value)
	a.Hover()
	if res := h.Sync(); res.Updated != 1 {
		t.Fatalf("update sync = %+v", res)
	}
	if got := d.Floating(a).(*domtest.Element).TextContent(); got != "A2" {
		t.Errorf("content = %q, want A2", got)
	}

	b.Remove()
	a.RemoveAttr(hooks.AttrName)
	if res := h.Sync(); res.Detached != 2 {
		t.Fatalf("detach sync = %+v", res)
	}
	if d.Len() != 0 || h.Len() != 0 {
		t.Errorf("Len() = %d/%d, want 0", d.Len(), h.Len())
	}
	if len(doc.Floating(popover.DefaultClassName)) != 0 {
		t.Error("floating element left behind")
	}
}

func TestSyncReportsInvalidHooks(t *testing.T) {
	h, d, doc := newHost(t)
	el := addTrigger(doc, `Popover:{"content":`)

	res := h.Sync()
	if len(res.Errors) != 1 || res.Attached != 0 {
		t.Fatalf("sync = %+v", res)
	}
	if d.Attached(el) {
		t.Error("invalid hook attached")
	}

	// A valid trigger that becomes invalid keeps its binding.
	el.SetAttr(hooks.AttrName, `Popover:{"content":"ok"}`)
	h.Sync()
	el.SetAttr(hooks.AttrName, `Popover:{"source":"missing"}`)
	res = h.Sync()
	if len(res.Errors) != 1 || !d.Attached(el) {
		t.Errorf("sync = %+v, attached = %v", res, d.Attached(el))
	}
}

func TestSources(t *testing.T) {
	h, d, doc := newHost(t, WithSources(hooks.Sources{"greeting": func() string { return "<b>hello</b>" }}))
	h.Register("late", func() string { return "late" })

	g := addTrigger(doc, `Popover:{"source":"greeting"}`)
	l := addTrigger(doc, `Popover:{"source":"late"}`)
	if res := h.Sync(); res.Attached != 2 {
		t.Fatalf("sync = %+v", res)
	}

	d.Show(g)
	if d.Floating(g).(*domtest.Element).Query("b") == nil {
		t.Error("source markup not rendered")
	}
	d.Show(l)
	if got := d.Floating(l).(*domtest.Element).TextContent(); got != "late" {
		t.Errorf("content = %q", got)
	}
}

func TestStartObservesMutations(t *testing.T) {
	h, d, doc := newHost(t)
	h.Start()

	inner := `<span v-hook='Popover:{"content":"inner"}'>i</span>`
	el := addTrigger(doc, hooks.Popover(hooks.Config{Content: inner, HTML: true}).Value)
	if d.Attached(el) {
		t.Fatal("attached before mutations were delivered")
	}
	doc.FlushMutations()
	if !d.Attached(el) {
		t.Fatal("mutation did not trigger a sync")
	}

	// Popovers declared inside popover content are picked up too.
	el.Hover()
	doc.FlushMutations()
	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want nested popover attached", d.Len())
	}

	el.Remove()
	settle(doc)
	if d.Attached(el) || d.Len() != 0 {
		t.Errorf("removed triggers still attached: Len() = %d", d.Len())
	}

	h.Stop()
	again := addTrigger(doc, `Popover:{"content":"y"}`)
	doc.FlushMutations()
	if d.Attached(again) {
		t.Error("host synced after Stop")
	}
}

func TestStopDetachesEverything(t *testing.T) {
	h, d, doc := newHost(t)
	el := addTrigger(doc, `Popover:{"content":"x"}`)
	h.Start()
	d.Show(el)

	h.Stop()
	if d.Len() != 0 || h.Len() != 0 {
		t.Errorf("Len() = %d/%d after Stop", d.Len(), h.Len())
	}
	if len(doc.Floating(popover.DefaultClassName)) != 0 {
		t.Error("floating element left behind")
	}
}
