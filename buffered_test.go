package xmlout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// Usage errors are programmer errors and panic at the call site.

func TestReleaseTwicePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f := NewFragment(&recordingSink{})
	frag := f.CreateBufferedFragment()
	f.AddBuffered(frag)
	if err := frag.Release(); err != nil {
		t.Fatalf("expected first release to succeed, got %v", err)
	}
	assert.Panics(t, func() { frag.Release() }, "second release")
}

func TestReattachPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f := NewFragment(&recordingSink{})
	a, _ := f.AddElement(nil, "a")
	b, _ := f.AddElement(nil, "b")
	frag := f.CreateBufferedFragment()
	if err := a.AddBuffered(frag); err != nil {
		t.Fatalf("expected first attach to succeed, got %v", err)
	}
	assert.Panics(t, func() { b.AddBuffered(frag) }, "re-parenting")
}

func TestAddAfterReleasePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f := NewFragment(&recordingSink{})
	frag := f.CreateBufferedFragment()
	f.AddBuffered(frag)
	frag.Release()
	assert.Panics(t, func() { frag.AddCharacters("late") }, "content after release")
}

func TestAttributeAfterReleasePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f := NewFragment(&recordingSink{})
	e := f.CreateBufferedElement(nil, "e")
	e.Release()
	assert.Panics(t, func() { e.AddAttribute(nil, "late", "1") }, "attribute after release")
}

func TestAttributeAfterContentPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f := NewFragment(&recordingSink{})
	e, _ := f.AddElement(nil, "e")
	e.AddCharacters("content")
	assert.Panics(t, func() { e.AddAttribute(nil, "late", "1") }, "attribute after content")
}

func TestAddAfterRootClosePanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f := NewFragment(&recordingSink{})
	if err := f.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
	assert.Panics(t, func() { f.AddCharacters("late") }, "content after close")
}

func TestAddToClosedElementPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f := NewFragment(&recordingSink{})
	a, _ := f.AddElement(nil, "a")
	f.AddElement(nil, "b") // closes <a>
	assert.Panics(t, func() { a.AddCharacters("late") }, "content after end tag")
}

func TestForeignContextBufferPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f1 := NewFragment(&recordingSink{})
	f2 := NewFragment(&recordingSink{})
	frag := f1.CreateBufferedFragment()
	assert.Panics(t, func() { f2.AddBuffered(frag) }, "buffer from a foreign context")
}

func TestAddAndReleaseBuffered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	sink := &recordingSink{}
	f := NewFragment(sink)
	e := f.CreateBufferedElement(nil, "e")
	e.AddCharacters("pre-built")
	if err := f.AddAndReleaseBuffered(e); err != nil {
		t.Fatalf("expected AddAndReleaseBuffered to succeed, got %v", err)
	}
	if sink.output() != "<e #pre-built </e" {
		t.Errorf("expected output to be '<e #pre-built </e', is %q", sink.output())
	}
}
