package xmlout

import (
	"bytes"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xmlout/writer"
)

func TestNamespaceHandleCanonical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	f := NewFragment(&recordingSink{})
	ns1 := f.Context().Namespace("http://example.com/a")
	ns2 := f.Context().Namespace("http://example.com/a")
	if ns1 != ns2 {
		t.Error("expected namespace handles for the same URI to be identical, aren't")
	}
	if f.Context().Namespace("") != noNamespace {
		t.Error("expected empty URI to yield the no-namespace handle, doesn't")
	}
	if noNamespace.URI() != "" {
		t.Errorf("expected no-namespace URI to be empty, is %q", noNamespace.URI())
	}
}

func TestPreferredPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	var buf bytes.Buffer
	f := NewFragment(writer.New(&buf))
	ns := f.Context().NamespaceWithPrefix("http://example.com/x", "x")
	root, _ := f.AddElement(ns, "r")
	root.AddElement(ns, "c") // same namespace, no second declaration
	if err := f.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
	want := `<x:r xmlns:x="http://example.com/x"><x:c/></x:r>`
	if buf.String() != want {
		t.Errorf("expected output to be %q, is %q", want, buf.String())
	}
}

func TestGeneratedPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	var buf bytes.Buffer
	f := NewFragment(writer.New(&buf))
	ns := f.Context().Namespace("http://example.com/a")
	f.AddElement(ns, "r")
	if err := f.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
	want := `<ns1:r xmlns:ns1="http://example.com/a"/>`
	if buf.String() != want {
		t.Errorf("expected output to be %q, is %q", want, buf.String())
	}
}

func TestPrefixCollision(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	var buf bytes.Buffer
	f := NewFragment(writer.New(&buf))
	nsa := f.Context().NamespaceWithPrefix("http://example.com/a", "x")
	nsb := f.Context().NamespaceWithPrefix("http://example.com/b", "x")
	root, _ := f.AddElement(nsa, "r")
	root.AddElement(nsb, "c") // preferred prefix taken, gets a generated one
	if err := f.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
	want := `<x:r xmlns:x="http://example.com/a"><ns1:c xmlns:ns1="http://example.com/b"/></x:r>`
	if buf.String() != want {
		t.Errorf("expected output to be %q, is %q", want, buf.String())
	}
}

func TestPrefixScopePopped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	var buf bytes.Buffer
	f := NewFragment(writer.New(&buf))
	ns := f.Context().NamespaceWithPrefix("http://example.com/a", "a")
	root, _ := f.AddElement(nil, "r")
	root.AddElement(ns, "c1")
	root.AddElement(ns, "c2") // c1's binding is out of scope, re-declared
	if err := f.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
	want := `<r><a:c1 xmlns:a="http://example.com/a"/><a:c2 xmlns:a="http://example.com/a"/></r>`
	if buf.String() != want {
		t.Errorf("expected output to be %q, is %q", want, buf.String())
	}
}

func TestNamespacedAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	var buf bytes.Buffer
	f := NewFragment(writer.New(&buf))
	ns := f.Context().NamespaceWithPrefix("http://example.com/a", "a")
	root, _ := f.AddElement(nil, "r")
	root.AddAttribute(ns, "key", "v")
	if err := f.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
	want := `<r xmlns:a="http://example.com/a" a:key="v"/>`
	if buf.String() != want {
		t.Errorf("expected output to be %q, is %q", want, buf.String())
	}
}

func TestIndentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	var buf bytes.Buffer
	f := NewFragment(writer.New(&buf))
	f.SetIndentation("\n        ", 1, 2)
	a, _ := f.AddElement(nil, "a")
	b, _ := a.AddElement(nil, "b")
	b.AddCharacters("text")
	if err := f.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
	want := "\n<a>\n  <b>text</b>\n</a>"
	if buf.String() != want {
		t.Errorf("expected output to be %q, is %q", want, buf.String())
	}
}

func TestIndentationOff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xmlout")
	defer teardown()
	//
	var buf bytes.Buffer
	f := NewFragment(writer.New(&buf))
	a, _ := f.AddElement(nil, "a")
	a.AddElement(nil, "b")
	if err := f.Close(); err != nil {
		t.Fatalf("expected Close to succeed, got %v", err)
	}
	if buf.String() != "<a><b/></a>" {
		t.Errorf("expected output to be '<a><b/></a>', is %q", buf.String())
	}
}
