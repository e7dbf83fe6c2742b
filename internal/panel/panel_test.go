package panel

import (
	"strings"
	"testing"

	"github.com/pfassina/scoria/internal/document"
	"github.com/pfassina/scoria/internal/keymap"
	"github.com/pfassina/scoria/internal/markdown"
	"github.com/pfassina/scoria/internal/outline"
	"github.com/pfassina/scoria/internal/vault"
)

var testVaults = []vault.Vault{
	{Name: "personal", Path: "/v/personal"},
	{Name: "work", Path: "/v/work"},
	{Name: "zk", Path: "/v/zk"},
}

func TestHelpMarkdownListsScopes(t *testing.T) {
	md := HelpMarkdown(keymap.Defaults(), "v1.2.3")

	for _, want := range []string{
		"## global",
		"| `q` | quit |",
		"## note_editor",
		"| `ctrl+s` | note_editor_experimental_save |",
		"| `space` | outline_expand |",
		"scoria v1.2.3",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("help text missing %q", want)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	h := NewHelp(keymap.Defaults(), "", testTheme())
	h.SetSize(120, 40)

	if h.Visible() {
		t.Fatal("help starts hidden")
	}
	h.Toggle()
	if !h.Visible() || h.View() == "" {
		t.Fatal("expected visible help")
	}
	h.Close()
	if h.Visible() || h.View() != "" {
		t.Error("expected hidden help after Close")
	}
}

func TestSplashPreselectsLastVault(t *testing.T) {
	s := NewSplash(testVaults, "/v/work", "", testTheme())
	if v, _ := s.Selected(); v.Name != "work" {
		t.Errorf("selected = %q, want work", v.Name)
	}

	s.Down()
	s.Down()
	if v, _ := s.Selected(); v.Name != "zk" {
		t.Errorf("selected = %q after moving past the end, want zk", v.Name)
	}

	s = NewSplash(testVaults, "/elsewhere", "", testTheme())
	if v, _ := s.Selected(); v.Name != "personal" {
		t.Errorf("selected = %q for unknown last vault, want personal", v.Name)
	}
}

func TestSplashNoVaults(t *testing.T) {
	s := NewSplash(nil, "", "", testTheme())
	s.SetSize(80, 24)
	if _, ok := s.Selected(); ok {
		t.Error("expected no selection")
	}
	if !strings.Contains(s.View(), "No vaults") {
		t.Error("expected empty splash to say so")
	}
}

func TestVaultSelector(t *testing.T) {
	s := NewVaultSelector(testVaults, testTheme())
	s.SetSize(100, 30)

	s.Toggle("/v/zk")
	if !s.Visible() {
		t.Fatal("expected visible selector")
	}
	if v, _ := s.Selected(); v.Name != "zk" {
		t.Errorf("selected = %q, want current vault zk", v.Name)
	}
	s.Up()
	if v, _ := s.Selected(); v.Name != "work" {
		t.Errorf("selected = %q, want work", v.Name)
	}
	if !strings.Contains(s.View(), "Open Vault") {
		t.Error("missing title")
	}

	s.Close()
	if s.View() != "" {
		t.Error("closed selector should render nothing")
	}
}

func TestStatusView(t *testing.T) {
	s := NewStatus(testTheme())
	s.SetWidth(100)
	s.SetMode("EDIT")
	s.SetPane("note_editor")
	s.SetNote(&NoteInfo{Title: "Ideas", Modified: true, Words: 3, Chars: 12, Minutes: 1})

	view := s.View()
	for _, want := range []string{"EDIT", "note_editor", "Ideas [+]", "3 words · 12 chars · 1 min"} {
		if !strings.Contains(view, want) {
			t.Errorf("status %q missing %q", view, want)
		}
	}

	s.SetError("save failed")
	if view := s.View(); !strings.Contains(view, "save failed") || strings.Contains(view, "Ideas") {
		t.Errorf("error status = %q", view)
	}
	s.ClearError()
	if s.Error() != "" {
		t.Error("expected cleared error")
	}
}

func TestOutlineView(t *testing.T) {
	o := NewOutline(testTheme())
	o.SetSize(30, 10)
	if !strings.Contains(o.View(), "No headings") {
		t.Error("expected empty outline text")
	}

	tree := outline.New(markdown.Parse("# Top\n\n## Child\n\ntext\n"))
	tree.SelectAt(1)
	o.SetOpen(true)
	o.SetTree(tree)
	view := o.View()
	if !strings.Contains(view, "Top") || !strings.Contains(view, "Child") {
		t.Errorf("outline view = %q", view)
	}
	if !o.IsOpen() {
		t.Error("SetTree must keep the open flag")
	}
}

func TestEditorShowsCurrentBlockSource(t *testing.T) {
	e := NewEditor(testTheme())
	e.SetSize(60, 20)
	if !strings.Contains(e.View(), "No note selected") {
		t.Error("expected placeholder without a note")
	}

	doc := document.New("/v/a.md", "# A\n\nsome **bold** body", document.View)
	doc.SetRow(1)
	e.SetDocument(doc, "a")
	e.Sync(true)

	view := e.View()
	if !strings.Contains(view, "some **bold** body") {
		t.Errorf("current block should be shown as source: %q", view)
	}
}

func TestEditorSyncFollowsCursor(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("para\n\n")
	}
	doc := document.New("/v/long.md", b.String(), document.View)

	e := NewEditor(testTheme())
	e.SetSize(60, 10)
	e.SetDocument(doc, "long")

	doc.SetRow(30)
	e.Sync(true)
	if doc.Scroll() == 0 {
		t.Fatal("expected the editor to scroll to the cursor")
	}

	doc.ScrollBy(10000)
	e.Sync(false)
	lines, _ := e.lines()
	if doc.Scroll() != len(lines)-e.Height() {
		t.Errorf("scroll = %d, want clamped to %d", doc.Scroll(), len(lines)-e.Height())
	}
}
