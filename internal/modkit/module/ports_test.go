package module

import (
	"strings"
	"testing"

	"civicline/internal/modkit/httpkit"
	"civicline/internal/platform/testkit"
)

// FilerPort is a tiny test interface that Ports() payloads can implement
type FilerPort interface {
	File() int
}

type filerImpl struct{ v int }

func (f filerImpl) File() int { return f.v }

// fakeModule is a small module double for tests
type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) Name() string               { return m.name }
func (m fakeModule) Ports() PortSet             { return m.ports }
func (m fakeModule) MountRoutes(httpkit.Router) {}

func TestPortsOf_NilPorts(t *testing.T) {
	t.Parallel()

	m := fakeModule{name: "nilPorts", ports: nil}
	if _, ok := PortsOf[FilerPort](m); ok {
		t.Fatalf("expected ok=false when Ports() is nil")
	}
}

func TestPortsOf_DirectInterfaceMatch(t *testing.T) {
	t.Parallel()

	want := filerImpl{v: 42}
	m := fakeModule{name: "direct", ports: FilerPort(want)}

	got, ok := PortsOf[FilerPort](m)
	if !ok {
		t.Fatalf("expected ok=true for direct interface match")
	}
	if got.File() != 42 {
		t.Fatalf("unexpected value, got %d want 42", got.File())
	}
}

func TestPortsOf_StructBundle_ExportedField(t *testing.T) {
	t.Parallel()

	type Ports struct {
		Filer FilerPort
		Extra int
	}
	m := fakeModule{
		name:  "bundle",
		ports: Ports{Filer: filerImpl{v: 7}, Extra: 1},
	}

	got, ok := PortsOf[FilerPort](m)
	if !ok {
		t.Fatalf("expected ok=true when bundle has exported field")
	}
	if got.File() != 7 {
		t.Fatalf("unexpected value, got %d want 7", got.File())
	}
}

func TestPortsOf_StructBundle_UnexportedField_Ignored(t *testing.T) {
	t.Parallel()

	type ports struct {
		filer FilerPort // unexported
		extra int
	}
	m := fakeModule{
		name:  "unexported",
		ports: ports{filer: filerImpl{v: 1}, extra: 2},
	}

	if _, ok := PortsOf[FilerPort](m); ok {
		t.Fatalf("expected ok=false when only unexported field implements T")
	}
}

func TestMustPortsOf_PanicsWithModuleName(t *testing.T) {
	t.Parallel()

	m := fakeModule{name: "intake", ports: nil}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic from MustPortsOf when port missing")
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, "intake") || !strings.Contains(msg, "requested port not found") {
			t.Fatalf("panic message should include module name and hint, got %q", msg)
		}
	}()

	_ = MustPortsOf[FilerPort](m)
}

func TestMustPortsOf_ReturnsValue(t *testing.T) {
	t.Parallel()

	m := fakeModule{
		name:  "ok",
		ports: FilerPort(filerImpl{v: 99}),
	}

	var got FilerPort
	testkit.MustNotPanic(t, func() { got = MustPortsOf[FilerPort](m) })
	if got.File() != 99 {
		t.Fatalf("unexpected value from MustPortsOf, got %d want 99", got.File())
	}
}
