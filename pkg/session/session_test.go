package session

import (
	"errors"
	"testing"

	"github.com/slotforge/slotforge/pkg/geom"
	"github.com/slotforge/slotforge/pkg/geom/sandbox"
)

func TestBuildCommits(t *testing.T) {
	doc := sandbox.NewDocument()
	sess := Open(doc, nil)
	defer sess.Close()

	err := sess.Build(func(d geom.Document) error {
		_, err := d.NewComponent("built")
		return err
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := len(doc.Components()); got != 1 {
		t.Errorf("components = %d, want 1", got)
	}
}

func TestBuildRollsBackOnError(t *testing.T) {
	doc := sandbox.NewDocument()
	sess := Open(doc, nil)
	defer sess.Close()

	boom := errors.New("boom")
	err := sess.Build(func(d geom.Document) error {
		if _, err := d.NewComponent("partial"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Build error = %v, want boom", err)
	}

	if got := len(doc.Components()); got != 0 {
		t.Errorf("components after rollback = %d, want 0", got)
	}
}

func TestBuildAfterClose(t *testing.T) {
	sess := Open(sandbox.NewDocument(), nil)
	sess.Close()
	sess.Close() // double close is harmless

	err := sess.Build(func(geom.Document) error { return nil })
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Build after close = %v, want ErrClosed", err)
	}
}

func TestBuildReentrant(t *testing.T) {
	sess := Open(sandbox.NewDocument(), nil)
	defer sess.Close()

	err := sess.Build(func(geom.Document) error {
		return sess.Build(func(geom.Document) error { return nil })
	})
	if !errors.Is(err, ErrBuildActive) {
		t.Errorf("reentrant Build = %v, want ErrBuildActive", err)
	}
}

func TestSequentialBuilds(t *testing.T) {
	doc := sandbox.NewDocument()
	sess := Open(doc, nil)
	defer sess.Close()

	for i := 0; i < 3; i++ {
		err := sess.Build(func(d geom.Document) error {
			_, err := d.NewComponent("bar")
			return err
		})
		if err != nil {
			t.Fatalf("Build %d: %v", i, err)
		}
	}
	if got := len(doc.Components()); got != 3 {
		t.Errorf("components = %d, want 3", got)
	}
}
