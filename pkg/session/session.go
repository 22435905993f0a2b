// Package session scopes a build against a host document.
//
// The original tooling this design descends from kept the active
// application and document in process-wide globals. A Session replaces
// that with an explicit object carrying the document handle through an
// open → build → close lifecycle, and wraps each build in the document's
// transaction scope so a failure partway through rolls back every feature
// already committed instead of leaving stray bodies behind.
package session

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/slotforge/slotforge/pkg/geom"
)

var (
	// ErrClosed is returned when a build is attempted on a closed session.
	ErrClosed = errors.New("session closed")

	// ErrBuildActive is returned when Build is called reentrantly.
	ErrBuildActive = errors.New("build already in progress")
)

// Session is an open scope against one host document. It is not safe for
// concurrent use; the build pipeline is strictly sequential.
type Session struct {
	doc      geom.Document
	logger   *log.Logger
	closed   bool
	building bool
}

// Open starts a session against the document. A nil logger falls back to
// the package default.
func Open(doc geom.Document, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{doc: doc, logger: logger}
}

// Document returns the session's document handle.
func (s *Session) Document() geom.Document { return s.doc }

// Build runs fn inside a document transaction. On error the transaction
// is rolled back and the error returned; on success it is committed.
func (s *Session) Build(fn func(doc geom.Document) error) error {
	if s.closed {
		return ErrClosed
	}
	if s.building {
		return ErrBuildActive
	}
	s.building = true
	defer func() { s.building = false }()

	if err := s.doc.Begin(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(s.doc); err != nil {
		if rbErr := s.doc.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed after build error", "err", rbErr)
		}
		return err
	}
	if err := s.doc.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close ends the session. Further builds fail with ErrClosed. Closing
// twice is harmless.
func (s *Session) Close() {
	s.closed = true
}
