package hand_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"grasp/internal/config"
	"grasp/internal/control"
	"grasp/internal/hand"
	"grasp/internal/journal"
	"grasp/internal/logging"
	"grasp/internal/testsupport"
)

func newController(t *testing.T, srv *testsupport.AckServer, opts ...testsupport.ConfigOption) (*hand.Controller, *config.Config) {
	t.Helper()
	opts = append([]testsupport.ConfigOption{testsupport.WithPort(srv.Port())}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	ctrl, err := hand.New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("hand.New: %v", err)
	}
	t.Cleanup(func() { _ = ctrl.Close() })
	return ctrl, cfg
}

func TestSetJointPositionsEndToEnd(t *testing.T) {
	srv := testsupport.StartAckServer(t, "OK\n")
	ctrl, _ := newController(t, srv)

	ok, err := ctrl.SetJointPositions(context.Background(), make([]float64, 16))
	if err != nil {
		t.Fatalf("SetJointPositions: %v", err)
	}
	if !ok {
		t.Fatal("expected acknowledgment")
	}

	lines := srv.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected exactly one wire line, got %v", lines)
	}
	want := "SET_JOINTS" + strings.Repeat(" 0.000000", 16)
	if lines[0] != want {
		t.Fatalf("unexpected wire bytes:\n got %q\nwant %q", lines[0], want)
	}
}

func TestSetJointPositionsWrongLengthSkipsNetwork(t *testing.T) {
	srv := testsupport.StartAckServer(t, "OK\n")
	ctrl, _ := newController(t, srv)

	_, err := ctrl.SetJointPositions(context.Background(), make([]float64, 15))
	if !errors.Is(err, hand.ErrInvalidJointVector) {
		t.Fatalf("expected ErrInvalidJointVector, got %v", err)
	}
	if lines := srv.Lines(); len(lines) != 0 {
		t.Fatalf("expected no network I/O, server saw %v", lines)
	}
}

func TestSetJointPositionsNonOKAck(t *testing.T) {
	srv := testsupport.StartAckServer(t, "ERROR\n")
	ctrl, _ := newController(t, srv)

	ok, err := ctrl.SetJointPositions(context.Background(), make([]float64, 16))
	if err != nil {
		t.Fatalf("SetJointPositions: %v", err)
	}
	if ok {
		t.Fatal("expected rejection for non-OK acknowledgment")
	}
}

func TestSetJointPositionsServerClosesWithoutReply(t *testing.T) {
	srv := testsupport.StartAckServer(t, "")
	ctrl, _ := newController(t, srv)

	ok, err := ctrl.SetJointPositions(context.Background(), make([]float64, 16))
	if err != nil {
		t.Fatalf("transport failure must not surface as error: %v", err)
	}
	if ok {
		t.Fatal("expected failure when server closes without replying")
	}
}

func TestCloseSendsQuitAndIsIdempotent(t *testing.T) {
	srv := testsupport.StartAckServer(t, "OK\n")
	ctrl, _ := newController(t, srv)

	if err := ctrl.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := ctrl.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		lines := srv.Lines()
		if len(lines) == 1 && lines[0] == "QUIT" {
			break
		}
		if len(lines) > 1 {
			t.Fatalf("expected a single QUIT, server saw %v", lines)
		}
		select {
		case <-deadline:
			t.Fatalf("QUIT never arrived, server saw %v", srv.Lines())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestCommandsAfterCloseAreReportedNotFatal(t *testing.T) {
	srv := testsupport.StartAckServer(t, "OK\n")
	ctrl, _ := newController(t, srv)
	if err := ctrl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ok, err := ctrl.SetJointPositions(context.Background(), make([]float64, 16))
	if err != nil {
		t.Fatalf("not-connected must not surface as error: %v", err)
	}
	if ok {
		t.Fatal("expected failure on a closed channel")
	}
}

func TestSecondControllerBlockedByInstanceLock(t *testing.T) {
	srv := testsupport.StartAckServer(t, "OK\n")
	_, cfg := newController(t, srv)

	_, err := hand.New(context.Background(), cfg, logging.NewNop())
	if !errors.Is(err, hand.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestConnectionFailureUnwindsConstruction(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithPort(1)) // nothing listens on port 1
	cfg.Connection.MaxAttempts = 2

	_, err := hand.New(context.Background(), cfg, logging.NewNop())
	if !errors.Is(err, control.ErrConnectionFailed) {
		t.Fatalf("expected ErrConnectionFailed, got %v", err)
	}

	// The lock must be released so a later construction can proceed.
	srv := testsupport.StartAckServer(t, "OK\n")
	cfg.Hand.Port = srv.Port()
	cfg.Hand.Host = "127.0.0.1"
	cfg.Connection.MaxAttempts = 3
	ctrl, err := hand.New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("construction after unwind: %v", err)
	}
	_ = ctrl.Close()
}

func TestJournalRecordsCommands(t *testing.T) {
	srv := testsupport.StartAckServer(t, "OK\n")
	ctrl, cfg := newController(t, srv)

	if _, err := ctrl.SetJointPositions(context.Background(), make([]float64, 16)); err != nil {
		t.Fatalf("SetJointPositions: %v", err)
	}
	session := ctrl.SessionID()
	if err := ctrl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err := journal.Open(cfg.Journal.Dir)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	defer store.Close()
	records, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected SET_JOINTS and QUIT rows, got %d", len(records))
	}
	if records[0].Command != "QUIT" {
		t.Fatalf("expected QUIT newest, got %q", records[0].Command)
	}
	if !strings.HasPrefix(records[1].Command, "SET_JOINTS ") || !records[1].OK {
		t.Fatalf("unexpected command row: %+v", records[1])
	}
	for _, rec := range records {
		if rec.SessionID != session {
			t.Fatalf("session mismatch: %q vs %q", rec.SessionID, session)
		}
	}
}
