package xwm

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

type pingMsg struct{}
type pongMsg struct{}
type stopMsg struct{}
type failMsg struct{}

type testModel struct {
	initCmd Cmd
	seen    []Msg
}

func (m testModel) Init(ctx context.Context) (Model, Cmd) {
	return m, m.initCmd
}

func (m testModel) Update(ctx context.Context, msg Msg) (Model, Cmd) {
	m.seen = append(m.seen, msg)

	switch msg.(type) {
	case pingMsg:
		return m, func(ctx context.Context) Msg { return pongMsg{} }
	case stopMsg:
		return m, Quit
	case failMsg:
		return m, Error(errors.New("failed"))
	}

	return m, nil
}

func runProgram(t *testing.T, p *Program, model Model) <-chan Model {
	t.Helper()

	doneC := make(chan Model, 1)
	go func() {
		m, err := p.Run(context.Background(), model)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		doneC <- m
	}()
	return doneC
}

func TestProgram_CommandResultIsDelivered(t *testing.T) {
	p := NewProgram(nil)
	doneC := runProgram(t, p, testModel{
		initCmd: func(ctx context.Context) Msg { return pingMsg{} },
	})

	// pong arrives from the command issued for ping, before stop can be handled.
	time.Sleep(50 * time.Millisecond)
	if err := p.Send(context.Background(), stopMsg{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case m := <-doneC:
		seen := m.(testModel).seen
		if len(seen) != 3 {
			t.Fatalf("expected 3 messages, got %v", seen)
		}
		if _, ok := seen[0].(pingMsg); !ok {
			t.Fatalf("expected ping first, got %T", seen[0])
		}
		if _, ok := seen[1].(pongMsg); !ok {
			t.Fatalf("expected pong second, got %T", seen[1])
		}
	case <-time.After(time.Second):
		t.Fatalf("program did not quit")
	}
}

func TestProgram_SendAfterClose(t *testing.T) {
	p := NewProgram(nil)
	doneC := runProgram(t, p, testModel{})

	if err := p.Send(context.Background(), stopMsg{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-doneC

	select {
	case <-p.Done():
	default:
		t.Fatalf("expected done channel to be closed")
	}

	if err := p.Send(context.Background(), pingMsg{}); !errors.Is(err, ErrProgramClosed) {
		t.Fatalf("expected ErrProgramClosed, got %v", err)
	}
}

func TestProgram_Error(t *testing.T) {
	p := NewProgram(nil)

	errC := make(chan error, 1)
	go func() {
		_, err := p.Run(context.Background(), testModel{})
		errC <- err
	}()

	if err := p.Send(context.Background(), failMsg{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case err := <-errC:
		if err == nil || err.Error() != "failed" {
			t.Fatalf("expected failed error, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("program did not stop")
	}
}

func TestProgram_ContextCanceled(t *testing.T) {
	p := NewProgram(nil)
	ctx, cancel := context.WithCancel(context.Background())

	errC := make(chan error, 1)
	go func() {
		_, err := p.Run(ctx, testModel{})
		errC <- err
	}()

	cancel()

	select {
	case err := <-errC:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("program did not stop")
	}
}

func TestBatch(t *testing.T) {
	if Batch(nil, nil) != nil {
		t.Fatalf("expected nil batch")
	}

	single := func(ctx context.Context) Msg { return pingMsg{} }
	if msg := Batch(nil, single)(context.Background()); msg != (pingMsg{}) {
		t.Fatalf("expected single command to be returned as is, got %v", msg)
	}

	msg := Batch(single, single)(context.Background())
	if cmds, ok := msg.(batchMsg); !ok || len(cmds) != 2 {
		t.Fatalf("expected batch of 2, got %v", msg)
	}
}

func TestParseXftDPI(t *testing.T) {
	tests := []struct {
		resources string
		dpi       float64
		ok        bool
	}{
		{resources: "Xft.antialias:\t1\nXft.dpi:\t96\nXft.hinting:\t1\n", dpi: 96, ok: true},
		{resources: "Xft.dpi: 144.5", dpi: 144.5, ok: true},
		{resources: "Xcursor.size:\t24\n", ok: false},
		{resources: "Xft.dpi:\tabc\n", ok: false},
		{resources: "Xft.dpi:\t0\n", ok: false},
		{resources: "", ok: false},
	}

	for _, tt := range tests {
		dpi, ok := ParseXftDPI(tt.resources)
		if ok != tt.ok || dpi != tt.dpi {
			t.Fatalf("%q: expected %v %v, got %v %v", tt.resources, tt.dpi, tt.ok, dpi, ok)
		}
	}
}

func TestPhysicalDPI(t *testing.T) {
	// 1920 px over 508 mm is 96 DPI.
	if got := PhysicalDPI(1920, 508); math.Abs(got-96) > 1e-9 {
		t.Fatalf("expected 96, got %v", got)
	}
	if got := PhysicalDPI(1920, 0); got != DefaultDPI {
		t.Fatalf("expected default DPI, got %v", got)
	}
}

func TestPut32Get32(t *testing.T) {
	values := get32(put32(1, 2, 0xffffffff))
	if len(values) != 3 || values[0] != 1 || values[1] != 2 || values[2] != 0xffffffff {
		t.Fatalf("unexpected values %v", values)
	}
}
