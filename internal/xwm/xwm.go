package xwm

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jezek/xgb"
)

var ErrProgramClosed = errors.New("program closed")

// Msg contain data from the result of a IO operation. Msgs trigger the update
// function and, henceforth, the UI.
type Msg interface{}

// Cmd is an IO operation that runs off the UI goroutine. The returned Msg, if
// any, is sent back to the Model.
type Cmd func(ctx context.Context) Msg

type Model interface {
	// Init is the first function that will be called.
	Init(ctx context.Context) (Model, Cmd)

	// Update is called when a message is received. Use it to inspect messages
	// and, in response, update the model and/or issue commands.
	Update(ctx context.Context, msg Msg) (Model, Cmd)
}

type quitMsg struct{}

// Quit stops the program.
func Quit(ctx context.Context) Msg {
	return quitMsg{}
}

type errorMsg struct {
	err error
}

// Error stops the program with err.
func Error(err error) Cmd {
	return func(ctx context.Context) Msg {
		return errorMsg{err: err}
	}
}

type batchMsg []Cmd

// Batch runs cmds concurrently.
func Batch(cmds ...Cmd) Cmd {
	var valid []Cmd
	for _, cmd := range cmds {
		if cmd != nil {
			valid = append(valid, cmd)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return func(ctx context.Context) Msg {
			return batchMsg(valid)
		}
	}
}

func NewProgram(conn *xgb.Conn) *Program {
	return &Program{
		conn:  conn,
		msgC:  make(chan Msg),
		doneC: make(chan struct{}),
	}
}

// Program runs a Model on a single goroutine. X events and messages from Send
// are handed to Update one at a time.
type Program struct {
	conn  *xgb.Conn
	msgC  chan Msg
	doneC chan struct{}
	once  sync.Once
}

// Send queues msg for the UI goroutine.
func (p *Program) Send(ctx context.Context, msg Msg) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.doneC:
		return ErrProgramClosed
	case p.msgC <- msg:
		return nil
	}
}

// Done is closed when Run returns.
func (p *Program) Done() <-chan struct{} {
	return p.doneC
}

func (p *Program) Run(ctx context.Context, model Model) (Model, error) {
	defer p.once.Do(func() { close(p.doneC) })

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var eventC chan any
	if p.conn != nil {
		eventC = make(chan any)
		go ReceiveEvents(ctx, p.conn, eventC)
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	exec := func(cmd Cmd) {
		if cmd == nil {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := cmd(ctx)
			if msg == nil {
				return
			}
			if err := p.Send(ctx, msg); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrProgramClosed) {
				slog.Error("Failed to deliver command result", "package", "xwm", "error", err)
			}
		}()
	}

	model, cmd := model.Init(ctx)
	exec(cmd)

	for {
		var msg Msg
		select {
		case <-ctx.Done():
			return model, ctx.Err()
		case ev, ok := <-eventC:
			if !ok {
				slog.Debug("exit: event stream closed")
				return model, nil
			}
			msg = ev
		case msg = <-p.msgC:
		}

		switch msg := msg.(type) {
		case quitMsg:
			return model, nil
		case errorMsg:
			return model, msg.err
		case batchMsg:
			for _, cmd := range msg {
				exec(cmd)
			}
			continue
		}

		model, cmd = model.Update(ctx, msg)
		exec(cmd)
	}
}
