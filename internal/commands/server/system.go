// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"strings"

	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// StatusListen is the socket status of a listening TCP socket.
const StatusListen = "LISTEN"

// Conn is an inet socket owned by a process.
type Conn struct {
	Port   uint32
	PID    int32
	Proto  string
	Status string
}

// Proc is a snapshot of a process.
type Proc struct {
	PID    int32
	Name   string
	CPU    float64
	Mem    float32
	Status string
}

// System is the process and socket table of the host.
type System interface {
	Connections(ctx context.Context) ([]Conn, error)
	Processes(ctx context.Context) ([]Proc, error)
	Process(ctx context.Context, pid int32) (Proc, error)
	Terminate(ctx context.Context, pid int32) error
	Kill(ctx context.Context, pid int32) error
	Running(ctx context.Context, pid int32) (bool, error)
}

// Sys is the host system. Tests replace it with a fake.
var Sys System = psutil{}

// ErrNoSuchProcess is returned when a pid no longer exists.
var ErrNoSuchProcess = errors.New("no such process")

type psutil struct{}

func (psutil) Connections(ctx context.Context) ([]Conn, error) {
	stats, err := net.ConnectionsWithContext(ctx, "inet")
	if err != nil {
		return nil, err
	}

	conns := make([]Conn, 0, len(stats))
	for _, s := range stats {
		proto := "TCP"
		if s.Type == 2 {
			proto = "UDP"
		}

		conns = append(conns, Conn{Port: s.Laddr.Port, PID: s.Pid, Proto: proto, Status: s.Status})
	}

	return conns, nil
}

func (psutil) Processes(ctx context.Context) ([]Proc, error) {
	ps, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Proc, 0, len(ps))
	for _, p := range ps {
		out = append(out, snapshot(ctx, p))
	}

	return out, nil
}

func (psutil) Process(ctx context.Context, pid int32) (Proc, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return Proc{}, errors.Join(ErrNoSuchProcess, err)
	}

	return snapshot(ctx, p), nil
}

func (psutil) Terminate(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return errors.Join(ErrNoSuchProcess, err)
	}

	return p.TerminateWithContext(ctx)
}

func (psutil) Kill(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return errors.Join(ErrNoSuchProcess, err)
	}

	return p.KillWithContext(ctx)
}

func (psutil) Running(ctx context.Context, pid int32) (bool, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return p.IsRunningWithContext(ctx)
}

// snapshot reads what it can; processes owned by other users often deny some fields.
func snapshot(ctx context.Context, p *process.Process) Proc {
	out := Proc{PID: p.Pid}

	out.Name, _ = p.NameWithContext(ctx)
	out.CPU, _ = p.CPUPercentWithContext(ctx)
	out.Mem, _ = p.MemoryPercentWithContext(ctx)

	if st, err := p.StatusWithContext(ctx); err == nil {
		out.Status = strings.Join(st, ",")
	}

	return out
}
