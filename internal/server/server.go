// Package server принимает соединения и выполняет команды протокола.
// На каждое соединение — своя горутина; внутри соединения команды
// выполняются строго последовательно, в ногу с чтением кадров.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lerokbel/BarberShop/internal/service"
	"github.com/Lerokbel/BarberShop/internal/wire"
)

type Config struct {
	Addr string
	// Предел ожидания следующего кадра в соединении. Ноль — без предела.
	IdleTimeout time.Duration
}

type Server struct {
	cfg Config
	log *slog.Logger

	identity *service.Identity
	booking  *service.Booking

	mu     sync.Mutex
	ln     net.Listener
	conns  map[*wire.Conn]struct{}
	closed bool

	wg sync.WaitGroup
}

func New(cfg Config, log *slog.Logger, identity *service.Identity, booking *service.Booking) *Server {
	return &Server{
		cfg:      cfg,
		log:      log.With("component", "server"),
		identity: identity,
		booking:  booking,
		conns:    make(map[*wire.Conn]struct{}),
	}
}

func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve крутит accept-петлю до закрытия слушателя через Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server is shut down")
	}
	s.ln = ln
	s.mu.Unlock()

	s.log.Info("listening", "addr", ln.Addr().String())

	for {
		nc, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			return err
		}

		conn := wire.NewConn(nc)
		conn.SetIdleTimeout(s.cfg.IdleTimeout)

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				s.mu.Lock()
				delete(s.conns, conn)
				s.mu.Unlock()
				conn.Close()
			}()
			s.handleConn(conn)
		}()
	}
}

// Addr возвращает адрес слушателя (для тестов с портом 0).
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown закрывает слушатель и активные соединения и ждёт,
// пока горутины соединений завершатся, но не дольше ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.ln != nil {
		s.ln.Close()
	}
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// connLogger помечает все записи соединения общим идентификатором.
func (s *Server) connLogger(conn *wire.Conn) *slog.Logger {
	return s.log.With("conn", uuid.NewString(), "remote", conn.RemoteAddr().String())
}
